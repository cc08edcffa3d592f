package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spector-project/spector/internal/codegen"
	"github.com/spector-project/spector/pkg/schema"
)

func newSchemaGenerateCommand() *cobra.Command {
	var predicate string

	cmd := &cobra.Command{
		Use:   "schema-generate",
		Short: "Generate JSON Schemas for supported document types",
	}
	inToto := &cobra.Command{
		Use:   "in-toto-v1",
		Short: "Print the JSON Schema for the in-toto v1 statement envelope",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var doc []byte
			var err error
			if predicate == "" {
				doc, err = schema.ForStatement()
			} else {
				typeURL, ok := predicateTypeByFlag[predicate]
				if !ok {
					return cliError{code: 2, err: fmt.Errorf("unknown --predicate value %q", predicate)}
				}
				doc, err = schema.ForPredicate(typeURL)
			}
			if err != nil {
				return cliError{code: 1, err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(doc))
			return nil
		},
	}
	inToto.Flags().StringVarP(&predicate, "predicate", "p", "", "emit the schema for a predicate kind instead of the envelope")
	cmd.AddCommand(inToto)
	return cmd
}

func newCodeGenerateCommand() *cobra.Command {
	var file, pkg string

	cmd := &cobra.Command{
		Use:   "code-generate",
		Short: "Generate Go source from schemas",
	}
	jsonSchema := &cobra.Command{
		Use:   "json-schema",
		Short: "Print Go type declarations derived from a JSON Schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := readDocument(file)
			if err != nil {
				return cliError{code: 1, err: err}
			}
			src, err := codegen.Generate(doc, codegen.Options{Package: pkg})
			if err != nil {
				return cliError{code: 1, err: err}
			}
			fmt.Fprint(cmd.OutOrStdout(), string(src))
			return nil
		},
	}
	jsonSchema.Flags().StringVarP(&file, "file", "f", "", "JSON Schema to generate from")
	jsonSchema.Flags().StringVar(&pkg, "package", "models", "package name for the generated source")
	_ = jsonSchema.MarkFlagRequired("file")
	cmd.AddCommand(jsonSchema)
	return cmd
}
