package main

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/spector-project/spector/internal/report"
	"github.com/spector-project/spector/pkg/schema"
	"github.com/spector-project/spector/pkg/types"
	"github.com/spector-project/spector/pkg/validate"
)

// predicateTypeByFlag maps --predicate flag values to predicate-type
// identifiers.
var predicateTypeByFlag = map[string]string{
	"slsa-provenance-v1":  types.PredicateSLSAProvenanceV1,
	"slsa-provenance-v02": types.PredicateSLSAProvenanceV02,
	"scai-report-v02":     types.PredicateSCAIReportV02,
}

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "validate", Short: "Validate documents"}
	cmd.AddCommand(newValidateInTotoCommand())
	cmd.AddCommand(newValidateSchemaCommand())
	return cmd
}

func newValidateInTotoCommand() *cobra.Command {
	var file, predicate, format string
	var allErrors bool

	cmd := &cobra.Command{
		Use:   "in-toto-v1",
		Short: "Validate an in-toto v1 attestation statement",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readDocument(file)
			if err != nil {
				return cliError{code: 1, err: err}
			}

			stmt, err := decodeStatement(data, allErrors)
			if err != nil {
				r := report.Failed("in-toto-v1", file, err)
				if werr := writeReport(cmd.OutOrStdout(), r, format); werr != nil {
					return werr
				}
				return cliError{code: 1, err: err}
			}

			if predicate != "" {
				want, ok := predicateTypeByFlag[predicate]
				if !ok {
					return cliError{code: 2, err: fmt.Errorf("unknown --predicate value %q", predicate)}
				}
				if stmt.PredicateType.String() != want {
					err := fmt.Errorf("unexpected predicateType: %q", stmt.PredicateType)
					r := report.Failed("in-toto-v1", file, err)
					if werr := writeReport(cmd.OutOrStdout(), r, format); werr != nil {
						return werr
					}
					return cliError{code: 1, err: err}
				}
			}

			if format == "text" {
				pretty, err := json.MarshalIndent(stmt, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
			}
			return writeReport(cmd.OutOrStdout(), report.New("in-toto-v1", file), format)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "document to validate")
	cmd.Flags().StringVarP(&predicate, "predicate", "p", "", "require a specific predicate kind")
	cmd.Flags().BoolVar(&allErrors, "all-errors", false, "validate against the generated schema and report every violation")
	cmd.Flags().StringVar(&format, "format", "text", "report format: text or json")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// decodeStatement picks the validation strategy: the schema pass collects
// every violation at the cost of compiling the envelope schema; the direct
// decode stops at the first defect.
func decodeStatement(data []byte, allErrors bool) (types.Statement, error) {
	if !allErrors {
		v := validate.NewGenericValidator[types.Statement]()
		return v.Validate(data)
	}
	schemaDoc, err := schema.ForStatement()
	if err != nil {
		return types.Statement{}, err
	}
	v, err := validate.NewSchemaValidator[types.Statement](schemaDoc)
	if err != nil {
		return types.Statement{}, err
	}
	return v.Validate(data)
}

func newValidateSchemaCommand() *cobra.Command {
	var schemaPath, file, format string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Validate a document against a user-supplied JSON Schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			schemaDoc, err := readDocument(schemaPath)
			if err != nil {
				return cliError{code: 1, err: err}
			}
			data, err := readDocument(file)
			if err != nil {
				return cliError{code: 1, err: err}
			}

			v, err := validate.NewSchemaValidator[map[string]any](schemaDoc)
			if err != nil {
				return cliError{code: 2, err: err}
			}
			if _, err := v.Validate(data); err != nil {
				r := report.Failed("schema", file, err)
				if werr := writeReport(cmd.OutOrStdout(), r, format); werr != nil {
					return werr
				}
				return cliError{code: 1, err: err}
			}
			return writeReport(cmd.OutOrStdout(), report.New("schema", file), format)
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "JSON Schema to validate against")
	cmd.Flags().StringVarP(&file, "file", "f", "", "document to validate")
	cmd.Flags().StringVar(&format, "format", "text", "report format: text or json")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func writeReport(w io.Writer, r report.Report, format string) error {
	if format == "json" {
		return r.WriteJSON(w)
	}
	return r.WriteText(w)
}
