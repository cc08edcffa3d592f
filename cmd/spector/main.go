package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type cliError struct {
	code int
	err  error
}

func (e cliError) Error() string { return e.err.Error() }

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		var ce cliError
		if errors.As(err, &ce) {
			fmt.Fprintln(os.Stderr, ce.err)
			os.Exit(ce.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "spector",
		Short:         "A tool for validating supply chain metadata documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newValidateCommand())
	root.AddCommand(newSchemaGenerateCommand())
	root.AddCommand(newCodeGenerateCommand())
	return root
}
