package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/skim/grammar"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Show and check the EBNF grammar of accepted syntax",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(grammar.Source())
			return err
		},
	}

	cmd.AddCommand(newGrammarCheckCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file, the built-in grammar by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				g, err := grammar.Load()
				if err != nil {
					return grammarErrors(cmd, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d productions\n", len(g))
				return nil
			}

			filename := args[0]
			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			g, err := grammar.Check(filename, f, startProduction)
			if err != nil {
				return grammarErrors(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d productions\n", len(g))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification (if empty, only checks syntax)")

	return cmd
}

func grammarErrors(cmd *cobra.Command, err error) error {
	errs := grammar.Errors(err)
	for _, e := range errs {
		fmt.Fprintln(cmd.ErrOrStderr(), e)
	}
	return fmt.Errorf("grammar check failed with %d errors", len(errs))
}
