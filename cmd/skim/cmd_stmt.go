package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/skim/java/parser"
)

func newStmtCmd(a *app) *cobra.Command {
	var out fragmentOutput

	cmd := &cobra.Command{
		Use:   "stmt <text|->",
		Short: "Parse a single statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			var frags parser.Collector
			err = parser.ParseStatement(text, &frags, a.config().ParserOptions()...)
			return out.write(cmd.OutOrStdout(), frags.Fragments(), err)
		},
	}

	addFragmentFlags(cmd, &out)

	return cmd
}
