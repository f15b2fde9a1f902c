package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/skim/java/parser"
)

func newTypeSpecCmd(a *app) *cobra.Command {
	var out fragmentOutput

	cmd := &cobra.Command{
		Use:   "typespec <text|->",
		Short: "Parse a single type, such as Map<String, List<Integer>>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			var frags parser.Collector
			err = parser.ParseTypeSpec(text, &frags, a.config().ParserOptions()...)
			return out.write(cmd.OutOrStdout(), frags.Fragments(), err)
		},
	}

	addFragmentFlags(cmd, &out)

	return cmd
}

func addFragmentFlags(cmd *cobra.Command, out *fragmentOutput) {
	cmd.Flags().StringVarP(&out.format, "format", "f", "tree", "output format (tree, json)")
	cmd.Flags().BoolVar(&out.positions, "positions", false, "include source positions")
}
