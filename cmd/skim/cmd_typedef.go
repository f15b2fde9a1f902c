package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/skim/java/parser"
)

func newTypeDefCmd(a *app) *cobra.Command {
	var out fragmentOutput

	cmd := &cobra.Command{
		Use:   "typedef <file|text|->",
		Short: "Parse a single class, interface, enum, record or annotation declaration",
		Long: `Parse a single type declaration.

The argument is read as a file when one exists with that name, and is
parsed as source text otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.config().ParserOptions()
			var text string
			if _, statErr := os.Stat(args[0]); statErr == nil && args[0] != "-" {
				src, name, err := readSource(cmd.InOrStdin(), args[0])
				if err != nil {
					return err
				}
				text = string(src)
				opts = append(opts, parser.WithFile(name))
			} else {
				var err error
				if text, err = readText(cmd.InOrStdin(), args[0]); err != nil {
					return err
				}
			}
			var frags parser.Collector
			err := parser.ParseTypeDef(text, &frags, opts...)
			return out.write(cmd.OutOrStdout(), frags.Fragments(), err)
		},
	}

	addFragmentFlags(cmd, &out)

	return cmd
}
