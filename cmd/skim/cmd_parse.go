package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/skim/java/parser"
)

func newParseCmd(a *app) *cobra.Command {
	var out fragmentOutput

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a Java source file and dump its fragments",
		Long: `Parse a whole compilation unit.

Syntax errors do not stop the parse: each one is reported on stderr, the
tokens around it are kept in an Error fragment, and parsing resumes at the
next member or statement. The exit status is 1 when any error was found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, name, err := readSource(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			opts := sourceOptions(a.config(), name)
			var frags parser.Collector
			err = parser.ParseFile(src, &frags, opts...)
			return out.write(cmd.OutOrStdout(), frags.Fragments(), err)
		},
	}

	addFragmentFlags(cmd, &out)

	return cmd
}
