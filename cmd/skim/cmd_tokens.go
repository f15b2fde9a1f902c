package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/skim/java/parser"
)

func newTokensCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the tokens of a Java source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, name, err := readSource(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			lexer := parser.NewLexer(src, name)
			var list parser.ErrorList
			for {
				tok := lexer.NextToken()
				if tok.Kind == parser.TokenEOF {
					break
				}
				if tok.Kind == parser.TokenError {
					list = append(list, &parser.SyntaxError{Pos: tok.Span.Start, Message: "illegal character " + tok.String(), Got: tok})
				}
				if !all && tok.Kind.IsTrivia() {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", tok.Span.Start, tok.Kind, tok)
			}
			return list.Err()
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include whitespace and comments")

	return cmd
}
