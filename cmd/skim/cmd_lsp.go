package main

import (
	"github.com/samber/do"
	"github.com/spf13/cobra"

	"github.com/dhamidi/skim/java/codebase"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := do.Invoke[*codebase.LSPServer](a.container)
			if err != nil {
				return err
			}
			log.Infof("starting language server %s", version)
			return server.RunStdio()
		},
	}
}
