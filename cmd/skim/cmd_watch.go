package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do"
	"github.com/spf13/cobra"

	"github.com/dhamidi/skim/java/codebase"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-parse Java files as they change and report their diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				setRootDir(a.container, args[0])
			}
			watcher, err := do.Invoke[*codebase.FileWatcher](a.container)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			watcher.OnEvent = func(e codebase.Event) {
				if e.Removed {
					fmt.Fprintf(w, "removed\t%s\n", e.Path)
					return
				}
				fmt.Fprintf(w, "parsed\t%s\t%d types\t%d errors\t%s\n",
					e.Path, len(e.File.Outline.Types), len(e.File.Diagnostics), e.File.Duration)
				for _, d := range e.File.Diagnostics {
					fmt.Fprintf(w, "\t%s: %s\n", d.Pos, d.Message)
				}
			}

			log.Infof("watching %s", do.MustInvoke[*codebase.Codebase](a.container).RootDir())
			watcher.Start()

			signals := make(chan os.Signal, 1)
			signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(signals)

			select {
			case <-signals:
			case <-cmd.Context().Done():
			}
			return nil
		},
	}

	return cmd
}
