package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/samber/do"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/skim/config"
	"github.com/dhamidi/skim/java/parser"
)

var version = "0.1.0"

var log = commonlog.GetLogger("skim")

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	verbose    int
	container  *do.Injector
}

func (a *app) config() *config.Config {
	return do.MustInvoke[*config.Config](a.container)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "skim",
		Short:         "A structural parser for Java source",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.container = newContainer(a.configPath)
			cfg, err := do.Invoke[*config.Config](a.container)
			if err != nil {
				return err
			}
			configureLogging(cfg, a.verbose)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.container == nil {
				return nil
			}
			return a.container.Shutdown()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: "+config.FileName+" in the working directory)")
	rootCmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newTypeSpecCmd(a))
	rootCmd.AddCommand(newStmtCmd(a))
	rootCmd.AddCommand(newTypeDefCmd(a))
	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newOutlineCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

func configureLogging(cfg *config.Config, verbose int) {
	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity+verbose, path)
}

// printError writes err to w, one line per diagnostic for syntax errors.
func printError(w io.Writer, err error) {
	var list parser.ErrorList
	if errors.As(err, &list) {
		for _, e := range list {
			fmt.Fprintln(w, e)
		}
		return
	}
	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		fmt.Fprintln(w, syntaxErr)
		return
	}
	fmt.Fprintf(w, "error: %s\n", err)
}
