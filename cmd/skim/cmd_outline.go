package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/skim/java/outline"
)

func newOutlineCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "outline <file|->",
		Short: "Print the package, imports and declarations of a Java source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := outlineEncoder(cmd.OutOrStdout(), outputFormat)
			if err != nil {
				return err
			}
			src, name, err := readSource(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			opts := sourceOptions(a.config(), name)
			file, err := outline.FromSource(src, opts...)
			if err != nil {
				return err
			}
			file.Path = name
			if err := enc.Encode(file); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return diagnosticsError(file)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, java, line)")

	return cmd
}
