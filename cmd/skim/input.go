package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/skim/config"
	"github.com/dhamidi/skim/java/parser"
)

const stdinName = "<stdin>"

// readSource reads the file named by arg, or standard input when arg is "-".
func readSource(in io.Reader, arg string) ([]byte, string, error) {
	if arg == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, stdinName, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", arg, err)
	}
	return data, arg, nil
}

// readText returns arg itself, or standard input when arg is "-".
func readText(in io.Reader, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// sourceOptions returns the parser options for a source read by
// readSource. Positions in files carry the file name; positions in
// standard input are plain line:column.
func sourceOptions(cfg *config.Config, name string) []parser.Option {
	opts := cfg.ParserOptions()
	if name != stdinName {
		opts = append(opts, parser.WithFile(name))
	}
	return opts
}
