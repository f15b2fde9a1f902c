package main

import (
	"fmt"
	"io"

	"github.com/dhamidi/skim/format"
	"github.com/dhamidi/skim/java/outline"
	"github.com/dhamidi/skim/java/parser"
)

// fragmentOutput holds the flags shared by commands that print fragments.
type fragmentOutput struct {
	format    string
	positions bool
}

func (o *fragmentOutput) encoder(w io.Writer) (format.FragmentEncoder, error) {
	switch o.format {
	case "tree":
		enc := format.NewTreeEncoder(w)
		enc.SetPositions(o.positions)
		return enc, nil
	case "json":
		enc := format.NewFragmentJSONEncoder(w)
		enc.SetSpans(o.positions)
		return enc, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (expected tree or json)", o.format)
	}
}

// write prints frags and then hands back parseErr, so a failed parse still
// shows what was recovered.
func (o *fragmentOutput) write(w io.Writer, frags []parser.Fragment, parseErr error) error {
	enc, err := o.encoder(w)
	if err != nil {
		return err
	}
	if len(frags) > 0 {
		if err := enc.Encode(frags); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}
	return parseErr
}

func outlineEncoder(w io.Writer, name string) (format.OutlineEncoder, error) {
	switch name {
	case "json":
		return format.NewOutlineJSONEncoder(w), nil
	case "java":
		return format.NewJavaEncoder(w), nil
	case "line":
		return format.NewLineEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (expected json, java or line)", name)
	}
}

// diagnosticsError turns the diagnostics of an outline into an error.
func diagnosticsError(file *outline.File) error {
	var list parser.ErrorList
	for _, d := range file.Diagnostics {
		list = append(list, &parser.SyntaxError{Pos: d.Pos, Message: d.Message})
	}
	return list.Err()
}
