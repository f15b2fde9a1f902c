package format

import (
	"io"
	"strings"

	"github.com/dhamidi/skim/java/parser"
)

// TreeEncoder writes fragments as an indented outline, one node per line.
// Groups show their label, tokens their kind and literal.
type TreeEncoder struct {
	w         io.Writer
	frags     []parser.Fragment
	positions bool
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

// SetPositions appends the start and end position to every line.
func (e *TreeEncoder) SetPositions(on bool) {
	e.positions = on
}

func (e *TreeEncoder) Encode(frags []parser.Fragment) error {
	e.frags = frags
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, f := range e.frags {
		e.writeNode(&sb, f, 0)
	}
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) writeNode(sb *strings.Builder, f parser.Fragment, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if f.IsToken() {
		sb.WriteString(f.Token.Kind.String())
		sb.WriteString(" ")
		sb.WriteString(f.Token.Literal)
		if f.Token.Synthetic {
			sb.WriteString(" (split)")
		}
	} else {
		sb.WriteString(f.Label.String())
	}
	if e.positions {
		sb.WriteString(" [")
		sb.WriteString(f.Span.Start.String())
		sb.WriteString("-")
		sb.WriteString(f.Span.End.String())
		sb.WriteString("]")
	}
	sb.WriteString("\n")
	for _, child := range f.Children {
		e.writeNode(sb, child, depth+1)
	}
}
