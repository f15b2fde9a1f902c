package format

import (
	"io"

	"github.com/dhamidi/skim/java/parser"
)

// FragmentJSONEncoder writes fragments as an indented JSON array of nodes
// with label, kind, token and children fields.
type FragmentJSONEncoder struct {
	w     io.Writer
	frags []parser.Fragment
	spans bool
}

func NewFragmentJSONEncoder(w io.Writer) *FragmentJSONEncoder {
	return &FragmentJSONEncoder{w: w}
}

// SetSpans controls whether each node carries its source span.
func (e *FragmentJSONEncoder) SetSpans(on bool) {
	e.spans = on
}

func (e *FragmentJSONEncoder) Encode(frags []parser.Fragment) error {
	e.frags = frags
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *FragmentJSONEncoder) MarshalText() ([]byte, error) {
	nodes := make([]any, len(e.frags))
	for i, f := range e.frags {
		nodes[i] = f.JSONValue(e.spans)
	}
	return marshalIndent(nodes)
}
