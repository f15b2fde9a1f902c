package format

import (
	"bytes"
	"encoding"
	"encoding/json"

	"github.com/dhamidi/skim/java/outline"
	"github.com/dhamidi/skim/java/parser"
)

// FragmentEncoder writes the fragments of a parse.
type FragmentEncoder interface {
	encoding.TextMarshaler
	Encode(frags []parser.Fragment) error
}

// OutlineEncoder writes the structural outline of a file.
type OutlineEncoder interface {
	encoding.TextMarshaler
	Encode(file *outline.File) error
}

// marshalIndent is json.MarshalIndent without HTML escaping, so type
// arguments print as written.
func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
