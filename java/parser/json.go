package parser

import (
	"bytes"
	"encoding/json"
)

type jsonFragment struct {
	Label     string          `json:"label"`
	Kind      string          `json:"kind,omitempty"`
	Token     string          `json:"token,omitempty"`
	Synthetic bool            `json:"synthetic,omitempty"`
	Span      *jsonSpan       `json:"span,omitempty"`
	Children  []*jsonFragment `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (f Fragment) MarshalJSON() ([]byte, error) {
	return marshal(f.toJSON(true))
}

func (c *Collector) MarshalJSON() ([]byte, error) {
	out := make([]*jsonFragment, len(c.frags))
	for i, f := range c.frags {
		out[i] = f.toJSON(true)
	}
	return marshal(out)
}

// marshal is json.Marshal without HTML escaping, so '<' and '>' stay
// readable.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// JSONValue returns the JSON shape of f, a tree of plain structs ready for
// an encoder. Spans are left out unless withSpans is set.
func (f Fragment) JSONValue(withSpans bool) any {
	return f.toJSON(withSpans)
}

func (f Fragment) toJSON(withSpans bool) *jsonFragment {
	jf := &jsonFragment{Label: f.Label.String()}
	if f.IsToken() {
		jf.Kind = f.Token.Kind.String()
		jf.Token = f.Token.Literal
		jf.Synthetic = f.Token.Synthetic
	}
	if withSpans && !f.Span.IsZero() {
		jf.Span = &jsonSpan{
			Start: jsonPosition{Offset: f.Span.Start.Offset, Line: f.Span.Start.Line, Column: f.Span.Start.Column},
			End:   jsonPosition{Offset: f.Span.End.Offset, Line: f.Span.End.Line, Column: f.Span.End.Column},
		}
	}
	if len(f.Children) > 0 {
		jf.Children = make([]*jsonFragment, len(f.Children))
		for i, child := range f.Children {
			jf.Children[i] = child.toJSON(withSpans)
		}
	}
	return jf
}
