package parser

import (
	"fmt"
	"sort"
	"strings"
)

// SyntaxError describes why a top-level rule could not match.
type SyntaxError struct {
	Pos      Position
	Message  string
	Got      Token
	Expected []string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Message
}

// ErrorList collects the diagnostics of a recovering parse.
type ErrorList []*SyntaxError

func (l *ErrorList) add(err *SyntaxError) {
	*l = append(*l, err)
}

func (l ErrorList) Len() int { return len(l) }

func (l ErrorList) Less(i, j int) bool {
	return l[i].Pos.Offset < l[j].Pos.Offset
}

func (l ErrorList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

func (l ErrorList) Sort() {
	sort.Stable(l)
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns nil for an empty list and the list itself otherwise.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// failure remembers the farthest point any rule failed at, with everything
// that would have been accepted there.
type failure struct {
	set      bool
	got      Token
	expected []string
}

func (f *failure) record(got Token, expected string) {
	switch {
	case !f.set || got.Span.Start.Offset > f.got.Span.Start.Offset:
		*f = failure{set: true, got: got, expected: []string{expected}}
	case got.Span.Start.Offset == f.got.Span.Start.Offset:
		for _, e := range f.expected {
			if e == expected {
				return
			}
		}
		f.expected = append(f.expected, expected)
	}
}

func (f *failure) err() *SyntaxError {
	if !f.set {
		return nil
	}
	return &SyntaxError{
		Pos:      f.got.Span.Start,
		Message:  "expected " + joinExpected(f.expected) + ", got " + describe(f.got),
		Got:      f.got,
		Expected: f.expected,
	}
}

func joinExpected(expected []string) string {
	const max = 4
	list := expected
	if len(list) > max {
		list = list[:max]
	}
	switch len(list) {
	case 0:
		return "more input"
	case 1:
		return list[0]
	}
	return strings.Join(list[:len(list)-1], ", ") + " or " + list[len(list)-1]
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOF:
		return "end of input"
	case TokenError:
		return fmt.Sprintf("illegal character %q", tok.Literal)
	}
	return fmt.Sprintf("%q", tok.Literal)
}

func quoted(kind TokenKind) string {
	switch kind {
	case TokenIdent:
		return "identifier"
	case TokenEOF:
		return "end of input"
	}
	return "'" + kind.String() + "'"
}
