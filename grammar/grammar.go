// Package grammar holds the EBNF description of the syntax skim accepts
// and checks grammars with golang.org/x/exp/ebnf.
package grammar

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"

	"golang.org/x/exp/ebnf"
)

// Start is the production a whole source file is verified from.
const Start = "CompilationUnit"

//go:embed skim.ebnf
var grammarSource []byte

// Source returns the embedded grammar text.
func Source() []byte {
	return bytes.Clone(grammarSource)
}

// Load parses and verifies the embedded grammar.
func Load() (ebnf.Grammar, error) {
	return Check("skim.ebnf", bytes.NewReader(grammarSource), Start)
}

// Check parses a grammar and, when start is not empty, verifies that every
// production is defined and reachable from start.
func Check(filename string, r io.Reader, start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if start == "" {
		return g, nil
	}
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar from %s: %w", start, err)
	}
	return g, nil
}

// Productions returns the production names of g in sorted order.
func Productions(g ebnf.Grammar) []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Errors splits the error list ebnf reports into its entries.
func Errors(err error) []error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() != reflect.Slice {
			continue
		}
		result := make([]error, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if item, ok := v.Index(i).Interface().(error); ok {
				result = append(result, item)
			}
		}
		return result
	}
	if err == nil {
		return nil
	}
	return []error{err}
}
