package outline

import (
	"sort"
	"strings"

	"github.com/dhamidi/skim/java/parser"
)

// javadocFinder matches doc comments to the declarations that follow them.
type javadocFinder struct {
	comments []parser.Token // only block comments starting with /**, by start offset
	used     map[int]bool
}

func newJavadocFinder(comments []parser.Token) *javadocFinder {
	var javadocs []parser.Token
	for _, c := range comments {
		if c.Kind == parser.TokenComment && strings.HasPrefix(c.Literal, "/**") && c.Literal != "/**/" {
			javadocs = append(javadocs, c)
		}
	}
	sort.Slice(javadocs, func(i, j int) bool {
		return javadocs[i].Span.Start.Offset < javadocs[j].Span.Start.Offset
	})
	return &javadocFinder{comments: javadocs, used: make(map[int]bool)}
}

// find returns the unused doc comment closest before span, or "". A comment
// further back than the previous declaration does not match, and each
// comment matches at most once.
func (jf *javadocFinder) find(span, prev parser.Span) string {
	if jf == nil || len(jf.comments) == 0 {
		return ""
	}
	best := -1
	for i, c := range jf.comments {
		if c.Span.End.Offset > span.Start.Offset {
			break
		}
		if jf.used[i] || c.Span.Start.Offset < prev.End.Offset {
			continue
		}
		best = i
	}
	if best < 0 {
		return ""
	}
	jf.used[best] = true
	return jf.comments[best].Literal
}

// JavadocText strips the comment markers and leading asterisks from a doc
// comment and returns its text.
func JavadocText(comment string) string {
	comment = strings.TrimPrefix(comment, "/**")
	comment = strings.TrimSuffix(comment, "*/")
	var lines []string
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		lines = append(lines, strings.TrimPrefix(line, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
