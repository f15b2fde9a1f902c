package outline

import (
	"strings"

	"github.com/dhamidi/skim/java/parser"
)

// Text renders fragments back to canonical source text: tokens are joined
// without spaces except between words, after commas and around the
// keywords of bounds, so Map < String,Integer > becomes Map<String, Integer>.
func Text(frags ...parser.Fragment) string {
	var tokens []parser.Token
	for _, f := range frags {
		tokens = append(tokens, f.Tokens()...)
	}
	return renderTokens(tokens)
}

func renderTokens(tokens []parser.Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 && needsSpace(tokens[i-1], tok) {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Literal)
	}
	return sb.String()
}

func needsSpace(prev, next parser.Token) bool {
	switch {
	case prev.Kind == parser.TokenComma:
		return true
	case spaced(prev.Kind) || spaced(next.Kind):
		return true
	case next.Kind == parser.TokenAt:
		return prev.Kind != parser.TokenLParen && prev.Kind != parser.TokenLT
	}
	return isWord(prev) && isWord(next)
}

// spaced are the tokens written with a blank on both sides.
func spaced(k parser.TokenKind) bool {
	switch k {
	case parser.TokenExtends, parser.TokenSuper, parser.TokenBitAnd, parser.TokenAssign,
		parser.TokenArrow, parser.TokenBitOr, parser.TokenColon:
		return true
	}
	return false
}

func isWord(tok parser.Token) bool {
	switch tok.Kind.Category() {
	case parser.CategoryIdentifier, parser.CategoryKeyword, parser.CategoryLiteral:
		return true
	}
	return false
}
