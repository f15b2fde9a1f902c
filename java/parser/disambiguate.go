package parser

// parseContext tells the '<' classifier where the parser stands.
type parseContext int

const (
	// ctxType is any position where only a type can appear.
	ctxType parseContext = iota
	// ctxExpression is a name inside an expression, where '<' is
	// usually a comparison.
	ctxExpression
)

// closerRest maps each token kind that starts with '>' to the kind of
// what is left once one '>' has been taken off.
var closerRest = map[TokenKind]TokenKind{
	TokenShr:        TokenGT,
	TokenUShr:       TokenShr,
	TokenGE:         TokenAssign,
	TokenShrAssign:  TokenGE,
	TokenUShrAssign: TokenShrAssign,
}

// isCloser reports whether tok can supply a closing '>'.
func isCloser(tok Token) bool {
	if tok.Kind == TokenGT {
		return true
	}
	_, ok := closerRest[tok.Kind]
	return ok
}

// splitCloser cuts the first '>' off a compound closer. Both halves are
// synthetic and carry exact positions.
func splitCloser(tok Token) (gt, rest Token) {
	mid := tok.Span.Start.advanced(1)
	gt = Token{
		Kind:      TokenGT,
		Literal:   ">",
		Span:      Span{Start: tok.Span.Start, End: mid},
		Synthetic: true,
	}
	rest = Token{
		Kind:      closerRest[tok.Kind],
		Literal:   tok.Literal[1:],
		Span:      Span{Start: mid, End: tok.Span.End},
		Synthetic: true,
	}
	return gt, rest
}

// openAngle consumes the '<' of a type-argument or type-parameter list.
func (p *Parser) openAngle() bool {
	if !p.check(TokenLT) {
		return p.expected("'<'")
	}
	if p.depth >= p.maxGenericDepth {
		return p.expected("less deeply nested type arguments")
	}
	p.take()
	p.depth++
	return true
}

// closeAngle consumes one logical '>' closing the innermost open list.
// A compound token such as '>>' is split: a synthetic '>' is emitted and
// the remainder becomes the current token for the next rule step. When an
// enclosing list then closes on that remainder, the halves are joined
// again, so a '>>' closing two lists stays one token in the output.
func (p *Parser) closeAngle() bool {
	tok := p.peek()
	if !isCloser(tok) {
		return p.expected("'>' closing type argument list")
	}
	closer := tok
	if tok.Kind == TokenGT {
		p.cur.Advance()
	} else {
		var rest Token
		closer, rest = splitCloser(tok)
		p.cur.inject(rest)
	}
	if !tok.Synthetic || !p.rejoin(closer, tok.Kind == TokenGT) {
		p.emit(closer)
	}
	if p.depth > 0 {
		p.depth--
	}
	return true
}

// closerKinds names a run of '>' characters by the token the lexer would
// have produced for it.
var closerKinds = map[string]TokenKind{
	">":   TokenGT,
	">>":  TokenShr,
	">>>": TokenUShr,
}

// rejoin appends closer to the split '>' emitted just before it, when that
// token ends exactly where closer starts. complete reports that nothing of
// the original compound token is left over, which makes the joined token
// a plain lexer token again.
func (p *Parser) rejoin(closer Token, complete bool) bool {
	last := lastToken(p.out.frags)
	if last == nil || !last.Token.Synthetic || last.Token.Span.End != closer.Span.Start {
		return false
	}
	kind, ok := closerKinds[last.Token.Literal+closer.Literal]
	if !ok {
		return false
	}
	joined := last.Token
	joined.Kind = kind
	joined.Literal += closer.Literal
	joined.Span.End = closer.Span.End
	joined.Synthetic = !complete
	extendLast(p.out.frags, joined)
	return true
}

// lastToken finds the last token fragment under frags, skipping empty groups.
func lastToken(frags []Fragment) *Fragment {
	for i := len(frags) - 1; i >= 0; i-- {
		f := &frags[i]
		if f.IsToken() {
			return f
		}
		if tok := lastToken(f.Children); tok != nil {
			return tok
		}
	}
	return nil
}

// extendLast replaces the last token under frags with tok and stretches
// the spans of the groups on the way down to cover it.
func extendLast(frags []Fragment, tok Token) bool {
	for i := len(frags) - 1; i >= 0; i-- {
		f := &frags[i]
		if f.IsToken() {
			*f = tokenFragment(tok)
			return true
		}
		if extendLast(f.Children, tok) {
			f.Span.End = tok.Span.End
			return true
		}
	}
	return false
}

// overBudget reports whether a speculative parse ran past its token budget.
func (p *Parser) overBudget() bool {
	return p.budget > 0 && p.cur.Index() > p.budget
}

// typeArgumentsAt parses type arguments at a '<' in the given context.
// In type context the '<' is committed to. In expression context the list
// is parsed speculatively within the lookahead budget; it is kept only
// when it closes and is followed by '::', otherwise everything is rewound
// and the caller treats '<' as an operator.
func (p *Parser) typeArgumentsAt(ctx parseContext, diamond bool) bool {
	if ctx == ctxType {
		return p.typeArguments(diamond)
	}
	if !p.startsTypeArguments() {
		return false
	}
	saved := p.budget
	if saved == 0 {
		p.budget = p.cur.Index() + p.speculationLimit
	}
	ok := p.attempt(func() bool {
		return p.typeArguments(false) && p.check(TokenColonColon)
	})
	p.budget = saved
	return ok
}

// startsTypeArguments rejects a '<' whose next token cannot begin a type
// argument, so the common comparison 'i < 10' costs no speculation.
func (p *Parser) startsTypeArguments() bool {
	if !p.check(TokenLT) {
		return false
	}
	next := p.peekN(1)
	switch next.Kind {
	case TokenIdent, TokenQuestion, TokenAt:
		return true
	}
	return isPrimitive(next.Kind)
}
