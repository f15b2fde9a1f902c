package parser

func isPrimitive(k TokenKind) bool {
	switch k {
	case TokenBoolean, TokenByte, TokenChar, TokenShort,
		TokenInt, TokenLong, TokenFloat, TokenDouble:
		return true
	}
	return false
}

// typeSpec parses a type reference with array suffixes:
//
//	{Annotation} (primitive | Ident [TypeArgs] {'.' {Annotation} Ident [TypeArgs]}) {Dims}
func (p *Parser) typeSpec() bool {
	return p.group(LabelTypeSpec, func() bool {
		return p.baseType(false) && p.dims()
	})
}

// classType is a type reference without array suffixes, as written after
// 'new'. With diamond set, '<>' is accepted.
func (p *Parser) classType(diamond bool) bool {
	return p.group(LabelTypeSpec, func() bool {
		return p.baseType(diamond)
	})
}

func (p *Parser) baseType(diamond bool) bool {
	if !p.annotations() {
		return false
	}
	if isPrimitive(p.peek().Kind) {
		p.take()
		return true
	}
	if !p.expectIdent() {
		return false
	}
	for {
		if p.check(TokenLT) && !p.typeArgumentsAt(ctxType, diamond) {
			return false
		}
		if !p.check(TokenDot) {
			return true
		}
		next := p.peekN(1).Kind
		if next != TokenIdent && next != TokenAt {
			// Foo.class, Foo.this and friends belong to the expression.
			return true
		}
		p.take()
		if !p.annotations() || !p.expectIdent() {
			return false
		}
	}
}

// typeArguments parses '<' TypeArg {',' TypeArg} '>'. The list fails as a
// whole when no closer follows, which leaves depth untouched.
func (p *Parser) typeArguments(diamond bool) bool {
	return p.group(LabelTypeArguments, func() bool {
		if !p.openAngle() {
			return false
		}
		if isCloser(p.peek()) {
			if !diamond {
				return p.expected("type argument")
			}
			return p.closeAngle()
		}
		for {
			if p.overBudget() {
				return p.expected("shorter type argument list")
			}
			if !p.typeArgument() {
				return false
			}
			if !p.accept(TokenComma) {
				break
			}
		}
		if !isCloser(p.peek()) {
			return p.expected("'>' (unclosed type argument list)")
		}
		return p.closeAngle()
	})
}

func (p *Parser) typeArgument() bool {
	if p.check(TokenQuestion) || p.check(TokenAt) {
		if p.wildcard() {
			return true
		}
		if p.check(TokenQuestion) {
			return false
		}
	}
	return p.typeSpec()
}

// wildcard parses {Annotation} '?' [('extends' | 'super') TypeSpec].
func (p *Parser) wildcard() bool {
	return p.group(LabelWildcard, func() bool {
		if !p.annotations() || !p.expect(TokenQuestion) {
			return false
		}
		if !p.match(TokenExtends, TokenSuper) {
			return true
		}
		return p.group(LabelWildcardBound, func() bool {
			p.take()
			return p.typeSpec()
		})
	})
}

// dims parses array suffixes, each optionally annotated.
func (p *Parser) dims() bool {
	for {
		switch {
		case p.check(TokenLBracket) && p.checkN(1, TokenRBracket):
			p.take()
			p.take()
		case p.check(TokenAt):
			if !p.attempt(func() bool {
				return p.annotations() && p.expect(TokenLBracket) && p.expect(TokenRBracket)
			}) {
				return true
			}
		default:
			return true
		}
	}
}

// typeList parses TypeSpec {',' TypeSpec}.
func (p *Parser) typeList() bool {
	for {
		if !p.typeSpec() {
			return false
		}
		if !p.accept(TokenComma) {
			return true
		}
	}
}

// qualifiedName parses Ident {'.' Ident}.
func (p *Parser) qualifiedName() bool {
	if !p.expectIdent() {
		return false
	}
	for p.check(TokenDot) && p.checkN(1, TokenIdent) {
		p.take()
		p.take()
	}
	return true
}

// typeParameters parses '<' TypeParameter {',' TypeParameter} '>'.
func (p *Parser) typeParameters() bool {
	return p.group(LabelTypeParameters, func() bool {
		if !p.openAngle() {
			return false
		}
		for {
			if !p.typeParameter() {
				return false
			}
			if !p.accept(TokenComma) {
				break
			}
		}
		return p.closeAngle()
	})
}

func (p *Parser) typeParameter() bool {
	return p.group(LabelTypeParameter, func() bool {
		if !p.annotations() || !p.expectIdent() {
			return false
		}
		if !p.check(TokenExtends) {
			return true
		}
		return p.group(LabelTypeBound, func() bool {
			p.take()
			for {
				if !p.typeSpec() {
					return false
				}
				if !p.accept(TokenBitAnd) {
					return true
				}
			}
		})
	})
}

// annotations parses zero or more annotations. It fails only when one of
// them is malformed.
func (p *Parser) annotations() bool {
	for p.check(TokenAt) && !p.checkN(1, TokenInterface) {
		if !p.annotation() {
			return false
		}
	}
	return true
}

// annotation parses '@' QualifiedName ['(' [ElementValues] ')'].
func (p *Parser) annotation() bool {
	return p.group(LabelAnnotation, func() bool {
		if !p.expect(TokenAt) || !p.qualifiedName() {
			return false
		}
		if !p.accept(TokenLParen) {
			return true
		}
		for !p.check(TokenRParen) {
			if p.check(TokenIdent) && p.checkN(1, TokenAssign) {
				p.take()
				p.take()
			}
			if !p.elementValue() {
				return false
			}
			if !p.accept(TokenComma) {
				break
			}
		}
		return p.expect(TokenRParen)
	})
}

func (p *Parser) elementValue() bool {
	switch {
	case p.check(TokenAt):
		return p.annotation()
	case p.check(TokenLBrace):
		return p.group(LabelArrayInit, func() bool {
			p.take()
			for !p.check(TokenRBrace) {
				if !p.elementValue() {
					return false
				}
				if !p.accept(TokenComma) {
					break
				}
			}
			return p.expect(TokenRBrace)
		})
	}
	return p.expression()
}
