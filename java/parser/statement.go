package parser

func (p *Parser) statement() bool {
	tok := p.peek()
	switch tok.Kind {
	case TokenLBrace:
		return p.block()
	case TokenSemicolon:
		return p.group(LabelEmptyStmt, func() bool {
			p.take()
			return true
		})
	case TokenIf:
		return p.ifStatement()
	case TokenFor:
		return p.forStatement()
	case TokenWhile:
		return p.group(LabelWhileStmt, func() bool {
			p.take()
			return p.parenthesized() && p.statement()
		})
	case TokenDo:
		return p.group(LabelDoStmt, func() bool {
			p.take()
			return p.statement() && p.expect(TokenWhile) && p.parenthesized() && p.expect(TokenSemicolon)
		})
	case TokenSwitch:
		return p.group(LabelSwitchStmt, p.switchRest)
	case TokenReturn:
		return p.group(LabelReturnStmt, p.optionalValue)
	case TokenBreak:
		return p.group(LabelBreakStmt, p.jumpTarget)
	case TokenContinue:
		return p.group(LabelContinueStmt, p.jumpTarget)
	case TokenThrow:
		return p.group(LabelThrowStmt, func() bool {
			p.take()
			return p.expression() && p.expect(TokenSemicolon)
		})
	case TokenTry:
		return p.tryStatement()
	case TokenSynchronized:
		if p.checkN(1, TokenLParen) {
			return p.group(LabelSynchronizedStmt, func() bool {
				p.take()
				return p.parenthesized() && p.block()
			})
		}
	case TokenAssert:
		return p.group(LabelAssertStmt, func() bool {
			p.take()
			if !p.expression() {
				return false
			}
			if p.accept(TokenColon) && !p.expression() {
				return false
			}
			return p.expect(TokenSemicolon)
		})
	case TokenIdent:
		if p.checkN(1, TokenColon) {
			return p.group(LabelLabeledStmt, func() bool {
				p.take()
				p.take()
				return p.statement()
			})
		}
		if p.startsYield() {
			return p.group(LabelYieldStmt, func() bool {
				p.take()
				return p.expression() && p.expect(TokenSemicolon)
			})
		}
	}
	if p.mayStartLocalType() && p.group(LabelLocalTypeDecl, p.typeDef) {
		return true
	}
	if p.mayStartLocalVar() && p.localVarDecl() {
		return true
	}
	return p.group(LabelExprStmt, func() bool {
		return p.expression() && p.expect(TokenSemicolon)
	})
}

// startsYield tells 'yield value;' apart from uses of a variable named yield.
func (p *Parser) startsYield() bool {
	if !p.isWord("yield") {
		return false
	}
	next := p.peekN(1).Kind
	switch next {
	case TokenSemicolon, TokenDot, TokenLBracket, TokenColonColon, TokenEOF:
		return false
	}
	return !binaryOperators[next] || next == TokenPlus || next == TokenMinus
}

func (p *Parser) mayStartLocalType() bool {
	switch p.peek().Kind {
	case TokenClass, TokenInterface, TokenEnum, TokenAbstract, TokenFinal,
		TokenStatic, TokenStrictfp, TokenNonSealed, TokenAt:
		return true
	case TokenIdent:
		return (p.isWord("record") || p.isWord("sealed")) && p.checkN(1, TokenIdent)
	}
	return false
}

func (p *Parser) mayStartLocalVar() bool {
	k := p.peek().Kind
	return k == TokenIdent || k == TokenFinal || k == TokenAt || isPrimitive(k)
}

// localVarDecl parses VariableModifiers TypeSpec Declarator {',' Declarator} ';'.
func (p *Parser) localVarDecl() bool {
	return p.group(LabelLocalVarDecl, func() bool {
		return p.localVarHead() && p.declarators() && p.expect(TokenSemicolon)
	})
}

func (p *Parser) localVarHead() bool {
	return p.variableModifiers() && p.typeSpec()
}

// variableModifiers parses the 'final' and annotations allowed on locals
// and parameters.
func (p *Parser) variableModifiers() bool {
	f := p.begin()
	for {
		switch {
		case p.check(TokenFinal):
			p.take()
		case p.check(TokenAt):
			if !p.annotation() {
				return p.abandon(f)
			}
		default:
			return p.commitOptional(f, LabelModifiers)
		}
	}
}

func (p *Parser) declarators() bool {
	for {
		if !p.declarator() {
			return false
		}
		if !p.accept(TokenComma) {
			return true
		}
	}
}

// declarator parses Ident Dims ['=' VariableInit].
func (p *Parser) declarator() bool {
	return p.group(LabelDeclarator, func() bool {
		if !p.expectIdent() || !p.dims() {
			return false
		}
		if p.accept(TokenAssign) {
			return p.variableInit()
		}
		return true
	})
}

func (p *Parser) block() bool {
	return p.group(LabelBlock, func() bool {
		if !p.expect(TokenLBrace) {
			return false
		}
		for !p.check(TokenRBrace) {
			if p.check(TokenEOF) {
				return p.unterminated()
			}
			if p.statement() {
				continue
			}
			if !p.recoverIn() {
				return false
			}
		}
		p.take()
		return true
	})
}

func (p *Parser) ifStatement() bool {
	return p.group(LabelIfStmt, func() bool {
		p.take()
		if !p.parenthesized() || !p.statement() {
			return false
		}
		if p.accept(TokenElse) {
			return p.statement()
		}
		return true
	})
}

func (p *Parser) forStatement() bool {
	if p.group(LabelForEachStmt, p.forEachRest) {
		return true
	}
	return p.group(LabelForStmt, p.forRest)
}

// forEachRest parses 'for' '(' VariableModifiers TypeSpec Ident ':' Expression ')' Statement.
func (p *Parser) forEachRest() bool {
	return p.expect(TokenFor) && p.expect(TokenLParen) &&
		p.localVarHead() && p.expectIdent() && p.dims() && p.expect(TokenColon) &&
		p.expression() && p.expect(TokenRParen) && p.statement()
}

// forRest parses 'for' '(' [Init] ';' [Expression] ';' [Update] ')' Statement.
func (p *Parser) forRest() bool {
	if !p.expect(TokenFor) || !p.expect(TokenLParen) {
		return false
	}
	if !p.check(TokenSemicolon) {
		init := p.mayStartLocalVar() && p.group(LabelLocalVarDecl, func() bool {
			return p.localVarHead() && p.declarators()
		})
		if !init && !p.expressionList() {
			return false
		}
	}
	if !p.expect(TokenSemicolon) {
		return false
	}
	if !p.check(TokenSemicolon) && !p.expression() {
		return false
	}
	if !p.expect(TokenSemicolon) {
		return false
	}
	if !p.check(TokenRParen) && !p.expressionList() {
		return false
	}
	return p.expect(TokenRParen) && p.statement()
}

func (p *Parser) expressionList() bool {
	for {
		if !p.expression() {
			return false
		}
		if !p.accept(TokenComma) {
			return true
		}
	}
}

// optionalValue parses a keyword followed by an optional expression and ';'.
func (p *Parser) optionalValue() bool {
	p.take()
	if p.accept(TokenSemicolon) {
		return true
	}
	return p.expression() && p.expect(TokenSemicolon)
}

func (p *Parser) jumpTarget() bool {
	p.take()
	p.accept(TokenIdent)
	return p.expect(TokenSemicolon)
}

// tryStatement parses 'try' [Resources] Block {Catch} [Finally]. Without
// resources at least one catch or finally is required.
func (p *Parser) tryStatement() bool {
	return p.group(LabelTryStmt, func() bool {
		p.take()
		resources := p.check(TokenLParen)
		if resources && !p.resources() {
			return false
		}
		if !p.block() {
			return false
		}
		handlers := 0
		for p.check(TokenCatch) {
			if !p.catchClause() {
				return false
			}
			handlers++
		}
		if p.check(TokenFinally) {
			if !p.group(LabelFinally, func() bool {
				p.take()
				return p.block()
			}) {
				return false
			}
			handlers++
		}
		if handlers == 0 && !resources {
			p.expected("'catch'")
			return p.expected("'finally'")
		}
		return true
	})
}

func (p *Parser) resources() bool {
	return p.group(LabelResources, func() bool {
		p.take()
		for !p.check(TokenRParen) {
			if !p.resource() {
				return false
			}
			if !p.accept(TokenSemicolon) {
				break
			}
		}
		return p.expect(TokenRParen)
	})
}

// resource is a declaration 'T name = init' or an effectively final
// variable reference.
func (p *Parser) resource() bool {
	if p.group(LabelLocalVarDecl, func() bool {
		return p.localVarHead() && p.expectIdent() && p.expect(TokenAssign) && p.expression()
	}) {
		return true
	}
	return p.expression()
}

func (p *Parser) catchClause() bool {
	return p.group(LabelCatch, func() bool {
		p.take()
		if !p.expect(TokenLParen) || !p.variableModifiers() {
			return false
		}
		for {
			if !p.typeSpec() {
				return false
			}
			if !p.accept(TokenBitOr) {
				break
			}
		}
		return p.expectIdent() && p.expect(TokenRParen) && p.block()
	})
}
