package parser

// Expressions are parsed for structure only: operands and operators
// alternate, without precedence.

var binaryOperators = map[TokenKind]bool{
	TokenEQ: true, TokenNE: true, TokenLT: true, TokenLE: true,
	TokenGT: true, TokenGE: true, TokenAnd: true, TokenOr: true,
	TokenBitAnd: true, TokenBitOr: true, TokenBitXor: true,
	TokenShl: true, TokenShr: true, TokenUShr: true,
	TokenPlus: true, TokenMinus: true, TokenStar: true,
	TokenSlash: true, TokenPercent: true,

	TokenAssign: true, TokenPlusAssign: true, TokenMinusAssign: true,
	TokenStarAssign: true, TokenSlashAssign: true, TokenPercentAssign: true,
	TokenAndAssign: true, TokenOrAssign: true, TokenXorAssign: true,
	TokenShlAssign: true, TokenShrAssign: true, TokenUShrAssign: true,
}

func isLiteral(k TokenKind) bool {
	return k >= TokenIntLiteral && k <= TokenNull
}

func (p *Parser) expression() bool {
	return p.nested(func() bool {
		if !p.unary() {
			return false
		}
		for {
			tok := p.peek()
			switch {
			case tok.Kind == TokenInstanceof:
				p.take()
				if !p.pattern() && !p.typeSpec() {
					return false
				}
			case tok.Kind == TokenQuestion:
				p.take()
				if !p.expression() || !p.expect(TokenColon) || !p.unary() {
					return false
				}
			case binaryOperators[tok.Kind]:
				p.take()
				if !p.unary() {
					return false
				}
			default:
				return true
			}
		}
	})
}

// withLambdas runs rule with lambdas allowed again, as inside parentheses
// nested in a case label.
func (p *Parser) withLambdas(rule func() bool) bool {
	saved := p.noLambda
	p.noLambda = false
	defer func() { p.noLambda = saved }()
	return rule()
}

// withoutLambdas runs rule with 'x ->' read as the end of a case label.
func (p *Parser) withoutLambdas(rule func() bool) bool {
	saved := p.noLambda
	p.noLambda = true
	defer func() { p.noLambda = saved }()
	return rule()
}

func (p *Parser) unary() bool {
	return p.nested(func() bool {
		switch p.peek().Kind {
		case TokenPlus, TokenMinus, TokenIncrement, TokenDecrement, TokenNot, TokenBitNot:
			p.take()
			return p.unary()
		case TokenIdent:
			if !p.noLambda && p.checkN(1, TokenArrow) {
				return p.lambda()
			}
		case TokenLParen:
			if !p.noLambda && p.lambda() {
				return true
			}
			if p.cast() {
				return true
			}
			return p.parenthesized() && p.postfix()
		}
		return p.primary() && p.postfix()
	})
}

// lambda parses (Ident | LambdaParameters) '->' (Block | Expression).
func (p *Parser) lambda() bool {
	return p.group(LabelLambda, func() bool {
		if p.check(TokenIdent) {
			p.take()
		} else if !p.lambdaParameters() {
			return false
		}
		if !p.expect(TokenArrow) {
			return false
		}
		if p.check(TokenLBrace) {
			return p.withLambdas(p.block)
		}
		return p.withLambdas(p.expression)
	})
}

func (p *Parser) lambdaParameters() bool {
	return p.group(LabelParameters, func() bool {
		if !p.expect(TokenLParen) {
			return false
		}
		for !p.check(TokenRParen) {
			if p.check(TokenIdent) && (p.checkN(1, TokenComma) || p.checkN(1, TokenRParen)) {
				p.take()
			} else if !p.parameter() {
				return false
			}
			if !p.accept(TokenComma) {
				break
			}
		}
		return p.expect(TokenRParen)
	})
}

// cast parses '(' TypeSpec {'&' TypeSpec} ')' Unary. It only commits
// when the token after ')' can start an operand, so '(a) + b' stays a
// parenthesized expression.
func (p *Parser) cast() bool {
	primitive := isPrimitive(p.peekN(1).Kind) && p.checkN(2, TokenRParen)
	return p.group(LabelCast, func() bool {
		if !p.expect(TokenLParen) || !p.typeSpec() {
			return false
		}
		for p.accept(TokenBitAnd) {
			if !p.typeSpec() {
				return false
			}
		}
		if !p.expect(TokenRParen) {
			return false
		}
		if !p.startsCastOperand(primitive) {
			return p.expected("cast operand")
		}
		return p.unary()
	})
}

func (p *Parser) startsCastOperand(primitive bool) bool {
	k := p.peek().Kind
	switch {
	case isLiteral(k), isPrimitive(k):
		return true
	}
	switch k {
	case TokenIdent, TokenThis, TokenSuper, TokenNew, TokenSwitch,
		TokenLParen, TokenNot, TokenBitNot, TokenVoid:
		return true
	case TokenPlus, TokenMinus, TokenIncrement, TokenDecrement:
		return primitive
	}
	return false
}

func (p *Parser) parenthesized() bool {
	if !p.expect(TokenLParen) {
		return false
	}
	return p.withLambdas(p.expression) && p.expect(TokenRParen)
}

func (p *Parser) primary() bool {
	k := p.peek().Kind
	switch {
	case isLiteral(k):
		p.take()
		return true
	case isPrimitive(k) || k == TokenVoid:
		// int.class, int[]::new
		p.take()
		return p.dims()
	}
	switch k {
	case TokenThis, TokenSuper:
		p.take()
		return true
	case TokenNew:
		return p.creation()
	case TokenSwitch:
		return p.group(LabelSwitchExpr, p.switchRest)
	case TokenLParen:
		return p.parenthesized()
	case TokenIdent:
		p.take()
		if p.check(TokenLT) {
			p.typeArgumentsAt(ctxExpression, false)
		}
		return true
	}
	return p.expected("expression")
}

// postfix parses selectors, calls, indexing, increments and method
// references following a primary.
func (p *Parser) postfix() bool {
	for {
		switch p.peek().Kind {
		case TokenDot:
			if !p.selector() {
				return false
			}
		case TokenLParen:
			if !p.arguments() {
				return false
			}
		case TokenLBracket:
			p.take()
			if p.check(TokenRBracket) {
				// String[].class, int[][]::new
				p.take()
				if !p.dims() {
					return false
				}
				continue
			}
			if !p.withLambdas(p.expression) || !p.expect(TokenRBracket) {
				return false
			}
		case TokenIncrement, TokenDecrement:
			p.take()
		case TokenColonColon:
			if !p.methodRef() {
				return false
			}
		default:
			return true
		}
	}
}

func (p *Parser) selector() bool {
	p.take() // '.'
	switch p.peek().Kind {
	case TokenIdent:
		p.take()
		if p.check(TokenLT) {
			p.typeArgumentsAt(ctxExpression, false)
		}
		return true
	case TokenLT:
		// explicit type arguments: this.<T>call()
		if !p.typeArguments(false) {
			return false
		}
		if p.match(TokenSuper, TokenThis) {
			p.take()
			return true
		}
		return p.expectIdent()
	case TokenClass, TokenThis, TokenSuper:
		p.take()
		return true
	case TokenNew:
		return p.creation()
	}
	return p.expected("identifier")
}

func (p *Parser) methodRef() bool {
	return p.group(LabelMethodRef, func() bool {
		p.take() // '::'
		if p.check(TokenLT) && !p.typeArguments(false) {
			return false
		}
		if p.accept(TokenNew) {
			return true
		}
		return p.expectIdent()
	})
}

// arguments parses '(' [Expression {',' Expression}] ')'.
func (p *Parser) arguments() bool {
	return p.group(LabelArguments, func() bool {
		if !p.expect(TokenLParen) {
			return false
		}
		return p.withLambdas(func() bool {
			for !p.check(TokenRParen) {
				if !p.expression() {
					return false
				}
				if !p.accept(TokenComma) {
					break
				}
			}
			return p.expect(TokenRParen)
		})
	})
}

// creation parses instance and array creation after 'new'.
func (p *Parser) creation() bool {
	return p.group(LabelNew, func() bool {
		if !p.expect(TokenNew) {
			return false
		}
		if p.check(TokenLT) && !p.typeArguments(false) {
			return false
		}
		if !p.classType(true) {
			return false
		}
		switch {
		case p.check(TokenLBracket) || p.check(TokenAt):
			return p.arrayDims() && (!p.check(TokenLBrace) || p.arrayInit())
		case p.check(TokenLParen):
			if !p.arguments() {
				return false
			}
			if p.check(TokenLBrace) {
				return p.classBody()
			}
			return true
		}
		return p.expected("'(' or '['")
	})
}

// arrayDims parses the dimensions of an array creation, sized or not.
func (p *Parser) arrayDims() bool {
	seen := false
	for {
		if p.check(TokenAt) {
			if !p.annotations() {
				return false
			}
		}
		if !p.check(TokenLBracket) {
			if !seen {
				return p.expected("'['")
			}
			return true
		}
		seen = true
		p.take()
		if p.accept(TokenRBracket) {
			continue
		}
		if !p.withLambdas(p.expression) || !p.expect(TokenRBracket) {
			return false
		}
	}
}

// arrayInit parses '{' [VariableInit {',' VariableInit}] [','] '}'.
func (p *Parser) arrayInit() bool {
	return p.group(LabelArrayInit, func() bool {
		if !p.expect(TokenLBrace) {
			return false
		}
		return p.withLambdas(func() bool {
			for !p.check(TokenRBrace) {
				if !p.variableInit() {
					return false
				}
				if !p.accept(TokenComma) {
					break
				}
			}
			return p.expect(TokenRBrace)
		})
	})
}

func (p *Parser) variableInit() bool {
	if p.check(TokenLBrace) {
		return p.arrayInit()
	}
	return p.expression()
}

// pattern parses a type pattern 'T name' or a record pattern 'R(P, Q)'.
func (p *Parser) pattern() bool {
	return p.group(LabelPattern, func() bool {
		if !p.variableModifiers() || !p.typeSpec() {
			return false
		}
		if !p.accept(TokenLParen) {
			return p.expectIdent()
		}
		for !p.check(TokenRParen) {
			if !p.pattern() {
				return false
			}
			if !p.accept(TokenComma) {
				break
			}
		}
		if !p.expect(TokenRParen) {
			return false
		}
		p.accept(TokenIdent)
		return true
	})
}

// switchRest parses 'switch' '(' Expression ')' SwitchBlock, shared by
// switch statements and switch expressions.
func (p *Parser) switchRest() bool {
	if !p.expect(TokenSwitch) || !p.parenthesized() || !p.expect(TokenLBrace) {
		return false
	}
	for !p.check(TokenRBrace) {
		if p.check(TokenEOF) {
			return p.unterminated()
		}
		if p.switchCase() {
			continue
		}
		if !p.recoverIn() {
			return false
		}
	}
	p.take()
	return true
}

func (p *Parser) switchCase() bool {
	return p.group(LabelSwitchCase, func() bool {
		if !p.switchLabel() {
			return false
		}
		if p.accept(TokenArrow) {
			switch {
			case p.check(TokenLBrace):
				return p.block()
			case p.check(TokenThrow):
				return p.statement()
			}
			return p.group(LabelExprStmt, func() bool {
				return p.expression() && p.expect(TokenSemicolon)
			})
		}
		if !p.expect(TokenColon) {
			return false
		}
		for !p.match(TokenCase, TokenDefault, TokenRBrace, TokenEOF) {
			if p.statement() {
				continue
			}
			if !p.recoverIn() {
				return false
			}
		}
		return true
	})
}

// switchLabel parses 'default' or 'case' CaseItem {',' CaseItem} ['when' Expression].
func (p *Parser) switchLabel() bool {
	if p.accept(TokenDefault) {
		return true
	}
	if !p.expect(TokenCase) {
		p.expected("'default'")
		return false
	}
	return p.withoutLambdas(func() bool {
		for {
			switch {
			case p.accept(TokenDefault):
			case p.pattern():
			case !p.expression():
				return false
			}
			if !p.accept(TokenComma) {
				break
			}
		}
		if p.isWord("when") {
			p.take()
			return p.expression()
		}
		return true
	})
}
