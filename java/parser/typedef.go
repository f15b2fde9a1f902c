package parser

func isModifierKind(k TokenKind) bool {
	switch k {
	case TokenPublic, TokenProtected, TokenPrivate, TokenStatic, TokenAbstract,
		TokenFinal, TokenNative, TokenSynchronized, TokenTransient, TokenVolatile,
		TokenStrictfp, TokenNonSealed:
		return true
	}
	return false
}

// modifiers parses annotations and modifier keywords in any order. When
// nothing matches no fragment is produced. It fails only on a malformed
// annotation.
func (p *Parser) modifiers() bool {
	f := p.begin()
	for {
		tok := p.peek()
		switch {
		case isModifierKind(tok.Kind):
			p.take()
		case tok.Kind == TokenDefault && !p.checkN(1, TokenColon) && !p.checkN(1, TokenArrow):
			p.take()
		case tok.Kind == TokenAt && !p.checkN(1, TokenInterface):
			if !p.annotation() {
				return p.abandon(f)
			}
		case p.isWord("sealed") && p.sealedFollows():
			p.take()
		default:
			return p.commitOptional(f, LabelModifiers)
		}
	}
}

// sealedFollows reports whether the identifier 'sealed' at the cursor is
// used as the modifier.
func (p *Parser) sealedFollows() bool {
	next := p.peekN(1)
	switch next.Kind {
	case TokenClass, TokenInterface, TokenAt:
		return true
	case TokenIdent:
		return next.Literal == "record"
	}
	return isModifierKind(next.Kind)
}

// startsTypeDefKind reports whether the cursor stands at the keyword that
// introduces a type declaration.
func (p *Parser) startsTypeDefKind() bool {
	switch p.peek().Kind {
	case TokenClass, TokenInterface, TokenEnum:
		return true
	case TokenAt:
		return p.checkN(1, TokenInterface)
	case TokenIdent:
		return p.isWord("record") && p.checkN(1, TokenIdent) &&
			(p.checkN(2, TokenLParen) || p.checkN(2, TokenLT))
	}
	return false
}

// typeDef parses Modifiers TypeDefRest.
func (p *Parser) typeDef() bool {
	return p.group(LabelTypeDef, func() bool {
		return p.modifiers() && p.typeDefRest()
	})
}

func (p *Parser) typeDefRest() bool {
	switch {
	case p.check(TokenClass):
		p.take()
		return p.expectIdent() && p.optionalTypeParameters() &&
			p.clause(TokenExtends, LabelExtends) &&
			p.clause(TokenImplements, LabelImplements) &&
			p.permits() && p.classBody()
	case p.check(TokenInterface):
		p.take()
		return p.expectIdent() && p.optionalTypeParameters() &&
			p.clause(TokenExtends, LabelExtends) &&
			p.permits() && p.classBody()
	case p.check(TokenAt) && p.checkN(1, TokenInterface):
		p.take()
		p.take()
		return p.expectIdent() && p.classBody()
	case p.check(TokenEnum):
		p.take()
		return p.expectIdent() && p.clause(TokenImplements, LabelImplements) && p.enumBody()
	case p.isWord("record"):
		p.take()
		return p.expectIdent() && p.optionalTypeParameters() && p.recordHeader() &&
			p.clause(TokenImplements, LabelImplements) && p.classBody()
	}
	p.expected("'class'")
	p.expected("'interface'")
	p.expected("'enum'")
	return p.expected("'record'")
}

func (p *Parser) optionalTypeParameters() bool {
	return !p.check(TokenLT) || p.typeParameters()
}

// clause parses an optional 'extends' or 'implements' type list.
func (p *Parser) clause(keyword TokenKind, label Label) bool {
	if !p.check(keyword) {
		return true
	}
	return p.group(label, func() bool {
		p.take()
		return p.typeList()
	})
}

func (p *Parser) permits() bool {
	if !p.isWord("permits") {
		return true
	}
	return p.group(LabelPermits, func() bool {
		p.take()
		return p.typeList()
	})
}

// recordHeader parses '(' [Parameter {',' Parameter}] ')'.
func (p *Parser) recordHeader() bool {
	return p.group(LabelRecordHeader, func() bool {
		if !p.expect(TokenLParen) {
			return false
		}
		for !p.check(TokenRParen) {
			if !p.parameter() {
				return false
			}
			if !p.accept(TokenComma) {
				break
			}
		}
		return p.expect(TokenRParen)
	})
}

// classBody parses '{' {Member} '}'. A lone ';' is an empty member.
func (p *Parser) classBody() bool {
	return p.group(LabelBody, func() bool {
		return p.expect(TokenLBrace) && p.members()
	})
}

// members parses members up to and including the closing '}'.
func (p *Parser) members() bool {
	for !p.check(TokenRBrace) {
		if p.check(TokenEOF) {
			return p.unterminated()
		}
		if p.member() {
			continue
		}
		if !p.recoverIn() {
			return false
		}
	}
	p.take()
	return true
}

// enumBody parses '{' [EnumConstant {',' EnumConstant}] [','] [';' {Member}] '}'.
func (p *Parser) enumBody() bool {
	return p.group(LabelBody, func() bool {
		if !p.expect(TokenLBrace) {
			return false
		}
		for !p.match(TokenSemicolon, TokenRBrace, TokenEOF) {
			if !p.enumConstant() {
				return false
			}
			if !p.accept(TokenComma) {
				break
			}
		}
		if p.accept(TokenSemicolon) {
			return p.members()
		}
		if p.check(TokenEOF) {
			return p.unterminated()
		}
		return p.expect(TokenRBrace)
	})
}

func (p *Parser) enumConstant() bool {
	return p.group(LabelEnumConstant, func() bool {
		if !p.annotations() || !p.expectIdent() {
			return false
		}
		if p.check(TokenLParen) && !p.arguments() {
			return false
		}
		if p.check(TokenLBrace) {
			return p.classBody()
		}
		return true
	})
}

func (p *Parser) member() bool {
	switch {
	case p.check(TokenSemicolon):
		p.take()
		return true
	case p.check(TokenLBrace), p.check(TokenStatic) && p.checkN(1, TokenLBrace):
		return p.group(LabelInitializer, func() bool {
			p.accept(TokenStatic)
			return p.block()
		})
	}
	f := p.begin()
	if p.tooDeep() || !p.modifiers() {
		return p.abandon(f)
	}
	label, ok := p.memberRest()
	if !ok {
		return p.abandon(f)
	}
	return p.commit(f, label)
}

// memberRest parses what follows a member's modifiers and reports which
// kind of member it was.
func (p *Parser) memberRest() (Label, bool) {
	if p.startsTypeDefKind() {
		return LabelTypeDef, p.typeDefRest()
	}
	generic := p.check(TokenLT)
	if generic && !p.typeParameters() {
		return LabelMethod, false
	}
	if p.check(TokenIdent) {
		switch {
		case p.checkN(1, TokenLParen):
			p.take()
			return LabelConstructor, p.parameters() && p.throws() && p.block()
		case p.checkN(1, TokenLBrace) && !generic:
			// compact canonical constructor of a record
			p.take()
			return LabelConstructor, p.block()
		}
	}
	if !p.accept(TokenVoid) && !p.typeSpec() {
		return LabelMethod, false
	}
	if generic || (p.check(TokenIdent) && p.checkN(1, TokenLParen)) {
		return LabelMethod, p.methodRest()
	}
	return LabelField, p.declarators() && p.expect(TokenSemicolon)
}

// methodRest parses Ident Parameters Dims [Throws] ['default' ElementValue] (Block | ';').
func (p *Parser) methodRest() bool {
	if !p.expectIdent() || !p.parameters() || !p.dims() || !p.throws() {
		return false
	}
	if p.accept(TokenDefault) && !p.elementValue() {
		return false
	}
	if p.accept(TokenSemicolon) {
		return true
	}
	if !p.check(TokenLBrace) {
		p.expected("';'")
	}
	return p.block()
}

func (p *Parser) parameters() bool {
	return p.group(LabelParameters, func() bool {
		if !p.expect(TokenLParen) {
			return false
		}
		for !p.check(TokenRParen) {
			if !p.parameter() {
				return false
			}
			if !p.accept(TokenComma) {
				break
			}
		}
		return p.expect(TokenRParen)
	})
}

// parameter parses VariableModifiers TypeSpec [Annotations '...'] (Ident Dims | 'this').
func (p *Parser) parameter() bool {
	return p.group(LabelParameter, func() bool {
		if !p.variableModifiers() || !p.typeSpec() {
			return false
		}
		if p.check(TokenAt) || p.check(TokenEllipsis) {
			if !p.annotations() || !p.expect(TokenEllipsis) {
				return false
			}
		}
		if p.accept(TokenThis) {
			return true
		}
		return p.expectIdent() && p.dims()
	})
}

func (p *Parser) throws() bool {
	if !p.check(TokenThrows) {
		return true
	}
	return p.group(LabelThrows, func() bool {
		p.take()
		return p.typeList()
	})
}

// compilationUnit parses [Package] {Import} {TypeDef | ';'} to end of input.
func (p *Parser) compilationUnit() bool {
	if p.check(TokenPackage) || p.check(TokenAt) {
		if !p.packageDecl() && p.check(TokenPackage) {
			p.recoverIn()
		}
	}
	for p.check(TokenImport) {
		if !p.importDecl() {
			p.recoverIn()
		}
	}
	for !p.check(TokenEOF) {
		if p.accept(TokenSemicolon) || p.typeDef() || p.startsModule() && p.moduleDecl() {
			continue
		}
		p.recoverIn()
	}
	return true
}

func (p *Parser) startsModule() bool {
	n := 0
	for p.checkN(n, TokenAt) || p.isWordN(n, "open") {
		if p.checkN(n, TokenAt) {
			// skip a marker or single-name annotation
			n += 2
			for p.checkN(n, TokenDot) {
				n += 2
			}
			continue
		}
		n++
	}
	return p.isWordN(n, "module") && p.checkN(n+1, TokenIdent)
}

// moduleDecl parses {Annotation} ['open'] 'module' QualifiedName '{' {Directive} '}'.
// Directives are kept as flat token runs up to their ';'.
func (p *Parser) moduleDecl() bool {
	return p.group(LabelModule, func() bool {
		if !p.annotations() {
			return false
		}
		if p.isWord("open") {
			p.take()
		}
		if !p.expectWord("module") || !p.qualifiedName() || !p.expect(TokenLBrace) {
			return false
		}
		for !p.check(TokenRBrace) {
			if p.check(TokenEOF) {
				return p.unterminated()
			}
			if !p.group(LabelDirective, p.directive) && !p.recoverIn() {
				return false
			}
		}
		p.take()
		return true
	})
}

func (p *Parser) directive() bool {
	if !p.expectIdent() {
		return false
	}
	for !p.match(TokenSemicolon, TokenRBrace, TokenEOF) {
		p.take()
	}
	return p.expect(TokenSemicolon)
}

func (p *Parser) packageDecl() bool {
	return p.group(LabelPackage, func() bool {
		return p.annotations() && p.expect(TokenPackage) && p.qualifiedName() && p.expect(TokenSemicolon)
	})
}

// importDecl parses 'import' ['static' | 'module'] QualifiedName ['.' '*'] ';'.
func (p *Parser) importDecl() bool {
	return p.group(LabelImport, func() bool {
		p.take()
		if !p.accept(TokenStatic) && p.isWord("module") && p.checkN(1, TokenIdent) {
			p.take()
		}
		if !p.qualifiedName() {
			return false
		}
		if p.check(TokenDot) {
			p.take()
			if !p.expect(TokenStar) {
				return false
			}
		}
		return p.expect(TokenSemicolon)
	})
}
