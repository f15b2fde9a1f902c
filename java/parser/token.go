package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// advanced returns the position n bytes further on the same line.
func (p Position) advanced(n int) Position {
	p.Offset += n
	p.Column += n
	return p
}

type Span struct {
	Start Position
	End   Position
}

func (s Span) IsZero() bool {
	return s.Start.Line == 0 && s.End.Line == 0
}

// Contains reports whether offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock
	TokenTrue
	TokenFalse
	TokenNull

	// Keywords
	TokenAbstract
	TokenAssert
	TokenBoolean
	TokenBreak
	TokenByte
	TokenCase
	TokenCatch
	TokenChar
	TokenClass
	TokenConst
	TokenContinue
	TokenDefault
	TokenDo
	TokenDouble
	TokenElse
	TokenEnum
	TokenExtends
	TokenFinal
	TokenFinally
	TokenFloat
	TokenFor
	TokenGoto
	TokenIf
	TokenImplements
	TokenImport
	TokenInstanceof
	TokenInt
	TokenInterface
	TokenLong
	TokenNative
	TokenNew
	TokenPackage
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReturn
	TokenShort
	TokenStatic
	TokenStrictfp
	TokenSuper
	TokenSwitch
	TokenSynchronized
	TokenThis
	TokenThrow
	TokenThrows
	TokenTransient
	TokenTry
	TokenVoid
	TokenVolatile
	TokenWhile
	TokenNonSealed

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenAt
	TokenColonColon

	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenShr
	TokenUShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement
	TokenQuestion
	TokenColon
	TokenArrow
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenWhitespace:    "Whitespace",
	TokenComment:       "Comment",
	TokenLineComment:   "LineComment",
	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenTextBlock:     "TextBlock",
	TokenNonSealed:     "non-sealed",
}

// reservedWords spells the kinds TokenAbstract through TokenWhile, in order.
var reservedWords = [...]string{
	"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
	"class", "const", "continue", "default", "do", "double", "else", "enum",
	"extends", "final", "finally", "float", "for", "goto", "if", "implements",
	"import", "instanceof", "int", "interface", "long", "native", "new", "package",
	"private", "protected", "public", "return", "short", "static", "strictfp", "super",
	"switch", "synchronized", "this", "throw", "throws", "transient", "try", "void",
	"volatile", "while",
}

// literalWords spells TokenTrue, TokenFalse and TokenNull.
var literalWords = [...]string{"true", "false", "null"}

// symbols spells the kinds TokenLParen through TokenUShrAssign, in order.
var symbols = [...]string{
	"(", ")", "{", "}", "[", "]", ";", ",", ".", "...", "@", "::",
	"=", "==", "!=", "<", "<=", ">", ">=", "&&", "||", "!",
	"&", "|", "^", "~", "<<", ">>", ">>>",
	"+", "-", "*", "/", "%", "++", "--", "?", ":", "->",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=", ">>>=",
}

// keywords maps the words the lexer reserves to their kind.
var keywords = make(map[string]TokenKind, len(reservedWords)+len(literalWords))

func init() {
	for i, word := range reservedWords {
		kind := TokenAbstract + TokenKind(i)
		keywords[word] = kind
		tokenKindNames[kind] = word
	}
	for i, word := range literalWords {
		kind := TokenTrue + TokenKind(i)
		keywords[word] = kind
		tokenKindNames[kind] = word
	}
	for i, sym := range symbols {
		tokenKindNames[TokenLParen+TokenKind(i)] = sym
	}
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Category is the coarse classification of a token kind.
type Category int

const (
	CategoryEOF Category = iota
	CategoryError
	CategoryWhitespace
	CategoryComment
	CategoryIdentifier
	CategoryLiteral
	CategoryKeyword
	CategoryPunctuation
	CategoryOperator
)

var categoryNames = map[Category]string{
	CategoryEOF:         "eof",
	CategoryError:       "error",
	CategoryWhitespace:  "whitespace",
	CategoryComment:     "comment",
	CategoryIdentifier:  "identifier",
	CategoryLiteral:     "literal",
	CategoryKeyword:     "keyword",
	CategoryPunctuation: "punctuation",
	CategoryOperator:    "operator",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

func (k TokenKind) Category() Category {
	switch {
	case k == TokenEOF:
		return CategoryEOF
	case k == TokenError:
		return CategoryError
	case k == TokenWhitespace:
		return CategoryWhitespace
	case k == TokenComment || k == TokenLineComment:
		return CategoryComment
	case k == TokenIdent:
		return CategoryIdentifier
	case k >= TokenIntLiteral && k <= TokenNull:
		return CategoryLiteral
	case k >= TokenAbstract && k <= TokenNonSealed:
		return CategoryKeyword
	case k >= TokenLParen && k <= TokenColonColon:
		return CategoryPunctuation
	default:
		return CategoryOperator
	}
}

// IsTrivia reports whether the grammar ignores tokens of this kind.
func (k TokenKind) IsTrivia() bool {
	return k == TokenWhitespace || k == TokenComment || k == TokenLineComment
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
	// Synthetic marks a token carved out of a compound '>' token.
	Synthetic bool
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%q", t.Literal)
}

// LookupKeyword maps reserved words to their kind. Contextual words such as
// var, record, yield, sealed and permits are identifiers at the lexical level.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
