package parser

import "strings"

// Label names the structure a Fragment stands for.
type Label int

const (
	LabelToken Label = iota
	LabelError

	// Compilation unit level
	LabelPackage
	LabelImport
	LabelModule
	LabelDirective

	// Types
	LabelTypeSpec
	LabelTypeArguments
	LabelWildcard
	LabelWildcardBound
	LabelTypeParameters
	LabelTypeParameter
	LabelTypeBound

	// Declarations
	LabelModifiers
	LabelAnnotation
	LabelTypeDef
	LabelExtends
	LabelImplements
	LabelPermits
	LabelRecordHeader
	LabelBody
	LabelEnumConstant
	LabelField
	LabelMethod
	LabelConstructor
	LabelParameters
	LabelParameter
	LabelThrows
	LabelInitializer
	LabelDeclarator

	// Statements
	LabelBlock
	LabelEmptyStmt
	LabelExprStmt
	LabelLocalVarDecl
	LabelLocalTypeDecl
	LabelIfStmt
	LabelForStmt
	LabelForEachStmt
	LabelWhileStmt
	LabelDoStmt
	LabelSwitchStmt
	LabelSwitchCase
	LabelReturnStmt
	LabelBreakStmt
	LabelContinueStmt
	LabelThrowStmt
	LabelTryStmt
	LabelCatch
	LabelFinally
	LabelResources
	LabelSynchronizedStmt
	LabelAssertStmt
	LabelYieldStmt
	LabelLabeledStmt

	// Expressions
	LabelCast
	LabelLambda
	LabelNew
	LabelMethodRef
	LabelArrayInit
	LabelArguments
	LabelSwitchExpr
	LabelPattern
)

var labelNames = map[Label]string{
	LabelToken:            "Token",
	LabelError:            "Error",
	LabelPackage:          "Package",
	LabelImport:           "Import",
	LabelModule:           "Module",
	LabelDirective:        "Directive",
	LabelTypeSpec:         "TypeSpec",
	LabelTypeArguments:    "TypeArguments",
	LabelWildcard:         "Wildcard",
	LabelWildcardBound:    "WildcardBound",
	LabelTypeParameters:   "TypeParameters",
	LabelTypeParameter:    "TypeParameter",
	LabelTypeBound:        "TypeBound",
	LabelModifiers:        "Modifiers",
	LabelAnnotation:       "Annotation",
	LabelTypeDef:          "TypeDef",
	LabelExtends:          "Extends",
	LabelImplements:       "Implements",
	LabelPermits:          "Permits",
	LabelRecordHeader:     "RecordHeader",
	LabelBody:             "Body",
	LabelEnumConstant:     "EnumConstant",
	LabelField:            "Field",
	LabelMethod:           "Method",
	LabelConstructor:      "Constructor",
	LabelParameters:       "Parameters",
	LabelParameter:        "Parameter",
	LabelThrows:           "Throws",
	LabelInitializer:      "Initializer",
	LabelDeclarator:       "Declarator",
	LabelBlock:            "Block",
	LabelEmptyStmt:        "EmptyStmt",
	LabelExprStmt:         "ExprStmt",
	LabelLocalVarDecl:     "LocalVarDecl",
	LabelLocalTypeDecl:    "LocalTypeDecl",
	LabelIfStmt:           "IfStmt",
	LabelForStmt:          "ForStmt",
	LabelForEachStmt:      "ForEachStmt",
	LabelWhileStmt:        "WhileStmt",
	LabelDoStmt:           "DoStmt",
	LabelSwitchStmt:       "SwitchStmt",
	LabelSwitchCase:       "SwitchCase",
	LabelReturnStmt:       "ReturnStmt",
	LabelBreakStmt:        "BreakStmt",
	LabelContinueStmt:     "ContinueStmt",
	LabelThrowStmt:        "ThrowStmt",
	LabelTryStmt:          "TryStmt",
	LabelCatch:            "Catch",
	LabelFinally:          "Finally",
	LabelResources:        "Resources",
	LabelSynchronizedStmt: "SynchronizedStmt",
	LabelAssertStmt:       "AssertStmt",
	LabelYieldStmt:        "YieldStmt",
	LabelLabeledStmt:      "LabeledStmt",
	LabelCast:             "Cast",
	LabelLambda:           "Lambda",
	LabelNew:              "New",
	LabelMethodRef:        "MethodRef",
	LabelArrayInit:        "ArrayInit",
	LabelArguments:        "Arguments",
	LabelSwitchExpr:       "SwitchExpr",
	LabelPattern:          "Pattern",
}

func (l Label) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return "Unknown"
}

// IsStatement reports whether fragments with this label are statements.
func (l Label) IsStatement() bool {
	return l >= LabelBlock && l <= LabelLabeledStmt &&
		l != LabelSwitchCase && l != LabelCatch && l != LabelFinally && l != LabelResources
}

// Fragment is one entry of a parse result: either a raw token
// (Label == LabelToken) or a labeled group of fragments in source order.
type Fragment struct {
	Label    Label
	Token    Token
	Children []Fragment
	Span     Span
}

func tokenFragment(tok Token) Fragment {
	return Fragment{Label: LabelToken, Token: tok, Span: tok.Span}
}

func groupFragment(label Label, children []Fragment) Fragment {
	f := Fragment{Label: label, Children: children}
	if len(children) > 0 {
		f.Span = Span{Start: children[0].Span.Start, End: children[len(children)-1].Span.End}
	}
	return f
}

func (f Fragment) IsToken() bool {
	return f.Label == LabelToken
}

// Tokens returns the raw tokens under f in source order.
func (f Fragment) Tokens() []Token {
	if f.IsToken() {
		return []Token{f.Token}
	}
	return appendTokens(nil, f.Children)
}

// Text joins the literals of the tokens under f with single spaces.
func (f Fragment) Text() string {
	var parts []string
	for _, tok := range f.Tokens() {
		parts = append(parts, tok.Literal)
	}
	return strings.Join(parts, " ")
}

func (f Fragment) FirstChild(label Label) *Fragment {
	for i := range f.Children {
		if f.Children[i].Label == label {
			return &f.Children[i]
		}
	}
	return nil
}

func (f Fragment) ChildrenOf(label Label) []Fragment {
	var result []Fragment
	for _, child := range f.Children {
		if child.Label == label {
			result = append(result, child)
		}
	}
	return result
}

// Groups returns the children that are not raw tokens.
func (f Fragment) Groups() []Fragment {
	var result []Fragment
	for _, child := range f.Children {
		if !child.IsToken() {
			result = append(result, child)
		}
	}
	return result
}

// TokensOf returns the child tokens of the given kind, not descending.
func (f Fragment) TokensOf(kind TokenKind) []Token {
	var result []Token
	for _, child := range f.Children {
		if child.IsToken() && child.Token.Kind == kind {
			result = append(result, child.Token)
		}
	}
	return result
}

func (f Fragment) String() string {
	var sb strings.Builder
	f.write(&sb, 0, false)
	return sb.String()
}

func (f Fragment) write(sb *strings.Builder, indent int, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	if f.IsToken() {
		sb.WriteString(f.Token.Kind.String())
		sb.WriteString(" ")
		sb.WriteString(f.Token.Literal)
	} else {
		sb.WriteString(f.Label.String())
	}
	if showPositions {
		sb.WriteString(" [" + f.Span.Start.String() + "-" + f.Span.End.String() + "]")
	}
	sb.WriteString("\n")
	for _, child := range f.Children {
		child.write(sb, indent+1, showPositions)
	}
}

func appendTokens(dst []Token, frags []Fragment) []Token {
	for _, f := range frags {
		if f.IsToken() {
			dst = append(dst, f.Token)
			continue
		}
		dst = appendTokens(dst, f.Children)
	}
	return dst
}

// Collector accumulates the fragments a parse produces. The caller owns
// it; grammar rules only append. The zero value is ready to use.
type Collector struct {
	frags []Fragment

	// OnFragment, when set, is called with every fragment appended to this
	// collector. Fragments reach a caller's collector only once the attempt
	// that produced them has succeeded.
	OnFragment func(Fragment)
}

func (c *Collector) append(f Fragment) {
	c.frags = append(c.frags, f)
	if c.OnFragment != nil {
		c.OnFragment(f)
	}
}

func (c *Collector) Fragments() []Fragment {
	return c.frags
}

func (c *Collector) Len() int {
	return len(c.frags)
}

// Tokens flattens the collected fragments into their raw tokens.
func (c *Collector) Tokens() []Token {
	return appendTokens(nil, c.frags)
}

func (c *Collector) Reset() {
	c.frags = nil
}

func (c *Collector) String() string {
	return c.render(false)
}

func (c *Collector) StringWithPositions() string {
	return c.render(true)
}

func (c *Collector) render(showPositions bool) string {
	var sb strings.Builder
	for _, f := range c.frags {
		f.write(&sb, 0, showPositions)
	}
	return sb.String()
}
