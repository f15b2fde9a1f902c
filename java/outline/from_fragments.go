package outline

import (
	"errors"
	"strings"

	"github.com/dhamidi/skim/java/parser"
)

// FromSource parses src as a compilation unit and builds its outline.
// Syntax errors do not fail the call; they are listed in the outline's
// Diagnostics next to whatever structure could be recovered.
func FromSource(src []byte, opts ...parser.Option) (*File, error) {
	opts = append(opts, parser.WithComments())
	p := parser.New(src, opts...)
	var out parser.Collector
	err := p.CompilationUnit(&out)
	var list parser.ErrorList
	if err != nil && !errors.As(err, &list) {
		return nil, err
	}
	file := FromFragments(out.Fragments(), p.Comments())
	for _, d := range list {
		file.Diagnostics = append(file.Diagnostics, Diagnostic{Pos: d.Pos, Message: d.Message})
	}
	return file, nil
}

// FromFragments builds an outline from the fragments of a compilation unit.
// comments are used to attach doc comments and may be nil.
func FromFragments(frags []parser.Fragment, comments []parser.Token) *File {
	b := &builder{docs: newJavadocFinder(comments)}
	file := &File{}
	var prev parser.Span
	for _, f := range frags {
		switch f.Label {
		case parser.LabelPackage:
			file.Package = namePath(f.Children)
		case parser.LabelImport:
			file.Imports = append(file.Imports, importFrom(f))
		case parser.LabelModule:
			file.Module = moduleFrom(f)
		case parser.LabelTypeDef:
			file.Types = append(file.Types, b.typeFrom(f, prev, false))
		}
		prev = f.Span
	}
	return file
}

type builder struct {
	docs *javadocFinder
}

// namePath joins the identifier and dot tokens among children, skipping
// keywords and groups such as annotations.
func namePath(children []parser.Fragment) string {
	var sb strings.Builder
	for _, c := range children {
		if !c.IsToken() {
			continue
		}
		switch c.Token.Kind {
		case parser.TokenIdent, parser.TokenDot, parser.TokenStar:
			sb.WriteString(c.Token.Literal)
		}
	}
	return sb.String()
}

func importFrom(f parser.Fragment) Import {
	imp := Import{}
	children := f.Children
	if len(children) > 1 && children[1].IsToken() {
		switch tok := children[1].Token; {
		case tok.Kind == parser.TokenStatic:
			imp.Static = true
		case tok.Kind == parser.TokenIdent && tok.Literal == "module" && len(children) > 3:
			imp.Module = true
			children = children[1:]
		}
	}
	imp.Name = namePath(children[1:])
	if strings.HasSuffix(imp.Name, ".*") {
		imp.Wildcard = true
		imp.Name = strings.TrimSuffix(imp.Name, ".*")
	}
	return imp
}

func moduleFrom(f parser.Fragment) *Module {
	m := &Module{Span: f.Span}
	var name []parser.Fragment
	seenModule := false
	for _, c := range f.Children {
		switch {
		case c.Label == parser.LabelDirective:
			m.Directives = append(m.Directives, strings.TrimSuffix(Text(c), ";"))
		case !c.IsToken():
		case c.Token.Kind == parser.TokenLBrace:
			seenModule = false
		case seenModule:
			name = append(name, c)
		case c.Token.Literal == "open":
			m.Open = true
		case c.Token.Literal == "module":
			seenModule = true
		}
	}
	m.Name = namePath(name)
	return m
}

// modifiersOf splits a Modifiers group into keyword modifiers and rendered
// annotations.
func modifiersOf(f *parser.Fragment) (mods, annotations []string) {
	if f == nil {
		return nil, nil
	}
	for _, c := range f.Children {
		if c.Label == parser.LabelAnnotation {
			annotations = append(annotations, Text(c))
		} else if c.IsToken() {
			mods = append(mods, c.Token.Literal)
		}
	}
	return mods, annotations
}

func kindOf(tok parser.Token) (Kind, bool) {
	switch tok.Kind {
	case parser.TokenClass:
		return KindClass, true
	case parser.TokenInterface:
		return KindInterface, true
	case parser.TokenEnum:
		return KindEnum, true
	case parser.TokenAt:
		return KindAnnotation, true
	case parser.TokenIdent:
		if tok.Literal == "record" {
			return KindRecord, true
		}
	}
	return "", false
}

// typeFrom builds a Type from a TypeDef fragment. inInterface marks members
// of interfaces, which are implicitly public.
func (b *builder) typeFrom(def parser.Fragment, prev parser.Span, inInterface bool) *Type {
	t := &Type{Span: def.Span}
	t.Modifiers, t.Annotations = modifiersOf(def.FirstChild(parser.LabelModifiers))
	t.Javadoc = b.docs.find(def.Span, prev)

	for _, c := range def.Children {
		switch {
		case c.IsToken():
			if t.Kind == "" {
				if kind, ok := kindOf(c.Token); ok {
					t.Kind = kind
				}
			} else if t.Name == "" && c.Token.Kind == parser.TokenIdent {
				t.Name = c.Token.Literal
			}
		case c.Label == parser.LabelTypeParameters:
			t.TypeParameters = typeParametersFrom(c)
		case c.Label == parser.LabelRecordHeader:
			for _, p := range c.ChildrenOf(parser.LabelParameter) {
				t.RecordComponents = append(t.RecordComponents, parameterFrom(p))
			}
		case c.Label == parser.LabelExtends:
			types := typeList(c)
			if t.Kind == KindInterface {
				t.Interfaces = append(t.Interfaces, types...)
			} else if len(types) > 0 {
				t.Superclass = types[0]
			}
		case c.Label == parser.LabelImplements:
			t.Interfaces = append(t.Interfaces, typeList(c)...)
		case c.Label == parser.LabelPermits:
			t.Permits = typeList(c)
		case c.Label == parser.LabelBody:
			b.bodyInto(t, c)
		}
	}

	t.Visibility = visibilityOf(t.Modifiers)
	if inInterface && t.Visibility == VisibilityPackage {
		t.Visibility = VisibilityPublic
	}
	return t
}

func typeList(f parser.Fragment) []string {
	var result []string
	for _, spec := range f.ChildrenOf(parser.LabelTypeSpec) {
		result = append(result, Text(spec))
	}
	return result
}

func typeParametersFrom(f parser.Fragment) []TypeParameter {
	var result []TypeParameter
	for _, tp := range f.ChildrenOf(parser.LabelTypeParameter) {
		param := TypeParameter{}
		if names := tp.TokensOf(parser.TokenIdent); len(names) > 0 {
			param.Name = names[0].Literal
		}
		if bound := tp.FirstChild(parser.LabelTypeBound); bound != nil {
			param.Bounds = typeList(*bound)
		}
		result = append(result, param)
	}
	return result
}

func (b *builder) bodyInto(t *Type, body parser.Fragment) {
	inInterface := t.Kind == KindInterface || t.Kind == KindAnnotation
	var prev parser.Span
	for _, m := range body.Children {
		if m.IsToken() {
			if m.Token.Kind == parser.TokenLBrace {
				prev = m.Span
			}
			continue
		}
		switch m.Label {
		case parser.LabelEnumConstant:
			t.EnumConstants = append(t.EnumConstants, b.enumConstantFrom(m, prev))
		case parser.LabelField:
			t.Fields = append(t.Fields, b.fieldsFrom(m, prev, inInterface)...)
		case parser.LabelMethod, parser.LabelConstructor:
			t.Methods = append(t.Methods, b.methodFrom(m, prev, inInterface))
		case parser.LabelInitializer:
			init := Initializer{Span: m.Span}
			init.IsStatic = len(m.TokensOf(parser.TokenStatic)) > 0
			if block := m.FirstChild(parser.LabelBlock); block != nil {
				init.Statements = statementSpans(*block)
			}
			t.Initializers = append(t.Initializers, init)
		case parser.LabelTypeDef:
			t.Types = append(t.Types, b.typeFrom(m, prev, inInterface))
		}
		prev = m.Span
	}
}

func (b *builder) enumConstantFrom(f parser.Fragment, prev parser.Span) EnumConstant {
	c := EnumConstant{Span: f.Span, HasBody: f.FirstChild(parser.LabelBody) != nil}
	if names := f.TokensOf(parser.TokenIdent); len(names) > 0 {
		c.Name = names[0].Literal
	}
	if args := f.FirstChild(parser.LabelArguments); args != nil {
		c.Arguments = splitArguments(*args)
	}
	c.Javadoc = b.docs.find(f.Span, prev)
	return c
}

// splitArguments renders the comma separated entries of an Arguments group.
func splitArguments(args parser.Fragment) []string {
	children := args.Children
	if len(children) < 2 {
		return nil
	}
	// drop the enclosing parentheses
	children = children[1 : len(children)-1]

	var result []string
	start := 0
	for i, c := range children {
		if c.IsToken() && c.Token.Kind == parser.TokenComma {
			result = append(result, Text(children[start:i]...))
			start = i + 1
		}
	}
	if start < len(children) {
		result = append(result, Text(children[start:]...))
	}
	return result
}

// fieldsFrom returns one Field per declarator of a field declaration.
func (b *builder) fieldsFrom(f parser.Fragment, prev parser.Span, inInterface bool) []Field {
	mods, annotations := modifiersOf(f.FirstChild(parser.LabelModifiers))
	visibility := visibilityOf(mods)
	if inInterface && visibility == VisibilityPackage {
		visibility = VisibilityPublic
	}
	typ := ""
	if spec := f.FirstChild(parser.LabelTypeSpec); spec != nil {
		typ = Text(*spec)
	}
	doc := b.docs.find(f.Span, prev)

	var fields []Field
	for _, d := range f.ChildrenOf(parser.LabelDeclarator) {
		field := Field{
			Type:        typ,
			Visibility:  visibility,
			Modifiers:   mods,
			Annotations: annotations,
			Javadoc:     doc,
			Span:        f.Span,
		}
		var init []parser.Fragment
		assigned := false
		for _, c := range d.Children {
			switch {
			case assigned:
				init = append(init, c)
			case c.IsToken() && c.Token.Kind == parser.TokenIdent:
				field.Name = c.Token.Literal
			case c.IsToken() && c.Token.Kind == parser.TokenLBracket:
				field.Type += "[]"
			case c.IsToken() && c.Token.Kind == parser.TokenAssign:
				assigned = true
			}
		}
		field.Initializer = Text(init...)
		fields = append(fields, field)
	}
	return fields
}

func (b *builder) methodFrom(f parser.Fragment, prev parser.Span, inInterface bool) Method {
	m := Method{Span: f.Span, IsConstructor: f.Label == parser.LabelConstructor}
	m.Modifiers, m.Annotations = modifiersOf(f.FirstChild(parser.LabelModifiers))
	m.Javadoc = b.docs.find(f.Span, prev)

	inDefault := false
	var defaultValue []parser.Fragment
	for _, c := range f.Children {
		if inDefault && !(c.IsToken() && c.Token.Kind == parser.TokenSemicolon) {
			defaultValue = append(defaultValue, c)
			continue
		}
		switch {
		case c.Label == parser.LabelTypeParameters:
			m.TypeParameters = typeParametersFrom(c)
		case c.Label == parser.LabelTypeSpec:
			m.ReturnType = Text(c)
		case c.Label == parser.LabelParameters:
			for _, p := range c.ChildrenOf(parser.LabelParameter) {
				param := parameterFrom(p)
				m.IsVarargs = m.IsVarargs || param.IsVarargs
				m.Parameters = append(m.Parameters, param)
			}
		case c.Label == parser.LabelThrows:
			m.Throws = typeList(c)
		case c.Label == parser.LabelBlock:
			m.HasBody = true
			m.Statements = statementSpans(c)
		case !c.IsToken():
		case c.Token.Kind == parser.TokenVoid:
			m.ReturnType = "void"
		case c.Token.Kind == parser.TokenIdent && m.Name == "":
			m.Name = c.Token.Literal
		case c.Token.Kind == parser.TokenLBracket:
			// legacy array syntax: int m()[]
			m.ReturnType += "[]"
		case c.Token.Kind == parser.TokenDefault:
			inDefault = true
		}
	}
	m.DefaultValue = Text(defaultValue...)
	m.IsCompact = m.IsConstructor && f.FirstChild(parser.LabelParameters) == nil

	m.Visibility = visibilityOf(m.Modifiers)
	if inInterface && m.Visibility == VisibilityPackage {
		m.Visibility = VisibilityPublic
	}
	return m
}

func parameterFrom(f parser.Fragment) Parameter {
	param := Parameter{}
	if mods := f.FirstChild(parser.LabelModifiers); mods != nil {
		var modifiers []string
		modifiers, param.Annotations = modifiersOf(mods)
		param.IsFinal = hasModifier(modifiers, "final")
	}
	if spec := f.FirstChild(parser.LabelTypeSpec); spec != nil {
		param.Type = Text(*spec)
	}
	for _, c := range f.Children {
		if !c.IsToken() {
			continue
		}
		switch c.Token.Kind {
		case parser.TokenEllipsis:
			param.IsVarargs = true
			param.Type += "..."
		case parser.TokenIdent, parser.TokenThis:
			param.Name = c.Token.Literal
		case parser.TokenLBracket:
			param.Type += "[]"
		}
	}
	return param
}

func statementSpans(block parser.Fragment) []parser.Span {
	var spans []parser.Span
	for _, c := range block.Children {
		if c.Label.IsStatement() {
			spans = append(spans, c.Span)
		}
	}
	return spans
}
