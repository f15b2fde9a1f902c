package outline

import "github.com/dhamidi/skim/java/parser"

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type Kind string

const (
	KindClass      Kind = "class"
	KindInterface  Kind = "interface"
	KindEnum       Kind = "enum"
	KindAnnotation Kind = "annotation"
	KindRecord     Kind = "record"
)

// File is the structural outline of one compilation unit.
type File struct {
	Path        string
	Package     string
	Imports     []Import
	Module      *Module
	Types       []*Type
	Diagnostics []Diagnostic
}

type Import struct {
	Name     string
	Static   bool
	Wildcard bool
	Module   bool
}

type Module struct {
	Name       string
	Open       bool
	Directives []string
	Span       parser.Span
}

type Diagnostic struct {
	Pos     parser.Position
	Message string
}

type Type struct {
	Name             string
	Kind             Kind
	Visibility       Visibility
	Modifiers        []string
	Annotations      []string
	TypeParameters   []TypeParameter
	Superclass       string
	Interfaces       []string
	Permits          []string
	RecordComponents []Parameter
	EnumConstants    []EnumConstant
	Fields           []Field
	Methods          []Method
	Initializers     []Initializer
	Types            []*Type
	Javadoc          string
	Span             parser.Span
}

// HasModifier reports whether mod appears among the type's modifiers.
func (t *Type) HasModifier(mod string) bool {
	return hasModifier(t.Modifiers, mod)
}

// Constructors returns the methods that are constructors.
func (t *Type) Constructors() []Method {
	var result []Method
	for _, m := range t.Methods {
		if m.IsConstructor {
			result = append(result, m)
		}
	}
	return result
}

type TypeParameter struct {
	Name   string
	Bounds []string
}

type EnumConstant struct {
	Name      string
	Arguments []string
	HasBody   bool
	Javadoc   string
	Span      parser.Span
}

type Field struct {
	Name        string
	Type        string
	Visibility  Visibility
	Modifiers   []string
	Annotations []string
	Initializer string
	Javadoc     string
	Span        parser.Span
}

func (f Field) HasModifier(mod string) bool {
	return hasModifier(f.Modifiers, mod)
}

type Method struct {
	Name           string
	ReturnType     string
	Parameters     []Parameter
	TypeParameters []TypeParameter
	Throws         []string
	Visibility     Visibility
	Modifiers      []string
	Annotations    []string
	IsConstructor  bool
	IsCompact      bool
	IsVarargs      bool
	HasBody        bool
	DefaultValue   string
	// Statements holds the spans of the top-level statements of the body.
	Statements []parser.Span
	Javadoc    string
	Span       parser.Span
}

func (m Method) HasModifier(mod string) bool {
	return hasModifier(m.Modifiers, mod)
}

type Parameter struct {
	Name        string
	Type        string
	IsFinal     bool
	IsVarargs   bool
	Annotations []string
}

type Initializer struct {
	IsStatic   bool
	Statements []parser.Span
	Span       parser.Span
}

func hasModifier(mods []string, mod string) bool {
	for _, m := range mods {
		if m == mod {
			return true
		}
	}
	return false
}

func visibilityOf(mods []string) Visibility {
	for _, m := range mods {
		switch m {
		case "public":
			return VisibilityPublic
		case "protected":
			return VisibilityProtected
		case "private":
			return VisibilityPrivate
		}
	}
	return VisibilityPackage
}
