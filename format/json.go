package format

import (
	"io"

	"github.com/dhamidi/skim/java/outline"
	"github.com/dhamidi/skim/java/parser"
)

// OutlineJSONEncoder writes an outline as indented JSON.
type OutlineJSONEncoder struct {
	w    io.Writer
	file *outline.File
}

func NewOutlineJSONEncoder(w io.Writer) *OutlineJSONEncoder {
	return &OutlineJSONEncoder{w: w}
}

func (e *OutlineJSONEncoder) Encode(file *outline.File) error {
	e.file = file
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *OutlineJSONEncoder) MarshalText() ([]byte, error) {
	return marshalIndent(buildFile(e.file))
}

type jsonFile struct {
	Path        string           `json:"path,omitempty"`
	Package     string           `json:"package,omitempty"`
	Imports     []jsonImport     `json:"imports,omitempty"`
	Module      *jsonModule      `json:"module,omitempty"`
	Types       []*jsonType      `json:"types,omitempty"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
}

type jsonImport struct {
	Name     string `json:"name"`
	Static   bool   `json:"static,omitempty"`
	Wildcard bool   `json:"wildcard,omitempty"`
	Module   bool   `json:"module,omitempty"`
}

type jsonModule struct {
	Name       string   `json:"name"`
	Open       bool     `json:"open,omitempty"`
	Directives []string `json:"directives,omitempty"`
	Line       int      `json:"line"`
}

type jsonDiagnostic struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

type jsonType struct {
	Name             string              `json:"name"`
	Kind             string              `json:"kind"`
	Visibility       string              `json:"visibility"`
	Modifiers        []string            `json:"modifiers,omitempty"`
	Annotations      []string            `json:"annotations,omitempty"`
	TypeParameters   []jsonTypeParameter `json:"typeParameters,omitempty"`
	Superclass       string              `json:"superclass,omitempty"`
	Interfaces       []string            `json:"interfaces,omitempty"`
	Permits          []string            `json:"permits,omitempty"`
	RecordComponents []jsonParameter     `json:"recordComponents,omitempty"`
	EnumConstants    []jsonEnumConstant  `json:"enumConstants,omitempty"`
	Fields           []jsonField         `json:"fields,omitempty"`
	Methods          []jsonMethod        `json:"methods,omitempty"`
	Initializers     []jsonInitializer   `json:"initializers,omitempty"`
	Types            []*jsonType         `json:"types,omitempty"`
	Javadoc          string              `json:"javadoc,omitempty"`
	Lines            jsonLines           `json:"lines"`
}

type jsonLines struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonTypeParameter struct {
	Name   string   `json:"name"`
	Bounds []string `json:"bounds,omitempty"`
}

type jsonEnumConstant struct {
	Name      string   `json:"name"`
	Arguments []string `json:"arguments,omitempty"`
	HasBody   bool     `json:"hasBody,omitempty"`
}

type jsonField struct {
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Visibility  string    `json:"visibility"`
	Modifiers   []string  `json:"modifiers,omitempty"`
	Annotations []string  `json:"annotations,omitempty"`
	Initializer string    `json:"initializer,omitempty"`
	Javadoc     string    `json:"javadoc,omitempty"`
	Lines       jsonLines `json:"lines"`
}

type jsonMethod struct {
	Name           string              `json:"name"`
	ReturnType     string              `json:"returnType,omitempty"`
	Parameters     []jsonParameter     `json:"parameters,omitempty"`
	TypeParameters []jsonTypeParameter `json:"typeParameters,omitempty"`
	Throws         []string            `json:"throws,omitempty"`
	Visibility     string              `json:"visibility"`
	Modifiers      []string            `json:"modifiers,omitempty"`
	Annotations    []string            `json:"annotations,omitempty"`
	Constructor    bool                `json:"constructor,omitempty"`
	Compact        bool                `json:"compact,omitempty"`
	HasBody        bool                `json:"hasBody"`
	DefaultValue   string              `json:"defaultValue,omitempty"`
	Statements     int                 `json:"statements"`
	Javadoc        string              `json:"javadoc,omitempty"`
	Lines          jsonLines           `json:"lines"`
}

type jsonParameter struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Final       bool     `json:"final,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
}

type jsonInitializer struct {
	Static     bool      `json:"static,omitempty"`
	Statements int       `json:"statements"`
	Lines      jsonLines `json:"lines"`
}

func buildFile(f *outline.File) jsonFile {
	if f == nil {
		return jsonFile{}
	}
	data := jsonFile{Path: f.Path, Package: f.Package}
	for _, imp := range f.Imports {
		data.Imports = append(data.Imports, jsonImport{
			Name:     imp.Name,
			Static:   imp.Static,
			Wildcard: imp.Wildcard,
			Module:   imp.Module,
		})
	}
	if m := f.Module; m != nil {
		data.Module = &jsonModule{Name: m.Name, Open: m.Open, Directives: m.Directives, Line: m.Span.Start.Line}
	}
	for _, t := range f.Types {
		data.Types = append(data.Types, buildType(t))
	}
	for _, d := range f.Diagnostics {
		data.Diagnostics = append(data.Diagnostics, jsonDiagnostic{Line: d.Pos.Line, Column: d.Pos.Column, Message: d.Message})
	}
	return data
}

func buildType(t *outline.Type) *jsonType {
	data := &jsonType{
		Name:           t.Name,
		Kind:           string(t.Kind),
		Visibility:     string(t.Visibility),
		Modifiers:      t.Modifiers,
		Annotations:    t.Annotations,
		TypeParameters: buildTypeParameters(t.TypeParameters),
		Superclass:     t.Superclass,
		Interfaces:     t.Interfaces,
		Permits:        t.Permits,
		Javadoc:        t.Javadoc,
		Lines:          linesOf(t.Span),
	}
	data.RecordComponents = buildParameters(t.RecordComponents)
	for _, c := range t.EnumConstants {
		data.EnumConstants = append(data.EnumConstants, jsonEnumConstant{Name: c.Name, Arguments: c.Arguments, HasBody: c.HasBody})
	}
	for _, f := range t.Fields {
		data.Fields = append(data.Fields, jsonField{
			Name:        f.Name,
			Type:        f.Type,
			Visibility:  string(f.Visibility),
			Modifiers:   f.Modifiers,
			Annotations: f.Annotations,
			Initializer: f.Initializer,
			Javadoc:     f.Javadoc,
			Lines:       linesOf(f.Span),
		})
	}
	for _, m := range t.Methods {
		data.Methods = append(data.Methods, jsonMethod{
			Name:           m.Name,
			ReturnType:     m.ReturnType,
			Parameters:     buildParameters(m.Parameters),
			TypeParameters: buildTypeParameters(m.TypeParameters),
			Throws:         m.Throws,
			Visibility:     string(m.Visibility),
			Modifiers:      m.Modifiers,
			Annotations:    m.Annotations,
			Constructor:    m.IsConstructor,
			Compact:        m.IsCompact,
			HasBody:        m.HasBody,
			DefaultValue:   m.DefaultValue,
			Statements:     len(m.Statements),
			Javadoc:        m.Javadoc,
			Lines:          linesOf(m.Span),
		})
	}
	for _, init := range t.Initializers {
		data.Initializers = append(data.Initializers, jsonInitializer{Static: init.IsStatic, Statements: len(init.Statements), Lines: linesOf(init.Span)})
	}
	for _, nested := range t.Types {
		data.Types = append(data.Types, buildType(nested))
	}
	return data
}

func buildTypeParameters(params []outline.TypeParameter) []jsonTypeParameter {
	var result []jsonTypeParameter
	for _, p := range params {
		result = append(result, jsonTypeParameter{Name: p.Name, Bounds: p.Bounds})
	}
	return result
}

func buildParameters(params []outline.Parameter) []jsonParameter {
	var result []jsonParameter
	for _, p := range params {
		result = append(result, jsonParameter{Name: p.Name, Type: p.Type, Final: p.IsFinal, Annotations: p.Annotations})
	}
	return result
}

func linesOf(span parser.Span) jsonLines {
	return jsonLines{Start: span.Start.Line, End: span.End.Line}
}
