package format

import (
	"io"
	"strings"

	"github.com/dhamidi/skim/java/outline"
)

// JavaEncoder writes an outline back as Java declaration stubs: the
// headers of every type with its fields and method signatures. Bodies
// are replaced by "{ }".
type JavaEncoder struct {
	w    io.Writer
	file *outline.File
}

func NewJavaEncoder(w io.Writer) *JavaEncoder {
	return &JavaEncoder{w: w}
}

func (e *JavaEncoder) Encode(file *outline.File) error {
	e.file = file
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JavaEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	f := e.file
	if f == nil {
		return nil, nil
	}

	if f.Package != "" {
		sb.WriteString("package ")
		sb.WriteString(f.Package)
		sb.WriteString(";\n\n")
	}

	if len(f.Imports) > 0 {
		for _, imp := range f.Imports {
			writeImport(&sb, imp)
		}
		sb.WriteString("\n")
	}

	if m := f.Module; m != nil {
		writeModule(&sb, m)
	}

	for i, t := range f.Types {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeType(&sb, t, "")
	}
	return []byte(sb.String()), nil
}

func writeImport(sb *strings.Builder, imp outline.Import) {
	sb.WriteString("import ")
	if imp.Static {
		sb.WriteString("static ")
	}
	if imp.Module {
		sb.WriteString("module ")
	}
	sb.WriteString(imp.Name)
	if imp.Wildcard {
		sb.WriteString(".*")
	}
	sb.WriteString(";\n")
}

func writeModule(sb *strings.Builder, m *outline.Module) {
	if m.Open {
		sb.WriteString("open ")
	}
	sb.WriteString("module ")
	sb.WriteString(m.Name)
	sb.WriteString(" {\n")
	for _, d := range m.Directives {
		sb.WriteString("    ")
		sb.WriteString(d)
		sb.WriteString(";\n")
	}
	sb.WriteString("}\n")
}

func writeType(sb *strings.Builder, t *outline.Type, indent string) {
	writeAnnotations(sb, t.Annotations, indent)
	sb.WriteString(indent)
	writeModifiers(sb, t.Modifiers)

	switch t.Kind {
	case outline.KindAnnotation:
		sb.WriteString("@interface ")
	default:
		sb.WriteString(string(t.Kind))
		sb.WriteString(" ")
	}
	sb.WriteString(t.Name)
	writeTypeParameters(sb, t.TypeParameters)

	if t.Kind == outline.KindRecord {
		sb.WriteString("(")
		writeParameters(sb, t.RecordComponents)
		sb.WriteString(")")
	}

	if t.Superclass != "" {
		sb.WriteString(" extends ")
		sb.WriteString(t.Superclass)
	}
	if len(t.Interfaces) > 0 {
		if t.Kind == outline.KindInterface {
			sb.WriteString(" extends ")
		} else {
			sb.WriteString(" implements ")
		}
		sb.WriteString(strings.Join(t.Interfaces, ", "))
	}
	if len(t.Permits) > 0 {
		sb.WriteString(" permits ")
		sb.WriteString(strings.Join(t.Permits, ", "))
	}
	sb.WriteString(" {\n")

	inner := indent + "    "
	section := false
	if len(t.EnumConstants) > 0 {
		for i, c := range t.EnumConstants {
			sb.WriteString(inner)
			sb.WriteString(c.Name)
			if len(c.Arguments) > 0 {
				sb.WriteString("(")
				sb.WriteString(strings.Join(c.Arguments, ", "))
				sb.WriteString(")")
			}
			if i < len(t.EnumConstants)-1 {
				sb.WriteString(",\n")
			}
		}
		sb.WriteString(";\n")
		section = true
	}

	if len(t.Fields) > 0 {
		if section {
			sb.WriteString("\n")
		}
		for _, f := range t.Fields {
			writeAnnotations(sb, f.Annotations, inner)
			sb.WriteString(inner)
			writeModifiers(sb, f.Modifiers)
			sb.WriteString(f.Type)
			sb.WriteString(" ")
			sb.WriteString(f.Name)
			sb.WriteString(";\n")
		}
		section = true
	}

	for _, m := range t.Methods {
		if section {
			sb.WriteString("\n")
		}
		writeMethod(sb, t, m, inner)
		section = true
	}

	for _, nested := range t.Types {
		if section {
			sb.WriteString("\n")
		}
		writeType(sb, nested, inner)
		section = true
	}

	sb.WriteString(indent)
	sb.WriteString("}\n")
}

func writeMethod(sb *strings.Builder, t *outline.Type, m outline.Method, indent string) {
	writeAnnotations(sb, m.Annotations, indent)
	sb.WriteString(indent)
	writeModifiers(sb, m.Modifiers)
	if len(m.TypeParameters) > 0 {
		writeTypeParameters(sb, m.TypeParameters)
		sb.WriteString(" ")
	}

	if m.IsConstructor {
		sb.WriteString(t.Name)
	} else {
		sb.WriteString(m.ReturnType)
		sb.WriteString(" ")
		sb.WriteString(m.Name)
	}

	if !m.IsCompact {
		sb.WriteString("(")
		writeParameters(sb, m.Parameters)
		sb.WriteString(")")
	}

	if len(m.Throws) > 0 {
		sb.WriteString(" throws ")
		sb.WriteString(strings.Join(m.Throws, ", "))
	}
	if m.DefaultValue != "" {
		sb.WriteString(" default ")
		sb.WriteString(m.DefaultValue)
	}

	if m.HasBody {
		sb.WriteString(" { }\n")
	} else {
		sb.WriteString(";\n")
	}
}

func writeModifiers(sb *strings.Builder, mods []string) {
	for _, mod := range mods {
		sb.WriteString(mod)
		sb.WriteString(" ")
	}
}

func writeAnnotations(sb *strings.Builder, anns []string, indent string) {
	for _, a := range anns {
		sb.WriteString(indent)
		sb.WriteString(a)
		sb.WriteString("\n")
	}
}

func writeTypeParameters(sb *strings.Builder, params []outline.TypeParameter) {
	if len(params) == 0 {
		return
	}
	sb.WriteString("<")
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		if len(p.Bounds) > 0 {
			sb.WriteString(" extends ")
			sb.WriteString(strings.Join(p.Bounds, " & "))
		}
	}
	sb.WriteString(">")
}

func writeParameters(sb *strings.Builder, params []outline.Parameter) {
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		for _, a := range p.Annotations {
			sb.WriteString(a)
			sb.WriteString(" ")
		}
		if p.IsFinal {
			sb.WriteString("final ")
		}
		sb.WriteString(p.Type)
		if p.Name != "" {
			sb.WriteString(" ")
			sb.WriteString(p.Name)
		}
	}
}
