package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/skim/java/outline"
)

// LineEncoder writes one tab separated line per declaration, for grep
// and cut:
//
//	class	p.Outer	public,final	3:1
//	field	p.Outer.count	int	private	static	4:5
//	method	p.Outer.run	void	(String,int)	public	-	6:5
type LineEncoder struct {
	w    io.Writer
	file *outline.File
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(file *outline.File) error {
	e.file = file
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	f := e.file
	if f == nil {
		return nil, nil
	}
	if m := f.Module; m != nil {
		fmt.Fprintf(&sb, "module\t%s\t%s\t%s\n", m.Name, boolStr(m.Open, "open"), m.Span.Start)
	}
	for _, t := range f.Types {
		writeTypeLines(&sb, f.Package, t)
	}
	for _, d := range f.Diagnostics {
		fmt.Fprintf(&sb, "error\t%s\t%s\n", d.Message, d.Pos)
	}
	return []byte(sb.String()), nil
}

func writeTypeLines(sb *strings.Builder, prefix string, t *outline.Type) {
	name := t.Name
	if prefix != "" {
		name = prefix + "." + t.Name
	}
	fmt.Fprintf(sb, "%s\t%s\t%s\t%s\n", t.Kind, name, typeModifiersStr(t), t.Span.Start)

	for _, c := range t.EnumConstants {
		fmt.Fprintf(sb, "constant\t%s.%s\t%s\n", name, c.Name, c.Span.Start)
	}
	for _, f := range t.Fields {
		fmt.Fprintf(sb, "field\t%s.%s\t%s\t%s\t%s\t%s\n",
			name, f.Name,
			f.Type,
			f.Visibility,
			modifiersStr(f.Modifiers),
			f.Span.Start,
		)
	}
	for _, m := range t.Methods {
		kind, returnType := "method", m.ReturnType
		if m.IsConstructor {
			kind, returnType = "constructor", "-"
		}
		fmt.Fprintf(sb, "%s\t%s.%s\t%s\t%s\t%s\t%s\t%s\n",
			kind, name, m.Name,
			returnType,
			parametersStr(m.Parameters),
			m.Visibility,
			modifiersStr(m.Modifiers),
			m.Span.Start,
		)
	}
	for _, nested := range t.Types {
		writeTypeLines(sb, name, nested)
	}
}

func typeModifiersStr(t *outline.Type) string {
	mods := []string{string(t.Visibility)}
	for _, m := range t.Modifiers {
		if m != string(t.Visibility) {
			mods = append(mods, m)
		}
	}
	return strings.Join(mods, ",")
}

// modifiersStr joins the non-visibility modifiers, "-" when there are none.
func modifiersStr(mods []string) string {
	var result []string
	for _, m := range mods {
		switch m {
		case "public", "protected", "private":
			continue
		}
		result = append(result, m)
	}
	if len(result) == 0 {
		return "-"
	}
	return strings.Join(result, ",")
}

func parametersStr(params []outline.Parameter) string {
	types := make([]string, len(params))
	for i, p := range params {
		types[i] = p.Type
	}
	return "(" + strings.Join(types, ",") + ")"
}

func boolStr(b bool, s string) string {
	if b {
		return s
	}
	return "-"
}
