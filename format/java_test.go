package format

import (
	"bytes"
	"testing"

	"github.com/dhamidi/skim/java/outline"
)

func mustOutline(t *testing.T, src string) *outline.File {
	t.Helper()
	file, err := outline.FromSource([]byte(src))
	if err != nil {
		t.Fatalf("FromSource error: %v", err)
	}
	if len(file.Diagnostics) > 0 {
		t.Fatalf("unexpected diagnostics: %v", file.Diagnostics)
	}
	return file
}

func TestJavaEncoder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name: "class",
			input: `package com.example;

import java.util.List;
import static java.util.Collections.*;

public abstract class Box<T extends Comparable<T>> extends Base implements Iterable<T> {
    private final List<T> items = new ArrayList<>();
    public Box(int size) { this.size = size; }
    @Override
    public Iterator<T> iterator() { return items.iterator(); }
    abstract void clear();
    enum Color { RED, GREEN("g") }
}`,
			want: `package com.example;

import java.util.List;
import static java.util.Collections.*;

public abstract class Box<T extends Comparable<T>> extends Base implements Iterable<T> {
    private final List<T> items;

    public Box(int size) { }

    @Override
    public Iterator<T> iterator() { }

    abstract void clear();

    enum Color {
        RED,
        GREEN("g");
    }
}
`,
		},
		{
			name:  "interface",
			input: `interface Shape<T> extends Comparable<T>, Cloneable { double area(); default String name() { return "shape"; } }`,
			want: `interface Shape<T> extends Comparable<T>, Cloneable {
    double area();

    default String name() { }
}
`,
		},
		{
			name:  "record",
			input: `public record Point(int x, int y) implements Serializable { Point { check(x); } static <P> P of(P... ps) throws IOException { return ps[0]; } }`,
			want: `public record Point(int x, int y) implements Serializable {
    Point { }

    static <P> P of(P... ps) throws IOException { }
}
`,
		},
		{
			name:  "annotation",
			input: `@interface Tag { String value() default "x"; }`,
			want: `@interface Tag {
    String value() default "x";
}
`,
		},
		{
			name: "module",
			input: `module com.example.app {
    requires java.sql;
    exports com.example.api;
}`,
			want: `module com.example.app {
    requires java.sql;
    exports com.example.api;
}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewJavaEncoder(&buf).Encode(mustOutline(t, tt.input)); err != nil {
				t.Fatalf("Encode error: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestOutlineJSONEncoder(t *testing.T) {
	file := mustOutline(t, `package p; class A { int x; void run() { go(); stop(); } }`)
	var buf bytes.Buffer
	if err := NewOutlineJSONEncoder(&buf).Encode(file); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	for _, want := range []string{
		`"package": "p"`,
		`"kind": "class"`,
		`"visibility": "package"`,
		`"type": "int"`,
		`"returnType": "void"`,
		`"statements": 2`,
	} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("output lacks %s\n%s", want, buf.String())
		}
	}
}

func TestOutlineJSONEncoderKeepsAngleBrackets(t *testing.T) {
	file := mustOutline(t, `class A { Map<String, List<Integer>> m; }`)
	var buf bytes.Buffer
	if err := NewOutlineJSONEncoder(&buf).Encode(file); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if want := `"type": "Map<String, List<Integer>>"`; !bytes.Contains(buf.Bytes(), []byte(want)) {
		t.Errorf("output lacks %s\n%s", want, buf.String())
	}
}

func TestLineEncoder(t *testing.T) {
	file := mustOutline(t, `package p;
public final class Outer {
    private static int count;
    Outer() {}
    public void run(String s, int n) {}
    enum Mode { ON }
}`)
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(file); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	want := "class\tp.Outer\tpublic,final\t2:1\n" +
		"field\tp.Outer.count\tint\tprivate\tstatic\t3:5\n" +
		"constructor\tp.Outer.Outer\t-\t()\tpackage\t-\t4:5\n" +
		"method\tp.Outer.run\tvoid\t(String,int)\tpublic\t-\t5:5\n" +
		"enum\tp.Outer.Mode\tpackage\t6:5\n" +
		"constant\tp.Outer.Mode.ON\t6:17\n"
	if got := buf.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}
