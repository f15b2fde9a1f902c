package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/skim/java/parser"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTypeSpecCommand(t *testing.T) {
	out, err := run(t, "", "typespec", "int[]")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	want := "TypeSpec\n  int int\n  [ [\n  ] ]\n"
	if out != want {
		t.Errorf("got\n%s\nwant\n%s", out, want)
	}
}

func TestStmtCommandFromStdin(t *testing.T) {
	out, err := run(t, "return a < b;", "stmt", "-f", "json", "-")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if !strings.Contains(out, `"label": "ReturnStmt"`) {
		t.Errorf("output lacks ReturnStmt\n%s", out)
	}
}

func TestStmtCommandSyntaxError(t *testing.T) {
	_, err := run(t, "", "stmt", "int x = ;")
	if err == nil {
		t.Fatal("want an error")
	}
	var buf bytes.Buffer
	printError(&buf, err)
	if !strings.HasPrefix(buf.String(), "1:9: ") || !strings.Contains(buf.String(), `expected expression, got ";"`) {
		t.Errorf("error output = %q", buf.String())
	}
}

func TestParseCommandReportsEveryError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Broken.java")
	src := "class Broken {\n  int a = ;\n  void ok() {}\n  int b = ;\n}\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "", "parse", path)
	if !strings.Contains(out, "Method") {
		t.Errorf("recovered tree lacks the method\n%s", out)
	}
	list, ok := err.(parser.ErrorList)
	if !ok {
		t.Fatalf("error = %T %v, want an ErrorList", err, err)
	}
	if len(list) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(list), list)
	}
	for _, e := range list {
		if e.Pos.File != path {
			t.Errorf("error file = %q, want %q", e.Pos.File, path)
		}
	}
}

func TestTypeDefCommand(t *testing.T) {
	out, err := run(t, "", "typedef", "record P(int x) {}")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if !strings.HasPrefix(out, "TypeDef\n") || !strings.Contains(out, "RecordHeader") {
		t.Errorf("got\n%s", out)
	}
}

func TestOutlineCommandNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A.java")
	if err := os.WriteFile(path, []byte("class A {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "", "outline", "-f", "line", path)
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if want := "class\tA\tpackage\t" + path + ":1:1\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestOutlineCommand(t *testing.T) {
	src := "package p;\nclass A { int x; void run() {} }\n"
	out, err := run(t, src, "outline", "-f", "line", "-")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	want := "class\tp.A\tpackage\t2:1\n" +
		"field\tp.A.x\tint\tpackage\t-\t2:11\n" +
		"method\tp.A.run\tvoid\t()\tpackage\t-\t2:18\n"
	if out != want {
		t.Errorf("got\n%s\nwant\n%s", out, want)
	}
}

func TestTokensCommand(t *testing.T) {
	out, err := run(t, "a >>= b; // done", "tokens", "-")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	want := "<stdin>:1:1\tIdentifier\t\"a\"\n" +
		"<stdin>:1:3\t>>=\t\">>=\"\n" +
		"<stdin>:1:7\tIdentifier\t\"b\"\n" +
		"<stdin>:1:8\t;\t\";\"\n"
	if out != want {
		t.Errorf("got\n%s\nwant\n%s", out, want)
	}
}

func TestGrammarCheckCommand(t *testing.T) {
	out, err := run(t, "", "grammar", "check")
	if err != nil {
		t.Fatalf("error: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "ok: ") {
		t.Errorf("got %q", out)
	}

	path := filepath.Join(t.TempDir(), "bad.ebnf")
	if err := os.WriteFile(path, []byte(`Start = Missing .`), 0644); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "", "grammar", "check", "--start", "Start", path)
	if err == nil {
		t.Fatal("want an error")
	}
	if !strings.Contains(out, "Missing") {
		t.Errorf("output lacks the missing production: %q", out)
	}
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skim.toml")
	if err := os.WriteFile(path, []byte("[scan]\nworkers = 7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "", "--config", path, "config")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if !strings.Contains(out, "workers = 7") {
		t.Errorf("output lacks the configured workers\n%s", out)
	}

	if _, err := run(t, "", "--config", filepath.Join(t.TempDir(), "absent.toml"), "config"); err == nil {
		t.Error("want an error for a missing config file")
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := run(t, "", "typespec", "-f", "yaml", "int"); err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("error = %v", err)
	}
	if _, err := run(t, "", "outline", "-f", "yaml", "-"); err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("error = %v", err)
	}
}
