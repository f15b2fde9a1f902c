package codebase

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src/p/A.java"), "package p;\npublic class A { class Inner {} }")
	writeFile(t, filepath.Join(root, "src/p/B.java"), "package p;\ninterface B { void run(); }")
	writeFile(t, filepath.Join(root, "src/q/C.java"), "package q;\nenum C { X, Y }")
	writeFile(t, filepath.Join(root, ".hidden/D.java"), "class D {}")
	writeFile(t, filepath.Join(root, "README.md"), "not java")

	c := New(root, WithWorkers(2))
	if err := c.ScanAll(context.Background()); err != nil {
		t.Fatalf("ScanAll error: %v", err)
	}

	files := c.Files()
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3", len(files))
	}
	for i := 1; i < len(files); i++ {
		if files[i-1].Path >= files[i].Path {
			t.Errorf("files not sorted: %s before %s", files[i-1].Path, files[i].Path)
		}
	}

	types := c.Types()
	for _, name := range []string{"p.A", "p.A.Inner", "p.B", "q.C"} {
		if types[name] == nil {
			t.Errorf("type %s missing", name)
		}
	}
	if _, ok := types["D"]; ok {
		t.Error("hidden directory was scanned")
	}
}

func TestScanAllCanceled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A.java"), "class A {}")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := New(root).ScanAll(ctx); err == nil {
		t.Error("want an error from a canceled scan")
	}
}

func TestScanAllMissingRoot(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "absent"))
	if err := c.ScanAll(context.Background()); err == nil {
		t.Error("want an error for a missing root")
	}
}

func TestUpdateFile(t *testing.T) {
	c := New(t.TempDir())
	path := "/virtual/A.java"

	first := c.UpdateFile(path, []byte("class A {}"))
	if first.Version != 0 || first.RunID == uuid.Nil {
		t.Errorf("first update: version %d run %s", first.Version, first.RunID)
	}
	if len(first.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics %v", first.Diagnostics)
	}

	content := []byte("class A { int x = ; }")
	second := c.UpdateFile(path, content)
	if second.Version != 1 {
		t.Errorf("Version = %d, want 1", second.Version)
	}
	if second.RunID == first.RunID {
		t.Error("run ids repeat")
	}
	if len(second.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(second.Diagnostics))
	}
	if got := second.Diagnostics[0].Pos.File; got != path {
		t.Errorf("diagnostic file = %q, want %q", got, path)
	}
	if second.Outline.Path != path || len(second.Outline.Types) != 1 {
		t.Errorf("outline = %+v", second.Outline)
	}

	content[0] = 'X'
	if c.GetFile(path).Content[0] != 'c' {
		t.Error("stored content aliases the caller's buffer")
	}

	c.RemoveFile(path)
	if c.GetFile(path) != nil {
		t.Error("file still present after RemoveFile")
	}
}

func TestFindType(t *testing.T) {
	c := New(t.TempDir())
	c.UpdateFile("a/Util.java", []byte("package a; class Util {}"))
	c.UpdateFile("b/Util.java", []byte("package b; class Util { class Helper {} }"))
	c.UpdateFile("Main.java", []byte("class Main {}"))

	tests := []struct {
		name  string
		found bool
	}{
		{"a.Util", true},
		{"b.Util.Helper", true},
		{"Helper", true},
		{"Main", true},
		{"Util", false}, // ambiguous
		{"Missing", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.FindType(tt.name) != nil; got != tt.found {
				t.Errorf("found = %v, want %v", got, tt.found)
			}
		})
	}
}

func TestConcurrentUpdates(t *testing.T) {
	c := New(t.TempDir())
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.UpdateFile("Shared.java", []byte("class Shared { List<Map<K, V>> m; }"))
			_ = c.Types()
		}()
	}
	wg.Wait()
	if got := c.GetFile("Shared.java").Version; got != 15 {
		t.Errorf("Version = %d, want 15", got)
	}
}

func TestMatches(t *testing.T) {
	c := New(".", WithExtensions(".java", ".jav"))
	tests := []struct {
		path string
		want bool
	}{
		{"A.java", true},
		{"dir/B.jav", true},
		{"C.kt", false},
		{"java", false},
	}
	for _, tt := range tests {
		if got := c.Matches(tt.path); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

// bigClass returns a class whose parse takes noticeably longer than an
// empty one.
func bigClass(name string, statements int) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "class %s { void m() {\n", name)
	for i := 0; i < statements; i++ {
		fmt.Fprintf(&sb, "  int v%d = %d;\n", i, i)
	}
	sb.WriteString("} }\n")
	return []byte(sb.String())
}

type gate struct {
	arrived chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{arrived: make(chan struct{}), release: make(chan struct{})}
}

func TestUpdateFileKeepsNewestSnapshot(t *testing.T) {
	tests := []struct {
		name  string
		order []string
	}{
		{"older stores last", []string{"New", "Old"}},
		{"newer stores last", []string{"Old", "New"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(t.TempDir())
			gates := map[string]*gate{"Old": newGate(), "New": newGate()}
			c.beforeStore = func(info *FileInfo) {
				for name, g := range gates {
					if bytes.HasPrefix(info.Content, []byte("class "+name)) {
						close(g.arrived)
						<-g.release
					}
				}
			}

			results := map[string]chan *FileInfo{"Old": make(chan *FileInfo, 1), "New": make(chan *FileInfo, 1)}
			sources := map[string][]byte{"Old": bigClass("Old", 5000), "New": []byte("class New {}")}
			for _, name := range []string{"Old", "New"} {
				name := name
				go func() { results[name] <- c.UpdateFile("A.java", sources[name]) }()
				<-gates[name].arrived
			}
			for _, name := range tt.order {
				close(gates[name].release)
				<-results[name]
			}

			stored := c.GetFile("A.java")
			if got := stored.Outline.Types[0].Name; got != "New" {
				t.Errorf("stored type = %s, want New", got)
			}
			if stored.Version != 1 {
				t.Errorf("Version = %d, want 1", stored.Version)
			}
		})
	}
}

func TestUpdateFileDroppedAfterRemove(t *testing.T) {
	c := New(t.TempDir())
	held := make(chan struct{})
	release := make(chan struct{})
	c.beforeStore = func(*FileInfo) {
		close(held)
		<-release
	}

	done := make(chan *FileInfo)
	go func() { done <- c.UpdateFile("A.java", []byte("class A {}")) }()
	<-held
	c.RemoveFile("A.java")
	close(release)

	if info := <-done; info != nil {
		t.Errorf("UpdateFile returned %+v, want nil after removal", info)
	}
	if c.GetFile("A.java") != nil {
		t.Error("removed file came back")
	}
}
