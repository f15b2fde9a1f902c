package format

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/skim/java/outline"
)

var testcasesDir string
var testFilter string

func init() {
	flag.StringVar(&testcasesDir, "testcases", "", "directory containing .java test files")
	flag.StringVar(&testFilter, "filter", "", "filter test files by substring match on filename")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

var stubSources = map[string]string{
	"generics": `class Cache<K extends Comparable<K>, V> implements Map<K, List<V>> {
    private Map<K, List<V>> index = new HashMap<>();
    public <R extends Number & Comparable<R>> R sum(Function<? super V, ? extends R> fn) { return null; }
}`,
	"nested": `public class Outer {
    static class Inner { int x; }
    interface Callback { void done(int code); }
    enum Mode { ON, OFF }
}`,
	"sealed": `public sealed interface Shape permits Circle, Square {
    double area();
}`,
	"annotated": `@Entity
public class User {
    @Id @GeneratedValue private Long id;
    @Deprecated(since = "2") public void old(@NonNull String s, final int... n) { }
}`,
}

// TestStubRoundTrip checks that rendered stubs parse cleanly and describe
// the same declarations as their source.
func TestStubRoundTrip(t *testing.T) {
	for name, src := range stubSources {
		t.Run(name, func(t *testing.T) {
			runStubRoundTrip(t, []byte(src))
		})
	}
}

// TestStubRoundTrip_Testcases runs the stub round trip over every .java
// file in the directory given by -testcases, or testcases/ above the
// working directory.
func TestStubRoundTrip_Testcases(t *testing.T) {
	dir := testcasesDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		for d := wd; d != "/" && d != "."; d = filepath.Dir(d) {
			candidate := filepath.Join(d, "testcases")
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				dir = candidate
				break
			}
		}
		if dir == "" {
			t.Skip("testcases directory not found; use -testcases flag to specify")
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".java") {
			if testFilter != "" && !strings.Contains(path, testFilter) {
				return nil
			}
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk testcases directory: %v", err)
	}
	if len(files) == 0 {
		t.Skipf("no .java files found in %s", dir)
	}

	for _, file := range files {
		relPath, err := filepath.Rel(dir, file)
		if err != nil {
			relPath = filepath.Base(file)
		}
		testName := strings.TrimSuffix(strings.ReplaceAll(relPath, string(filepath.Separator), "_"), ".java")
		t.Run(testName, func(t *testing.T) {
			source, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("failed to read file: %v", err)
			}
			runStubRoundTrip(t, source)
		})
	}
}

func runStubRoundTrip(t *testing.T, source []byte) {
	t.Helper()
	orig, err := outline.FromSource(source)
	if err != nil {
		t.Fatalf("FromSource error: %v", err)
	}
	if len(orig.Diagnostics) > 0 {
		t.Skipf("original file has parse errors")
	}

	var stub bytes.Buffer
	if err := NewJavaEncoder(&stub).Encode(orig); err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	again, err := outline.FromSource(stub.Bytes())
	if err != nil {
		t.Fatalf("FromSource on stub error: %v", err)
	}
	if len(again.Diagnostics) > 0 {
		t.Fatalf("stub has parse errors %v\n%s", again.Diagnostics, stub.String())
	}

	if got, want := declarations(again), declarations(orig); !reflect.DeepEqual(got, want) {
		t.Errorf("declarations differ\ngot  %v\nwant %v\n%s", got, want, stub.String())
	}
}

// declarations lists every type, field and method signature in a file.
func declarations(f *outline.File) []string {
	var result []string
	var walk func(prefix string, t *outline.Type)
	walk = func(prefix string, t *outline.Type) {
		name := prefix + t.Name
		result = append(result, string(t.Kind)+" "+name)
		for _, c := range t.EnumConstants {
			result = append(result, "constant "+name+"."+c.Name)
		}
		for _, fd := range t.Fields {
			result = append(result, "field "+name+"."+fd.Name+" "+fd.Type)
		}
		for _, m := range t.Methods {
			var params []string
			for _, p := range m.Parameters {
				params = append(params, p.Type)
			}
			result = append(result, "method "+name+"."+m.Name+"("+strings.Join(params, ",")+") "+m.ReturnType)
		}
		for _, nested := range t.Types {
			walk(name+".", nested)
		}
	}
	for _, t := range f.Types {
		walk("", t)
	}
	return result
}
