package codebase

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherScan(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "A.java")
	writeFile(t, path, "class A {}")

	c := New(root)
	w := NewFileWatcher(c, time.Hour)
	var events []Event
	w.OnEvent = func(e Event) {
		events = append(events, e)
	}

	w.scan()
	if len(events) != 1 || events[0].Path != path || events[0].Removed {
		t.Fatalf("after add: events = %+v", events)
	}
	if c.GetFile(path) == nil {
		t.Fatal("file not parsed")
	}

	events = nil
	w.scan()
	if len(events) != 0 {
		t.Errorf("unchanged file produced events: %+v", events)
	}

	writeFile(t, path, "class A { int x; }")
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	w.scan()
	if len(events) != 1 || events[0].File == nil {
		t.Fatalf("after change: events = %+v", events)
	}
	if got := len(events[0].File.Outline.Types[0].Fields); got != 1 {
		t.Errorf("got %d fields, want 1", got)
	}

	events = nil
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	w.scan()
	if len(events) != 1 || !events[0].Removed {
		t.Fatalf("after remove: events = %+v", events)
	}
	if c.GetFile(path) != nil {
		t.Error("removed file still in codebase")
	}
}

func TestWatcherStartStop(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A.java"), "class A {}")

	c := New(root)
	w := NewFileWatcher(c, 10*time.Millisecond)
	w.Start()
	deadline := time.Now().Add(5 * time.Second)
	for len(c.Files()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()
	w.Stop()

	if len(c.Files()) != 1 {
		t.Errorf("got %d files, want 1", len(c.Files()))
	}
}

func TestWatcherStopWithoutStart(t *testing.T) {
	w := NewFileWatcher(New(t.TempDir()), time.Second)
	if err := w.Shutdown(); err != nil {
		t.Errorf("Shutdown error: %v", err)
	}
}
