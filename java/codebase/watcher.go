package codebase

import (
	"io/fs"
	"sync"
	"time"
)

// Event describes something the watcher did to the codebase.
type Event struct {
	Path    string
	Removed bool
	File    *FileInfo
}

// FileWatcher polls the codebase root and re-parses files whose
// modification time changed. Files that disappear are removed.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	startOnce    sync.Once
	stopOnce     sync.Once
	started      chan struct{}
	done         chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time

	// OnEvent, when set, is called after each change is applied. It runs
	// on the watcher goroutine.
	OnEvent func(Event)
}

func NewFileWatcher(c *Codebase, interval time.Duration) *FileWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		started:      make(chan struct{}),
		done:         make(chan struct{}),
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	w.startOnce.Do(func() {
		close(w.started)
		go w.run()
	})
}

// Stop ends polling and waits for the current scan to finish. It is safe
// to call on a watcher that was never started.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	select {
	case <-w.started:
		<-w.done
	default:
	}
}

// Shutdown stops the watcher when its injector shuts down.
func (w *FileWatcher) Shutdown() error {
	w.Stop()
	return nil
}

func (w *FileWatcher) run() {
	defer close(w.done)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *FileWatcher) scan() {
	currentFiles := make(map[string]bool)

	err := w.codebase.walk(func(path string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return nil
		}
		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			return nil
		}
		w.modTimes[path] = info.ModTime()
		file, err := w.codebase.ScanFile(path)
		if err != nil {
			log.Warningf("watch: %s", err)
			return nil
		}
		if file == nil {
			return nil
		}
		w.emit(Event{Path: path, File: file})
		return nil
	})
	if err != nil {
		log.Errorf("watch %s: %s", w.codebase.RootDir(), err)
		return
	}

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			w.emit(Event{Path: path, Removed: true})
		}
	}
}

func (w *FileWatcher) emit(e Event) {
	if w.OnEvent != nil {
		w.OnEvent(e)
	}
}
