package codebase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/skim/java/outline"
	"github.com/dhamidi/skim/java/parser"
)

var log = commonlog.GetLogger("skim.codebase")

type Option func(*Codebase)

func WithParserOptions(opts ...parser.Option) Option {
	return func(c *Codebase) {
		c.parserOpts = append(c.parserOpts, opts...)
	}
}

// WithExtensions sets the file extensions that are parsed, ".java" by default.
func WithExtensions(exts ...string) Option {
	return func(c *Codebase) {
		if len(exts) > 0 {
			c.extensions = exts
		}
	}
}

// WithWorkers bounds the number of files ScanAll parses at once.
func WithWorkers(n int) Option {
	return func(c *Codebase) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithSkipHidden makes scans skip directories whose name starts with a dot.
func WithSkipHidden(skip bool) Option {
	return func(c *Codebase) {
		c.skipHidden = skip
	}
}

// Codebase holds the latest parse of every source file under a root
// directory. Each update parses a private snapshot of the content, so
// readers never see a half-parsed file.
type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
	// issued is the last snapshot number handed out per path, stored the
	// number of the snapshot (or removal) files currently reflects.
	issued map[string]int
	stored map[string]int

	// beforeStore, when set, runs between parsing a snapshot and storing it.
	beforeStore func(*FileInfo)

	parserOpts []parser.Option
	extensions []string
	workers    int
	skipHidden bool
}

type FileInfo struct {
	Path    string
	Content []byte
	// Version numbers the snapshots of this path from 0. A newer snapshot
	// always has a higher version.
	Version     int
	RunID       uuid.UUID
	Fragments   []parser.Fragment
	Outline     *outline.File
	Diagnostics []outline.Diagnostic
	ParsedAt    time.Time
	Duration    time.Duration
}

func New(rootDir string, opts ...Option) *Codebase {
	c := &Codebase{
		rootDir:    rootDir,
		files:      make(map[string]*FileInfo),
		issued:     make(map[string]int),
		stored:     make(map[string]int),
		extensions: []string{".java"},
		workers:    4,
		skipHidden: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// Matches reports whether path has one of the parsed extensions.
func (c *Codebase) Matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (c *Codebase) skipDir(d fs.DirEntry, path string) bool {
	return c.skipHidden && path != c.rootDir && strings.HasPrefix(d.Name(), ".")
}

// walk calls fn for every matching file under the root.
func (c *Codebase) walk(fn func(path string, d fs.DirEntry) error) error {
	return filepath.WalkDir(c.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == c.rootDir {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if c.skipDir(d, path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !c.Matches(path) {
			return nil
		}
		return fn(path, d)
	})
}

// ScanAll parses every matching file under the root, several at a time.
// It stops at the first file that cannot be read.
func (c *Codebase) ScanAll(ctx context.Context) error {
	var paths []string
	if err := c.walk(func(path string, _ fs.DirEntry) error {
		paths = append(paths, path)
		return nil
	}); err != nil {
		return fmt.Errorf("scan %s: %w", c.rootDir, err)
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := c.ScanFile(path)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Infof("scanned %d files under %s in %s", len(paths), c.rootDir, time.Since(start))
	return nil
}

// ScanFile reads path from disk and parses it.
func (c *Codebase) ScanFile(path string) (*FileInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return c.UpdateFile(path, content), nil
}

// UpdateFile parses content as the new state of path. Snapshots are
// numbered when UpdateFile is called; a result is dropped when a newer
// snapshot of path was stored while it was being parsed, and the stored
// one is returned instead. The result is nil if path was removed meanwhile.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	snapshot := make([]byte, len(content))
	copy(snapshot, content)

	c.mu.Lock()
	c.issued[path]++
	seq := c.issued[path]
	c.mu.Unlock()

	info := c.parse(path, snapshot)
	info.Version = seq - 1
	if c.beforeStore != nil {
		c.beforeStore(info)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stored[path] > seq {
		log.Debugf("dropped snapshot %d of %s, %d is newer", seq, path, c.stored[path])
		return c.files[path]
	}
	c.stored[path] = seq
	c.files[path] = info
	return info
}

func (c *Codebase) parse(path string, content []byte) *FileInfo {
	info := &FileInfo{
		Path:     path,
		Content:  content,
		RunID:    uuid.New(),
		ParsedAt: time.Now(),
	}

	opts := append([]parser.Option{parser.WithFile(path), parser.WithComments()}, c.parserOpts...)
	p := parser.New(content, opts...)
	var out parser.Collector
	err := p.CompilationUnit(&out)

	var list parser.ErrorList
	switch {
	case errors.As(err, &list):
		for _, d := range list {
			info.Diagnostics = append(info.Diagnostics, outline.Diagnostic{Pos: d.Pos, Message: d.Message})
		}
	case err != nil:
		var syntaxErr *parser.SyntaxError
		if errors.As(err, &syntaxErr) {
			info.Diagnostics = append(info.Diagnostics, outline.Diagnostic{Pos: syntaxErr.Pos, Message: syntaxErr.Message})
		}
	}

	info.Fragments = out.Fragments()
	info.Outline = outline.FromFragments(info.Fragments, p.Comments())
	info.Outline.Path = path
	info.Outline.Diagnostics = info.Diagnostics
	info.Duration = time.Since(info.ParsedAt)

	log.Debugf("parsed %s (run %s) in %s with %d diagnostics", path, info.RunID, info.Duration, len(info.Diagnostics))
	return info
}

// RemoveFile drops path. Parses of older snapshots still running will not
// bring it back.
func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued[path]++
	c.stored[path] = c.issued[path]
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns every known file ordered by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

// Types returns all type declarations, nested ones included, keyed by
// their qualified name.
func (c *Codebase) Types() map[string]*outline.Type {
	types := make(map[string]*outline.Type)
	for _, f := range c.Files() {
		prefix := f.Outline.Package
		for _, t := range f.Outline.Types {
			collectTypes(types, prefix, t)
		}
	}
	return types
}

func collectTypes(into map[string]*outline.Type, prefix string, t *outline.Type) {
	name := t.Name
	if prefix != "" {
		name = prefix + "." + t.Name
	}
	into[name] = t
	for _, nested := range t.Types {
		collectTypes(into, name, nested)
	}
}

// FindType looks a type up by qualified name, or by simple name when that
// is unique.
func (c *Codebase) FindType(name string) *outline.Type {
	types := c.Types()
	if t, ok := types[name]; ok {
		return t
	}
	var found *outline.Type
	for qualified, t := range types {
		if qualified == name || strings.HasSuffix(qualified, "."+name) {
			if found != nil {
				return nil
			}
			found = t
		}
	}
	return found
}
