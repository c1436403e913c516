package latex

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/plandes/latidx/internal/walker"
)

// LatexFile wraps one LaTeX file (.tex, .sty, etc) and its parsed
// artifacts. Content is read exactly once and imports and macro
// definitions are computed together in a single extraction pass on
// first access; none of the cached fields is ever recomputed. Instances
// are not safe for concurrent use.
type LatexFile struct {
	path string

	loaded  bool
	content string

	parsed bool
	arts   *artifacts
}

// NewFile creates a file wrapper for path. Nothing is read until the
// content or a parsed artifact is first accessed.
func NewFile(path string) *LatexFile {
	return &LatexFile{path: path}
}

// Path returns the file's path as given at construction.
func (f *LatexFile) Path() string { return f.path }

// Name returns the base name of the file's path.
func (f *LatexFile) Name() string { return filepath.Base(f.path) }

// Content returns the file's text, reading it from disk on the first
// call only. A read failure propagates to the caller.
func (f *LatexFile) Content() (string, error) {
	if !f.loaded {
		slog.Debug("reading", "path", f.path)
		data, err := os.ReadFile(f.path)
		if err != nil {
			return "", fmt.Errorf("reading latex file: %w", err)
		}
		f.content = string(data)
		f.loaded = true
	}
	return f.content, nil
}

func (f *LatexFile) artifacts() (*artifacts, error) {
	if !f.parsed {
		content, err := f.Content()
		if err != nil {
			return nil, err
		}
		f.arts = extract(walker.Parse(content), f.path, content)
		f.parsed = true
	}
	return f.arts, nil
}

// UsePackages returns the file's `\usepackage` declarations keyed by
// package name. The returned map is the cached instance and must not be
// mutated.
func (f *LatexFile) UsePackages() (map[string]*UsePackage, error) {
	a, err := f.artifacts()
	if err != nil {
		return nil, err
	}
	return a.usepackages, nil
}

// ImportNames returns the imported package names in declaration order.
// A replaced declaration keeps its original position.
func (f *LatexFile) ImportNames() ([]string, error) {
	a, err := f.artifacts()
	if err != nil {
		return nil, err
	}
	return a.importOrder, nil
}

// NewCommands returns the file's macro definitions keyed by the defined
// macro name. The returned map is the cached instance and must not be
// mutated.
func (f *LatexFile) NewCommands() (map[string]*NewCommand, error) {
	a, err := f.artifacts()
	if err != nil {
		return nil, err
	}
	return a.newcommands, nil
}

// Failures returns the parse failures accumulated during extraction, in
// occurrence order. It is empty before the file has been parsed and for
// files that parsed cleanly.
func (f *LatexFile) Failures() []error {
	if f.arts == nil {
		return nil
	}
	return f.arts.failures
}

func (f *LatexFile) String() string { return f.Name() }
