// Package discover finds candidate LaTeX files to index. Candidate
// files are those considered for parsing: they match one of the
// configured extensions and are not excluded by a .gitignore at the
// walked directory root.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/plandes/latidx/internal/latex"
)

// NotFoundError reports a requested path that does not exist. It is
// fatal to project construction.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such file or directory: %s", e.Path)
}

// DefaultExtensions are the file extensions considered for parsing when
// none are configured.
var DefaultExtensions = []string{"tex", "sty"}

// Indexer discovers and parses LaTeX files.
type Indexer struct {
	// Extensions of candidate files, without the leading dot.
	Extensions []string
	// Recurse descends into sub-directories when searching candidates.
	Recurse bool
}

// New returns an indexer with the default extensions and recursion
// enabled.
func New() Indexer {
	return Indexer{Extensions: DefaultExtensions, Recurse: true}
}

// CandidateFiles expands path into the files to parse. A file path is
// returned iff its extension matches; a directory is walked in sorted
// entry order, descending into sub-directories only when Recurse is
// set. A missing path is a *NotFoundError.
func (ix Indexer) CandidateFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &NotFoundError{Path: path}
	}
	if !info.IsDir() {
		if ix.matches(path) {
			return []string{path}, nil
		}
		return nil, nil
	}
	var out []string
	if err := ix.walk(path, path, loadGitignore(path), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (ix Indexer) walk(root, dir string, gi *ignore.GitIgnore, out *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory: %w", err)
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if gi != nil {
			if rel, err := filepath.Rel(root, path); err == nil && gi.MatchesPath(rel) {
				continue
			}
		}
		if e.IsDir() {
			if ix.Recurse {
				if err := ix.walk(root, path, gi, out); err != nil {
					return err
				}
			}
			continue
		}
		if ix.matches(path) {
			*out = append(*out, path)
		}
	}
	return nil
}

func (ix Indexer) matches(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, e := range ix.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// CreateProject expands every path and builds a project over the
// candidates in discovery order.
func (ix Indexer) CreateProject(paths []string) (*latex.Project, error) {
	var candidates []string
	for _, p := range paths {
		found, err := ix.CandidateFiles(p)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, found...)
	}
	return latex.NewProjectFromPaths(candidates), nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
