package cli

import (
	"fmt"
	"path/filepath"

	"github.com/plandes/latidx/internal/latex"
)

// LookupError reports a source name that matched no known document. It
// is fatal to the single request that named the source.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no source found: %s", e.Name)
}

// resolveSource finds the dependency node a user-supplied name refers
// to among the project's documents, in three stages: exact file-name
// match, then full path match, then base file-name match. Documents
// reachable only as imports resolve the same way as root documents.
// Files are scanned in project order so ties resolve deterministically.
func resolveSource(proj *latex.Project, name string) (*latex.Dependency, error) {
	if _, err := proj.Dependencies(); err != nil {
		return nil, err
	}
	if dep, ok := proj.DependencyByName(name); ok {
		return dep, nil
	}
	for _, f := range proj.Files() {
		if f.Path() == name {
			if dep, ok := proj.DependencyByName(f.Name()); ok {
				return dep, nil
			}
		}
	}
	base := filepath.Base(name)
	for _, f := range proj.Files() {
		if f.Name() == base {
			if dep, ok := proj.DependencyByName(f.Name()); ok {
				return dep, nil
			}
		}
	}
	return nil, &LookupError{Name: name}
}
