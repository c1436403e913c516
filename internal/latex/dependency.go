package latex

import (
	"path/filepath"
	"sort"
	"strings"
)

// Dependency is one node of a project's import graph. Source is nil for
// the synthetic root node only. Targets maps the resolved import key
// (package name plus ".sty") to the imported file's node; a nil value
// marks an orphan, a package that was imported but has no matching file
// in the project.
//
// Within one resolution run all references to a file's node are the
// identical shared instance, so diamond imports share structure and
// cyclic imports terminate. Targets is immutable once resolution
// completes.
type Dependency struct {
	Source  *LatexFile
	Targets map[string]*Dependency

	baseDirSet bool
	baseDir    string
}

// IsRoot reports whether the node is the synthetic project root.
func (d *Dependency) IsRoot() bool { return d.Source == nil }

// Get returns the target node under name. The boolean reports whether
// the name is a target at all; a present orphan yields (nil, true).
func (d *Dependency) Get(name string) (*Dependency, bool) {
	t, ok := d.Targets[name]
	return t, ok
}

// Contains reports whether name is one of the node's targets.
func (d *Dependency) Contains(name string) bool {
	_, ok := d.Targets[name]
	return ok
}

// Orphans returns the sorted target names that were imported but have
// no matching file in the project. These typically include installed
// base packages (i.e. hyperref).
func (d *Dependency) Orphans() []string {
	var orphans []string
	for name, t := range d.Targets {
		if t == nil {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)
	return orphans
}

// Files returns every file reachable from the node: its own source file
// (except for the root) and, post-order, all resolved targets. Shared
// nodes are visited once, so the result is duplicate free and traversal
// terminates on cyclic graphs.
func (d *Dependency) Files() []*LatexFile {
	return d.collectFiles(make(map[*Dependency]struct{}))
}

func (d *Dependency) collectFiles(seen map[*Dependency]struct{}) []*LatexFile {
	if _, ok := seen[d]; ok {
		return nil
	}
	seen[d] = struct{}{}
	var files []*LatexFile
	for _, name := range sortedKeys(d.Targets) {
		if t := d.Targets[name]; t != nil {
			files = append(files, t.collectFiles(seen)...)
		}
	}
	if d.Source != nil {
		files = append(files, d.Source)
	}
	return files
}

// FilePaths returns the sorted absolute paths of all reachable files.
func (d *Dependency) FilePaths() []string {
	files := d.Files()
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, absPath(f.Path()))
	}
	sort.Strings(paths)
	return paths
}

// BaseDir returns the deepest common ancestor directory of all files
// reachable from the node, used for relative path rendering. It is
// empty for the root node and when no files are reachable. Computed
// once and cached.
func (d *Dependency) BaseDir() string {
	if d.baseDirSet {
		return d.baseDir
	}
	d.baseDirSet = true
	if d.Source == nil {
		return ""
	}
	paths := d.FilePaths()
	if len(paths) == 0 {
		return ""
	}
	// candidate: directory of the path with the fewest segments
	base := filepath.Dir(paths[0])
	for _, p := range paths[1:] {
		if dir := filepath.Dir(p); pathSegments(dir) < pathSegments(base) {
			base = dir
		}
	}
	for _, p := range paths {
		for base != "" && !underDir(base, p) {
			parent := filepath.Dir(base)
			if parent == base {
				break
			}
			base = parent
		}
	}
	d.baseDir = base
	return base
}

// Tree returns the dependency structure as a nested mapping of string
// keys to child mappings, suitable for JSON or YAML serialization. When
// includeRelativePath is set, resolved keys are paths relative to
// BaseDir instead of bare file names. Key order is left to the
// serializer, which sorts lexicographically.
func (d *Dependency) Tree(includeRelativePath bool) map[string]any {
	var base string
	if includeRelativePath {
		base = d.BaseDir()
	}
	return map[string]any{d.label(base): d.flatTree(base, make(map[*Dependency]struct{}))}
}

// flatTree expands targets recursively. path tracks the nodes on the
// current expansion path; a cyclic reference back into the path is
// emitted with empty children rather than expanded again.
func (d *Dependency) flatTree(base string, path map[*Dependency]struct{}) map[string]any {
	path[d] = struct{}{}
	defer delete(path, d)
	dct := make(map[string]any, len(d.Targets))
	for name, targ := range d.Targets {
		key := name
		childs := map[string]any{}
		if targ != nil {
			if base != "" {
				key = targ.label(base)
			}
			if _, cyclic := path[targ]; !cyclic {
				childs = targ.flatTree(base, path)
			}
		}
		dct[key] = childs
	}
	return dct
}

// label is the node's display key: "root" for the root marker, the
// base-relative path when base is set, the file name otherwise.
func (d *Dependency) label(base string) string {
	if d.Source == nil {
		return "root"
	}
	if base != "" {
		if rel, err := filepath.Rel(base, absPath(d.Source.Path())); err == nil {
			return rel
		}
	}
	return d.Source.Name()
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func pathSegments(path string) int {
	return strings.Count(path, string(filepath.Separator))
}

// underDir reports whether path is dir itself or contained within it.
func underDir(dir, path string) bool {
	if path == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dir)
}

func sortedKeys(m map[string]*Dependency) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
