package latex

import (
	"sort"

	"github.com/dominikbraun/graph"
)

// stySuffix is appended to an imported package name to form the lookup
// key against the project's files.
const stySuffix = ".sty"

// Project is a collection of LaTeX files used in one compilation, the
// facade over extraction and dependency resolution. All derived views
// are computed on first access and never invalidated; the underlying
// files are assumed not to change during a run. Instances are not safe
// for concurrent use.
type Project struct {
	files []*LatexFile

	byName map[string]*LatexFile

	depsSet bool
	deps    *Dependency
	nodes   map[string]*Dependency

	locs map[string]*CommandLocation
}

// NewProject creates a project over files. Order is preserved and
// determines which file wins when names collide.
func NewProject(files []*LatexFile) *Project {
	return &Project{files: files}
}

// NewProjectFromPaths creates a project over one file wrapper per path.
func NewProjectFromPaths(paths []string) *Project {
	files := make([]*LatexFile, len(paths))
	for i, p := range paths {
		files[i] = NewFile(p)
	}
	return NewProject(files)
}

// Files returns the project's files in construction order.
func (p *Project) Files() []*LatexFile { return p.files }

// FilesByName returns the project's files keyed by base name; for
// duplicate names the later file wins. Computed once and cached.
func (p *Project) FilesByName() map[string]*LatexFile {
	if p.byName == nil {
		p.byName = make(map[string]*LatexFile, len(p.files))
		for _, f := range p.files {
			p.byName[f.Name()] = f
		}
	}
	return p.byName
}

// Dependencies resolves the project's import graph and returns the
// synthetic root node. Resolution runs once; subsequent calls return
// the same tree. A file imported by another file nests under its
// importer instead of appearing at the root; every file stays reachable
// from the root, so an import cycle with no outside importer keeps one
// of its files as a root target.
func (p *Project) Dependencies() (*Dependency, error) {
	if p.depsSet {
		return p.deps, nil
	}
	memo := make(map[string]*Dependency)
	for _, f := range p.files {
		if _, err := p.resolve(f, memo); err != nil {
			return nil, err
		}
	}
	roots, err := rootNames(memo)
	if err != nil {
		return nil, err
	}
	targets := make(map[string]*Dependency, len(roots))
	for _, name := range roots {
		targets[name] = memo[name]
	}
	p.nodes = memo
	p.deps = &Dependency{Targets: targets}
	p.depsSet = true
	return p.deps, nil
}

// rootNames selects the files kept as root targets: one file per import
// component that no file outside the component imports. For an acyclic
// component that is the lone unimported file; a mutual import cycle
// contributes its first file name, through which the rest of the cycle
// stays reachable.
func rootNames(memo map[string]*Dependency) ([]string, error) {
	g := graph.New(graph.StringHash, graph.Directed())
	for name := range memo {
		_ = g.AddVertex(name)
	}
	for name, dep := range memo {
		for t, targ := range dep.Targets {
			// a self-import does not demote a file from the root
			if targ != nil && targ != dep {
				_ = g.AddEdge(name, t)
			}
		}
	}
	sccs, err := graph.StronglyConnectedComponents(g)
	if err != nil {
		return nil, err
	}
	comp := make(map[string]int, len(memo))
	for i, scc := range sccs {
		for _, name := range scc {
			comp[name] = i
		}
	}
	imported := make(map[int]bool)
	for name, dep := range memo {
		for t, targ := range dep.Targets {
			if targ != nil && targ != dep && comp[name] != comp[t] {
				imported[comp[t]] = true
			}
		}
	}
	var roots []string
	for i, scc := range sccs {
		if imported[i] {
			continue
		}
		sort.Strings(scc)
		roots = append(roots, scc[0])
	}
	sort.Strings(roots)
	return roots, nil
}

// DependencyByName returns the resolved dependency node for the named
// project file. Dependencies must have run first; before resolution no
// names are known.
func (p *Project) DependencyByName(name string) (*Dependency, bool) {
	d, ok := p.nodes[name]
	return d, ok
}

// resolve expands f's imports recursively, sharing all nodes through
// memo. The node is inserted into memo before its imports are expanded,
// so diamond imports resolve to the same instance and import cycles
// terminate by resolving back to the still-filling-in node.
func (p *Project) resolve(f *LatexFile, memo map[string]*Dependency) (*Dependency, error) {
	if dep, ok := memo[f.Name()]; ok {
		return dep, nil
	}
	dep := &Dependency{Source: f, Targets: make(map[string]*Dependency)}
	memo[f.Name()] = dep
	names, err := f.ImportNames()
	if err != nil {
		return nil, err
	}
	byName := p.FilesByName()
	for _, name := range names {
		key := name + stySuffix
		targ, ok := byName[key]
		if !ok {
			dep.Targets[key] = nil // orphan
			continue
		}
		child, err := p.resolve(targ, memo)
		if err != nil {
			return nil, err
		}
		dep.Targets[key] = child
	}
	return dep, nil
}

// DependencyFiles returns the files at the top level of the dependency
// tree, those not imported by any other project file.
func (p *Project) DependencyFiles() ([]*LatexFile, error) {
	deps, err := p.Dependencies()
	if err != nil {
		return nil, err
	}
	byName := p.FilesByName()
	var files []*LatexFile
	for _, name := range sortedKeys(deps.Targets) {
		if f, ok := byName[name]; ok {
			files = append(files, f)
		}
	}
	return files, nil
}

// CommandLocationsByName returns every macro definition across the
// project keyed by macro name; for same-named macros the last file in
// project order wins. Computed once and cached.
func (p *Project) CommandLocationsByName() (map[string]*CommandLocation, error) {
	if p.locs == nil {
		locs := make(map[string]*CommandLocation)
		byName := p.FilesByName()
		for _, f := range p.files {
			if byName[f.Name()] != f {
				continue // shadowed by a later file with the same name
			}
			cmds, err := f.NewCommands()
			if err != nil {
				return nil, err
			}
			for name, cmd := range cmds {
				locs[name] = &CommandLocation{Command: cmd, File: f}
			}
		}
		p.locs = locs
	}
	return p.locs, nil
}

// CommandLocations returns all command locations sorted by command name
// for stable display.
func (p *Project) CommandLocations() ([]*CommandLocation, error) {
	byName, err := p.CommandLocationsByName()
	if err != nil {
		return nil, err
	}
	locs := make([]*CommandLocation, 0, len(byName))
	for _, loc := range byName {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool {
		return locs[i].Command.Name < locs[j].Command.Name
	})
	return locs, nil
}

// ImportCycles returns the import cycles among the project's files as
// sorted file name groups, one per strongly connected component of the
// import edge set (self-imports included). Resolution itself stays
// silent about cycles; this is a diagnostic view only.
func (p *Project) ImportCycles() ([][]string, error) {
	g := graph.New(graph.StringHash, graph.Directed())
	byName := p.FilesByName()
	for name := range byName {
		_ = g.AddVertex(name)
	}
	for _, f := range p.files {
		names, err := f.ImportNames()
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			key := name + stySuffix
			if _, ok := byName[key]; ok {
				_ = g.AddEdge(f.Name(), key)
			}
		}
	}
	sccs, err := graph.StronglyConnectedComponents(g)
	if err != nil {
		return nil, err
	}
	var cycles [][]string
	for _, scc := range sccs {
		if len(scc) == 1 {
			if _, err := g.Edge(scc[0], scc[0]); err != nil {
				continue // no self-import
			}
		}
		sort.Strings(scc)
		cycles = append(cycles, scc)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles, nil
}
