// Package render formats projects and dependency trees for display:
// left-aligned text trees, JSON, YAML, and per-file reports. Rendering
// never mutates the structures it is given, and output is deterministic
// with keys sorted lexicographically at every level.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/plandes/latidx/internal/latex"
)

// TreeText renders a nested tree mapping as a left-aligned ASCII tree.
func TreeText(tree map[string]any) string {
	var b strings.Builder
	for _, key := range sortedTreeKeys(tree) {
		b.WriteString(key + "\n")
		if child, ok := tree[key].(map[string]any); ok {
			renderChildren(&b, child, "")
		}
	}
	return b.String()
}

func renderChildren(b *strings.Builder, node map[string]any, prefix string) {
	keys := sortedTreeKeys(node)
	for i, key := range keys {
		b.WriteString(prefix + " +-- " + key + "\n")
		childPrefix := prefix + " |  "
		if i == len(keys)-1 {
			childPrefix = prefix + "    "
		}
		if child, ok := node[key].(map[string]any); ok {
			renderChildren(b, child, childPrefix)
		}
	}
}

// ToJSON marshals v as indented JSON. Map keys serialize in sorted
// order, keeping the output diff stable.
func ToJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encoding json: %w", err)
	}
	return string(data), nil
}

// ToYAML marshals v as YAML with sorted map keys.
func ToYAML(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	return string(data), nil
}

// WriteFiles writes the per-file artifact report for every project
// file, sorted by file name.
func WriteFiles(w io.Writer, p *latex.Project) error {
	byName := p.FilesByName()
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f := byName[name]
		writeLine(w, f.Path()+":", 0)
		if err := WriteFile(w, f, 1, false); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes one file's usepackages, newcommands and failures.
func WriteFile(w io.Writer, f *latex.LatexFile, depth int, includePath bool) error {
	if includePath {
		writeLine(w, "path: "+f.Path(), depth)
	}
	ups, err := f.UsePackages()
	if err != nil {
		return err
	}
	writeLine(w, "usepackages:", depth)
	for _, name := range sortedPackageNames(ups) {
		writeLine(w, ups[name].String(), depth+1)
	}
	cmds, err := f.NewCommands()
	if err != nil {
		return err
	}
	writeLine(w, "newcommands:", depth)
	for _, name := range sortedCommandNames(cmds) {
		writeLine(w, cmds[name].String(), depth+1)
	}
	if fails := f.Failures(); len(fails) > 0 {
		writeLine(w, "failures:", depth)
		for _, err := range fails {
			writeLine(w, err.Error(), depth+1)
		}
	}
	return nil
}

// WriteLocations writes the project-wide command location report.
func WriteLocations(w io.Writer, locs []*latex.CommandLocation) {
	for _, loc := range locs {
		cmd := loc.Command
		writeLine(w, cmd.Name, 0)
		writeLine(w, "command:", 1)
		writeLine(w, fmt.Sprintf("span: [%d %d]", cmd.Span[0], cmd.Span[1]), 2)
		if cmd.ArgSpec != "" {
			writeLine(w, "arg_spec: "+cmd.ArgSpec, 2)
		}
		if cmd.HasBody {
			writeLine(w, "body: "+cmd.Body, 2)
		}
		writeLine(w, "file: "+loc.File.Path(), 1)
	}
}

// FilesDict returns the project's files as a serializable mapping of
// file path to extracted artifacts, for the JSON and YAML file reports.
func FilesDict(p *latex.Project) (map[string]any, error) {
	out := make(map[string]any)
	for _, f := range p.FilesByName() {
		ups, err := f.UsePackages()
		if err != nil {
			return nil, err
		}
		upDict := make(map[string]any, len(ups))
		for name, up := range ups {
			upDict[name] = up.Pos
		}
		cmds, err := f.NewCommands()
		if err != nil {
			return nil, err
		}
		cmdDict := make(map[string]any, len(cmds))
		for name, cmd := range cmds {
			entry := map[string]any{
				"span":     []int{cmd.Span[0], cmd.Span[1]},
				"arg_spec": cmd.ArgSpec,
			}
			if cmd.HasBody {
				entry["body"] = cmd.Body
			}
			cmdDict[name] = entry
		}
		out[f.Path()] = map[string]any{
			"usepackages": upDict,
			"newcommands": cmdDict,
		}
	}
	return out, nil
}

const indent = "    "

func writeLine(w io.Writer, s string, depth int) {
	_, _ = fmt.Fprintf(w, "%s%s\n", strings.Repeat(indent, depth), s)
}

func sortedTreeKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedPackageNames(m map[string]*latex.UsePackage) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedCommandNames(m map[string]*latex.NewCommand) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
