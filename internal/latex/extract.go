package latex

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/plandes/latidx/internal/walker"
)

// groupScanLimit bounds the forward scan for the usepackage name group
// when option text separates it from the macro.
const groupScanLimit = 5

// artifacts holds the result of one extraction pass over a file's node
// sequence. importOrder preserves declaration insertion order: a
// replaced package keeps its original position.
type artifacts struct {
	usepackages map[string]*UsePackage
	importOrder []string
	newcommands map[string]*NewCommand
	failures    []error
}

// extract scans nodes in a single linear pass and recovers the two
// recognized macro forms: `\usepackage` imports and `\*command` macro
// definitions. Malformed occurrences are recorded as failures and the
// scan continues with the next node; it never aborts.
func extract(nodes []walker.Node, path, content string) *artifacts {
	a := &artifacts{
		usepackages: make(map[string]*UsePackage),
		newcommands: make(map[string]*NewCommand),
	}
	for i, n := range nodes {
		if n.Kind != walker.KindMacro {
			continue
		}
		switch {
		case n.Name == "usepackage":
			up, err := extractPackage(nodes, i, path, content)
			if err != nil {
				a.failures = append(a.failures, err)
				continue
			}
			if prev, ok := a.usepackages[up.Name]; ok {
				slog.Info("replacing previous usepackage",
					"prev", prev, "next", up, "path", path)
			} else {
				a.importOrder = append(a.importOrder, up.Name)
			}
			a.usepackages[up.Name] = up
		case strings.HasSuffix(n.Name, "command"):
			nc, err := extractCommand(nodes, i, path, content)
			if err != nil {
				a.failures = append(a.failures, err)
				continue
			}
			if nc != nil {
				// last definition of a name wins
				a.newcommands[nc.Name] = nc
			}
		}
	}
	return a
}

// extractPackage parses `\usepackage[options]{name}` starting at the
// macro node at index i. The node source splits bracketed options into a
// sibling character run, so the name group is either the next node or
// follows the options run.
func extractPackage(nodes []walker.Node, i int, path, content string) (*UsePackage, error) {
	n := nodes[i]
	if i+1 >= len(nodes) {
		return nil, &ParseError{path, n.Pos, "unexpected end of input after \\usepackage"}
	}
	var nameGroup walker.Node
	switch next := nodes[i+1]; next.Kind {
	case walker.KindGroup:
		nameGroup = next
	case walker.KindChars:
		g, err := groupAt(nodes, i+2, path, n.Pos)
		if err != nil {
			return nil, err
		}
		nameGroup = g
	default:
		return nil, &ParseError{path, n.Pos,
			fmt.Sprintf("unknown usepackage syntax: %s", next)}
	}
	if len(nameGroup.Children) == 0 || nameGroup.Children[0].Kind != walker.KindChars {
		return nil, &ParseError{path, nameGroup.Pos, "expecting character node in package name group"}
	}
	if !strings.HasSuffix(nameGroup.Verbatim(content), "}") {
		return nil, &ParseError{path, nameGroup.Pos, "unterminated package name group"}
	}
	return &UsePackage{Name: nameGroup.Children[0].Text, Pos: n.Pos}, nil
}

// groupAt returns the first group node at or shortly after index i,
// skipping past nodes embedded in the option text.
func groupAt(nodes []walker.Node, i int, path string, pos int) (walker.Node, error) {
	for off := 0; off < groupScanLimit && i+off < len(nodes); off++ {
		if n := nodes[i+off]; n.Kind == walker.KindGroup {
			return n, nil
		}
	}
	return walker.Node{}, &ParseError{path, pos, "expecting group node"}
}

// extractCommand parses a `\newcommand`/`\renewcommand`/`\providecommand`
// definition starting at the macro node at index i. Definitions whose
// shape the extractor does not model are skipped with an informational
// log entry; they are not failures.
func extractCommand(nodes []walker.Node, i int, path, content string) (*NewCommand, error) {
	n := nodes[i]
	if i+1 >= len(nodes) {
		return nil, &ParseError{path, n.Pos, "unexpected end of input after \\" + n.Name}
	}
	next := nodes[i+1]
	if next.Kind != walker.KindGroup ||
		len(next.Children) == 0 ||
		next.Children[0].Kind != walker.KindMacro {
		slog.Info("skipping unsupported macro definition syntax",
			"macro", n.Name, "pos", n.Pos, "path", path)
		return nil, nil
	}
	inner := next.Children[0]

	// Nodes between the name group and the body form the argument
	// specification; the scan stops at the first group or comment.
	var spec strings.Builder
	last := next
	j := i + 2
	for j < len(nodes) &&
		nodes[j].Kind != walker.KindGroup &&
		nodes[j].Kind != walker.KindComment {
		spec.WriteString(nodes[j].Verbatim(content))
		last = nodes[j]
		j++
	}

	nc := &NewCommand{Name: inner.Name, ArgSpec: spec.String()}
	end := last.End()
	if j < len(nodes) && nodes[j].Kind == walker.KindGroup {
		body := nodes[j]
		nc.Body = body.Contents(content)
		nc.HasBody = true
		end = body.End()
	}
	nc.Span = [2]int{n.Pos, end}
	nc.Definition = content[n.Pos:end]
	return nc, nil
}
