// Package walker parses LaTeX source text into a flat sequence of typed
// nodes: macros, brace groups, character runs, and comments. Each node
// carries its absolute offset and length in the original text, so the
// exact source slice of any node can be recovered.
package walker

import "fmt"

// Kind discriminates the node variants.
type Kind int

const (
	KindMacro Kind = iota
	KindGroup
	KindChars
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindMacro:
		return "macro"
	case KindGroup:
		return "group"
	case KindChars:
		return "chars"
	case KindComment:
		return "comment"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is one parsed LaTeX artifact. Pos is the absolute 0-based offset
// into the parsed text and Len the number of bytes the node spans. Name
// is set for macros (without the backslash), Text for character runs,
// Children for groups.
type Node struct {
	Kind     Kind
	Pos      int
	Len      int
	Name     string
	Text     string
	Children []Node
}

// End returns the offset one past the node's last byte.
func (n Node) End() int { return n.Pos + n.Len }

// Verbatim returns the exact source slice the node spans.
func (n Node) Verbatim(text string) string { return text[n.Pos:n.End()] }

// Contents returns the text between a group's braces. For non-group
// nodes it is equivalent to Verbatim.
func (n Node) Contents(text string) string {
	if n.Kind != KindGroup || n.Len < 2 {
		return n.Verbatim(text)
	}
	end := n.End() - 1
	if text[end] != '}' {
		// unclosed group: runs to end of input
		end = n.End()
	}
	return text[n.Pos+1 : end]
}

func (n Node) String() string {
	switch n.Kind {
	case KindMacro:
		return fmt.Sprintf("macro(\\%s @ %d)", n.Name, n.Pos)
	case KindGroup:
		return fmt.Sprintf("group(%d children @ %d)", len(n.Children), n.Pos)
	case KindChars:
		return fmt.Sprintf("chars(%q @ %d)", n.Text, n.Pos)
	}
	return fmt.Sprintf("comment(@ %d)", n.Pos)
}

// Parse tokenizes text into its top-level node sequence. Parsing is
// deterministic: the same text always yields the same nodes. Malformed
// input never fails; an unclosed group extends to the end of the text
// and a stray closing brace becomes a one-byte character run.
func Parse(text string) []Node {
	p := &parser{text: text}
	return p.parseNodes(false)
}

type parser struct {
	text string
	pos  int
}

// parseNodes reads nodes until the end of input or, when inGroup, an
// unconsumed closing brace.
func (p *parser) parseNodes(inGroup bool) []Node {
	var nodes []Node
	for p.pos < len(p.text) {
		switch p.text[p.pos] {
		case '}':
			if inGroup {
				return nodes
			}
			nodes = append(nodes, Node{Kind: KindChars, Pos: p.pos, Len: 1, Text: "}"})
			p.pos++
		case '{':
			nodes = append(nodes, p.parseGroup())
		case '\\':
			nodes = append(nodes, p.parseMacro())
		case '%':
			nodes = append(nodes, p.parseComment())
		default:
			nodes = append(nodes, p.parseChars())
		}
	}
	return nodes
}

func (p *parser) parseGroup() Node {
	start := p.pos
	p.pos++
	children := p.parseNodes(true)
	if p.pos < len(p.text) {
		p.pos++ // closing brace
	}
	return Node{Kind: KindGroup, Pos: start, Len: p.pos - start, Children: children}
}

// parseMacro reads a control sequence: a backslash followed by a letter
// run, or by a single non-letter character. Whitespace following a named
// macro is absorbed into the node (TeX post-space), so a macro's next
// sibling is never a pure-whitespace run.
func (p *parser) parseMacro() Node {
	start := p.pos
	p.pos++
	nameStart := p.pos
	for p.pos < len(p.text) && isLetter(p.text[p.pos]) {
		p.pos++
	}
	name := p.text[nameStart:p.pos]
	if name == "" && p.pos < len(p.text) {
		name = p.text[p.pos : p.pos+1]
		p.pos++
		return Node{Kind: KindMacro, Pos: start, Len: p.pos - start, Name: name}
	}
	for p.pos < len(p.text) && isSpace(p.text[p.pos]) {
		p.pos++
	}
	return Node{Kind: KindMacro, Pos: start, Len: p.pos - start, Name: name}
}

func (p *parser) parseComment() Node {
	start := p.pos
	for p.pos < len(p.text) && p.text[p.pos] != '\n' {
		p.pos++
	}
	if p.pos < len(p.text) {
		p.pos++ // newline belongs to the comment
	}
	return Node{Kind: KindComment, Pos: start, Len: p.pos - start}
}

func (p *parser) parseChars() Node {
	start := p.pos
	for p.pos < len(p.text) && !isSpecial(p.text[p.pos]) {
		p.pos++
	}
	return Node{Kind: KindChars, Pos: start, Len: p.pos - start, Text: p.text[start:p.pos]}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isSpecial(c byte) bool {
	return c == '\\' || c == '{' || c == '}' || c == '%'
}
