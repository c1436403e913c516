// Package latex extracts structural facts (package imports and macro
// definitions) from LaTeX files and resolves a project of files into a
// shared, memoized dependency tree.
package latex

import "fmt"

// ParseError reports a malformed occurrence of a recognized macro form.
// It is recorded on the owning file's failure list and never aborts
// extraction.
type ParseError struct {
	Path string
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d in '%s'", e.Msg, e.Pos, e.Path)
}

// UsePackage is a parsed `\usepackage{<name>}` occurrence. Pos is the
// absolute offset of the `\usepackage` macro in the file content. Values
// are immutable once constructed; within a file a later occurrence of
// the same package name replaces an earlier one.
type UsePackage struct {
	Name string
	Pos  int
}

func (u *UsePackage) String() string {
	return fmt.Sprintf("%s @ %d", u.Name, u.Pos)
}

// NewCommand is a parsed macro definition from `\newcommand`,
// `\renewcommand` or `\providecommand`.
type NewCommand struct {
	// Name of the macro being defined, without the backslash.
	Name string
	// ArgSpec is the verbatim text between the name group and the body,
	// such as "[1]" or "[2][default]".
	ArgSpec string
	// Body is the body group contents. HasBody is false when the
	// definition has no delimited body, in which case Body is empty.
	Body    string
	HasBody bool
	// Span is the [start, end) offset range of the whole definition.
	Span [2]int
	// Definition is the raw source slice over Span.
	Definition string
}

func (c *NewCommand) String() string {
	return fmt.Sprintf("%s @ [%d %d]", c.Name, c.Span[0], c.Span[1])
}

// CommandLocation pairs a command with the file that defines it.
type CommandLocation struct {
	Command *NewCommand
	File    *LatexFile
}

func (l *CommandLocation) String() string {
	return fmt.Sprintf("%s: %s", l.Command, l.File.Name())
}
