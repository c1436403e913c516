package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plandes/latidx/internal/walker"
)

func extractText(content string) *artifacts {
	return extract(walker.Parse(content), "test.tex", content)
}

func TestExtractUsePackage(t *testing.T) {
	t.Parallel()

	a := extractText(`\usepackage{child}`)
	require.Empty(t, a.failures)
	require.Len(t, a.usepackages, 1)
	up := a.usepackages["child"]
	require.NotNil(t, up)
	assert.Equal(t, "child", up.Name)
	assert.Equal(t, 0, up.Pos)
	assert.Equal(t, []string{"child"}, a.importOrder)
}

func TestExtractUsePackageWithOptions(t *testing.T) {
	t.Parallel()

	a := extractText(`\usepackage[utf8]{inputenc}`)
	require.Empty(t, a.failures)
	require.Contains(t, a.usepackages, "inputenc")
	assert.Equal(t, 0, a.usepackages["inputenc"].Pos)
}

func TestExtractUsePackageLastWins(t *testing.T) {
	t.Parallel()

	content := "\\usepackage{x}\n\\usepackage{x}\n"
	a := extractText(content)
	require.Empty(t, a.failures)
	require.Len(t, a.usepackages, 1)
	// offset comes from the second occurrence
	assert.Equal(t, 15, a.usepackages["x"].Pos)
	// the name keeps its original declaration position
	assert.Equal(t, []string{"x"}, a.importOrder)
}

func TestExtractImportOrder(t *testing.T) {
	t.Parallel()

	a := extractText("\\usepackage{b}\n\\usepackage{a}\n\\usepackage{c}\n")
	assert.Equal(t, []string{"b", "a", "c"}, a.importOrder)
}

func TestExtractUsePackageMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"end of input", `\usepackage`},
		{"macro instead of group", `\usepackage\alpha`},
		{"empty name group", `\usepackage{}`},
		{"macro in name group", `\usepackage{\child}`},
		{"missing closing brace", `\usepackage{child`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := extractText(tt.content)
			assert.Empty(t, a.usepackages)
			require.Len(t, a.failures, 1)
			var perr *ParseError
			require.ErrorAs(t, a.failures[0], &perr)
			assert.Equal(t, "test.tex", perr.Path)
		})
	}
}

func TestExtractFailureDoesNotAbortScan(t *testing.T) {
	t.Parallel()

	a := extractText("\\usepackage{}\n\\usepackage{ok}\n")
	require.Len(t, a.failures, 1)
	assert.Contains(t, a.usepackages, "ok")
}

func TestExtractNewCommand(t *testing.T) {
	t.Parallel()

	content := `\newcommand{\foo}[1]{bar #1}`
	a := extractText(content)
	require.Empty(t, a.failures)
	require.Len(t, a.newcommands, 1)
	nc := a.newcommands["foo"]
	require.NotNil(t, nc)
	assert.Equal(t, "foo", nc.Name)
	assert.Equal(t, "[1]", nc.ArgSpec)
	assert.True(t, nc.HasBody)
	assert.Equal(t, "bar #1", nc.Body)
	assert.Equal(t, [2]int{0, len(content)}, nc.Span)
	assert.Equal(t, content, nc.Definition)
}

func TestExtractNewCommandNoArgSpec(t *testing.T) {
	t.Parallel()

	content := `\newcommand{\hi}{hello}`
	a := extractText(content)
	nc := a.newcommands["hi"]
	require.NotNil(t, nc)
	assert.Equal(t, "", nc.ArgSpec)
	assert.Equal(t, "hello", nc.Body)
	assert.Equal(t, content, nc.Definition)
}

func TestExtractNewCommandNoBody(t *testing.T) {
	t.Parallel()

	content := `\newcommand{\foo}[1]`
	a := extractText(content)
	nc := a.newcommands["foo"]
	require.NotNil(t, nc)
	assert.Equal(t, "[1]", nc.ArgSpec)
	assert.False(t, nc.HasBody)
	assert.Equal(t, "", nc.Body)
	assert.Equal(t, [2]int{0, len(content)}, nc.Span)
}

func TestExtractNewCommandBareName(t *testing.T) {
	t.Parallel()

	content := `\newcommand{\foo}`
	a := extractText(content)
	nc := a.newcommands["foo"]
	require.NotNil(t, nc)
	assert.Equal(t, "", nc.ArgSpec)
	assert.False(t, nc.HasBody)
	assert.Equal(t, content, nc.Definition)
}

func TestExtractNewCommandCommentStopsArgSpec(t *testing.T) {
	t.Parallel()

	content := "\\newcommand{\\foo}[1]% note\n{bar}"
	a := extractText(content)
	nc := a.newcommands["foo"]
	require.NotNil(t, nc)
	assert.Equal(t, "[1]", nc.ArgSpec)
	// the scan stops at the comment, so the group after it is not a body
	assert.False(t, nc.HasBody)
}

func TestExtractCommandVariants(t *testing.T) {
	t.Parallel()

	a := extractText("\\renewcommand{\\a}{1}\n\\providecommand{\\b}{2}\n")
	assert.Contains(t, a.newcommands, "a")
	assert.Contains(t, a.newcommands, "b")
}

func TestExtractCommandLastWins(t *testing.T) {
	t.Parallel()

	a := extractText("\\newcommand{\\foo}{one}\n\\renewcommand{\\foo}{two}\n")
	require.Len(t, a.newcommands, 1)
	assert.Equal(t, "two", a.newcommands["foo"].Body)
}

func TestExtractCommandUnsupportedSyntaxSkipped(t *testing.T) {
	t.Parallel()

	// TeX-style definition without a name group: skipped, not a failure
	a := extractText(`\newcommand\foo{bar}`)
	assert.Empty(t, a.newcommands)
	assert.Empty(t, a.failures)
}

func TestExtractCommandEndOfInput(t *testing.T) {
	t.Parallel()

	a := extractText(`\newcommand`)
	assert.Empty(t, a.newcommands)
	require.Len(t, a.failures, 1)
	var perr *ParseError
	assert.ErrorAs(t, a.failures[0], &perr)
}

func TestExtractIgnoresOtherMacros(t *testing.T) {
	t.Parallel()

	a := extractText("\\documentclass{article}\n\\begin{document}hi\\end{document}\n")
	assert.Empty(t, a.usepackages)
	assert.Empty(t, a.newcommands)
	assert.Empty(t, a.failures)
}
