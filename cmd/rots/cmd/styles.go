package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/metaphox/rots-lang/ast"
	"github.com/metaphox/rots-lang/lexer"
	"github.com/metaphox/rots-lang/transpile"
)

var (
	colorError   = lipgloss.Color("#EF4444")
	colorSuccess = lipgloss.Color("#10B981")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPath    = lipgloss.Color("#06B6D4")
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	pathStyle    = lipgloss.NewStyle().Foreground(colorPath)
)

func renderDiagnostic(message string, pos ast.Position) string {
	return fmt.Sprintf("%s: %s\n\t%s %s",
		errorStyle.Render("error"), message, mutedStyle.Render("-->"), pathStyle.Render(pos.String()))
}

// printFileErrors writes every lex and syntax error of f and returns how many
// were written.
func printFileErrors(w io.Writer, f *transpile.FileResult) int {
	var lines []string
	for _, tok := range f.Invalid {
		lines = append(lines, renderDiagnostic(lexer.Message(tok), tok.Pos()))
	}
	for _, d := range f.Errors.Compact() {
		lines = append(lines, renderDiagnostic(d.Message(), d.Pos))
	}
	if len(lines) > 0 {
		fmt.Fprintln(w, strings.Join(lines, "\n"))
	}
	return len(lines)
}
