package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Render renders markdown for terminals and returns it untouched otherwise,
// so piped output stays plain.
func Render(f *os.File, markdown string) string {
	if !IsTerminal(f) {
		return markdown
	}
	out, err := NewRenderer()(markdown)
	if err != nil {
		return markdown
	}
	return out
}
