// Package tui provides the animated spinner indicator for interactive terminals.
package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/spin/internal/ui/output"
)

// NewModel creates a spinner model that renders with w's color profile.
func NewModel(w io.Writer) Model {
	if w == nil {
		w = os.Stderr
	}

	out := output.New(w, output.Interactive)
	lipgloss.SetColorProfile(out.Profile)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		Spinner: s,
	}
}
