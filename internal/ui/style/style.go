// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/spin/internal/core/domain"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
)

// Icon returns the terminal marker for an outcome.
func Icon(o domain.Outcome) string {
	switch o {
	case domain.OutcomeSuccess:
		return Check
	case domain.OutcomeWarning:
		return Warning
	default:
		return Cross
	}
}

// Color returns the brand color for an outcome.
func Color(o domain.Outcome) lipgloss.Color {
	switch o {
	case domain.OutcomeSuccess:
		return Green
	case domain.OutcomeWarning:
		return Yellow
	default:
		return Red
	}
}
