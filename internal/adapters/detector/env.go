// Package detector picks the status indicator style for the current terminal.
package detector

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// OutputMode represents the indicator style used for a run.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the animated spinner.
	ModeTUI
	// ModeLinear forces line-based status output.
	ModeLinear
)

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// Environment captures the facts mode detection depends on.
type Environment struct {
	IsTTY bool
	CI    string
}

// CurrentEnvironment inspects stderr and the CI variable of this process.
// The indicator draws on stderr, so that is the stream checked for a TTY.
func CurrentEnvironment() Environment {
	return Environment{
		IsTTY: term.IsTerminal(int(os.Stderr.Fd())),
		CI:    os.Getenv("CI"),
	}
}

// Detect returns the recommended output mode for env.
func (env Environment) Detect() OutputMode {
	if !env.IsTTY || isTruthy(env.CI) {
		return ModeLinear
	}
	return ModeTUI
}

// DetectEnvironment returns the recommended output mode for this process.
func DetectEnvironment() OutputMode {
	return CurrentEnvironment().Detect()
}

// ResolveMode applies the user's flag on top of auto-detection.
// userFlag should be one of: "auto", "tui", "linear", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch strings.ToLower(userFlag) {
	case "tui":
		return ModeTUI
	case "linear", "ci":
		return ModeLinear
	default:
		return autoDetected
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
