// Package output builds termenv outputs for spin's status and log streams.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Mode selects how rich the colors on a stream may be.
type Mode int

const (
	// Interactive uses whatever the terminal advertises. The spinner and the
	// log handler use it.
	Interactive Mode = iota
	// Plain limits colors to the 16 ANSI ones, which CI log viewers render.
	Plain
)

// Profile returns the termenv profile for the mode. NO_COLOR always yields
// Ascii, which drops every escape sequence.
func (m Mode) Profile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if m == Plain {
		return termenv.ANSI
	}
	return termenv.EnvColorProfile()
}

// New returns an output for w (stderr when nil) in the given mode. The
// writer is treated as a TTY: the decision to style was made by the mode,
// and piped CI logs still get their colors.
func New(w io.Writer, mode Mode) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w,
		termenv.WithProfile(mode.Profile()),
		termenv.WithTTY(true),
	)
}
