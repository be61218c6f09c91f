// Package linear provides a line-based status indicator for CI environments
// and pipes, where an animated spinner would only produce noise.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/spin/internal/core/domain"
	"go.trai.ch/spin/internal/ui/output"
	"go.trai.ch/spin/internal/ui/style"
)

// Indicator implements ports.Indicator by writing one line per transition.
type Indicator struct {
	w      io.Writer
	output *termenv.Output

	mu       sync.Mutex
	started  bool
	finished bool
}

// NewIndicator creates an Indicator writing to w. A nil writer means stderr.
func NewIndicator(w io.Writer) *Indicator {
	if w == nil {
		w = os.Stderr
	}
	return &Indicator{
		w:      w,
		output: output.New(w, output.Plain),
	}
}

// Open is a no-op for the linear indicator (synchronous).
func (i *Indicator) Open(_ context.Context) error {
	return nil
}

// Close is a no-op for the linear indicator (synchronous).
func (i *Indicator) Close() error {
	return nil
}

// Wait is a no-op for the linear indicator (synchronous).
func (i *Indicator) Wait() error {
	return nil
}

// Start prints the in-progress line. It is printed at most once per run.
func (i *Indicator) Start(label string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.started || i.finished {
		return
	}
	i.started = true

	dot := i.output.String(style.Dot).Foreground(i.color(style.Iris)).String()
	_, _ = fmt.Fprintf(i.w, "%s %s\n", dot, label)
}

// Succeed prints the success line.
func (i *Indicator) Succeed(msg string) {
	i.finish(domain.OutcomeSuccess, msg)
}

// Warn prints the warning line.
func (i *Indicator) Warn(msg string) {
	i.finish(domain.OutcomeWarning, msg)
}

// Fail prints the failure line.
func (i *Indicator) Fail(msg string) {
	i.finish(domain.OutcomeFailure, msg)
}

// finish prints the terminal line. Only the first call takes effect.
func (i *Indicator) finish(outcome domain.Outcome, msg string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.finished {
		return
	}
	i.finished = true

	icon := i.output.String(style.Icon(outcome)).Foreground(i.color(style.Color(outcome))).String()
	_, _ = fmt.Fprintf(i.w, "%s %s\n", icon, msg)
}

func (i *Indicator) color(c lipgloss.Color) termenv.Color {
	return i.output.Color(string(c))
}
