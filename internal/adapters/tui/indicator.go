package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/spin/internal/core/domain"
)

// Indicator wraps the spinner program as a ports.Indicator.
type Indicator struct {
	program *tea.Program
	errCh   chan error
	final   tea.Model

	mu       sync.Mutex
	opened   bool
	finished bool

	waitOnce sync.Once
	waitErr  error
}

// NewIndicator creates a new spinner indicator.
func NewIndicator(model Model, opts ...tea.ProgramOption) *Indicator {
	return &Indicator{
		program: tea.NewProgram(model, opts...),
		errCh:   make(chan error, 1),
	}
}

// Open launches the spinner in a background goroutine.
func (i *Indicator) Open(_ context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.opened {
		return nil
	}
	i.opened = true

	go func() {
		final, err := i.program.Run()
		i.final = final
		i.errCh <- err
	}()
	return nil
}

// Close signals the spinner to quit.
func (i *Indicator) Close() error {
	if !i.isOpen() {
		return nil
	}
	i.program.Quit()
	return nil
}

// Wait blocks until the spinner has terminated.
func (i *Indicator) Wait() error {
	if !i.isOpen() {
		return nil
	}

	i.waitOnce.Do(func() {
		i.waitErr = <-i.errCh
	})
	return i.waitErr
}

// Start sets the spinner label.
func (i *Indicator) Start(label string) {
	if !i.isOpen() {
		return
	}
	i.program.Send(MsgStart{Label: label})
}

// Succeed stops the spinner with a success mark.
func (i *Indicator) Succeed(msg string) {
	i.finish(domain.OutcomeSuccess, msg)
}

// Warn stops the spinner with a warning mark.
func (i *Indicator) Warn(msg string) {
	i.finish(domain.OutcomeWarning, msg)
}

// Fail stops the spinner with a failure mark.
func (i *Indicator) Fail(msg string) {
	i.finish(domain.OutcomeFailure, msg)
}

func (i *Indicator) finish(outcome domain.Outcome, msg string) {
	i.mu.Lock()
	if i.finished {
		i.mu.Unlock()
		return
	}
	i.finished = true
	opened := i.opened
	i.mu.Unlock()

	// Send blocks until the program reads it, which never happens unopened.
	if !opened {
		return
	}

	i.program.Send(MsgFinish{Outcome: outcome, Message: msg})
}

func (i *Indicator) isOpen() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.opened
}

// Program returns the underlying tea.Program for testing.
func (i *Indicator) Program() *tea.Program {
	return i.program
}
