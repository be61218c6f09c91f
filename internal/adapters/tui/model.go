package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/spin/internal/core/domain"
)

// MsgStart sets the label shown next to the spinner.
type MsgStart struct {
	Label string
}

// MsgFinish replaces the spinner with a terminal status and quits the program.
type MsgFinish struct {
	Outcome domain.Outcome
	Message string
}

// Model is the Bubble Tea model of the build spinner.
type Model struct {
	Spinner spinner.Model
	Label   string

	Done    bool
	Outcome domain.Outcome
	Message string
}

// Init starts the spinner animation.
//
//nolint:gocritic // hugeParam ignored
func (m Model) Init() tea.Cmd {
	return m.Spinner.Tick
}

// Update handles incoming messages and updates the model state.
//
//nolint:gocritic // hugeParam ignored
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgStart:
		if !m.Done {
			m.Label = msg.Label
		}
		return m, nil
	case MsgFinish:
		if m.Done {
			return m, tea.Quit
		}
		m.Done = true
		m.Outcome = msg.Outcome
		m.Message = msg.Message
		return m, tea.Quit
	case spinner.TickMsg:
		if m.Done {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}
