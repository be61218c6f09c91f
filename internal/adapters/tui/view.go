package tui

import "go.trai.ch/spin/internal/ui/style"

// View renders the spinner line, or the final status once the build is done.
//
//nolint:gocritic // hugeParam ignored
func (m Model) View() string {
	if m.Done {
		return iconStyle(m.Outcome).Render(style.Icon(m.Outcome)) + " " +
			messageStyle.Render(m.Message) + "\n"
	}
	if m.Label == "" {
		return m.Spinner.View() + "\n"
	}
	return m.Spinner.View() + " " + labelStyle.Render(m.Label) + "\n"
}
