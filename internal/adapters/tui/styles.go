package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/spin/internal/core/domain"
	"go.trai.ch/spin/internal/ui/style"
)

var (
	spinnerStyle = lipgloss.NewStyle().
			Foreground(style.Iris)

	labelStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(style.White)
)

func iconStyle(o domain.Outcome) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(style.Color(o)).Bold(true)
}
