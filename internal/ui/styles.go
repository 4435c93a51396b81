package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors
var (
	primary = lipgloss.Color("#7C3AED")
	success = lipgloss.Color("#10B981")
	danger  = lipgloss.Color("#EF4444")
	muted   = lipgloss.Color("#6B7280")
	warning = lipgloss.Color("#F59E0B")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(success)

	failedStyle = lipgloss.NewStyle().
			Foreground(danger)

	pendingStyle = lipgloss.NewStyle().
			Foreground(muted)

	sizeStyle = lipgloss.NewStyle().
			Foreground(warning)

	helpStyle = lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1)
)
