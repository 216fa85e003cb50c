package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00A8E8"))

	// Project name styling
	NameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00A8E8"))

	// Project kind badge styling
	KindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E8C547"))

	// Byte size styling
	SizeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	// Error styling
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)

	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	// Warning styling (dry-run markers, skipped work)
	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E8C547")).
			Bold(true)

	// Subtle text styling
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	// Spinner styling
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00A8E8"))
)
