package ui

import "github.com/charmbracelet/lipgloss"

// Centralized Lip Gloss styles for the rapidmcp CLI.
// All colors are specified using hex codes.

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff5fd2")).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5fd7ff"))

	RequiredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaf00"))

	HelpStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("#a8a8a8"))

	// Table cells
	HeaderCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff5faf")).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	BorderColor = lipgloss.Color("#5f5fff")
)
