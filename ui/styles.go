package ui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("#01B4E4") // TMDB light blue
	secondaryColor = lipgloss.Color("#F5F5F1")
	accentColor    = lipgloss.Color("#90CEA1") // TMDB green
	mutedColor     = lipgloss.Color("#6C6C6C")
	errorColor     = lipgloss.Color("#FF5F5F")

	appStyle = lipgloss.NewStyle().Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	categoryStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	itemStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	cursorStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)
)
