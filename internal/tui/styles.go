package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	primaryColor = lipgloss.Color("#1E3A8A") // Navy
	fileColor    = lipgloss.Color("#15803D") // Dark green
	successColor = lipgloss.Color("#10B981") // Green
	errorColor   = lipgloss.Color("#EF4444") // Red
	detailColor  = lipgloss.Color("#3B82F6") // Blue
	warnColor    = lipgloss.Color("#F59E0B") // Amber
	mutedColor   = lipgloss.Color("#6B7280") // Gray
)

// Styles
var (
	// App frame
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	// Title bar
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Bold(true)

	// Compare button
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4CAF50")).
			Padding(0, 1)

	buttonFocusedStyle = buttonStyle.
				Bold(true).
				Underline(true)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#E5E7EB")).
				Background(mutedColor).
				Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Help bar
	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(1, 0, 0, 0)

	// Report styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	fileStyle = lipgloss.NewStyle().
			Foreground(fileColor)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(detailColor)

	warnStyle = lipgloss.NewStyle().
			Foreground(warnColor).
			Bold(true)
)
