// Package tui provides the terminal dashboard for timespent.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the dashboard.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorActive  = lipgloss.Color("#3B82F6") // Blue
	ColorBorder  = lipgloss.Color("#4B5563") // Dark gray
)

// Base styles for the dashboard.
var (
	// StyleTitle is used for section titles.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// StyleSubtitle is used for secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleHeader is used for the entries table header.
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	// StyleProject is used for project identifiers.
	StyleProject = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleError is used for error messages.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleBox frames the entries list.
	StyleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)
