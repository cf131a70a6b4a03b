package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles for CLI output.
var (
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleHeader = lipgloss.NewStyle().
			Bold(true)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	if c.IsColorEnabled() {
		c.Println(styleTitle.Render(text))
	} else {
		c.Println(text)
	}
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	if c.IsColorEnabled() {
		c.Println(styleSuccess.Render("✓ " + text))
	} else {
		c.Println("✓ " + text)
	}
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	if c.IsColorEnabled() {
		c.Println(styleWarning.Render("⚠ " + text))
	} else {
		c.Println("⚠ " + text)
	}
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	if c.IsColorEnabled() {
		c.Println(styleError.Render("✗ " + text))
	} else {
		c.Println("✗ " + text)
	}
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	if c.IsColorEnabled() {
		c.Println(styleMuted.Render(text))
	} else {
		c.Println(text)
	}
}

// Header renders a table header line.
func (c *CLIFormatter) Header(text string) string {
	if c.IsColorEnabled() {
		return styleHeader.Render(text)
	}
	return text
}
