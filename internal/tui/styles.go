package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the view.
type Styles struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Hint     lipgloss.Style
	Response lipgloss.Style
	Error    lipgloss.Style
	Spinner  lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")),
		Hint: lipgloss.NewStyle().
			Faint(true),
		Response: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")),
		Spinner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")),
	}
}
