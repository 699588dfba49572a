package cli

import "github.com/charmbracelet/lipgloss"

// statusTheme holds the lipgloss styles for the status output.
type statusTheme struct {
	Title     lipgloss.Style
	Section   lipgloss.Style
	Key       lipgloss.Style
	Value     lipgloss.Style
	Muted     lipgloss.Style
	LightMode lipgloss.Style
	DarkMode  lipgloss.Style
	Box       lipgloss.Style
}

func newStatusTheme() statusTheme {
	return statusTheme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80")),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("#909090")).Width(14),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#909090")).Italic(true),
		LightMode: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#0a0a0b")).
			Background(lipgloss.Color("#f5f5f4")).
			Padding(0, 1),
		DarkMode: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#f5f5f4")).
			Background(lipgloss.Color("#2d2d2d")).
			Padding(0, 1),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333333")).
			Padding(0, 2),
	}
}
