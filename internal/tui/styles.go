package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	prompt   lipgloss.Style
	normal   lipgloss.Style
	selected lipgloss.Style
	status   lipgloss.Style
	preview  lipgloss.Style
	empty    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true),
		normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		preview: lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
	}
}
