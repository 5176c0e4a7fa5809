package consumption

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	name       lipgloss.Style
	value      lipgloss.Style
	detail     lipgloss.Style
	consumer   lipgloss.Style
	exhausted  lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		name:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		value:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		consumer:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		exhausted:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
