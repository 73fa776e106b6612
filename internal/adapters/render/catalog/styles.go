package catalog

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	name      lipgloss.Style
	detail    lipgloss.Style
	price     lipgloss.Style
	warning   lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
	tableHead lipgloss.Style
	tableCell lipgloss.Style
	border    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		name:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		price:     lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
		tableHead: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")).Padding(0, 1),
		tableCell: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1),
		border:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
