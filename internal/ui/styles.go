package ui

import "github.com/charmbracelet/lipgloss"

// Styles groups the board page's lipgloss styles.
type Styles struct {
	Banner      lipgloss.Style
	BannerWarn  lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
	Zoom        lipgloss.Style
	ZoomTitle   lipgloss.Style
	Overlay     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")).
			Bold(true),
		BannerWarn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Zoom: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("183")).
			Padding(1, 2),
		ZoomTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")).
			Bold(true),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 3),
	}
}
