// Package sidebar provides the sidebar component.
package sidebar

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the sidebar component.
type Props struct {
	View   string
	Empty  string
	Width  int
	Height int
	Title  string
	Active bool
	Accent string
	Border string
	Muted  string
}

// Render renders the sidebar component. Empty replaces the list when set.
func Render(p Props) string {
	sidebarStyle := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color(p.Border))

	if p.Active {
		sidebarStyle = sidebarStyle.BorderForeground(lipgloss.Color(p.Accent))
	}

	titleStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		PaddingBottom(1).
		Foreground(lipgloss.Color(p.Accent))

	body := p.View
	if p.Empty != "" {
		body = lipgloss.NewStyle().
			PaddingLeft(2).
			Width(max(p.Width, 1)).
			Foreground(lipgloss.Color(p.Muted)).
			Render(p.Empty)
	}

	return sidebarStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(p.Title),
		body,
	))
}
