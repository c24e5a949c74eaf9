// Package layout places the sidebar, the content region and the footer.
package layout

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the layout component.
type Props struct {
	Sidebar string
	Main    string
	Footer  string
}

// Render puts the sidebar left of the content region with the footer below.
// An empty footer adds no line.
func Render(p Props) string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, p.Sidebar, p.Main)
	if p.Footer == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, p.Footer)
}
