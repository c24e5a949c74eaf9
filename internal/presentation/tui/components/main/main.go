// Package mainview provides the content region: the top bar above the
// viewer, the editor or a placeholder message.
package mainview

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the main view component.
type Props struct {
	Width  int
	Height int
	TopBar string
	Body   string
}

// Render stacks the top bar over the body with one blank line between them.
// The body is clipped so the top bar stays on screen.
func Render(p Props) string {
	region := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		PaddingLeft(1)

	if p.TopBar == "" {
		return region.Render(clip(p.Body, p.Height))
	}
	if p.Body == "" {
		return region.Render(p.TopBar)
	}
	bodyHeight := p.Height - lipgloss.Height(p.TopBar) - 1
	return region.Render(p.TopBar + "\n\n" + clip(p.Body, bodyHeight))
}

func clip(body string, height int) string {
	if height <= 0 {
		return body
	}
	return lipgloss.NewStyle().MaxHeight(height).Render(body)
}
