// Package topbar provides the action bar above the content region.
package topbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/tektune/internal/presentation/tui/textutil"
)

// Props defines the properties for the top bar component.
type Props struct {
	Actions []string
	Legend  string
	Target  string
	Width   int
	Accent  string
	Muted   string
}

// Render renders the top bar: action buttons, then the toolbar legend or the
// focused viewer target on a second line.
func Render(p Props) string {
	button := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Accent)).
		Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted))

	buttons := make([]string, 0, len(p.Actions))
	for _, a := range p.Actions {
		buttons = append(buttons, button.Render(a))
	}
	lines := []string{strings.Join(buttons, "  ")}

	if p.Legend != "" {
		lines = append(lines, muted.Render(textutil.Truncate(p.Legend, p.Width)))
	}
	if p.Target != "" {
		lines = append(lines, muted.Render(textutil.Truncate(textutil.SingleLine(p.Target), p.Width)))
	}
	return strings.Join(lines, "\n")
}
