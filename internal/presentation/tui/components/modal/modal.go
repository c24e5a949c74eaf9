// Package modal provides modal dialog components.
package modal

import (
	"github.com/charmbracelet/lipgloss"
)

// Kind represents the type of modal.
type Kind int

const (
	// None indicates no modal.
	None Kind = iota
	// Confirm asks a yes/no question.
	Confirm
	// Alert reports a message until dismissed.
	Alert
	// Prompt collects a line of text.
	Prompt
	// Picker wraps the image file picker.
	Picker
	// Help shows the full key help.
	Help
	// Quit asks whether to leave the program.
	Quit
)

// Props defines the properties for the modal component.
type Props struct {
	Visible bool
	Kind    Kind
	Title   string
	Body    string
	Width   int
	Height  int
}

// Render renders the modal component centered in the terminal.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor(p.Kind)).
		Padding(1, 2)

	switch p.Kind {
	case Confirm, Alert, Prompt, Quit:
		style = style.Width(dialogWidth(p.Width))
	}

	body := p.Body
	if p.Title != "" {
		title := lipgloss.NewStyle().Bold(true).Foreground(borderColor(p.Kind)).Render(p.Title)
		body = title + "\n\n" + body
	}

	return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center, style.Render(body))
}

func borderColor(k Kind) lipgloss.Color {
	switch k {
	case Alert:
		return lipgloss.Color("196")
	case Confirm, Quit:
		return lipgloss.Color("205")
	case Prompt, Picker:
		return lipgloss.Color("212")
	default:
		return lipgloss.Color("63")
	}
}

func dialogWidth(termWidth int) int {
	if termWidth <= 0 {
		return 50
	}
	return min(50, max(termWidth-4, 20))
}
