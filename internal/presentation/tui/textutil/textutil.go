// Package textutil fits TUI text into a fixed number of terminal cells.
package textutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "..."

// SingleLine joins the fields of text with single spaces, dropping newlines.
func SingleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Truncate keeps the start of text, ending with an ellipsis when it does not fit.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(text, width, ellipsis)
}

// TruncateStart keeps the end of text, which is the useful part of a path.
func TruncateStart(text string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(text)
	if w <= width {
		return text
	}
	if width <= len(ellipsis) {
		return ansi.TruncateLeft(text, w-width, "")
	}
	return ellipsis + ansi.TruncateLeft(text, w-width+len(ellipsis), "")
}
