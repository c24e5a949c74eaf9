// Package markdown renders article Markdown for the terminal.
package markdown

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const minWidth = 10

// Renderer renders Markdown with glamour, caching one TermRenderer per width.
// The style is fixed at construction.
type Renderer struct {
	style string

	mu    sync.Mutex
	cache map[int]*glamour.TermRenderer
}

// NewRenderer creates a renderer for a glamour standard style such as "dark".
func NewRenderer(style string) *Renderer {
	style = strings.TrimSpace(style)
	if style == "" {
		style = "dark"
	}
	return &Renderer{style: style, cache: map[int]*glamour.TermRenderer{}}
}

// Style returns the glamour style name.
func (r *Renderer) Style() string { return r.style }

// Render renders md wrapped to width. On failure the raw Markdown is returned.
func (r *Renderer) Render(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	width = max(width, minWidth)

	tr, err := r.renderer(width)
	if err != nil {
		return md
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func (r *Renderer) renderer(width int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tr, ok := r.cache[width]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("markdown style %q: %w", r.style, err)
	}
	r.cache[width] = tr
	return tr, nil
}
