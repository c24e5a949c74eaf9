// Package listview provides list item delegates for the view layer.
package listview

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/tektune/internal/presentation/tui/metrics"
	"github.com/tesso57/tektune/internal/presentation/tui/textutil"
)

// ActiveMarker prefixes the article shown in the content region.
const ActiveMarker = "● "

// ArticleItem interface for items that can be rendered by ArticleDelegate.
type ArticleItem interface {
	list.Item
	Title() string
	IsActive() bool
}

// ArticleDelegate handles rendering of sidebar article titles.
type ArticleDelegate struct {
	Styles list.DefaultItemStyles
	Accent lipgloss.Color
}

// NewArticleDelegate creates a new ArticleDelegate.
func NewArticleDelegate(accent lipgloss.Color) *ArticleDelegate {
	return &ArticleDelegate{
		Styles: paddedStyles(list.NewDefaultItemStyles()),
		Accent: accent,
	}
}

// Height returns the height of the item.
func (d *ArticleDelegate) Height() int {
	return 1
}

// Spacing returns the spacing between items.
func (d *ArticleDelegate) Spacing() int {
	return 0
}

// Update handles messages for the delegate.
func (d *ArticleDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders one title. The article shown in the content region gets the
// active marker and the accent color; the others are indented to line up.
func (d *ArticleDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(ArticleItem)
	if !ok {
		return
	}

	style := d.Styles.NormalTitle
	if index == m.Index() {
		style = d.Styles.SelectedTitle
	}

	prefix := "  "
	if i.IsActive() {
		prefix = ActiveMarker
		if d.Accent != "" {
			style = style.Foreground(d.Accent).Bold(true)
		}
	}

	width := m.Width() - style.GetHorizontalFrameSize() - metrics.ItemSafetyPadding
	_, _ = io.WriteString(w, style.Render(textutil.Truncate(prefix+i.Title(), width)))
}

func paddedStyles(s list.DefaultItemStyles) list.DefaultItemStyles {
	s.NormalTitle = s.NormalTitle.PaddingRight(metrics.ItemRightPadding)
	s.SelectedTitle = s.SelectedTitle.PaddingRight(metrics.ItemRightPadding)
	return s
}
