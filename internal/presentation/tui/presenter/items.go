// Package presenter builds view models for the TUI.
package presenter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/tesso57/tektune/internal/domain/workspace"
	"github.com/tesso57/tektune/internal/infrastructure/markup"
	"github.com/tesso57/tektune/internal/presentation/tui/state"
)

const (
	WelcomeText     = "Welcome to TekTune! Start by creating your first article."
	ChooseText      = "Choose from an article on the list to begin."
	EmptyListText   = "No articles found. Create your first article!"
	LoadFailedText  = "Failed to load article."
	TitlePromptText = "Enter a title for the new article:"
)

// Item is a view model for sidebar entries.
type Item struct {
	TitleText string
	Active    bool
}

// FilterValue implements list.Item.
func (i *Item) FilterValue() string { return i.TitleText }

// Title returns the item title.
func (i *Item) Title() string { return i.TitleText }

// IsActive reports whether the item is the article being shown.
func (i *Item) IsActive() bool { return i.Active }

// BuildArticleListItems builds sidebar items, marking the selected title.
func BuildArticleListItems(titles []string, selected string) []list.Item {
	items := make([]list.Item, len(titles))
	for i, title := range titles {
		items[i] = &Item{TitleText: title, Active: title == selected}
	}
	return items
}

// ApplyArticleList updates the list model and keeps the cursor on the selected title.
func ApplyArticleList(model *list.Model, titles []string, selected string) {
	model.SetItems(BuildArticleListItems(titles, selected))
	if idx := slices.Index(titles, selected); idx >= 0 {
		model.Select(idx)
	}
}

// ContentText returns the placeholder text for content regions without an article.
func ContentText(kind workspace.ContentKind) string {
	switch kind {
	case workspace.Welcome:
		return WelcomeText
	case workspace.Choose:
		return ChooseText
	case workspace.TitleEntry:
		return TitlePromptText
	default:
		return ""
	}
}

// ActionLabels renders top bar buttons with their key hints.
func ActionLabels(actions []workspace.Action, keys state.KeyMap, editorKeys state.EditorKeyMap) []string {
	labels := make([]string, 0, len(actions))
	for _, a := range actions {
		hint := ""
		switch a {
		case workspace.ActionAdd:
			hint = keys.Add.Help().Key
		case workspace.ActionEdit:
			hint = keys.Edit.Help().Key
		case workspace.ActionDelete:
			hint = keys.Delete.Help().Key
		case workspace.ActionSave:
			hint = editorKeys.Save.Help().Key
		case workspace.ActionClose:
			hint = editorKeys.Close.Help().Key
		}
		if hint == "" {
			labels = append(labels, string(a))
			continue
		}
		labels = append(labels, fmt.Sprintf("%s [%s]", a, hint))
	}
	return labels
}

// ToolbarLegend lists the formatting commands and their keys.
func ToolbarLegend(keys state.EditorKeyMap) string {
	parts := make([]string, 0, len(keys.Commands))
	for _, c := range keys.Commands {
		h := c.Binding.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return strings.Join(parts, " · ")
}

// ConfirmText returns the title and body of a workspace confirmation dialog.
func ConfirmText(m workspace.Modal, selected string) (string, string) {
	switch m {
	case workspace.ConfirmDelete:
		return "Delete article", fmt.Sprintf("Are you sure you want to delete %q?\n\n(y/n)", selected)
	case workspace.ConfirmDeleteAgain:
		return "Delete article", "Are you really sure? This cannot be undone.\n\n(y/n)"
	case workspace.ConfirmUnsaved:
		return "Unsaved changes", "You have unsaved changes. Save before closing?\n\n(y: save, n: discard)"
	default:
		return "", ""
	}
}

// TargetLine describes the focused code block or link of the viewer.
func TargetLine(targets []markup.Target, index int, keys state.KeyMap) string {
	if len(targets) == 0 {
		return ""
	}
	if index < 0 || index >= len(targets) {
		return fmt.Sprintf("%d code blocks/links · %s to focus", len(targets), keys.NextTarget.Help().Key)
	}
	t := targets[index]
	pos := fmt.Sprintf("[%d/%d]", index+1, len(targets))
	switch t.Kind {
	case markup.CodeTarget:
		lang := t.Language
		if lang == "" {
			lang = "text"
		}
		lines := strings.Count(t.Value, "\n") + 1
		return fmt.Sprintf("%s code (%s, %d lines) · %s copy", pos, lang, lines, keys.Copy.Help().Key)
	case markup.ImageTarget:
		return fmt.Sprintf("%s image %s · %s open", pos, t.Value, keys.OpenLink.Help().Key)
	default:
		label := t.Label
		if label == "" || label == t.Value {
			return fmt.Sprintf("%s link %s · %s open", pos, t.Value, keys.OpenLink.Help().Key)
		}
		return fmt.Sprintf("%s link %q → %s · %s open", pos, label, t.Value, keys.OpenLink.Help().Key)
	}
}
