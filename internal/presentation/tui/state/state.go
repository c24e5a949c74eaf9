// Package state holds UI state types for the TUI.
package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/tesso57/tektune/internal/application/settings"
	"github.com/tesso57/tektune/internal/domain/richtext"
)

// Overlay is a TUI dialog drawn above the workspace.
// Workspace confirmations live in workspace.State.Modal.
type Overlay int

const (
	NoOverlay Overlay = iota
	AlertOverlay
	LinkPromptOverlay
	ImagePickerOverlay
	QuitOverlay
)

// Field is the focused input of the editor.
type Field int

const (
	BodyField Field = iota
	TitleField
)

// KeyMap defines the keybindings for browsing articles.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	UpPage     key.Binding
	DownPage   key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Open       key.Binding
	Quit       key.Binding
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Refresh    key.Binding
	NextTarget key.Binding
	Copy       key.Binding
	OpenLink   key.Binding
	Help       key.Binding
}

// ShortHelp returns a subset of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit, k.Open, k.Add, k.Edit, k.Delete}
}

// FullHelp returns all keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.UpPage, k.DownPage},
		{k.ScrollUp, k.ScrollDown, k.Open, k.Refresh},
		{k.Add, k.Edit, k.Delete},
		{k.NextTarget, k.Copy, k.OpenLink},
		{k.Help, k.Quit},
	}
}

// CommandBinding pairs a formatting command with its key.
type CommandBinding struct {
	Command richtext.Command
	Binding key.Binding
}

// EditorKeyMap defines the keybindings used while editing an article.
type EditorKeyMap struct {
	Save        key.Binding
	Close       key.Binding
	SwitchField key.Binding
	Mark        key.Binding
	Commands    []CommandBinding
}

// ShortHelp returns a subset of keybindings for the help view.
func (k *EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Close, k.SwitchField, k.Mark}
}

// FullHelp returns all keybindings for the help view.
func (k *EditorKeyMap) FullHelp() [][]key.Binding {
	groups := [][]key.Binding{{k.Save, k.Close, k.SwitchField, k.Mark}}
	var column []key.Binding
	for _, c := range k.Commands {
		column = append(column, c.Binding)
		if len(column) == 4 {
			groups = append(groups, column)
			column = nil
		}
	}
	if len(column) > 0 {
		groups = append(groups, column)
	}
	return groups
}

// NewKeyMap creates a new KeyMap from the configuration.
func NewKeyMap(cfg settings.KeyMapConfig) KeyMap {
	return KeyMap{
		Up:       binding(cfg.Up, "up"),
		Down:     binding(cfg.Down, "down"),
		UpPage:   binding(cfg.UpPage, "pgup"),
		DownPage: binding(cfg.DownPage, "pgdn"),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "K"),
			key.WithHelp("K", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown", "J"),
			key.WithHelp("J", "scroll down"),
		),
		Open:       binding(cfg.Open, "open"),
		Quit:       binding(cfg.Quit, "quit"),
		Add:        binding(cfg.Add, "add"),
		Edit:       binding(cfg.Edit, "edit"),
		Delete:     binding(cfg.Delete, "delete"),
		Refresh:    binding(cfg.Refresh, "refresh"),
		NextTarget: binding(cfg.NextTarget, "next code/link"),
		Copy:       binding(cfg.Copy, "copy code"),
		OpenLink:   binding(cfg.OpenLink, "open link"),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// NewEditorKeyMap creates a new EditorKeyMap from the configuration.
func NewEditorKeyMap(cfg settings.EditorKeyMapConfig) EditorKeyMap {
	return EditorKeyMap{
		Save:        binding(cfg.Save, "save"),
		Close:       binding(cfg.Close, "close"),
		SwitchField: binding(cfg.SwitchField, "title/body"),
		Mark:        binding(cfg.Mark, "mark selection"),
		Commands: []CommandBinding{
			{richtext.H1, binding(cfg.H1, "h1")},
			{richtext.H2, binding(cfg.H2, "h2")},
			{richtext.H3, binding(cfg.H3, "h3")},
			{richtext.Bold, binding(cfg.Bold, "bold")},
			{richtext.Italic, binding(cfg.Italic, "italic")},
			{richtext.Underline, binding(cfg.Underline, "underline")},
			{richtext.Code, binding(cfg.Code, "code block")},
			{richtext.Warning, binding(cfg.Warning, "warning")},
			{richtext.Link, binding(cfg.Link, "link")},
			{richtext.OrderedList, binding(cfg.OrderedList, "numbered list")},
			{richtext.UnorderedList, binding(cfg.UnorderedList, "bullet list")},
			{richtext.Image, binding(cfg.Image, "image")},
			{richtext.Quote, binding(cfg.Quote, "quote")},
			{richtext.HR, binding(cfg.HR, "rule")},
		},
	}
}

func binding(keys, help string) key.Binding {
	return key.NewBinding(
		key.WithKeys(splitKeys(keys)...),
		key.WithHelp(keys, help),
	)
}

func splitKeys(keys string) []string {
	out := make([]string, 0, 2)
	for part := range strings.SplitSeq(keys, ",") {
		keyName := strings.TrimSpace(part)
		if keyName == "" {
			continue
		}
		out = append(out, keyName)
		switch keyName {
		case "pgdn":
			out = append(out, "pgdown")
		case "pgdown":
			out = append(out, "pgdn")
		}
	}
	return out
}
