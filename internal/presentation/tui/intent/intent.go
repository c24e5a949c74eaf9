// Package intent parses user input into UI intents.
package intent

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/tektune/internal/domain/richtext"
	"github.com/tesso57/tektune/internal/presentation/tui/state"
)

// Type represents a user intent.
type Type int

const (
	None Type = iota
	Quit
	ToggleHelp
	Open
	Add
	Edit
	Delete
	Refresh
	Scroll
	NextTarget
	Copy
	OpenLink

	Save
	Close
	SwitchField
	Mark
	Format
)

// Intent represents a parsed user intent.
type Intent struct {
	Type    Type
	Command richtext.Command
}

// FromKeyMsg maps a key message to a browsing intent.
func FromKeyMsg(msg tea.KeyMsg, keys state.KeyMap) Intent {
	switch {
	case msg.Type == tea.KeyCtrlC, key.Matches(msg, keys.Quit):
		return Intent{Type: Quit}
	case key.Matches(msg, keys.Help):
		return Intent{Type: ToggleHelp}
	case key.Matches(msg, keys.Open):
		return Intent{Type: Open}
	case key.Matches(msg, keys.Add):
		return Intent{Type: Add}
	case key.Matches(msg, keys.Edit):
		return Intent{Type: Edit}
	case key.Matches(msg, keys.Delete):
		return Intent{Type: Delete}
	case key.Matches(msg, keys.Refresh):
		return Intent{Type: Refresh}
	case key.Matches(msg, keys.ScrollUp, keys.ScrollDown):
		return Intent{Type: Scroll}
	case key.Matches(msg, keys.NextTarget):
		return Intent{Type: NextTarget}
	case key.Matches(msg, keys.Copy):
		return Intent{Type: Copy}
	case key.Matches(msg, keys.OpenLink):
		return Intent{Type: OpenLink}
	default:
		return Intent{Type: None}
	}
}

// FromEditorKeyMsg maps a key message to an editor intent. Keys with no
// editor meaning return None and are typed into the focused field.
func FromEditorKeyMsg(msg tea.KeyMsg, keys state.EditorKeyMap) Intent {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return Intent{Type: Quit}
	case key.Matches(msg, keys.Save):
		return Intent{Type: Save}
	case key.Matches(msg, keys.Close):
		return Intent{Type: Close}
	case key.Matches(msg, keys.SwitchField):
		return Intent{Type: SwitchField}
	case key.Matches(msg, keys.Mark):
		return Intent{Type: Mark}
	}
	for _, c := range keys.Commands {
		if key.Matches(msg, c.Binding) {
			return Intent{Type: Format, Command: c.Command}
		}
	}
	return Intent{Type: None}
}
