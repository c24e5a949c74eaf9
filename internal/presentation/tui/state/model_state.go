// Package state holds UI state types for the TUI.
package state

import (
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/tesso57/tektune/internal/domain/article"
	"github.com/tesso57/tektune/internal/domain/richtext"
	"github.com/tesso57/tektune/internal/domain/workspace"
	"github.com/tesso57/tektune/internal/infrastructure/markup"
)

// NoAnchor marks an editor without an active selection.
const NoAnchor = -1

// ModelState holds the presentation state for the TUI.
type ModelState struct {
	Workspace  workspace.State
	Overlay    Overlay
	Field      Field
	List       list.Model
	TitleInput textinput.Model
	Editor     textarea.Model
	LinkInput  textinput.Model
	Picker     filepicker.Model
	Viewport   viewport.Model
	Help       help.Model
	Spinner    spinner.Model
	Loading    bool
	Uploading  bool
	Keys       KeyMap
	EditorKeys EditorKeyMap
	Width      int
	Height     int

	// Article is the decoded article shown in the viewer.
	Article     *article.Article
	LoadErr     error
	Targets     []markup.Target
	TargetIndex int

	// Anchor is the rune offset where the editor selection started.
	Anchor      int
	PendingLink richtext.Document

	Alert     string
	Status    string
	StatusSeq int
}

// Live returns the editor's current title and body.
func (s *ModelState) Live() workspace.Draft {
	return workspace.Draft{Title: s.TitleInput.Value(), Body: s.Editor.Value()}
}

// FocusedTarget returns the code block or link focused in the viewer.
func (s *ModelState) FocusedTarget() (markup.Target, bool) {
	if s.TargetIndex < 0 || s.TargetIndex >= len(s.Targets) {
		return markup.Target{}, false
	}
	return s.Targets[s.TargetIndex], true
}

// HelpView renders the short or full help for the active key map.
func (s *ModelState) HelpView() string {
	if s.Workspace.Step == workspace.StepEditor {
		return s.Help.View(&s.EditorKeys)
	}
	return s.Help.View(&s.Keys)
}
