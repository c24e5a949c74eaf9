package update

import (
	"errors"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/tektune/internal/domain/article"
	"github.com/tesso57/tektune/internal/domain/richtext"
	"github.com/tesso57/tektune/internal/domain/workspace"
	"github.com/tesso57/tektune/internal/presentation/tui/state"
)

// openEditor loads a draft into the title input and body editor.
func openEditor(s *state.ModelState, title, body string) tea.Cmd {
	s.TitleInput.SetValue(title)
	s.Editor.SetValue(body)
	moveCursor(&s.Editor, 0, 0)
	s.Anchor = state.NoAnchor
	s.Workspace = s.Workspace.Baseline(s.Live())
	return focusField(s, state.BodyField)
}

// resetEditor clears the inputs after the editor closes.
func resetEditor(s *state.ModelState) {
	s.TitleInput.Reset()
	s.TitleInput.Blur()
	s.Editor.Reset()
	s.Editor.Blur()
	s.Anchor = state.NoAnchor
	s.Field = state.BodyField
}

func focusField(s *state.ModelState, f state.Field) tea.Cmd {
	s.Field = f
	if f == state.TitleField {
		s.Editor.Blur()
		return s.TitleInput.Focus()
	}
	s.TitleInput.Blur()
	return s.Editor.Focus()
}

func cursorOffset(ta *textarea.Model) int {
	li := ta.LineInfo()
	return richtext.Offset(ta.Value(), ta.Line(), li.StartColumn+li.ColumnOffset)
}

// document captures the editor text and the selection between the mark and the cursor.
func document(s *state.ModelState) richtext.Document {
	cursor := cursorOffset(&s.Editor)
	sel := richtext.Selection{Start: cursor, End: cursor}
	if s.Anchor != state.NoAnchor {
		sel = richtext.Selection{Start: min(s.Anchor, cursor), End: max(s.Anchor, cursor)}
	}
	return richtext.Document{Text: s.Editor.Value(), Sel: sel}
}

// setDocument writes doc back into the editor. A non-empty selection is kept
// with the mark at its start and the cursor at its end.
func setDocument(s *state.ModelState, doc richtext.Document) {
	s.Editor.SetValue(doc.Text)
	row, col := richtext.Position(doc.Text, doc.Sel.End)
	moveCursor(&s.Editor, row, col)
	if doc.Sel.Empty() {
		s.Anchor = state.NoAnchor
		return
	}
	s.Anchor = doc.Sel.Start
}

func moveCursor(ta *textarea.Model, row, col int) {
	for range len(ta.Value()) + ta.LineCount() {
		if ta.Line() == row {
			break
		}
		if ta.Line() > row {
			ta.CursorUp()
		} else {
			ta.CursorDown()
		}
	}
	ta.SetCursor(col)
}

func handleMark(s *state.ModelState, deps Deps) tea.Cmd {
	if s.Field != state.BodyField {
		return nil
	}
	if s.Anchor != state.NoAnchor {
		s.Anchor = state.NoAnchor
		return setStatus(s, "Selection cleared", deps)
	}
	s.Anchor = cursorOffset(&s.Editor)
	return setStatus(s, "Selection started", deps)
}

func applyCommand(s *state.ModelState, cmd richtext.Command, deps Deps) tea.Cmd {
	if s.Field != state.BodyField {
		return nil
	}
	doc := document(s)
	out, err := richtext.Apply(doc, cmd)
	switch {
	case errors.Is(err, richtext.ErrNeedsURL):
		s.PendingLink = doc
		s.Overlay = state.LinkPromptOverlay
		s.LinkInput.Reset()
		return s.LinkInput.Focus()
	case errors.Is(err, richtext.ErrNeedsImage):
		return openPicker(s)
	case err != nil:
		showAlert(s, err.Error())
		return nil
	}
	setDocument(s, out)
	return nil
}

func openPicker(s *state.ModelState) tea.Cmd {
	s.Overlay = state.ImagePickerOverlay
	return s.Picker.Init()
}

func handleLinkPrompt(s *state.ModelState, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		setDocument(s, richtext.ApplyLink(s.PendingLink, s.LinkInput.Value()))
		closeLinkPrompt(s)
		return nil
	case tea.KeyEsc:
		closeLinkPrompt(s)
		return nil
	}
	var cmd tea.Cmd
	s.LinkInput, cmd = s.LinkInput.Update(msg)
	return cmd
}

func closeLinkPrompt(s *state.ModelState) {
	s.LinkInput.Reset()
	s.LinkInput.Blur()
	s.PendingLink = richtext.Document{}
	s.Overlay = state.NoOverlay
}

// HandlePickerMsg forwards a message to the open image picker and starts an
// upload once a file is chosen.
func HandlePickerMsg(s *state.ModelState, msg tea.Msg, deps Deps) tea.Cmd {
	var cmd tea.Cmd
	s.Picker, cmd = s.Picker.Update(msg)

	if ok, path := s.Picker.DidSelectFile(msg); ok {
		s.Overlay = state.NoOverlay
		s.Loading = true
		s.Uploading = true
		return tea.Batch(cmd, s.Spinner.Tick, UploadImageCmd(deps.Articles, deps.OpenFile, s.Workspace.Selected, path))
	}
	if ok, _ := s.Picker.DidSelectDisabledFile(msg); ok {
		s.Overlay = state.NoOverlay
		showAlert(s, article.UserMessage(&article.UploadError{Message: "Invalid file type"}))
		return cmd
	}
	return cmd
}

// HandleImageUploadedMsg inserts the uploaded image at the editor cursor.
func HandleImageUploadedMsg(s *state.ModelState, msg ImageUploadedMsg, deps Deps) {
	s.Loading = false
	s.Uploading = false
	if msg.Err != nil {
		logError(deps, "image upload failed", msg.Err)
		showAlert(s, article.UserMessage(msg.Err))
		return
	}
	if s.Workspace.Step != workspace.StepEditor {
		return
	}
	setDocument(s, richtext.InsertImage(document(s), msg.URL))
}

func updateFocusedField(s *state.ModelState, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if s.Field == state.TitleField {
		s.TitleInput, cmd = s.TitleInput.Update(msg)
		return cmd
	}
	before := s.Editor.Value()
	s.Editor, cmd = s.Editor.Update(msg)
	if s.Editor.Value() != before {
		s.Anchor = clampAnchor(s.Anchor, len([]rune(s.Editor.Value())))
	}
	return cmd
}

func clampAnchor(anchor, n int) int {
	if anchor == state.NoAnchor {
		return anchor
	}
	return min(anchor, n)
}
