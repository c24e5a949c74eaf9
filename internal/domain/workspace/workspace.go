// Package workspace models the article browser and editor as a pure state machine.
//
// State is a value. Every transition is a method returning the next State, so
// callers hold exactly one current state and replace it after each event.
package workspace

import (
	"errors"
	"slices"
	"strings"

	"github.com/tesso57/tektune/internal/domain/article"
)

// Mode is the top-level interaction mode.
type Mode int

const (
	View Mode = iota
	Add
	Edit
)

func (m Mode) String() string {
	switch m {
	case Add:
		return "add"
	case Edit:
		return "edit"
	default:
		return "view"
	}
}

// Step is the sub-step of the add and edit modes.
type Step int

const (
	StepNone Step = iota
	StepTitle
	StepEditor
)

// Modal is the confirmation dialog currently shown, if any.
type Modal int

const (
	NoModal Modal = iota
	ConfirmDelete
	ConfirmDeleteAgain
	ConfirmUnsaved
)

// Op is the store operation awaiting completion.
type Op int

const (
	OpNone Op = iota
	OpCreate
	OpLoad
	OpSave
	OpDelete
)

// ContentKind selects what the content region shows.
type ContentKind int

const (
	Welcome ContentKind = iota
	Choose
	ArticleContent
	TitleEntry
	Editor
)

// Action is a top bar button.
type Action string

const (
	ActionAdd    Action = "Add"
	ActionEdit   Action = "Edit"
	ActionDelete Action = "Delete"
	ActionSave   Action = "Save"
	ActionClose  Action = "Close"
)

var (
	ErrBusy        = errors.New("another request is in progress")
	ErrNoSelection = errors.New("no article selected")
	ErrWrongMode   = errors.New("action not available in this mode")
)

// Draft is the editable pair of title and body.
type Draft struct {
	Title string
	Body  string
}

// SaveRequest describes the store update issued by a save.
type SaveRequest struct {
	OldTitle string
	Draft    Draft
}

// State is the complete UI state. An empty Selected means nothing is selected.
type State struct {
	Titles              []string
	Selected            string
	Mode                Mode
	Step                Step
	Snapshot            Draft
	Original            string
	Modal               Modal
	Pending             Op
	DoubleConfirmDelete bool
}

// New returns the initial view-mode state.
func New(doubleConfirmDelete bool) State {
	return State{DoubleConfirmDelete: doubleConfirmDelete}
}

// Busy reports whether a store request is outstanding.
func (s State) Busy() bool { return s.Pending != OpNone }

// Editing reports whether the user is in the add or edit flow.
func (s State) Editing() bool { return s.Mode != View }

// WithTitles replaces the article list and drops a selection that no longer exists.
func (s State) WithTitles(titles []string) State {
	s.Titles = slices.Clone(titles)
	if s.Selected != "" && !slices.Contains(s.Titles, s.Selected) {
		s.Selected = ""
	}
	return s
}

// Select changes the selected article. It is ignored outside view mode.
func (s State) Select(title string) (State, bool) {
	if s.Mode != View || s.Modal != NoModal || !slices.Contains(s.Titles, title) {
		return s, false
	}
	if s.Selected == title {
		return s, false
	}
	s.Selected = title
	return s, true
}

// StartAdd enters title entry for a new article.
func (s State) StartAdd() (State, error) {
	if s.Mode != View || s.Modal != NoModal {
		return s, ErrWrongMode
	}
	if s.Busy() {
		return s, ErrBusy
	}
	s.Mode = Add
	s.Step = StepTitle
	s.Selected = ""
	s.Snapshot = Draft{}
	s.Original = ""
	return s, nil
}

// SubmitTitle validates a new title and marks the create request pending.
// Invalid titles leave the state untouched.
func (s State) SubmitTitle(title string) (State, string, error) {
	if s.Mode != Add || s.Step != StepTitle {
		return s, "", ErrWrongMode
	}
	if s.Busy() {
		return s, "", ErrBusy
	}
	valid, err := article.ValidateTitle(title)
	if err != nil {
		return s, "", err
	}
	s.Pending = OpCreate
	return s, valid, nil
}

// TitleCreated moves from title entry to the editor for the new article.
func (s State) TitleCreated(title string) State {
	s.Pending = OpNone
	if s.Mode != Add || s.Step != StepTitle {
		return s
	}
	s.Step = StepEditor
	s.Snapshot = Draft{Title: title}
	s.Original = title
	s.Titles = insertTitle(s.Titles, title)
	return s
}

// CreateFailed keeps the user on title entry.
func (s State) CreateFailed() State {
	s.Pending = OpNone
	return s
}

// StartEdit requests the selected article's content for editing.
func (s State) StartEdit() (State, string, error) {
	if s.Mode != View || s.Modal != NoModal {
		return s, "", ErrWrongMode
	}
	if s.Selected == "" {
		return s, "", ErrNoSelection
	}
	if s.Busy() {
		return s, "", ErrBusy
	}
	s.Pending = OpLoad
	return s, s.Selected, nil
}

// EditorLoaded opens the editor once content for the selected article arrives.
// Content for any other title is stale and ignored.
func (s State) EditorLoaded(a article.Article) (State, bool) {
	if s.Pending != OpLoad || s.Mode != View || a.Title != s.Selected {
		return s, false
	}
	s.Pending = OpNone
	s.Mode = Edit
	s.Step = StepEditor
	s.Snapshot = Draft{Title: a.Title, Body: a.Content}
	s.Original = a.Title
	return s, true
}

// EditorLoadFailed abandons the edit request.
func (s State) EditorLoadFailed() State {
	if s.Pending == OpLoad {
		s.Pending = OpNone
	}
	return s
}

// BeginSave validates the draft and marks the save pending.
func (s State) BeginSave(live Draft) (State, SaveRequest, error) {
	if s.Step != StepEditor {
		return s, SaveRequest{}, ErrWrongMode
	}
	if s.Busy() {
		return s, SaveRequest{}, ErrBusy
	}
	title, err := article.ValidateTitle(live.Title)
	if err != nil {
		return s, SaveRequest{}, err
	}
	s.Pending = OpSave
	s.Modal = NoModal
	return s, SaveRequest{OldTitle: s.Original, Draft: Draft{Title: title, Body: live.Body}}, nil
}

// Saved returns to view mode with the saved article selected.
func (s State) Saved(title string) State {
	if s.Original != "" && s.Original != title {
		s.Titles = removeTitle(s.Titles, s.Original)
	}
	s.Titles = insertTitle(s.Titles, title)
	s.Pending = OpNone
	s.Modal = NoModal
	s.Mode = View
	s.Step = StepNone
	s.Snapshot = Draft{}
	s.Original = ""
	s.Selected = title
	return s
}

// SaveFailed keeps the editor open with the user's changes.
func (s State) SaveFailed() State {
	s.Pending = OpNone
	s.Modal = NoModal
	return s
}

// Baseline replaces the editor snapshot with live. Editors that normalize
// text on load call it so the normalized content does not count as a change.
func (s State) Baseline(live Draft) State {
	if s.Step == StepEditor {
		s.Snapshot = live
	}
	return s
}

// Dirty reports whether the live editor content differs from the snapshot.
func (s State) Dirty(live Draft) bool {
	return s.Step == StepEditor && live != s.Snapshot
}

// RequestClose closes the editor, or asks for confirmation when there are
// unsaved changes. The boolean is true when the editor actually closed.
func (s State) RequestClose(live Draft) (State, bool) {
	if s.Mode == View {
		return s, false
	}
	if s.Dirty(live) {
		s.Modal = ConfirmUnsaved
		return s, false
	}
	return s.Close(), true
}

// Close leaves the add or edit flow without saving.
// Closing after creating a title selects the new article.
func (s State) Close() State {
	if s.Mode == Add && s.Original != "" {
		s.Selected = s.Original
	}
	s.Mode = View
	s.Step = StepNone
	s.Modal = NoModal
	s.Snapshot = Draft{}
	s.Original = ""
	return s
}

// ResolveUnsaved answers the unsaved-changes dialog. Choosing save returns the
// request to issue; choosing discard closes the editor.
func (s State) ResolveUnsaved(save bool, live Draft) (State, *SaveRequest, error) {
	if s.Modal != ConfirmUnsaved {
		return s, nil, ErrWrongMode
	}
	if !save {
		return s.Close(), nil, nil
	}
	next, req, err := s.BeginSave(live)
	if err != nil {
		s.Modal = NoModal
		return s, nil, err
	}
	return next, &req, nil
}

// RequestDelete opens the delete confirmation for the selected article.
func (s State) RequestDelete() (State, error) {
	if s.Mode != View || s.Modal != NoModal {
		return s, ErrWrongMode
	}
	if s.Selected == "" {
		return s, ErrNoSelection
	}
	if s.Busy() {
		return s, ErrBusy
	}
	s.Modal = ConfirmDelete
	return s, nil
}

// ConfirmDelete answers yes to the delete dialog. With double confirmation the
// first answer only advances to the second dialog and returns ok == false.
func (s State) ConfirmDelete() (State, string, bool) {
	switch s.Modal {
	case ConfirmDelete:
		if s.DoubleConfirmDelete {
			s.Modal = ConfirmDeleteAgain
			return s, "", false
		}
	case ConfirmDeleteAgain:
	default:
		return s, "", false
	}
	s.Modal = NoModal
	s.Pending = OpDelete
	return s, s.Selected, true
}

// CancelDelete dismisses the delete dialog.
func (s State) CancelDelete() State {
	if s.Modal == ConfirmDelete || s.Modal == ConfirmDeleteAgain {
		s.Modal = NoModal
	}
	return s
}

// Deleted removes the article and clears the selection if it pointed at it.
func (s State) Deleted(title string) State {
	s.Pending = OpNone
	s.Titles = removeTitle(s.Titles, title)
	if s.Selected == title {
		s.Selected = ""
	}
	return s
}

// DeleteFailed leaves the article in place.
func (s State) DeleteFailed() State {
	if s.Pending == OpDelete {
		s.Pending = OpNone
	}
	return s
}

// Content reports what the content region should show.
func (s State) Content() ContentKind {
	switch {
	case s.Mode == Add && s.Step == StepTitle:
		return TitleEntry
	case s.Step == StepEditor:
		return Editor
	case len(s.Titles) == 0:
		return Welcome
	case s.Selected == "":
		return Choose
	default:
		return ArticleContent
	}
}

// Actions lists the top bar buttons for the current mode.
func (s State) Actions() []Action {
	if s.Mode != View {
		return []Action{ActionSave, ActionClose}
	}
	actions := []Action{ActionAdd}
	if s.Selected != "" {
		actions = append(actions, ActionEdit, ActionDelete)
	}
	return actions
}

func insertTitle(titles []string, title string) []string {
	if slices.Contains(titles, title) {
		return titles
	}
	out := append(slices.Clone(titles), title)
	slices.SortStableFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return out
}

func removeTitle(titles []string, title string) []string {
	return slices.DeleteFunc(slices.Clone(titles), func(t string) bool { return t == title })
}
