// Package update holds UI update logic for the TUI.
package update

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/tektune/internal/domain/article"
	"github.com/tesso57/tektune/internal/domain/workspace"
	"github.com/tesso57/tektune/internal/presentation/tui/intent"
	"github.com/tesso57/tektune/internal/presentation/tui/presenter"
	"github.com/tesso57/tektune/internal/presentation/tui/state"
)

// HandleKeyMsg processes key input. Overlays take precedence over workspace
// dialogs, which take precedence over the editor and the browser. Workspace
// dialogs stay open until one of their answers is chosen.
func HandleKeyMsg(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch s.Overlay {
	case state.AlertOverlay:
		return handleAlert(s)
	case state.QuitOverlay:
		return handleQuitView(s, msg)
	case state.LinkPromptOverlay:
		return handleLinkPrompt(s, msg), true
	case state.ImagePickerOverlay:
		if msg.Type == tea.KeyEsc {
			s.Overlay = state.NoOverlay
			return nil, true
		}
		return nil, false
	}

	switch s.Workspace.Modal {
	case workspace.ConfirmDelete, workspace.ConfirmDeleteAgain:
		return handleDeleteDialog(s, msg, deps)
	case workspace.ConfirmUnsaved:
		return handleUnsavedDialog(s, msg, deps)
	}

	if s.Help.ShowAll {
		return handleHelpView(s, msg)
	}

	switch s.Workspace.Content() {
	case workspace.TitleEntry:
		return handleTitleEntry(s, msg, deps)
	case workspace.Editor:
		return handleEditorIntent(s, intent.FromEditorKeyMsg(msg, s.EditorKeys), msg, deps)
	}
	return handleViewIntent(s, intent.FromKeyMsg(msg, s.Keys), msg, deps)
}

func handleAlert(s *state.ModelState) (tea.Cmd, bool) {
	s.Alert = ""
	s.Overlay = state.NoOverlay
	return nil, true
}

func handleQuitView(s *state.ModelState, msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y":
		return tea.Quit, true
	case "n", "N", "esc", "q", "Q":
		s.Overlay = state.NoOverlay
		return nil, true
	}
	return nil, true
}

func handleHelpView(s *state.ModelState, msg tea.KeyMsg) (tea.Cmd, bool) {
	parsed := intent.FromKeyMsg(msg, s.Keys)
	switch {
	case parsed.Type == intent.Quit:
		s.Help.ShowAll = false
		s.Overlay = state.QuitOverlay
	case parsed.Type == intent.ToggleHelp, msg.Type == tea.KeyEsc:
		s.Help.ShowAll = false
	}
	return nil, true
}

func handleDeleteDialog(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y":
		next, title, ok := s.Workspace.ConfirmDelete()
		s.Workspace = next
		if !ok {
			return nil, true
		}
		s.Loading = true
		return tea.Batch(s.Spinner.Tick, DeleteArticleCmd(deps.Articles, title)), true
	case "n", "N":
		s.Workspace = s.Workspace.CancelDelete()
		return nil, true
	}
	return nil, true
}

func handleUnsavedDialog(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y":
		next, req, err := s.Workspace.ResolveUnsaved(true, s.Live())
		s.Workspace = next
		if err != nil {
			reportRejected(s, err)
			return nil, true
		}
		s.Loading = true
		return tea.Batch(s.Spinner.Tick, SaveArticleCmd(deps.Articles, *req)), true
	case "n", "N":
		next, _, _ := s.Workspace.ResolveUnsaved(false, s.Live())
		s.Workspace = next
		return afterClose(s, deps), true
	}
	return nil, true
}

func handleTitleEntry(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	parsed := intent.FromEditorKeyMsg(msg, s.EditorKeys)
	switch {
	case parsed.Type == intent.Quit:
		s.Overlay = state.QuitOverlay
		return nil, true
	case parsed.Type == intent.Close:
		s.Workspace = s.Workspace.Close()
		return afterClose(s, deps), true
	case msg.Type == tea.KeyEnter, parsed.Type == intent.Save:
		next, title, err := s.Workspace.SubmitTitle(s.TitleInput.Value())
		if err != nil {
			reportRejected(s, err)
			return nil, true
		}
		s.Workspace = next
		s.Loading = true
		return tea.Batch(s.Spinner.Tick, CreateArticleCmd(deps.Articles, title)), true
	}
	var cmd tea.Cmd
	s.TitleInput, cmd = s.TitleInput.Update(msg)
	return cmd, true
}

func handleEditorIntent(s *state.ModelState, in intent.Intent, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Quit:
		s.Overlay = state.QuitOverlay
	case intent.Save:
		next, req, err := s.Workspace.BeginSave(s.Live())
		if err != nil {
			reportRejected(s, err)
			return nil, true
		}
		s.Workspace = next
		s.Loading = true
		return tea.Batch(s.Spinner.Tick, SaveArticleCmd(deps.Articles, req)), true
	case intent.Close:
		next, closed := s.Workspace.RequestClose(s.Live())
		s.Workspace = next
		if closed {
			return afterClose(s, deps), true
		}
	case intent.SwitchField:
		if s.Field == state.BodyField {
			return focusField(s, state.TitleField), true
		}
		return focusField(s, state.BodyField), true
	case intent.Mark:
		return handleMark(s, deps), true
	case intent.Format:
		return applyCommand(s, in.Command, deps), true
	default:
		return updateFocusedField(s, msg), true
	}
	return nil, true
}

func handleViewIntent(s *state.ModelState, in intent.Intent, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Quit:
		s.Overlay = state.QuitOverlay
		return nil, true
	case intent.ToggleHelp:
		s.Help.ShowAll = !s.Help.ShowAll
		return nil, true
	case intent.Open:
		if item, ok := s.List.SelectedItem().(*presenter.Item); ok {
			return openArticle(s, item.TitleText, deps), true
		}
		return nil, true
	case intent.Add:
		next, err := s.Workspace.StartAdd()
		if err != nil {
			reportRejected(s, err)
			return nil, true
		}
		s.Workspace = next
		clearArticle(s)
		applyList(s)
		s.TitleInput.Reset()
		s.Editor.Blur()
		return s.TitleInput.Focus(), true
	case intent.Edit:
		next, title, err := s.Workspace.StartEdit()
		if err != nil {
			reportRejected(s, err)
			return nil, true
		}
		s.Workspace = next
		s.Loading = true
		return tea.Batch(s.Spinner.Tick, LoadArticleCmd(deps.Articles, title, true)), true
	case intent.Delete:
		next, err := s.Workspace.RequestDelete()
		if err != nil {
			reportRejected(s, err)
			return nil, true
		}
		s.Workspace = next
		return nil, true
	case intent.Refresh:
		s.Loading = true
		return tea.Batch(s.Spinner.Tick, LoadTitlesCmd(deps.Articles)), true
	case intent.Scroll:
		var cmd tea.Cmd
		s.Viewport, cmd = s.Viewport.Update(msg)
		return cmd, true
	case intent.NextTarget:
		nextTarget(s)
		return nil, true
	case intent.Copy:
		return copyTarget(s, deps), true
	case intent.OpenLink:
		return openTarget(s, deps), true
	}
	return nil, false
}

// openArticle selects title and loads it. Opening the selected article again reloads it.
func openArticle(s *state.ModelState, title string, deps Deps) tea.Cmd {
	if s.Workspace.Busy() {
		return nil
	}
	next, changed := s.Workspace.Select(title)
	if !changed && (title != s.Workspace.Selected || s.Workspace.Editing()) {
		return nil
	}
	s.Workspace = next
	applyList(s)
	return loadArticle(s, title, deps)
}

func loadArticle(s *state.ModelState, title string, deps Deps) tea.Cmd {
	clearArticle(s)
	s.Loading = true
	return tea.Batch(s.Spinner.Tick, LoadArticleCmd(deps.Articles, title, false))
}

// afterClose resets the editor and shows the selected article, if any.
func afterClose(s *state.ModelState, deps Deps) tea.Cmd {
	resetEditor(s)
	applyList(s)
	sel := s.Workspace.Selected
	if sel == "" {
		clearArticle(s)
		return nil
	}
	if s.Article != nil && s.Article.Title == sel && s.LoadErr == nil {
		return nil
	}
	return loadArticle(s, sel, deps)
}

// HandleWindowSize updates layout sizing based on terminal size.
func HandleWindowSize(s *state.ModelState, msg tea.WindowSizeMsg, deps Deps) {
	s.Width = msg.Width
	s.Height = msg.Height

	UpdateListSizes(s)
	renderViewer(s, deps)
}

// HandleTitlesLoadedMsg replaces the article list.
func HandleTitlesLoadedMsg(s *state.ModelState, msg TitlesLoadedMsg, deps Deps) {
	s.Loading = false
	defer UpdateListSizes(s)
	if msg.Err != nil {
		logError(deps, "list articles failed", msg.Err)
		showAlert(s, article.UserMessage(msg.Err))
		return
	}
	s.Workspace = s.Workspace.WithTitles(msg.Titles)
	if s.Workspace.Selected == "" && !s.Workspace.Editing() {
		clearArticle(s)
	}
	applyList(s)
}

// HandleArticleLoadedMsg shows a loaded article or opens it in the editor.
// Results for an article that is no longer selected are dropped.
func HandleArticleLoadedMsg(s *state.ModelState, msg ArticleLoadedMsg, deps Deps) tea.Cmd {
	if msg.ForEdit {
		if msg.Err != nil {
			s.Loading = false
			s.Workspace = s.Workspace.EditorLoadFailed()
			logError(deps, "load article for edit failed", msg.Err)
			showAlert(s, article.UserMessage(msg.Err))
			return nil
		}
		next, ok := s.Workspace.EditorLoaded(msg.Article)
		if !ok {
			if s.Workspace.Pending == workspace.OpLoad {
				s.Loading = false
				s.Workspace = s.Workspace.EditorLoadFailed()
			}
			return nil
		}
		s.Loading = false
		s.Workspace = next
		applyList(s)
		return openEditor(s, msg.Article.Title, msg.Article.Content)
	}

	if msg.Title != s.Workspace.Selected || s.Workspace.Editing() {
		// A view load for another selection may still be in flight.
		awaiting := !s.Workspace.Editing() && s.Workspace.Selected != ""
		if !awaiting && s.Workspace.Pending == workspace.OpNone && !s.Uploading {
			s.Loading = false
		}
		return nil
	}
	s.Loading = false
	if msg.Err != nil {
		logError(deps, "load article failed", msg.Err)
		clearArticle(s)
		s.LoadErr = msg.Err
		return nil
	}
	a := msg.Article
	showArticle(s, &a, deps)
	return nil
}

// HandleArticleCreatedMsg opens the editor for a newly created article.
func HandleArticleCreatedMsg(s *state.ModelState, msg ArticleCreatedMsg, deps Deps) tea.Cmd {
	s.Loading = false
	defer UpdateListSizes(s)
	if msg.Err != nil {
		s.Workspace = s.Workspace.CreateFailed()
		logError(deps, "create article failed", msg.Err)
		showAlert(s, article.UserMessage(msg.Err))
		return nil
	}
	s.Workspace = s.Workspace.TitleCreated(msg.Title)
	applyList(s)
	return openEditor(s, msg.Title, "")
}

// HandleArticleSavedMsg returns to the viewer after a save.
func HandleArticleSavedMsg(s *state.ModelState, msg ArticleSavedMsg, deps Deps) tea.Cmd {
	s.Loading = false
	defer UpdateListSizes(s)
	if msg.Err != nil {
		s.Workspace = s.Workspace.SaveFailed()
		logError(deps, "save article failed", msg.Err)
		showAlert(s, article.UserMessage(msg.Err))
		return nil
	}
	title := msg.Title
	if title == "" {
		title = msg.Request.Draft.Title
	}
	s.Workspace = s.Workspace.Saved(title)
	resetEditor(s)
	applyList(s)
	return tea.Batch(
		setStatus(s, "Article saved!", deps),
		loadArticle(s, s.Workspace.Selected, deps),
	)
}

// HandleArticleDeletedMsg removes the deleted article from the list.
func HandleArticleDeletedMsg(s *state.ModelState, msg ArticleDeletedMsg, deps Deps) tea.Cmd {
	s.Loading = false
	defer UpdateListSizes(s)
	if msg.Err != nil {
		s.Workspace = s.Workspace.DeleteFailed()
		logError(deps, "delete article failed", msg.Err)
		showAlert(s, article.UserMessage(msg.Err))
		return nil
	}
	s.Workspace = s.Workspace.Deleted(msg.Title)
	if s.Workspace.Selected == "" {
		clearArticle(s)
	}
	applyList(s)
	return setStatus(s, "Article deleted", deps)
}

// HandleStatusExpiredMsg clears the status line unless a newer one replaced it.
func HandleStatusExpiredMsg(s *state.ModelState, msg StatusExpiredMsg) {
	if msg.Seq == s.StatusSeq {
		s.Status = ""
		UpdateListSizes(s)
	}
}

func applyList(s *state.ModelState) {
	presenter.ApplyArticleList(&s.List, s.Workspace.Titles, s.Workspace.Selected)
}

func setStatus(s *state.ModelState, text string, deps Deps) tea.Cmd {
	s.StatusSeq++
	s.Status = text
	return ClearStatusCmd(s.StatusSeq, deps.StatusDuration)
}

func showAlert(s *state.ModelState, message string) {
	s.Alert = message
	s.Overlay = state.AlertOverlay
}

// reportRejected alerts on validation failures. Guard errors such as a busy
// workspace or a missing selection are ignored.
func reportRejected(s *state.ModelState, err error) {
	if errors.Is(err, workspace.ErrBusy) || errors.Is(err, workspace.ErrNoSelection) || errors.Is(err, workspace.ErrWrongMode) {
		return
	}
	showAlert(s, article.UserMessage(err))
}

func logError(deps Deps, msg string, err error) {
	if deps.Logger == nil {
		return
	}
	deps.Logger.Warn(msg, "error", err)
}
