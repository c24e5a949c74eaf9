package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/tektune/internal/domain/article"
	"github.com/tesso57/tektune/internal/infrastructure/markup"
	"github.com/tesso57/tektune/internal/presentation/tui/state"
)

const articleDivider = "----------------------------------------"

const emptyArticleText = "(This article is empty. Press edit to start writing.)"

func buildArticleContent(title, body string) string {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if body == "" {
		body = emptyArticleText
	}
	if title == "" {
		return body
	}
	return title + "\n" + articleDivider + "\n\n" + body
}

// showArticle puts a freshly loaded article into the viewer.
func showArticle(s *state.ModelState, a *article.Article, deps Deps) {
	s.Article = a
	s.LoadErr = nil
	s.TargetIndex = -1
	s.Targets = nil
	if a != nil {
		s.Targets = markup.Targets(a.Content)
	}
	renderViewer(s, deps)
	s.Viewport.GotoTop()
}

// clearArticle empties the viewer.
func clearArticle(s *state.ModelState) {
	s.Article = nil
	s.LoadErr = nil
	s.Targets = nil
	s.TargetIndex = -1
	s.Viewport.SetContent("")
}

func renderViewer(s *state.ModelState, deps Deps) {
	if s.Article == nil {
		s.Viewport.SetContent("")
		return
	}
	body := s.Article.Content
	if deps.Render != nil {
		body = deps.Render(body, viewerWrapWidth(s))
	}
	s.Viewport.SetContent(buildArticleContent(s.Article.Title, body))
}

func viewerWrapWidth(s *state.ModelState) int {
	return clampMin(s.Viewport.Width-s.Viewport.Style.GetHorizontalFrameSize(), 1)
}

func nextTarget(s *state.ModelState) {
	if len(s.Targets) == 0 {
		return
	}
	s.TargetIndex = (s.TargetIndex + 1) % len(s.Targets)
}

func copyTarget(s *state.ModelState, deps Deps) tea.Cmd {
	t, ok := s.FocusedTarget()
	if !ok || t.Kind != markup.CodeTarget || deps.Copy == nil {
		return nil
	}
	if err := deps.Copy(t.Value); err != nil {
		logError(deps, "copy failed", err)
		showAlert(s, "Could not copy to the clipboard: "+err.Error())
		return nil
	}
	return setStatus(s, "Copied!", deps)
}

func openTarget(s *state.ModelState, deps Deps) tea.Cmd {
	t, ok := s.FocusedTarget()
	if !ok || t.Kind == markup.CodeTarget || deps.OpenBrowser == nil {
		return nil
	}
	url := t.Value
	if deps.ResolveURL != nil {
		url = deps.ResolveURL(url)
	}
	if err := deps.OpenBrowser(url); err != nil {
		logError(deps, "open link failed", err)
		showAlert(s, "Could not open "+url+": "+err.Error())
		return nil
	}
	return setStatus(s, "Opened "+url, deps)
}
