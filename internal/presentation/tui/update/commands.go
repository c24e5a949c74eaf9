package update

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/tektune/internal/application/usecase"
	"github.com/tesso57/tektune/internal/domain/article"
	"github.com/tesso57/tektune/internal/domain/workspace"
)

// Deps groups external dependencies for updates.
type Deps struct {
	Articles       *usecase.ArticleService
	Copy           func(string) error
	OpenBrowser    func(string) error
	OpenFile       func(string) (io.ReadCloser, error)
	ResolveURL     func(string) string
	Render         func(md string, width int) string
	Logger         *slog.Logger
	StatusDuration time.Duration
}

// TitlesLoadedMsg is emitted after listing article titles.
type TitlesLoadedMsg struct {
	Titles []string
	Err    error
}

// ArticleLoadedMsg is emitted after fetching one article, either for the
// viewer or for the editor.
type ArticleLoadedMsg struct {
	Title   string
	Article article.Article
	Err     error
	ForEdit bool
}

// ArticleCreatedMsg is emitted after creating an empty article from a title.
type ArticleCreatedMsg struct {
	Title string
	Err   error
}

// ArticleSavedMsg is emitted after saving the editor draft.
type ArticleSavedMsg struct {
	Request workspace.SaveRequest
	Title   string
	Err     error
}

// ArticleDeletedMsg is emitted after deleting an article.
type ArticleDeletedMsg struct {
	Title string
	Err   error
}

// ImageUploadedMsg is emitted after uploading an image for the editor.
type ImageUploadedMsg struct {
	URL string
	Err error
}

// StatusExpiredMsg clears the status line if no newer status replaced it.
type StatusExpiredMsg struct {
	Seq int
}

// LoadTitlesCmd lists the article titles.
func LoadTitlesCmd(svc *usecase.ArticleService) tea.Cmd {
	return func() tea.Msg {
		titles, err := svc.List(context.Background())
		return TitlesLoadedMsg{Titles: titles, Err: err}
	}
}

// LoadArticleCmd fetches one article.
func LoadArticleCmd(svc *usecase.ArticleService, title string, forEdit bool) tea.Cmd {
	title = strings.TrimSpace(title)
	return func() tea.Msg {
		a, err := svc.Get(context.Background(), title)
		return ArticleLoadedMsg{Title: title, Article: a, Err: err, ForEdit: forEdit}
	}
}

// CreateArticleCmd creates an empty article for a validated title.
func CreateArticleCmd(svc *usecase.ArticleService, title string) tea.Cmd {
	return func() tea.Msg {
		created, err := svc.CreateEmpty(context.Background(), title)
		return ArticleCreatedMsg{Title: created, Err: err}
	}
}

// SaveArticleCmd writes the draft under its new title.
func SaveArticleCmd(svc *usecase.ArticleService, req workspace.SaveRequest) tea.Cmd {
	return func() tea.Msg {
		title, err := svc.Update(context.Background(), req.OldTitle, req.Draft.Title, req.Draft.Body)
		return ArticleSavedMsg{Request: req, Title: title, Err: err}
	}
}

// DeleteArticleCmd deletes an article.
func DeleteArticleCmd(svc *usecase.ArticleService, title string) tea.Cmd {
	return func() tea.Msg {
		err := svc.Delete(context.Background(), title)
		return ArticleDeletedMsg{Title: title, Err: err}
	}
}

// UploadImageCmd reads a local file and uploads it under the scope of title.
func UploadImageCmd(svc *usecase.ArticleService, open func(string) (io.ReadCloser, error), title, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := open(path)
		if err != nil {
			return ImageUploadedMsg{Err: &article.UploadError{Message: "Could not read file", Err: err}}
		}
		defer func() { _ = f.Close() }()
		url, err := svc.UploadImage(context.Background(), title, path, f)
		return ImageUploadedMsg{URL: url, Err: err}
	}
}

// ClearStatusCmd expires the status line after d. A zero duration keeps it.
func ClearStatusCmd(seq int, d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return StatusExpiredMsg{Seq: seq}
	})
}
