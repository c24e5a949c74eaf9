package tui

import (
	"context"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"
	"github.com/tesso57/tektune/internal/application/settings"
	"github.com/tesso57/tektune/internal/application/usecase"
	"github.com/tesso57/tektune/internal/domain/article"
	"github.com/tesso57/tektune/internal/infrastructure/markup"
	"github.com/tesso57/tektune/internal/presentation/tui/update"
)

type stubArticleRepo struct {
	mock.Mock
	mu       sync.Mutex
	articles map[string]string
	uploads  []string
	calls    map[string]int
}

func newStubRepo(articles map[string]string) *stubArticleRepo {
	if articles == nil {
		articles = map[string]string{}
	}
	return &stubArticleRepo{articles: articles, calls: map[string]int{}}
}

func (s *stubArticleRepo) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[name]++
}

func (s *stubArticleRepo) callCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *stubArticleRepo) content(title string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.articles[title]
	return c, ok
}

func (s *stubArticleRepo) List(ctx context.Context) ([]string, error) {
	s.record("List")
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(ctx)
		titles, _ := args.Get(0).([]string)
		return titles, args.Error(1)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	titles := make([]string, 0, len(s.articles))
	for title := range s.articles {
		titles = append(titles, title)
	}
	slices.SortFunc(titles, func(a, b string) int { return strings.Compare(strings.ToLower(a), strings.ToLower(b)) })
	return titles, nil
}

func (s *stubArticleRepo) Get(ctx context.Context, title string) (article.Article, error) {
	s.record("Get")
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(ctx, title)
		a, _ := args.Get(0).(article.Article)
		return a, args.Error(1)
	}
	c, ok := s.content(title)
	if !ok {
		return article.Article{}, &article.NotFoundError{Key: title}
	}
	return article.New(title, c), nil
}

func (s *stubArticleRepo) Create(ctx context.Context, title, content string) (string, error) {
	s.record("Create")
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(ctx, title, content)
		return args.String(0), args.Error(1)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[title]; ok {
		return "", &article.ValidationError{Field: "title", Message: "Article already exists"}
	}
	s.articles[title] = content
	return article.Slug(title), nil
}

func (s *stubArticleRepo) Update(ctx context.Context, oldTitle, newTitle, content string) (string, error) {
	s.record("Update")
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(ctx, oldTitle, newTitle, content)
		return args.String(0), args.Error(1)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[oldTitle]; !ok {
		return "", &article.NotFoundError{Key: oldTitle}
	}
	delete(s.articles, oldTitle)
	s.articles[newTitle] = content
	return article.Slug(newTitle), nil
}

func (s *stubArticleRepo) Delete(ctx context.Context, title string) error {
	s.record("Delete")
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(ctx, title)
		return args.Error(0)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[title]; !ok {
		return &article.NotFoundError{Key: title}
	}
	delete(s.articles, title)
	return nil
}

func (s *stubArticleRepo) UploadImage(ctx context.Context, scope, filename string, data io.Reader) (string, error) {
	s.record("UploadImage")
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(ctx, scope, filename, data)
		return args.String(0), args.Error(1)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, scope)
	return "/images/" + scope + "/" + filename, nil
}

func testSettings() settings.Settings {
	return settings.Settings{
		KeyMap: settings.KeyMapConfig{
			Up: "k", Down: "j", UpPage: "ctrl+u", DownPage: "ctrl+d",
			Open: "enter", Quit: "q", Add: "a", Edit: "e", Delete: "d",
			Refresh: "r", NextTarget: "tab", Copy: "c", OpenLink: "o",
		},
		EditorKeyMap: settings.EditorKeyMapConfig{
			Save: "ctrl+s", Close: "esc", SwitchField: "ctrl+t", Mark: "ctrl+@",
			H1: "alt+1", H2: "alt+2", H3: "alt+3",
			Bold: "alt+b", Italic: "alt+i", Underline: "alt+u", Code: "alt+c",
			Warning: "alt+w", Link: "alt+k", OrderedList: "alt+o", UnorderedList: "alt+l",
			Image: "alt+p", Quote: "alt+q", HR: "alt+h",
		},
		Theme: settings.ThemeConfig{Accent: "205", Muted: "240", Border: "63", Markdown: "notty"},
	}
}

// newTestModel builds a sized model whose initial title load has completed.
func newTestModel(t *testing.T, cfg settings.Settings, repo *stubArticleRepo) *Model {
	t.Helper()
	svc := usecase.NewArticleService(repo, markup.NewCodec(article.FormatMarkdown), cfg.ImageScopePlaceholder)
	m := NewModel(cfg, svc, Options{
		Render: func(md string, _ int) string { return md },
	})
	m = drain(t, m, m.Init())
	tm, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return tm.(*Model)
}

// press sends one key and runs the resulting store commands to completion.
func press(t *testing.T, m *Model, msg tea.KeyMsg) *Model {
	t.Helper()
	tm, cmd := m.Update(msg)
	return drain(t, tm.(*Model), cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

// drain executes cmd and feeds store results back into the model. Timers
// such as spinner ticks and cursor blinks are dropped.
func drain(t *testing.T, m *Model, cmd tea.Cmd) *Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		tm, next := m.Update(msg)
		m = drain(t, tm.(*Model), next)
	}
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if isStoreMsg(msg) {
			return []tea.Msg{msg}
		}
		return nil
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func isStoreMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case update.TitlesLoadedMsg, update.ArticleLoadedMsg, update.ArticleCreatedMsg,
		update.ArticleSavedMsg, update.ArticleDeletedMsg, update.ImageUploadedMsg:
		return true
	default:
		return false
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
