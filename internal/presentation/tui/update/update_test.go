package update

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/tektune/internal/application/usecase"
	"github.com/tesso57/tektune/internal/domain/article"
	"github.com/tesso57/tektune/internal/domain/richtext"
	"github.com/tesso57/tektune/internal/domain/workspace"
	"github.com/tesso57/tektune/internal/infrastructure/markup"
	"github.com/tesso57/tektune/internal/presentation/tui/state"
)

type fakeRepo struct {
	titles   []string
	articles map[string]string
	err      error
	scopes   []string
}

func (r *fakeRepo) List(context.Context) ([]string, error) { return r.titles, r.err }

func (r *fakeRepo) Get(_ context.Context, title string) (article.Article, error) {
	if r.err != nil {
		return article.Article{}, r.err
	}
	content, ok := r.articles[title]
	if !ok {
		return article.Article{}, &article.NotFoundError{Key: title}
	}
	return article.New(title, content), nil
}

func (r *fakeRepo) Create(_ context.Context, title, _ string) (string, error) {
	return article.Slug(title), r.err
}

func (r *fakeRepo) Update(_ context.Context, _, newTitle, _ string) (string, error) {
	return article.Slug(newTitle), r.err
}

func (r *fakeRepo) Delete(context.Context, string) error { return r.err }

func (r *fakeRepo) UploadImage(_ context.Context, scope, filename string, _ io.Reader) (string, error) {
	r.scopes = append(r.scopes, scope)
	return "/images/" + scope + "/" + filename, r.err
}

func newTestService(repo *fakeRepo) *usecase.ArticleService {
	svc := usecase.NewArticleService(repo, markup.NewCodec(article.FormatMarkdown), "")
	return &svc
}

func newEditorState(t *testing.T, text string) *state.ModelState {
	t.Helper()
	s := newLayoutTestState()
	s.Workspace = workspace.New(false).WithTitles([]string{"Doc"})
	s.Workspace, _ = s.Workspace.Select("Doc")
	s.Workspace, _, _ = s.Workspace.StartEdit()
	s.Workspace, _ = s.Workspace.EditorLoaded(article.New("Doc", text))
	s.Editor.CharLimit = 0
	s.Editor.SetWidth(60)
	openEditor(s, "Doc", text)
	return s
}

func TestDocumentUsesMarkAndCursor(t *testing.T) {
	s := newEditorState(t, "hello world")
	moveCursor(&s.Editor, 0, 5)
	if got := document(s); !got.Sel.Empty() || got.Sel.Start != 5 {
		t.Fatalf("document() sel = %+v, want cursor at 5", got.Sel)
	}

	s.Anchor = 11
	got := document(s)
	if got.Selected() != " world" {
		t.Fatalf("document() selected = %q, want %q", got.Selected(), " world")
	}
}

func TestMoveCursorAcrossLines(t *testing.T) {
	s := newEditorState(t, "first\nsecond\nthird")
	moveCursor(&s.Editor, 1, 3)
	if s.Editor.Line() != 1 {
		t.Fatalf("Line() = %d, want 1", s.Editor.Line())
	}
	if got := cursorOffset(&s.Editor); got != richtext.Offset(s.Editor.Value(), 1, 3) {
		t.Fatalf("cursorOffset() = %d, want %d", got, richtext.Offset(s.Editor.Value(), 1, 3))
	}
}

func TestSetDocumentKeepsSelection(t *testing.T) {
	s := newEditorState(t, "")
	setDocument(s, richtext.Document{Text: "a **b** c", Sel: richtext.Selection{Start: 4, End: 5}})
	if s.Editor.Value() != "a **b** c" {
		t.Fatalf("Value() = %q", s.Editor.Value())
	}
	if s.Anchor != 4 || cursorOffset(&s.Editor) != 5 {
		t.Fatalf("anchor=%d cursor=%d, want 4 and 5", s.Anchor, cursorOffset(&s.Editor))
	}

	setDocument(s, richtext.Document{Text: "plain", Sel: richtext.Selection{Start: 2, End: 2}})
	if s.Anchor != state.NoAnchor {
		t.Fatalf("Anchor = %d, want none for a bare cursor", s.Anchor)
	}
}

func TestApplyCommandBoldTwiceRestores(t *testing.T) {
	s := newEditorState(t, "hello")
	s.Anchor = 0
	moveCursor(&s.Editor, 0, 5)

	applyCommand(s, richtext.Bold, Deps{})
	require.Equal(t, "**hello**", s.Editor.Value())

	applyCommand(s, richtext.Bold, Deps{})
	require.Equal(t, "hello", s.Editor.Value())
}

func TestApplyCommandIgnoredInTitleField(t *testing.T) {
	s := newEditorState(t, "hello")
	focusField(s, state.TitleField)
	applyCommand(s, richtext.H1, Deps{})
	if s.Editor.Value() != "hello" {
		t.Fatalf("formatting should not apply while the title is focused: %q", s.Editor.Value())
	}
}

func TestLinkPrompt(t *testing.T) {
	s := newEditorState(t, "read docs")
	s.Anchor = 5
	moveCursor(&s.Editor, 0, 9)

	applyCommand(s, richtext.Link, Deps{})
	require.Equal(t, state.LinkPromptOverlay, s.Overlay)

	s.LinkInput.SetValue("https://go.dev")
	handleLinkPrompt(s, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, state.NoOverlay, s.Overlay)
	assert.Equal(t, "read [docs](https://go.dev)", s.Editor.Value())
}

func TestLinkPromptCancel(t *testing.T) {
	s := newEditorState(t, "read docs")
	applyCommand(s, richtext.Link, Deps{})
	handleLinkPrompt(s, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, state.NoOverlay, s.Overlay)
	assert.Equal(t, "read docs", s.Editor.Value())
}

func TestImageCommandOpensPicker(t *testing.T) {
	s := newEditorState(t, "")
	applyCommand(s, richtext.Image, Deps{})
	if s.Overlay != state.ImagePickerOverlay {
		t.Fatalf("Overlay = %v, want picker", s.Overlay)
	}
}

func TestHandleImageUploadedMsg(t *testing.T) {
	s := newEditorState(t, "ab")
	moveCursor(&s.Editor, 0, 1)
	s.Loading = true

	HandleImageUploadedMsg(s, ImageUploadedMsg{URL: "/images/doc/x.png"}, Deps{})
	assert.False(t, s.Loading)
	assert.Equal(t, "a![Image](/images/doc/x.png)b", s.Editor.Value())

	HandleImageUploadedMsg(s, ImageUploadedMsg{Err: &article.UploadError{EndpointMissing: true}}, Deps{})
	assert.Equal(t, state.AlertOverlay, s.Overlay)
	assert.Contains(t, s.Alert, "endpoint not found")
}

func TestUploadImageCmdUsesPlaceholderScope(t *testing.T) {
	repo := &fakeRepo{}
	open := func(string) (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("png")), nil }

	msg := UploadImageCmd(newTestService(repo), open, "", "/tmp/cat.png")().(ImageUploadedMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, []string{usecase.DefaultImageScope}, repo.scopes)
	assert.Equal(t, "/images/untitled/cat.png", msg.URL)
}

func TestUploadImageCmdOpenFailure(t *testing.T) {
	open := func(string) (io.ReadCloser, error) { return nil, errors.New("permission denied") }
	msg := UploadImageCmd(newTestService(&fakeRepo{}), open, "Doc", "/x.png")().(ImageUploadedMsg)
	if !errors.Is(msg.Err, article.ErrUpload) {
		t.Fatalf("err = %v, want upload error", msg.Err)
	}
}

func TestCommands(t *testing.T) {
	repo := &fakeRepo{titles: []string{"A", "B"}, articles: map[string]string{"A": "# A"}}
	svc := newTestService(repo)

	titles := LoadTitlesCmd(svc)().(TitlesLoadedMsg)
	assert.Equal(t, []string{"A", "B"}, titles.Titles)

	loaded := LoadArticleCmd(svc, " A ", true)().(ArticleLoadedMsg)
	assert.Equal(t, "A", loaded.Title)
	assert.True(t, loaded.ForEdit)
	assert.Equal(t, "# A", loaded.Article.Content)

	created := CreateArticleCmd(svc, "My First Post")().(ArticleCreatedMsg)
	assert.Equal(t, "My First Post", created.Title)

	saved := SaveArticleCmd(svc, workspace.SaveRequest{OldTitle: "A", Draft: workspace.Draft{Title: "C", Body: "x"}})().(ArticleSavedMsg)
	assert.NoError(t, saved.Err)
	assert.Equal(t, "C", saved.Title)

	deleted := DeleteArticleCmd(svc, "B")().(ArticleDeletedMsg)
	assert.Equal(t, "B", deleted.Title)
}

func TestClearStatusCmd(t *testing.T) {
	if ClearStatusCmd(1, 0) != nil {
		t.Fatal("zero duration should keep the status")
	}
	if ClearStatusCmd(1, time.Millisecond) == nil {
		t.Fatal("expected a tick command")
	}
}

func TestHandleStatusExpiredMsg(t *testing.T) {
	s := newLayoutTestState()
	setStatus(s, "first", Deps{})
	setStatus(s, "second", Deps{})

	HandleStatusExpiredMsg(s, StatusExpiredMsg{Seq: 1})
	if s.Status != "second" {
		t.Fatalf("stale expiry cleared the status: %q", s.Status)
	}
	HandleStatusExpiredMsg(s, StatusExpiredMsg{Seq: 2})
	if s.Status != "" {
		t.Fatalf("Status = %q, want cleared", s.Status)
	}
}

func TestHandleArticleLoadedMsgDropsStaleResults(t *testing.T) {
	s := newLayoutTestState()
	s.Workspace = workspace.New(false).WithTitles([]string{"A", "B"})
	s.Workspace, _ = s.Workspace.Select("B")
	s.Loading = true

	HandleArticleLoadedMsg(s, ArticleLoadedMsg{Title: "A", Article: article.New("A", "old")}, Deps{})
	if s.Article != nil || !s.Loading {
		t.Fatal("a result for a previous selection should be ignored")
	}

	HandleArticleLoadedMsg(s, ArticleLoadedMsg{Title: "B", Article: article.New("B", "see [go](https://go.dev)")}, Deps{})
	require.NotNil(t, s.Article)
	assert.Equal(t, "B", s.Article.Title)
	assert.False(t, s.Loading)
	assert.Len(t, s.Targets, 1)
	assert.Equal(t, -1, s.TargetIndex)
}

func TestHandleArticleLoadedMsgStaleAfterLeavingView(t *testing.T) {
	s := newLayoutTestState()
	s.Workspace = workspace.New(false).WithTitles([]string{"A"})
	s.Workspace, _ = s.Workspace.Select("A")
	s.Loading = true
	var err error
	s.Workspace, err = s.Workspace.StartAdd()
	require.NoError(t, err)

	HandleArticleLoadedMsg(s, ArticleLoadedMsg{Title: "A", Article: article.New("A", "old")}, Deps{})
	assert.Nil(t, s.Article)
	assert.False(t, s.Loading, "nothing else is pending")

	s.Loading = true
	s.Uploading = true
	HandleArticleLoadedMsg(s, ArticleLoadedMsg{Title: "A", Article: article.New("A", "old")}, Deps{})
	assert.True(t, s.Loading, "an upload is still in flight")
}

func TestHandleArticleLoadedMsgFailure(t *testing.T) {
	s := newLayoutTestState()
	s.Workspace = workspace.New(false).WithTitles([]string{"A"})
	s.Workspace, _ = s.Workspace.Select("A")

	HandleArticleLoadedMsg(s, ArticleLoadedMsg{Title: "A", Err: &article.NotFoundError{Key: "A"}}, Deps{})
	if s.LoadErr == nil || s.Article != nil {
		t.Fatalf("LoadErr = %v, Article = %v", s.LoadErr, s.Article)
	}
	if s.Overlay != state.NoOverlay {
		t.Fatal("a failed view load is shown inline, not as an alert")
	}
}

func TestHandleTitlesLoadedMsg(t *testing.T) {
	s := newLayoutTestState()
	HandleTitlesLoadedMsg(s, TitlesLoadedMsg{Titles: []string{"A", "B"}}, Deps{})
	assert.Len(t, s.List.Items(), 2)

	HandleTitlesLoadedMsg(s, TitlesLoadedMsg{Err: &article.NetworkError{Op: "list articles"}}, Deps{})
	assert.Equal(t, state.AlertOverlay, s.Overlay)
	assert.Contains(t, s.Alert, "Network error")
}

func TestReportRejectedIgnoresGuards(t *testing.T) {
	s := newLayoutTestState()
	for _, err := range []error{workspace.ErrBusy, workspace.ErrNoSelection, workspace.ErrWrongMode} {
		reportRejected(s, err)
		if s.Overlay != state.NoOverlay {
			t.Fatalf("reportRejected(%v) opened an alert", err)
		}
	}
	_, err := article.ValidateTitle("Bad!")
	reportRejected(s, err)
	if s.Overlay != state.AlertOverlay || !strings.Contains(s.Alert, "alphanumeric") {
		t.Fatalf("alert = %q", s.Alert)
	}
}

func TestTargets(t *testing.T) {
	s := newLayoutTestState()
	s.Targets = []markup.Target{
		{Kind: markup.CodeTarget, Value: "go test ./..."},
		{Kind: markup.LinkTarget, Value: "/docs"},
	}
	s.TargetIndex = -1

	var copied, opened string
	deps := Deps{
		Copy:        func(v string) error { copied = v; return nil },
		OpenBrowser: func(v string) error { opened = v; return nil },
		ResolveURL:  func(v string) string { return "http://host" + v },
	}

	nextTarget(s)
	copyTarget(s, deps)
	openTarget(s, deps)
	assert.Equal(t, "go test ./...", copied)
	assert.Empty(t, opened, "code blocks cannot be opened")
	assert.Equal(t, "Copied!", s.Status)

	nextTarget(s)
	openTarget(s, deps)
	assert.Equal(t, "http://host/docs", opened)

	nextTarget(s)
	assert.Equal(t, 0, s.TargetIndex, "focus wraps around")
}

func TestBuildArticleContent(t *testing.T) {
	got := buildArticleContent("Doc", "body")
	if !strings.HasPrefix(got, "Doc\n"+articleDivider) || !strings.HasSuffix(got, "body") {
		t.Fatalf("buildArticleContent() = %q", got)
	}
	if got := buildArticleContent("", " "); got != emptyArticleText {
		t.Fatalf("buildArticleContent(empty) = %q", got)
	}
}
