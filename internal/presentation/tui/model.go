// Package tui provides the main user interface model and view components.
package tui

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/tektune/internal/application/settings"
	"github.com/tesso57/tektune/internal/application/usecase"
	"github.com/tesso57/tektune/internal/domain/article"
	"github.com/tesso57/tektune/internal/domain/workspace"
	"github.com/tesso57/tektune/internal/presentation/tui/markdown"
	"github.com/tesso57/tektune/internal/presentation/tui/state"
	"github.com/tesso57/tektune/internal/presentation/tui/update"
	"github.com/tesso57/tektune/internal/presentation/tui/view"
	listview "github.com/tesso57/tektune/internal/presentation/tui/view/list"
)

// Options carries optional collaborators for the model.
type Options struct {
	// Render turns Markdown into terminal output. Defaults to glamour with the theme's style.
	Render func(md string, width int) string
	// ResolveURL makes article links absolute before they are opened.
	ResolveURL func(string) string
	Logger     *slog.Logger
}

// Model represents the main application state.
type Model struct {
	settings settings.Settings
	articles usecase.ArticleService
	opts     Options
	state    *state.ModelState
}

// NewModel creates a new application model.
func NewModel(cfg settings.Settings, articles usecase.ArticleService, opts Options) *Model {
	if opts.Render == nil {
		opts.Render = markdown.NewRenderer(cfg.Theme.Markdown).Render
	}
	if opts.ResolveURL == nil {
		opts.ResolveURL = func(ref string) string { return ref }
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Model{
		settings: cfg,
		articles: articles,
		opts:     opts,
		state:    newModelState(cfg),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.state.Spinner.Tick, update.LoadTitlesCmd(&m.articles))
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd
	deps := m.deps()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := update.HandleKeyMsg(m.state, msg, deps)
		if handled {
			update.UpdateListSizes(m.state)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		update.HandleWindowSize(m.state, msg, deps)
	case update.TitlesLoadedMsg:
		update.HandleTitlesLoadedMsg(m.state, msg, deps)
	case update.ArticleLoadedMsg:
		cmds = append(cmds, update.HandleArticleLoadedMsg(m.state, msg, deps))
		update.UpdateListSizes(m.state)
	case update.ArticleCreatedMsg:
		cmds = append(cmds, update.HandleArticleCreatedMsg(m.state, msg, deps))
	case update.ArticleSavedMsg:
		cmds = append(cmds, update.HandleArticleSavedMsg(m.state, msg, deps))
	case update.ArticleDeletedMsg:
		cmds = append(cmds, update.HandleArticleDeletedMsg(m.state, msg, deps))
	case update.ImageUploadedMsg:
		update.HandleImageUploadedMsg(m.state, msg, deps)
	case update.StatusExpiredMsg:
		update.HandleStatusExpiredMsg(m.state, msg)
	}

	if m.state.Loading {
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch {
	case m.state.Overlay == state.ImagePickerOverlay:
		cmds = append(cmds, update.HandlePickerMsg(m.state, msg, deps))
	case m.state.Overlay == state.LinkPromptOverlay:
		m.state.LinkInput, cmd = m.state.LinkInput.Update(msg)
		cmds = append(cmds, cmd)
	case m.state.Workspace.Step == workspace.StepEditor:
		if m.state.Field == state.TitleField {
			m.state.TitleInput, cmd = m.state.TitleInput.Update(msg)
		} else {
			m.state.Editor, cmd = m.state.Editor.Update(msg)
		}
		cmds = append(cmds, cmd)
	case m.state.Workspace.Content() == workspace.TitleEntry:
		m.state.TitleInput, cmd = m.state.TitleInput.Update(msg)
		cmds = append(cmds, cmd)
	case m.state.Overlay == state.NoOverlay && m.state.Workspace.Modal == workspace.NoModal:
		m.state.List, cmd = m.state.List.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the application view.
func (m *Model) View() string {
	return view.Render(m.buildProps())
}

func (m *Model) deps() update.Deps {
	return update.Deps{
		Articles:       &m.articles,
		Copy:           copyText,
		OpenBrowser:    openBrowser,
		OpenFile:       openFile,
		ResolveURL:     m.opts.ResolveURL,
		Render:         m.opts.Render,
		Logger:         m.opts.Logger,
		StatusDuration: m.settings.StatusDuration(),
	}
}

func newModelState(cfg settings.Settings) *state.ModelState {
	st := &state.ModelState{
		Workspace:   workspace.New(cfg.ConfirmDeleteTwice),
		List:        newArticleList(cfg),
		TitleInput:  newTitleInput(),
		Editor:      newEditor(),
		LinkInput:   newLinkInput(),
		Picker:      newPicker(),
		Viewport:    newViewport(),
		Help:        help.New(),
		Spinner:     newSpinner(cfg),
		Loading:     true,
		Keys:        state.NewKeyMap(cfg.KeyMap),
		EditorKeys:  state.NewEditorKeyMap(cfg.EditorKeyMap),
		Anchor:      state.NoAnchor,
		TargetIndex: -1,
	}

	st.List.KeyMap.CursorUp = st.Keys.Up
	st.List.KeyMap.CursorDown = st.Keys.Down
	st.List.KeyMap.PrevPage = st.Keys.UpPage
	st.List.KeyMap.NextPage = st.Keys.DownPage

	st.Viewport.KeyMap.PageUp = st.Keys.ScrollUp
	st.Viewport.KeyMap.PageDown = st.Keys.ScrollDown
	st.Viewport.KeyMap.HalfPageUp = key.NewBinding(key.WithDisabled())
	st.Viewport.KeyMap.HalfPageDown = key.NewBinding(key.WithDisabled())
	st.Viewport.KeyMap.Up = key.NewBinding(key.WithDisabled())
	st.Viewport.KeyMap.Down = key.NewBinding(key.WithDisabled())
	st.Viewport.KeyMap.Left = key.NewBinding(key.WithDisabled())
	st.Viewport.KeyMap.Right = key.NewBinding(key.WithDisabled())

	return st
}

func newArticleList(cfg settings.Settings) list.Model {
	l := list.New([]list.Item{}, listview.NewArticleDelegate(lipgloss.Color(cfg.Theme.Accent)), 0, 0)
	l.Title = "Articles"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func newTitleInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "Title: "
	ti.Placeholder = "My First Post"
	ti.CharLimit = article.MaxTitleLength
	ti.Width = 40
	return ti
}

func newEditor() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Start writing in Markdown..."
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	return ta
}

func newLinkInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "https://example.com"
	ti.CharLimit = 2048
	ti.Width = 40
	return ti
}

func newPicker() filepicker.Model {
	fp := filepicker.New()
	fp.AllowedTypes = usecase.ImageExtensions()
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.AutoHeight = false
	fp.Height = 10
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}
	return fp
}

func newSpinner(cfg settings.Settings) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Accent))
	return s
}

func newViewport() viewport.Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)
	return vp
}
