package update

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/tesso57/tektune/internal/application/settings"
	"github.com/tesso57/tektune/internal/domain/workspace"
	"github.com/tesso57/tektune/internal/presentation/tui/metrics"
	"github.com/tesso57/tektune/internal/presentation/tui/state"
)

func TestFooterHeight_GrowsWithStatus(t *testing.T) {
	s := newLayoutTestState()

	base := footerHeight(s)
	s.Status = "Article saved!"
	withStatus := footerHeight(s)
	if withStatus != base+1 {
		t.Fatalf("footer height with status = %d, want %d", withStatus, base+1)
	}

	s.Loading = true
	if got := footerHeight(s); got != base {
		t.Fatalf("footer height while loading = %d, want %d", got, base)
	}
}

func TestBuildLayoutMetrics_MainWidthSubtractsSidebarBorder(t *testing.T) {
	s := newLayoutTestState()
	s.Width = 120
	s.Height = 40

	layout := buildLayoutMetrics(s)
	sidebarWidth := s.Width / 3
	wantMainWidth := clampMin(s.Width-sidebarWidth-metrics.SidebarRightBorderWidth, 1)
	if layout.mainWidth != wantMainWidth {
		t.Fatalf("main width = %d, want %d", layout.mainWidth, wantMainWidth)
	}
	if layout.contentWidth != wantMainWidth-metrics.MainPaddingLeft {
		t.Fatalf("content width = %d, want %d", layout.contentWidth, wantMainWidth-metrics.MainPaddingLeft)
	}
}

func TestUpdateListSizes(t *testing.T) {
	s := newLayoutTestState()
	s.Width = 90
	s.Height = 30
	UpdateListSizes(s)

	layout := buildLayoutMetrics(s)
	if s.List.Width() != 30 {
		t.Fatalf("list width = %d, want 30", s.List.Width())
	}
	if s.Viewport.Height != layout.contentHeight {
		t.Fatalf("viewport height = %d, want %d", s.Viewport.Height, layout.contentHeight)
	}
	if s.Editor.Height() != layout.contentHeight-metrics.EditorTitleLines {
		t.Fatalf("editor height = %d, want %d", s.Editor.Height(), layout.contentHeight-metrics.EditorTitleLines)
	}
}

func TestUpdateListSizes_IgnoresUnknownSize(t *testing.T) {
	s := newLayoutTestState()
	s.Width = 0
	UpdateListSizes(s)
	if s.Viewport.Height != 0 {
		t.Fatalf("viewport height = %d, want untouched", s.Viewport.Height)
	}
}

func TestClampMin(t *testing.T) {
	if clampMin(-3, 1) != 1 || clampMin(5, 1) != 5 {
		t.Fatal("clampMin should raise values below the floor only")
	}
}

func newLayoutTestState() *state.ModelState {
	keys := state.NewKeyMap(settings.KeyMapConfig{
		Up: "k", Down: "j", UpPage: "ctrl+u", DownPage: "ctrl+d",
		Open: "enter", Quit: "q", Add: "a", Edit: "e", Delete: "d",
		Refresh: "r", NextTarget: "tab", Copy: "c", OpenLink: "o",
	})
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	return &state.ModelState{
		Workspace:  workspace.New(false),
		Help:       help.New(),
		Keys:       keys,
		EditorKeys: state.NewEditorKeyMap(settings.EditorKeyMapConfig{Save: "ctrl+s", Close: "esc"}),
		List:       l,
		TitleInput: textinput.New(),
		Editor:     textarea.New(),
		LinkInput:  textinput.New(),
		Viewport:   viewport.New(0, 0),
		Anchor:     state.NoAnchor,
		Width:      100,
		Height:     40,
	}
}
