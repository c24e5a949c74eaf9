package tui

import (
	"fmt"

	"github.com/tesso57/tektune/internal/domain/workspace"
	mainview "github.com/tesso57/tektune/internal/presentation/tui/components/main"
	"github.com/tesso57/tektune/internal/presentation/tui/components/modal"
	"github.com/tesso57/tektune/internal/presentation/tui/components/sidebar"
	"github.com/tesso57/tektune/internal/presentation/tui/components/topbar"
	"github.com/tesso57/tektune/internal/presentation/tui/metrics"
	"github.com/tesso57/tektune/internal/presentation/tui/presenter"
	"github.com/tesso57/tektune/internal/presentation/tui/state"
	"github.com/tesso57/tektune/internal/presentation/tui/textutil"
	"github.com/tesso57/tektune/internal/presentation/tui/view"
)

func (m *Model) buildProps() view.Props {
	return view.Props{
		Sidebar: m.buildSidebarProps(),
		TopBar:  m.buildTopBarProps(),
		Main:    m.buildMainProps(),
		Modal:   m.buildModalProps(),
		Footer:  m.buildFooterProps(),
	}
}

func (m *Model) buildSidebarProps() sidebar.Props {
	empty := ""
	if len(m.state.Workspace.Titles) == 0 && !m.state.Loading {
		empty = presenter.EmptyListText
	}
	return sidebar.Props{
		View:   m.state.List.View(),
		Empty:  empty,
		Width:  m.state.List.Width(),
		Height: m.state.List.Height(),
		Active: !m.state.Workspace.Editing(),
		Title:  "Articles",
		Accent: m.settings.Theme.Accent,
		Border: m.settings.Theme.Border,
		Muted:  m.settings.Theme.Muted,
	}
}

func (m *Model) buildTopBarProps() topbar.Props {
	s := m.state
	props := topbar.Props{
		Actions: presenter.ActionLabels(s.Workspace.Actions(), s.Keys, s.EditorKeys),
		Width:   s.Viewport.Width,
		Accent:  m.settings.Theme.Accent,
		Muted:   m.settings.Theme.Muted,
	}
	switch s.Workspace.Content() {
	case workspace.Editor:
		props.Legend = presenter.ToolbarLegend(s.EditorKeys)
		if s.Loading {
			props.Legend = fmt.Sprintf("%s %s", s.Spinner.View(), busyText(s.Workspace.Pending, s.Uploading))
		}
	case workspace.TitleEntry:
		if s.Loading {
			props.Legend = fmt.Sprintf("%s %s", s.Spinner.View(), busyText(s.Workspace.Pending, s.Uploading))
		}
	case workspace.ArticleContent:
		props.Target = presenter.TargetLine(s.Targets, s.TargetIndex, s.Keys)
	}
	return props
}

func (m *Model) buildMainProps() mainview.Props {
	s := m.state
	var body string
	switch kind := s.Workspace.Content(); kind {
	case workspace.Editor:
		body = s.TitleInput.View() + "\n\n" + s.Editor.View()
	case workspace.TitleEntry:
		body = presenter.TitlePromptText + "\n\n" + s.TitleInput.View()
	case workspace.ArticleContent:
		switch {
		case s.LoadErr != nil:
			body = presenter.LoadFailedText
		case s.Article == nil:
			body = fmt.Sprintf("\n   %s Loading article...", s.Spinner.View())
		default:
			body = s.Viewport.View()
		}
	default:
		body = presenter.ContentText(kind)
		if s.Loading && len(s.Workspace.Titles) == 0 {
			body = fmt.Sprintf("\n   %s Loading articles...", s.Spinner.View())
		}
	}

	return mainview.Props{
		Width:  s.Viewport.Width + metrics.MainPaddingLeft,
		Height: s.Viewport.Height + metrics.TopBarLines,
		Body:   body,
	}
}

func (m *Model) buildModalProps() modal.Props {
	s := m.state
	props := modal.Props{Visible: true, Width: s.Width, Height: s.Height}

	switch s.Overlay {
	case state.AlertOverlay:
		props.Kind = modal.Alert
		props.Title = "Error"
		props.Body = s.Alert + "\n\n(press any key)"
		return props
	case state.QuitOverlay:
		props.Kind = modal.Quit
		props.Body = "Are you sure you want to quit?\n\n(y/n)"
		if s.Workspace.Dirty(s.Live()) {
			props.Body = "You have unsaved changes that will be lost.\nAre you sure you want to quit?\n\n(y/n)"
		}
		return props
	case state.LinkPromptOverlay:
		props.Kind = modal.Prompt
		props.Title = "Insert link"
		props.Body = fmt.Sprintf("Enter URL:\n\n%s\n\n(enter to apply, esc to cancel)", s.LinkInput.View())
		return props
	case state.ImagePickerOverlay:
		props.Kind = modal.Picker
		props.Title = "Upload image"
		props.Body = fmt.Sprintf("%s\n\n%s\n\n(enter to upload, esc to cancel)",
			textutil.TruncateStart(s.Picker.CurrentDirectory, max(s.Width-8, 1)), s.Picker.View())
		return props
	}

	if s.Workspace.Modal != workspace.NoModal {
		props.Kind = modal.Confirm
		props.Title, props.Body = presenter.ConfirmText(s.Workspace.Modal, s.Workspace.Selected)
		return props
	}
	if s.Help.ShowAll {
		props.Kind = modal.Help
		props.Body = s.Help.View(&s.Keys)
		return props
	}
	return modal.Props{Visible: false}
}

func (m *Model) buildFooterProps() string {
	return state.FooterText(m.state.Loading, m.state.Status, m.state.HelpView())
}

func busyText(op workspace.Op, uploading bool) string {
	switch op {
	case workspace.OpCreate:
		return "Creating article..."
	case workspace.OpLoad:
		return "Loading article..."
	case workspace.OpSave:
		return "Saving..."
	case workspace.OpDelete:
		return "Deleting article..."
	}
	if uploading {
		return "Uploading image..."
	}
	return "Loading..."
}
