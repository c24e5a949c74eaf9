package update

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/tektune/internal/presentation/tui/metrics"
	"github.com/tesso57/tektune/internal/presentation/tui/state"
)

type layoutMetrics struct {
	sidebarWidth      int
	mainWidth         int
	contentWidth      int
	sidebarListHeight int
	contentHeight     int
}

// UpdateListSizes fits the list, viewer, and editor to the terminal.
func UpdateListSizes(s *state.ModelState) {
	if s.Width <= 0 || s.Height <= 0 {
		return
	}

	layout := buildLayoutMetrics(s)
	s.List.SetSize(layout.sidebarWidth, layout.sidebarListHeight)
	s.Viewport.Width = layout.contentWidth
	s.Viewport.Height = layout.contentHeight
	s.TitleInput.Width = clampMin(layout.contentWidth-lipgloss.Width(s.TitleInput.Prompt)-1, 1)
	s.Editor.SetWidth(layout.contentWidth)
	s.Editor.SetHeight(clampMin(layout.contentHeight-metrics.EditorTitleLines, 1))
	s.LinkInput.Width = clampMin(min(layout.contentWidth, 40), 1)
	s.Picker.Height = clampMin(s.Height-metrics.PickerChromeLines, 1)
}

func buildLayoutMetrics(s *state.ModelState) layoutMetrics {
	footerHeight := footerHeight(s)
	availableHeight := clampMin(s.Height-footerHeight, 1)

	contentHeight := clampMin(availableHeight-metrics.TopBarLines, 1)
	sidebarListHeight := clampMin(availableHeight-metrics.SidebarTitleLines, 1)

	sidebarWidth := s.Width / 3
	mainWidth := clampMin(s.Width-sidebarWidth-metrics.SidebarRightBorderWidth, 1)

	sidebarListHeight = reservePaginationSpace(s.List, sidebarListHeight)

	return layoutMetrics{
		sidebarWidth:      sidebarWidth,
		mainWidth:         mainWidth,
		contentWidth:      clampMin(mainWidth-metrics.MainPaddingLeft, 1),
		sidebarListHeight: sidebarListHeight,
		contentHeight:     contentHeight,
	}
}

func footerHeight(s *state.ModelState) int {
	s.Help.Width = s.Width
	return lipgloss.Height(state.FooterText(s.Loading, s.Status, s.HelpView()))
}

func reservePaginationSpace(m list.Model, height int) int {
	if height < 1 || !m.ShowPagination() {
		return height
	}
	if height <= 1 {
		return height
	}

	statusHeight := 0
	if m.ShowStatusBar() {
		statusHeight = 1
	}

	availHeight := height - statusHeight
	if availHeight < 1 {
		return height
	}

	if len(m.VisibleItems()) > availHeight {
		return height - 1
	}
	return height
}

func clampMin(value, min int) int {
	if value < min {
		return min
	}
	return value
}
