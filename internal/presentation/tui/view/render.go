// Package view orchestrates the composition of UI components.
package view

import (
	"github.com/tesso57/tektune/internal/presentation/tui/components/layout"
	mainview "github.com/tesso57/tektune/internal/presentation/tui/components/main"
	"github.com/tesso57/tektune/internal/presentation/tui/components/modal"
	"github.com/tesso57/tektune/internal/presentation/tui/components/sidebar"
	"github.com/tesso57/tektune/internal/presentation/tui/components/topbar"
)

// Props aggregates properties for all UI components.
type Props struct {
	Sidebar sidebar.Props
	TopBar  topbar.Props
	Main    mainview.Props
	Modal   modal.Props
	Footer  string
}

// Render draws the whole screen. A visible modal replaces the workspace so
// dialogs stay readable on small terminals.
func Render(p Props) string {
	if p.Modal.Visible {
		return modal.Render(p.Modal)
	}
	return layout.Render(layout.Props{
		Sidebar: sidebar.Render(p.Sidebar),
		Main:    content(p.Main, p.TopBar),
		Footer:  p.Footer,
	})
}

func content(main mainview.Props, bar topbar.Props) string {
	main.TopBar = topbar.Render(bar)
	return mainview.Render(main)
}
