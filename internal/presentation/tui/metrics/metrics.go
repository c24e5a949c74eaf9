// Package metrics centralizes layout constants for the TUI.
package metrics

const (
	TopBarLines             = 3
	SidebarTitleLines       = 2
	EditorTitleLines        = 2
	MainPaddingLeft         = 1
	SidebarRightBorderWidth = 1
	PickerChromeLines       = 10

	ItemRightPadding  = 1
	ItemSafetyPadding = 1
)
