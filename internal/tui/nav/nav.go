// Package nav decouples screens from the app's screen stack.
package nav

import tea "github.com/charmbracelet/bubbletea"

// Destination names a screen the app can show
type Destination string

const (
	// Root is the catalog list every screen returns to
	Root Destination = "Root"
	// Detail shows the currently selected record
	Detail Destination = "Detail"
)

// NavigateMsg asks the app to switch to a destination
type NavigateMsg struct {
	To Destination
}

// Navigator moves between screens
type Navigator interface {
	Navigate(to Destination) tea.Cmd
}

// MsgNavigator navigates by sending a NavigateMsg through the program
type MsgNavigator struct{}

// Navigate implements Navigator
func (MsgNavigator) Navigate(to Destination) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{To: to}
	}
}
