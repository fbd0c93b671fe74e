package detail

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keybindings for the detail view
type KeyMap struct {
	Back        key.Binding
	Favorite    key.Binding
	Play        key.Binding
	CopyURL     key.Binding
	GenresLeft  key.Binding
	GenresRight key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	// Help is handled by the app; it is listed here for the help row
	Help key.Binding
}

// DefaultKeyMap returns default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Play: key.NewBinding(
			key.WithKeys("p", "enter"),
			key.WithHelp("p/enter", "play"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		GenresLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "genres left"),
		),
		GenresRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "genres right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "all keys"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Play, k.Favorite, k.Help}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Back, k.Favorite, k.Play, k.CopyURL},
		{k.GenresLeft, k.GenresRight},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Help},
	}
}
