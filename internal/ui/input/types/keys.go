package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the switcher's key bindings
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns arrows, tab/shift+tab and ctrl+j/ctrl+k for moving,
// enter to select and esc to dismiss.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "shift+tab", "ctrl+k"),
			key.WithHelp("↑/shift+tab", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "tab", "ctrl+j"),
			key.WithHelp("↓/tab", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Confirm, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Confirm, k.Cancel},
		{k.Help, k.Quit},
	}
}
