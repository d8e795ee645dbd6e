package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	// ModeHidden routes keys to the activation gate
	ModeHidden Mode = iota
	// ModeSwitcher routes keys to the open switcher
	ModeSwitcher
)

func (m Mode) String() string {
	if m == ModeSwitcher {
		return "switcher"
	}
	return "hidden"
}

// Action represents a command the model should execute. Switcher commands
// (switcher.MoveUp, switcher.QueryChanged, ...) are actions too.
type Action interface {
	Type() string
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg) ([]Action, bool)

	// Enter is called when entering this mode
	Enter() []Action

	// Exit is called when leaving this mode
	Exit() []Action

	// Name returns the mode name for display
	Name() string
}
