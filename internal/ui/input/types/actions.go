package types

import tea "github.com/charmbracelet/bubbletea"

// QuitAction ends the program
type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }

// ShowHelpAction opens the key reference
type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

// ActivateAction offers a key to the activation gate
type ActivateAction struct {
	Key tea.KeyMsg
}

func (a ActivateAction) Type() string { return "activate" }
