package modes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fuzzyswitch/internal/switcher"
	"fuzzyswitch/internal/ui/input/types"
)

// SwitcherMode handles keys while the popup is open. Navigation keys are
// consumed; anything else falls through to the text input.
type SwitcherMode struct {
	keys      types.KeyMap
	textInput *textinput.Model
}

func NewSwitcherMode(keys types.KeyMap, ti *textinput.Model) *SwitcherMode {
	return &SwitcherMode{keys: keys, textInput: ti}
}

func (m *SwitcherMode) Name() string { return "switcher" }

func (m *SwitcherMode) Enter() []types.Action {
	m.textInput.Reset()
	m.textInput.Prompt = "" // Prompt is handled in the UI layer
	m.textInput.Focus()
	return nil
}

func (m *SwitcherMode) Exit() []types.Action {
	m.textInput.Blur()
	m.textInput.Reset()
	return nil
}

func (m *SwitcherMode) HandleKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ShowHelpAction{}}, true
	case key.Matches(msg, m.keys.Up):
		return []types.Action{switcher.MoveUp{}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{switcher.MoveDown{}}, true
	case key.Matches(msg, m.keys.Confirm):
		return []types.Action{switcher.Confirm{}}, true
	case key.Matches(msg, m.keys.Cancel):
		return []types.Action{switcher.Cancel{}}, true
	default:
		return nil, false
	}
}
