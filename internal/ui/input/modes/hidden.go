package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fuzzyswitch/internal/ui/input/types"
)

// HiddenMode handles keys while the switcher is closed. Everything except
// help and quit is offered to the activation gate.
type HiddenMode struct {
	keys types.KeyMap
}

func NewHiddenMode(keys types.KeyMap) *HiddenMode {
	return &HiddenMode{keys: keys}
}

func (m *HiddenMode) Name() string { return "hidden" }

func (m *HiddenMode) Enter() []types.Action { return nil }

func (m *HiddenMode) Exit() []types.Action { return nil }

func (m *HiddenMode) HandleKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit), msg.String() == "q":
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ShowHelpAction{}}, true
	default:
		return []types.Action{types.ActivateAction{Key: msg}}, true
	}
}
