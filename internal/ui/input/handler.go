package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fuzzyswitch/internal/switcher"
	"fuzzyswitch/internal/ui/input/modes"
	"fuzzyswitch/internal/ui/input/types"
)

// Handler turns key messages into actions for the current mode and owns the
// text input the switcher types into.
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	keys        types.KeyMap
	textInput   *textinput.Model
}

func New(keys types.KeyMap) *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type to search"

	h := &Handler{
		currentMode: types.ModeHidden,
		keys:        keys,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeHidden] = modes.NewHiddenMode(keys)
	h.modes[types.ModeSwitcher] = modes.NewSwitcherMode(keys, h.textInput)

	return h
}

// HandleKey routes msg to the current mode. In switcher mode, keys the mode
// doesn't consume edit the text input, and a change of its value yields a
// switcher.QueryChanged action.
func (h *Handler) HandleKey(msg tea.KeyMsg) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg)
	if consumed || h.currentMode != types.ModeSwitcher {
		return actions, nil
	}

	before := h.textInput.Value()
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	if after := h.textInput.Value(); after != before {
		actions = append(actions, switcher.QueryChanged{Query: after})
	}
	return actions, cmd
}

// ChangeMode leaves the current mode and enters mode
func (h *Handler) ChangeMode(mode types.Mode) ([]types.Action, tea.Cmd) {
	if mode == h.currentMode {
		return nil, nil
	}

	var actions []types.Action
	if old := h.modes[h.currentMode]; old != nil {
		actions = append(actions, old.Exit()...)
	}
	h.currentMode = mode
	if next := h.modes[mode]; next != nil {
		actions = append(actions, next.Enter()...)
	}

	if mode == types.ModeSwitcher {
		return actions, textinput.Blink
	}
	return actions, nil
}

// Update handles non-keyboard messages for the text input, e.g. cursor blink
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != types.ModeSwitcher {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

// Value returns the current query text
func (h *Handler) Value() string {
	return h.textInput.Value()
}

// SetWidth sets the visible width of the text input
func (h *Handler) SetWidth(w int) {
	if w < 1 {
		w = 1
	}
	h.textInput.Width = w
}

// View renders the text input
func (h *Handler) View() string {
	return h.textInput.View()
}
