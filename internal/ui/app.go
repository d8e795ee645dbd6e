package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fuzzyswitch/internal/domain"
	"fuzzyswitch/internal/eventbus"
	"fuzzyswitch/internal/switcher"
	"fuzzyswitch/internal/ui/events"
	"fuzzyswitch/internal/ui/input"
	"fuzzyswitch/internal/ui/input/types"
	"fuzzyswitch/internal/ui/views"
)

const maxPopupWidth = 72

// Config configures an App.
type Config[T any] struct {
	Options switcher.Options[T]
	Format  func(T) string // candidate text, fmt.Sprint by default
	Hotkey  string         // key that opens the switcher, e.g. "ctrl+p"
	Watch   bool           // start hidden and keep running after a selection
	Title   string
	Bus     eventbus.EventBus // optional
}

// App is the root Bubble Tea model. In pick mode it opens immediately and
// quits after the first selection or dismissal; in watch mode it waits for
// the hotkey and keeps running.
type App[T any] struct {
	cfg      Config[T]
	input    *input.Handler
	gate     *switcher.Gate[tea.KeyMsg]
	keys     *events.Stream[tea.KeyMsg]
	release  func()
	popup    *Popup[T]
	renderer *views.Renderer
	help     help.Model
	helpText *HelpRenderer
	helpOps  *HelpOps

	width, height int
	selections    []string
	closeReason   domain.CloseReason
	pendingCmd    tea.Cmd

	result   T
	selected bool
	quitting bool
}

// NewApp wires the gate, the popup and the input handler together and
// mounts the gate on the app's key stream.
func NewApp[T any](cfg Config[T]) (*App[T], error) {
	if cfg.Format == nil {
		cfg.Format = defaultFormat[T]
	}
	if strings.TrimSpace(cfg.Hotkey) == "" {
		cfg.Hotkey = "ctrl+p"
	}
	if cfg.Title == "" {
		cfg.Title = "fuzzyswitch"
	}

	keyMap := types.DefaultKeyMap()
	a := &App[T]{
		cfg:      cfg,
		input:    input.New(keyMap),
		keys:     events.NewStream[tea.KeyMsg](),
		renderer: views.NewRenderer(views.NewStyles()),
		help:     help.New(),
		helpText: NewHelpRenderer(keyMap, cfg.Hotkey),
		width:    80,
		height:   24,
	}

	hotkey := strings.ToLower(cfg.Hotkey)
	a.gate = switcher.NewGate(func(k tea.KeyMsg) bool { return k.String() == hotkey })
	a.gate.OnOpen(a.onOpen)
	a.gate.OnClose(a.onClose)

	a.popup = NewPopup(a.wrapOptions(cfg.Options), cfg.Format)
	a.input.SetWidth(a.popupWidth() - 7)

	release, err := a.gate.Mount(a.keys)
	if err != nil {
		return nil, fmt.Errorf("mount gate: %w", err)
	}
	a.release = release

	if !cfg.Watch {
		a.gate.Open()
	}
	return a, nil
}

// wrapOptions layers the app's bookkeeping and event publishing over the
// caller's callbacks.
func (a *App[T]) wrapOptions(opts switcher.Options[T]) switcher.Options[T] {
	onHighlight, onSelect, onClose, onError := opts.OnHighlight, opts.OnSelect, opts.OnClose, opts.OnError

	opts.OnHighlight = func(item T, ok bool) {
		a.publish(eventbus.HighlightChangedEvent{Item: a.formatIf(item, ok), Empty: !ok})
		if onHighlight != nil {
			onHighlight(item, ok)
		}
	}
	opts.OnSelect = func(item T) {
		text := a.cfg.Format(item)
		a.result, a.selected = item, true
		a.selections = append(a.selections, text)
		a.publish(eventbus.ItemSelectedEvent{Item: text, Query: a.input.Value()})
		if onSelect != nil {
			onSelect(item)
		}
		a.hide(domain.CloseSelected)
	}
	opts.OnClose = func() {
		if onClose != nil {
			onClose()
		}
		a.hide(domain.CloseCancelled)
	}
	opts.OnError = func(err error) {
		a.publish(eventbus.ResolveFailedEvent{Query: a.input.Value(), Err: err})
		if onError != nil {
			onError(err)
		}
	}
	return opts
}

func (a *App[T]) formatIf(item T, ok bool) string {
	if !ok {
		return ""
	}
	return a.cfg.Format(item)
}

func (a *App[T]) publish(e eventbus.DomainEvent) {
	if a.cfg.Bus != nil {
		a.cfg.Bus.Publish(e)
	}
}

func (a *App[T]) hide(reason domain.CloseReason) {
	a.closeReason = reason
	a.gate.Close()
}

func (a *App[T]) onOpen() {
	a.popup.Open()
	_, cmd := a.input.ChangeMode(types.ModeSwitcher)
	a.pendingCmd = tea.Batch(a.pendingCmd, cmd)

	s, _ := a.popup.Controller().Session()
	a.publish(eventbus.SwitcherOpenedEvent{Label: a.popup.Controller().Options().Label, Seed: len(s.Items)})
	log.Printf("Switcher opened")
}

func (a *App[T]) onClose() {
	a.popup.Close()
	a.input.ChangeMode(types.ModeHidden)

	reason := a.closeReason
	if reason == "" {
		reason = domain.CloseCancelled
	}
	a.closeReason = ""
	a.publish(eventbus.SwitcherClosedEvent{Reason: reason})
	log.Printf("Switcher closed (%s)", reason)

	if !a.cfg.Watch {
		a.quitting = true
	}
}

// SetProgram sets the program reference for terminal management
func (a *App[T]) SetProgram(p *tea.Program) {
	a.helpOps = NewHelpOps(p)
}

// Close releases the gate's subscription. Safe to call more than once.
func (a *App[T]) Close() {
	if a.gate.IsOpen() {
		a.hide(domain.CloseShutdown)
	}
	if a.release != nil {
		a.release()
	}
}

// Result returns the confirmed candidate of the last session.
func (a *App[T]) Result() (T, bool) {
	return a.result, a.selected
}

// Selections returns every confirmed candidate, oldest first.
func (a *App[T]) Selections() []string {
	return append([]string(nil), a.selections...)
}

// IsOpen reports whether the switcher is showing.
func (a *App[T]) IsOpen() bool {
	return a.gate.IsOpen()
}

func (a *App[T]) Init() tea.Cmd {
	return a.takePending()
}

func (a *App[T]) takePending() tea.Cmd {
	cmd := a.pendingCmd
	a.pendingCmd = nil
	return cmd
}

func (a *App[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		a.input.SetWidth(a.popupWidth() - 7)
	case tea.KeyMsg:
		cmd = a.handleKey(msg)
	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			log.Printf("Help pager failed: %v", msg.err)
		}
	default:
		if c, ok := a.popup.Update(msg); ok {
			cmd = c
		} else {
			cmd = a.input.Update(msg)
		}
	}

	cmd = tea.Batch(cmd, a.takePending())
	if a.quitting {
		return a, tea.Quit
	}
	return a, cmd
}

func (a *App[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	actions, cmd := a.input.HandleKey(msg)
	cmds := []tea.Cmd{cmd}

	for _, action := range actions {
		switch act := action.(type) {
		case types.QuitAction:
			a.quitting = true
		case types.ShowHelpAction:
			if a.helpOps == nil {
				log.Printf("Help pager unavailable: program not set")
				continue
			}
			cmds = append(cmds, a.helpOps.showHelp(a.helpText.Render()))
		case types.ActivateAction:
			a.keys.Publish(act.Key)
		case switcher.Command:
			cmds = append(cmds, a.popup.Dispatch(act))
		}
	}
	return tea.Batch(cmds...)
}

func (a *App[T]) popupWidth() int {
	return min(maxPopupWidth, a.width-2)
}

func (a *App[T]) View() string {
	if a.quitting {
		return ""
	}

	state := views.ViewState{
		Width:      a.width,
		Height:     a.height,
		Title:      a.cfg.Title,
		Selections: a.selections,
		HelpModel:  a.help,
		Blank:      !a.cfg.Watch,
		Popup:      a.popup.State(a.input.View(), a.popupWidth()),
	}
	if a.cfg.Watch && !a.gate.IsOpen() {
		state.Keys = hiddenKeys{hotkey: a.cfg.Hotkey, keys: a.input.Keys()}
	}

	out, layout := a.renderer.Render(state)
	a.popup.SetLayout(layout)
	return out
}

// hiddenKeys is the help line shown while waiting for the hotkey
type hiddenKeys struct {
	hotkey string
	keys   types.KeyMap
}

func (k hiddenKeys) ShortHelp() []key.Binding {
	open := key.NewBinding(key.WithKeys(k.hotkey), key.WithHelp(k.hotkey, "search"))
	quit := key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	return []key.Binding{open, k.keys.Help, quit}
}

func (k hiddenKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultFormat[T any](v T) string {
	return fmt.Sprint(v)
}
