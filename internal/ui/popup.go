package ui

import (
	"context"
	"errors"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"fuzzyswitch/internal/switcher"
	"fuzzyswitch/internal/ui/views"
)

// Popup drives one switcher controller from Bubble Tea messages: it turns
// FetchRequested effects into commands and feeds their results back.
type Popup[T any] struct {
	ctrl   *switcher.Controller[T]
	format func(T) string

	gen           uint64 // bumped on every Open
	sessionCancel context.CancelFunc
	fetchCancel   context.CancelFunc
	sessionCtx    context.Context
	pending       uint64 // seq of the newest fetch still running, 0 if none
	errMsg        string

	layout views.Layout
}

// NewPopup builds a popup around a controller configured with opts.
func NewPopup[T any](opts switcher.Options[T], format func(T) string) *Popup[T] {
	if format == nil {
		format = defaultFormat[T]
	}
	return &Popup[T]{
		ctrl:   switcher.NewController(opts),
		format: format,
	}
}

// Open starts a fresh session showing the seed list.
func (p *Popup[T]) Open() {
	p.gen++
	p.sessionCtx, p.sessionCancel = context.WithCancel(context.Background())
	p.fetchCancel = nil
	p.pending = 0
	p.errMsg = ""
	p.layout = views.Layout{}
	p.ctrl.Reset()
}

// Close drops the session and cancels any fetch still running.
func (p *Popup[T]) Close() {
	if p.sessionCancel != nil {
		p.sessionCancel()
		p.sessionCancel = nil
	}
	p.fetchCancel = nil
	p.pending = 0
	p.ctrl.Close()
}

func (p *Popup[T]) Active() bool {
	return p.ctrl.Active()
}

func (p *Popup[T]) Controller() *switcher.Controller[T] {
	return p.ctrl
}

// Dispatch runs cmd through the controller. The returned command, if any,
// performs the asynchronous fetch the transition asked for.
func (p *Popup[T]) Dispatch(cmd switcher.Command) tea.Cmd {
	if _, ok := cmd.(switcher.QueryChanged); ok {
		p.errMsg = ""
	}

	var cmds []tea.Cmd
	for _, effect := range p.ctrl.Dispatch(cmd) {
		switch e := effect.(type) {
		case switcher.FetchRequested:
			cmds = append(cmds, p.fetch(e.Ticket))
		case switcher.ResolveError:
			p.errMsg = e.Err.Error()
		}
	}
	return tea.Batch(cmds...)
}

func (p *Popup[T]) fetch(t switcher.Ticket) tea.Cmd {
	if p.sessionCtx == nil {
		return nil
	}
	if p.fetchCancel != nil && p.ctrl.Options().Ordering == switcher.OrderLatestIssued {
		p.fetchCancel()
	}
	ctx, cancel := context.WithCancel(p.sessionCtx)
	p.fetchCancel = cancel
	p.pending = t.Seq

	gen := p.gen
	resolver := p.ctrl.Resolver()
	return func() tea.Msg {
		defer cancel()
		items, err := resolver.Fetch(ctx, t)
		return resolvedMsg[T]{gen: gen, ticket: t, items: items, err: err}
	}
}

// Update handles the popup's own messages and reports whether msg was one.
func (p *Popup[T]) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case resolvedMsg[T]:
		return p.resolved(msg), true
	case tea.MouseMsg:
		return p.mouse(msg), true
	}
	return nil, false
}

func (p *Popup[T]) resolved(msg resolvedMsg[T]) tea.Cmd {
	if msg.gen != p.gen || !p.ctrl.Active() {
		return nil
	}
	if msg.ticket.Seq == p.pending {
		p.pending = 0
	}

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			log.Printf("Fetch for %q cancelled", msg.ticket.Query)
			return nil
		}
		log.Printf("Fetch for %q failed: %v", msg.ticket.Query, msg.err)
		return p.Dispatch(switcher.ResolveFailed{Seq: msg.ticket.Seq, Query: msg.ticket.Query, Err: msg.err})
	}
	return p.Dispatch(switcher.ItemsResolved[T]{Seq: msg.ticket.Seq, Items: msg.items})
}

func (p *Popup[T]) mouse(msg tea.MouseMsg) tea.Cmd {
	if !p.ctrl.Active() || p.layout.Width == 0 {
		return nil
	}
	row := p.layout.RowAt(msg.X, msg.Y)

	switch {
	case msg.Action == tea.MouseActionMotion:
		if row >= 0 {
			return p.Dispatch(switcher.HighlightAt{Index: row})
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if row >= 0 {
			return p.Dispatch(switcher.ConfirmAt{Index: row})
		}
		if !p.layout.Contains(msg.X, msg.Y) {
			return p.Dispatch(switcher.Cancel{})
		}
	}
	return nil
}

// SetLayout records where the popup was last drawn, for hit-testing.
func (p *Popup[T]) SetLayout(l views.Layout) {
	p.layout = l
}

// State returns what the renderer needs, or nil while closed.
func (p *Popup[T]) State(input string, width int) *views.PopupState {
	s, ok := p.ctrl.Session()
	if !ok {
		return nil
	}

	items := make([]string, len(s.Items))
	for i, item := range s.Items {
		items[i] = p.format(item)
	}

	state := &views.PopupState{
		Label:    p.ctrl.Options().Label,
		Input:    input,
		Items:    items,
		Selected: s.Index,
		Width:    width,
	}
	switch {
	case p.errMsg != "":
		state.Status, state.StatusKind = p.errMsg, views.StatusError
	case p.pending != 0:
		state.Status, state.StatusKind = "searching…", views.StatusLoading
	case len(s.Items) == 0 && s.Query != "":
		state.Status, state.StatusKind = "no matches", views.StatusEmpty
	}
	return state
}
