package switcher

import "sync"

// GateState is the visibility of the switcher.
type GateState int

const (
	Hidden GateState = iota
	Open
)

func (s GateState) String() string {
	if s == Open {
		return "open"
	}
	return "hidden"
}

// InputSource is a stream of input events the gate can listen to.
type InputSource[E any] interface {
	Subscribe(handler func(E)) (unsubscribe func())
}

// Gate opens the switcher when an input event satisfies the activation
// predicate and hides it again on Close.
type Gate[E any] struct {
	activation func(E) bool
	state      GateState

	onOpen  func()
	onClose func()

	mu      sync.Mutex
	release func()
}

// NewGate returns a hidden gate. A nil activation never opens.
func NewGate[E any](activation func(E) bool) *Gate[E] {
	if activation == nil {
		activation = func(E) bool { return false }
	}
	return &Gate[E]{
		activation: activation,
		onOpen:     func() {},
		onClose:    func() {},
	}
}

// OnOpen sets the callback fired on Hidden -> Open.
func (g *Gate[E]) OnOpen(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	g.onOpen = fn
}

// OnClose sets the callback fired on Open -> Hidden.
func (g *Gate[E]) OnClose(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	g.onClose = fn
}

// State returns the current state.
func (g *Gate[E]) State() GateState {
	return g.state
}

// IsOpen reports whether the gate is open.
func (g *Gate[E]) IsOpen() bool {
	return g.state == Open
}

// Handle feeds one input event. It reports whether the event opened the gate.
func (g *Gate[E]) Handle(e E) bool {
	if g.state == Open || !g.activation(e) {
		return false
	}
	return g.Open()
}

// Open opens the gate without consulting the activation predicate, for
// hosts that start with the switcher showing. It reports whether the state
// changed.
func (g *Gate[E]) Open() bool {
	if g.state == Open {
		return false
	}
	g.state = Open
	g.onOpen()
	return true
}

// Close hides the gate. Closing a hidden gate does nothing.
func (g *Gate[E]) Close() {
	if g.state == Hidden {
		return
	}
	g.state = Hidden
	g.onClose()
}

// Mount subscribes the gate to src until the returned release func is
// called. Release is safe to call more than once.
func (g *Gate[E]) Mount(src InputSource[E]) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.release != nil {
		return nil, ErrAlreadyMounted
	}

	unsubscribe := src.Subscribe(func(e E) { g.Handle(e) })
	var once sync.Once
	release := func() {
		once.Do(func() {
			unsubscribe()
			g.mu.Lock()
			g.release = nil
			g.mu.Unlock()
		})
	}
	g.release = release
	return release, nil
}

// Mounted reports whether the gate holds a subscription.
func (g *Gate[E]) Mounted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.release != nil
}
