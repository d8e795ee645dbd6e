package switcher

// Controller owns the session of an open switcher. Dispatch feeds a command
// through Step and runs the resulting effects through the callbacks in
// Options; effects without a callback (FetchRequested) are left to the host.
type Controller[T any] struct {
	opts     Options[T]
	resolver *Resolver[T]
	session  *Session[T]
}

// NewController builds a controller and the resolver it queries.
func NewController[T any](opts Options[T]) *Controller[T] {
	opts = opts.withDefaults()
	return &Controller[T]{
		opts:     opts,
		resolver: NewResolver(opts),
	}
}

// Options returns the effective options, defaults applied.
func (c *Controller[T]) Options() Options[T] {
	return c.opts
}

// Resolver returns the resolver the controller queries.
func (c *Controller[T]) Resolver() *Resolver[T] {
	return c.resolver
}

// Reset starts a fresh session showing the seed list.
func (c *Controller[T]) Reset() {
	c.session = &Session[T]{
		Items: truncate(append([]T(nil), c.opts.Seed...), c.opts.DisplayCount),
	}
}

// Close drops the session. Commands dispatched afterwards are ignored.
func (c *Controller[T]) Close() {
	c.session = nil
}

// Active reports whether a session is open.
func (c *Controller[T]) Active() bool {
	return c.session != nil
}

// Session returns a copy of the current session.
func (c *Controller[T]) Session() (Session[T], bool) {
	if c.session == nil {
		return Session[T]{}, false
	}
	return *c.session, true
}

// Dispatch applies cmd and runs its effects. It returns every effect so the
// host can act on the ones that need I/O.
func (c *Controller[T]) Dispatch(cmd Command) []Effect {
	if c.session == nil {
		return nil
	}
	next, effects := c.Step(*c.session, cmd)
	c.session = &next
	for _, e := range effects {
		c.run(e)
	}
	return effects
}

func (c *Controller[T]) MoveUp() []Effect   { return c.Dispatch(MoveUp{}) }
func (c *Controller[T]) MoveDown() []Effect { return c.Dispatch(MoveDown{}) }
func (c *Controller[T]) Confirm() []Effect  { return c.Dispatch(Confirm{}) }
func (c *Controller[T]) Cancel() []Effect   { return c.Dispatch(Cancel{}) }

// ReplaceItems swaps the displayed list, truncated to the display cap.
func (c *Controller[T]) ReplaceItems(items []T) []Effect {
	return c.Dispatch(ReplaceItems[T]{Items: items})
}

func (c *Controller[T]) run(e Effect) {
	switch e := e.(type) {
	case HighlightChanged[T]:
		c.opts.OnHighlight(e.Item, e.OK)
	case Selected[T]:
		c.opts.OnSelect(e.Item)
	case Closed:
		c.opts.OnClose()
	case ResolveError:
		c.opts.OnError(e.Err)
	}
}

// Step is the transition function. It never touches the controller's own
// session and never runs callbacks.
func (c *Controller[T]) Step(s Session[T], cmd Command) (Session[T], []Effect) {
	switch cmd := cmd.(type) {
	case MoveUp:
		return c.moveTo(s, c.prevIndex(s))
	case MoveDown:
		return c.moveTo(s, c.nextIndex(s))
	case HighlightAt:
		if cmd.Index < 0 || cmd.Index >= len(s.Items) {
			return s, nil
		}
		return c.moveTo(s, cmd.Index)
	case Confirm:
		if item, ok := s.Selected(); ok {
			return s, []Effect{Selected[T]{Item: item}}
		}
		return s, nil
	case ConfirmAt:
		if cmd.Index < 0 || cmd.Index >= len(s.Items) {
			return s, nil
		}
		return s, []Effect{Selected[T]{Item: s.Items[cmd.Index]}}
	case Cancel:
		return s, []Effect{Closed{}}
	case QueryChanged:
		s.Query = cmd.Query
		if c.resolver.Strategy() == StrategyAsync {
			s.Seq++
			return s, []Effect{FetchRequested{Ticket: Ticket{Seq: s.Seq, Query: cmd.Query}}}
		}
		return c.replace(s, c.resolver.Filter(cmd.Query))
	case ReplaceItems[T]:
		return c.replace(s, cmd.Items)
	case ItemsResolved[T]:
		if c.stale(s, cmd.Seq) {
			return s, nil
		}
		return c.replace(s, cmd.Items)
	case ResolveFailed:
		if c.stale(s, cmd.Seq) {
			return s, nil
		}
		return s, []Effect{ResolveError{Query: cmd.Query, Err: cmd.Err}}
	}
	return s, nil
}

func (c *Controller[T]) stale(s Session[T], seq uint64) bool {
	return c.opts.Ordering == OrderLatestIssued && seq != s.Seq
}

// prevIndex returns -1 when moving up is a no-op.
func (c *Controller[T]) prevIndex(s Session[T]) int {
	switch {
	case len(s.Items) == 0:
		return -1
	case s.Index > 0:
		return s.Index - 1
	case c.opts.CycleAtEndsOfList:
		return len(s.Items) - 1
	}
	return -1
}

// nextIndex returns -1 when moving down is a no-op.
func (c *Controller[T]) nextIndex(s Session[T]) int {
	switch {
	case len(s.Items) == 0:
		return -1
	case s.Index < len(s.Items)-1:
		return s.Index + 1
	case c.opts.CycleAtEndsOfList:
		return 0
	}
	return -1
}

func (c *Controller[T]) moveTo(s Session[T], index int) (Session[T], []Effect) {
	if index < 0 || index == s.Index {
		return s, nil
	}
	s.Index = index
	return s, []Effect{HighlightChanged[T]{Item: s.Items[index], OK: true}}
}

func (c *Controller[T]) replace(s Session[T], items []T) (Session[T], []Effect) {
	s.Items = truncate(items, c.opts.DisplayCount)
	s.Index = 0
	if len(s.Items) == 0 {
		var zero T
		return s, []Effect{HighlightChanged[T]{Item: zero, OK: false}}
	}
	return s, []Effect{HighlightChanged[T]{Item: s.Items[0], OK: true}}
}
