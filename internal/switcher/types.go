// Package switcher holds the state machines behind the fuzzy switcher popup:
// the selection controller, the query resolver and the visibility gate.
// Nothing in here knows about terminals; hosts feed it commands and react to
// the effects it returns.
package switcher

import "context"

// DefaultDisplayCount is the display cap used when Options.DisplayCount is unset.
const DefaultDisplayCount = 5

// DefaultLabel is shown above the input when Options.Label is empty.
const DefaultLabel = "Search"

// Strategy selects how a query is turned into candidates.
type Strategy int

const (
	// StrategySync filters the in-memory haystack with the matcher.
	StrategySync Strategy = iota
	// StrategyAsync delegates every query to a FetchFunc.
	StrategyAsync
)

func (s Strategy) String() string {
	switch s {
	case StrategySync:
		return "sync"
	case StrategyAsync:
		return "async"
	default:
		return "unknown"
	}
}

// Ordering decides which asynchronous resolution wins when several are in flight.
type Ordering int

const (
	// OrderLatestIssued drops resolutions for anything but the newest query.
	OrderLatestIssued Ordering = iota
	// OrderLastResolved lets whichever fetch resolves last overwrite the list.
	OrderLastResolved
)

func (o Ordering) String() string {
	switch o {
	case OrderLatestIssued:
		return "latest-issued"
	case OrderLastResolved:
		return "last-resolved"
	default:
		return "unknown"
	}
}

// FetchFunc resolves a query to a candidate list. The value must be a []T or
// a []any holding only T values; anything else is a MalformedResultError.
type FetchFunc func(ctx context.Context, query string) (any, error)

// Matcher reports whether candidate matches query.
type Matcher[T any] func(query string, candidate T) bool

// Options configure a Controller and its Resolver.
type Options[T any] struct {
	Label             string
	Items             []T // haystack for StrategySync, borrowed read-only
	Seed              []T // shown for an empty query
	DisplayCount      int
	CycleAtEndsOfList bool

	Strategy Strategy
	Ordering Ordering
	Match    Matcher[T]
	Fetch    FetchFunc

	OnHighlight func(item T, ok bool)
	OnSelect    func(item T)
	OnClose     func()
	OnError     func(err error)
}

func (o Options[T]) withDefaults() Options[T] {
	if o.Label == "" {
		o.Label = DefaultLabel
	}
	if o.DisplayCount <= 0 {
		o.DisplayCount = DefaultDisplayCount
	}
	if o.Match == nil {
		o.Match = FuzzyMatcher[T](nil)
	}
	if o.OnHighlight == nil {
		o.OnHighlight = func(T, bool) {}
	}
	if o.OnSelect == nil {
		o.OnSelect = func(T) {}
	}
	if o.OnClose == nil {
		o.OnClose = func() {}
	}
	if o.OnError == nil {
		o.OnError = func(error) {}
	}
	return o
}

// Session is the state of one open switcher.
type Session[T any] struct {
	Items []T
	Index int // meaningful only while Items is non-empty
	Query string
	Seq   uint64 // newest async ticket issued in this session
}

// Selected returns the highlighted candidate.
func (s Session[T]) Selected() (T, bool) {
	if len(s.Items) == 0 {
		var zero T
		return zero, false
	}
	return s.Items[s.Index], true
}

// Ticket identifies one asynchronous resolution.
type Ticket struct {
	Seq   uint64
	Query string
}

// Command is an input to the controller's transition function.
type Command interface {
	Type() string
}

// MoveUp moves the highlight one row up.
type MoveUp struct{}

func (MoveUp) Type() string { return "move_up" }

// MoveDown moves the highlight one row down.
type MoveDown struct{}

func (MoveDown) Type() string { return "move_down" }

// HighlightAt moves the highlight to a row, e.g. on pointer hover.
type HighlightAt struct {
	Index int
}

func (HighlightAt) Type() string { return "highlight_at" }

// Confirm selects the highlighted candidate.
type Confirm struct{}

func (Confirm) Type() string { return "confirm" }

// ConfirmAt selects the candidate at a row, e.g. on pointer click.
type ConfirmAt struct {
	Index int
}

func (ConfirmAt) Type() string { return "confirm_at" }

// Cancel dismisses the switcher.
type Cancel struct{}

func (Cancel) Type() string { return "cancel" }

// QueryChanged carries the new text of the input.
type QueryChanged struct {
	Query string
}

func (QueryChanged) Type() string { return "query_changed" }

// ReplaceItems swaps the displayed list.
type ReplaceItems[T any] struct {
	Items []T
}

func (ReplaceItems[T]) Type() string { return "replace_items" }

// ItemsResolved delivers the result of an asynchronous fetch.
type ItemsResolved[T any] struct {
	Seq   uint64
	Items []T
}

func (ItemsResolved[T]) Type() string { return "items_resolved" }

// ResolveFailed delivers a failed asynchronous fetch.
type ResolveFailed struct {
	Seq   uint64
	Query string
	Err   error
}

func (ResolveFailed) Type() string { return "resolve_failed" }

// Effect is an externally observable outcome of a transition.
type Effect interface {
	Type() string
}

// HighlightChanged reports the new highlighted candidate; OK is false when
// the list became empty.
type HighlightChanged[T any] struct {
	Item T
	OK   bool
}

func (HighlightChanged[T]) Type() string { return "highlight_changed" }

// Selected reports a confirmed candidate.
type Selected[T any] struct {
	Item T
}

func (Selected[T]) Type() string { return "selected" }

// Closed reports a dismissal.
type Closed struct{}

func (Closed) Type() string { return "closed" }

// FetchRequested asks the host to run the asynchronous fetch for a ticket.
type FetchRequested struct {
	Ticket Ticket
}

func (FetchRequested) Type() string { return "fetch_requested" }

// ResolveError reports a fetch failure for the current query.
type ResolveError struct {
	Query string
	Err   error
}

func (ResolveError) Type() string { return "resolve_error" }
