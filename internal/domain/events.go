package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSwitcherOpened   EventType = "SwitcherOpened"
	EventSwitcherClosed   EventType = "SwitcherClosed"
	EventHighlightChanged EventType = "HighlightChanged"
	EventItemSelected     EventType = "ItemSelected"
	EventResolveFailed    EventType = "ResolveFailed"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SwitcherOpenedEvent is emitted when the gate opens the popup
type SwitcherOpenedEvent struct {
	Label string
	Seed  int // candidates shown before the first keystroke
}

func (e SwitcherOpenedEvent) Type() EventType { return EventSwitcherOpened }

// SwitcherClosedEvent is emitted when the popup is hidden again
type SwitcherClosedEvent struct {
	Reason CloseReason
}

func (e SwitcherClosedEvent) Type() EventType { return EventSwitcherClosed }

// HighlightChangedEvent is emitted on every highlight change
type HighlightChangedEvent struct {
	Item  string
	Empty bool // the list became empty, Item is meaningless
}

func (e HighlightChangedEvent) Type() EventType { return EventHighlightChanged }

// ItemSelectedEvent is emitted when a candidate is confirmed
type ItemSelectedEvent struct {
	Item  string
	Query string
}

func (e ItemSelectedEvent) Type() EventType { return EventItemSelected }

// ResolveFailedEvent is emitted when an asynchronous fetch fails or
// resolves to something that isn't a list
type ResolveFailedEvent struct {
	Query string
	Err   error
}

func (e ResolveFailedEvent) Type() EventType { return EventResolveFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path  string
	Items int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
