package domain

// CloseReason records why the switcher was hidden
type CloseReason string

const (
	CloseSelected  CloseReason = "selected"  // a candidate was confirmed
	CloseCancelled CloseReason = "cancelled" // esc or a click outside the popup
	CloseShutdown  CloseReason = "shutdown"  // the program is exiting
)
