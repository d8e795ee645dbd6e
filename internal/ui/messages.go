package ui

import "fuzzyswitch/internal/switcher"

// resolvedMsg carries the result of an asynchronous fetch back to the
// event loop. gen ties it to the popup session that issued it.
type resolvedMsg[T any] struct {
	gen    uint64
	ticket switcher.Ticket
	items  []T
	err    error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}
