package switcher

import (
	"errors"
	"fmt"
)

// ErrAlreadyMounted is returned by Gate.Mount while a subscription is held.
var ErrAlreadyMounted = errors.New("gate is already mounted")

// MalformedResultError means a fetch resolved to something that is not a
// candidate list.
type MalformedResultError struct {
	Query string
	Value any
	Index int // offending element, or -1 when Value is not a list at all
}

func (e *MalformedResultError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("resolved data for %q has an element of type %T at index %d; expected a list of candidates", e.Query, elementAt(e.Value, e.Index), e.Index)
	}
	return fmt.Sprintf("resolved data for %q isn't a list (got %T); fetch must resolve to a list like [\"foo\", \"bar\", \"baz\"]", e.Query, e.Value)
}

func elementAt(v any, i int) any {
	if s, ok := v.([]any); ok && i < len(s) {
		return s[i]
	}
	return nil
}
