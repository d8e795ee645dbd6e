// Package fetch provides asynchronous candidate sources for the switcher and
// wrappers that bound, share and memoise them.
//
// Every source resolves to the decoded value as-is; checking that it is a
// list of candidates is the resolver's job.
package fetch

import (
	"context"
	"fmt"
	"time"

	"fuzzyswitch/internal/switcher"
)

// QueryEnv carries the query to command sources.
const QueryEnv = "FUZZYSWITCH_QUERY"

// Func is the asynchronous fetch signature.
type Func = switcher.FetchFunc

// Empty always resolves to an empty list.
func Empty(context.Context, string) (any, error) {
	return []any{}, nil
}

// WithTimeout bounds every call to fetch by d. A non-positive d disables it.
func WithTimeout(fetch Func, d time.Duration) Func {
	if d <= 0 {
		return fetch
	}
	return func(ctx context.Context, query string) (any, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		v, err := fetch(ctx, query)
		if err != nil && ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("timed out after %s: %w", d, err)
		}
		return v, err
	}
}
