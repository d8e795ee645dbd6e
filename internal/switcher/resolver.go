package switcher

import (
	"context"
	"fmt"
)

// Resolver turns a raw query into the next candidate list.
type Resolver[T any] struct {
	strategy Strategy
	haystack []T
	seed     []T
	limit    int
	match    Matcher[T]
	fetch    FetchFunc
}

// NewResolver builds a resolver from the strategy-related options.
func NewResolver[T any](opts Options[T]) *Resolver[T] {
	opts = opts.withDefaults()
	fetch := opts.Fetch
	if fetch == nil {
		fetch = func(context.Context, string) (any, error) { return []T{}, nil }
	}
	return &Resolver[T]{
		strategy: opts.Strategy,
		haystack: opts.Items,
		seed:     opts.Seed,
		limit:    opts.DisplayCount,
		match:    opts.Match,
		fetch:    fetch,
	}
}

// Strategy reports which strategy the resolver was built with.
func (r *Resolver[T]) Strategy() Strategy {
	return r.strategy
}

// Filter resolves a query against the haystack. An empty query yields the
// seed list; otherwise matches keep haystack order and stop at the display cap.
func (r *Resolver[T]) Filter(query string) []T {
	if query == "" {
		return truncate(append([]T(nil), r.seed...), r.limit)
	}
	items := make([]T, 0, r.limit)
	for _, candidate := range r.haystack {
		if !r.match(query, candidate) {
			continue
		}
		items = append(items, candidate)
		if len(items) == r.limit {
			break
		}
	}
	return items
}

// Fetch runs the asynchronous fetch for a ticket and checks that it resolved
// to a list. The list is returned as fetched.
func (r *Resolver[T]) Fetch(ctx context.Context, t Ticket) ([]T, error) {
	v, err := r.fetch(ctx, t.Query)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", t.Query, err)
	}
	return asSequence[T](t.Query, v)
}

// Resolve runs whichever strategy is configured.
func (r *Resolver[T]) Resolve(ctx context.Context, query string) ([]T, error) {
	if r.strategy == StrategyAsync {
		return r.Fetch(ctx, Ticket{Query: query})
	}
	return r.Filter(query), nil
}

func asSequence[T any](query string, v any) ([]T, error) {
	switch s := v.(type) {
	case []T:
		if s == nil {
			return []T{}, nil
		}
		return s, nil
	case []any:
		items := make([]T, 0, len(s))
		for i, e := range s {
			item, ok := e.(T)
			if !ok {
				return nil, &MalformedResultError{Query: query, Value: v, Index: i}
			}
			items = append(items, item)
		}
		return items, nil
	}
	return nil, &MalformedResultError{Query: query, Value: v, Index: -1}
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
