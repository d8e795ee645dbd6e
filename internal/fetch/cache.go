package fetch

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache memoises successful results per query for ttl, keeping at most size
// entries. Errors are never cached. A non-positive ttl disables caching.
func Cache(fetch Func, size int, ttl time.Duration) Func {
	if ttl <= 0 {
		return fetch
	}
	if size <= 0 {
		size = 128
	}
	cache := expirable.NewLRU[string, any](size, nil, ttl)
	return func(ctx context.Context, query string) (any, error) {
		if v, ok := cache.Get(query); ok {
			return v, nil
		}
		v, err := fetch(ctx, query)
		if err != nil {
			return nil, err
		}
		cache.Add(query, v)
		return v, nil
	}
}
