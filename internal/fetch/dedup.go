package fetch

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// flight is the shared context of one in-flight query and how many callers
// are still waiting on it.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// Dedup shares one call between concurrent fetches of the same query. The
// shared call outlives any single caller's cancellation but is cancelled once
// the last waiting caller has gone.
func Dedup(fetch Func) Func {
	var (
		group   singleflight.Group
		mu      sync.Mutex
		flights = make(map[string]*flight)
	)

	leave := func(query string, f *flight) {
		mu.Lock()
		defer mu.Unlock()
		f.waiters--
		if f.waiters > 0 {
			return
		}
		f.cancel()
		if flights[query] == f {
			// Nobody wants it any more: the next caller starts afresh
			delete(flights, query)
			group.Forget(query)
		}
	}

	return func(ctx context.Context, query string) (any, error) {
		mu.Lock()
		f := flights[query]
		if f == nil {
			fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
			f = &flight{ctx: fctx, cancel: cancel}
			flights[query] = f
		}
		f.waiters++
		mu.Unlock()
		defer leave(query, f)

		ch := group.DoChan(query, func() (any, error) {
			v, err := fetch(f.ctx, query)
			mu.Lock()
			if flights[query] == f {
				delete(flights, query)
			}
			mu.Unlock()
			return v, err
		})

		select {
		case res := <-ch:
			return res.Val, res.Err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
