// Package pool provides an order-preserving bounded-concurrency map over a
// slice of work items.
package pool

import (
	"context"
	"sync"
	"sync/atomic"
)

// Map runs worker over every item with at most limit concurrent calls.
// The returned slice matches the input ordering regardless of which worker
// finishes first. The first worker error cancels the remaining work and is
// returned; workers that want per-item degradation must handle their own
// errors and return a fallback value instead.
func Map[T any](ctx context.Context, items []T, limit int, worker func(context.Context, T) (T, error)) ([]T, error) {
	if len(items) == 0 {
		return []T{}, nil
	}
	if limit <= 0 {
		limit = 1
	}
	if limit > len(items) {
		limit = len(items)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]T, len(items))

	var (
		next     atomic.Int64 // next unclaimed index
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	for w := 0; w < limit; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= len(items) {
					return
				}
				if ctx.Err() != nil {
					return
				}

				out, err := worker(ctx, items[i])
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
				results[i] = out
			}
		}()
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
