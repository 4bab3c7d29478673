// SPDX-License-Identifier: MIT

// Package pool - bounded fan-out of indexed tasks.
//
// Goals:
//   - Results land at their task index, so reductions are order-stable.
//   - Nested Map calls share one slot budget without deadlocking.
//
// Concurrency:
//   - A Pool is safe for concurrent use; fn may run on any goroutine.
package pool

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Func computes the result for task index i. It must honour ctx when it can
// block for long.
type Func func(ctx context.Context, i int) (float64, error)

// Pool is a fixed-size set of worker slots shared by all callers.
type Pool struct {
	size int
	sem  *semaphore.Weighted
}

// New returns a Pool with size slots; size ≤ 0 selects runtime.GOMAXPROCS(0).
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	return &Pool{size: size, sem: semaphore.NewWeighted(int64(size))}
}

// Default returns the process-wide pool, creating it on first use.
var Default = sync.OnceValue(func() *Pool { return New(0) })

// Size returns the number of worker slots.
func (p *Pool) Size() int { return p.size }

// Map runs fn for every i in [0, n) with at most Size() tasks in flight and
// returns the results indexed by i.
//
// The first error returned by fn cancels the context passed to the remaining
// tasks and is returned unchanged; no partial result is returned. If ctx is
// cancelled first, its error is returned.
//
// Complexity:
//   - Time O(n·cost(fn)/Size()), Space O(n) for the result slice.
func (p *Pool) Map(ctx context.Context, n int, fn Func) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrNegativeCount, n)
	}
	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	var next atomic.Int64
	for w := 0; w < min(p.size, n); w++ {
		g.Go(func() error {
			if err := p.sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer p.sem.Release(1)
			for {
				i := int(next.Add(1) - 1)
				if i >= n {
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}
				v, err := fn(gctx, i)
				if err != nil {
					return err
				}
				out[i] = v
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
