package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Pipeline schedules data-parallel stages over a bounded worker pool with
// fork-join semantics: each stage forks ParallelRange across workers and
// joins before the next stage starts, so cancellation only needs to be
// observed at the join, never mid-stage.
type Pipeline struct {
	Workers int
	Report  *Report
}

// New returns a Pipeline configured for workers goroutines per stage. A
// non-positive workers selects runtime.GOMAXPROCS(0).
func New(workers int) *Pipeline {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Pipeline{Workers: workers, Report: NewReport()}
}

// ParallelRange partitions [0,n) into contiguous chunks, one per worker,
// and runs fn(i) for every index. It checks ctx only before the fork; once
// workers are running, it lets them all finish and joins, then returns the
// first error by index order, unwrapped. When no call failed but ctx is
// done, it returns an error wrapping ErrCancelRequested.
func (p *Pipeline) ParallelRange(ctx context.Context, n int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrCancelRequested, ctx.Err())
	default:
	}

	workers := p.Workers
	if workers > n {
		workers = n
	}

	chunk := (n + workers - 1) / workers

	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if err := fn(i); err != nil {
					errs[w] = err
					return
				}
			}
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrCancelRequested, ctx.Err())
	default:
	}

	return nil
}
