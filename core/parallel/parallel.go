// Package parallel provides the CPU fan-out helpers used by tree training and
// batch prediction.
package parallel

import (
	"runtime"
	"sync"

	"github.com/YuminosukeSato/gbtree/pkg/errors"
)

// Parallelize splits [0, items) into contiguous chunks and runs fn on each
// chunk concurrently. workers <= 0 uses one worker per CPU.
func Parallelize(items, workers int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}

	// ceiling division
	chunkSize := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) on the calling goroutine when
// items <= threshold and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items, threshold, workers int, fn func(start, end int)) {
	if items <= threshold || workers == 1 {
		fn(0, items)
		return
	}
	Parallelize(items, workers, fn)
}

// Pool bounds the number of goroutines started through Go. The calling
// goroutine counts as one worker, so a Pool of size 1 never starts goroutines.
// A nil *Pool is valid and runs everything inline.
type Pool struct {
	slots chan struct{}
}

// NewPool creates a Pool allowing up to workers concurrent tasks.
// workers <= 0 uses one worker per CPU.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{slots: make(chan struct{}, workers-1)}
}

// Go runs fn on a new goroutine when a slot is free and inline otherwise. The
// returned function blocks until fn has finished and returns its error. A
// panic inside fn is returned as an *errors.PanicError.
func (p *Pool) Go(fn func() error) (wait func() error) {
	if p != nil {
		select {
		case p.slots <- struct{}{}:
			done := make(chan error, 1)
			go func() {
				defer func() { <-p.slots }()
				done <- errors.SafeExecute("parallel.Pool.Go", fn)
			}()
			return func() error { return <-done }
		default:
		}
	}

	err := fn()
	return func() error { return err }
}
