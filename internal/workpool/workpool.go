// Package workpool runs independent indexed jobs on a bounded set of
// goroutines. Both batch helpers of the module share it.
package workpool

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Workers normalizes a requested worker count: non-positive means
// runtime.GOMAXPROCS(0), and there are never more workers than jobs.
func Workers(requested, jobs int) int {
	w := requested
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	if w > jobs {
		w = jobs
	}
	if w < 1 {
		w = 1
	}

	return w
}

// Run calls fn(i) for every i in 0..n-1 on at most workers goroutines.
//
// Jobs are handed out in index order. ctx is checked before each job starts,
// never during one. After the first failure no new jobs are handed out, but
// jobs already handed out still finish, so the reported failure is always the
// lowest failing index among the jobs that ran.
//
// Returns (-1, nil) on success, (i, err) for the lowest failing job i, or
// (-1, ctx.Err()) when ctx ended first. A panic inside fn is re-raised on the
// calling goroutine after all workers stop.
func Run(ctx context.Context, n, workers int, fn func(i int) error) (int, error) {
	if n == 0 {
		if err := ctx.Err(); err != nil {
			return -1, fmt.Errorf("workpool: %w", err)
		}
		return -1, nil
	}
	workers = Workers(workers, n)

	stop, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make([]error, n)
	jobs := make(chan int)
	var (
		wg        sync.WaitGroup
		panicOnce sync.Once
		panicked  any
	)
	worker := func() {
		defer wg.Done()
		for i := range jobs {
			if ctx.Err() != nil {
				continue
			}
			func() {
				defer func() {
					if r := recover(); r != nil {
						panicOnce.Do(func() { panicked = r })
						cancel()
					}
				}()
				if errs[i] = fn(i); errs[i] != nil {
					cancel()
				}
			}()
		}
	}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go worker()
	}

dispatch:
	for i := 0; i < n; i++ {
		select {
		case <-stop.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if panicked != nil {
		panic(panicked)
	}
	for i, err := range errs {
		if err != nil {
			return i, err
		}
	}
	if err := ctx.Err(); err != nil {
		return -1, fmt.Errorf("workpool: %w", err)
	}

	return -1, nil
}
