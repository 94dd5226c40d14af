// Package parallel runs independent jobs on a bounded number of goroutines.
package parallel

import (
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

type (
	// WorkerFunc schedules a job. It may block until a worker is free.
	WorkerFunc func(func() error)
	// WaitFunc blocks until every scheduled job has finished and returns
	// the errors they reported, joined.
	WaitFunc func() error
)

type Pool struct {
	g    errgroup.Group
	mu   sync.Mutex
	errs []error

	Do   WorkerFunc
	Wait WaitFunc
}

// Start returns a pool running at most numWorkers jobs at once. A value
// below 1 means GOMAXPROCS. With a single worker jobs run inline on the
// caller's goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{}
	pool.Wait = pool.wait

	if numWorkers == 1 {
		pool.Do = func(f func() error) {
			pool.record(f())
		}
		return pool
	}

	pool.g.SetLimit(numWorkers)
	pool.Do = func(f func() error) {
		pool.g.Go(func() error {
			pool.record(f())
			return nil
		})
	}
	return pool
}

func (p *Pool) record(err error) {
	if err == nil {
		return
	}
	p.mu.Lock()
	p.errs = append(p.errs, err)
	p.mu.Unlock()
}

func (p *Pool) wait() error {
	_ = p.g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}
