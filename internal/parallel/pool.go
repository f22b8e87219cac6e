// Package parallel runs per-tile work on a fixed set of goroutines.
//
// Compositing, flattening and downscaling all process independent tiles, so
// the canvas hands each pass to a Pool as one task per tile. Each worker
// owns a queue and steals from the others when its own runs dry.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("parallel: pool closed")

// Pool is a work-stealing pool of goroutines.
//
// Run is safe for concurrent use. Close must not race with Run, and tasks
// must not call Run on the pool executing them.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool starts a pool with the given number of workers. If workers is 0 or
// negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			drain(own)
			return
		case task := <-own:
			task()
		default:
			if task := p.steal(id); task != nil {
				task()
				continue
			}
			select {
			case <-p.done:
				drain(own)
				return
			case task := <-own:
				task()
			}
		}
	}
}

func drain(queue chan func()) {
	for {
		select {
		case task := <-queue:
			task()
		default:
			return
		}
	}
}

// steal takes one task from another worker's queue, or returns nil.
func (p *Pool) steal(id int) func() {
	for i := 1; i < p.workers; i++ {
		select {
		case task := <-p.queues[(id+i)%p.workers]:
			return task
		default:
		}
	}
	return nil
}

// Run calls fn(i) for every i in [0, n) on the pool's workers and waits for
// all calls to finish. Task errors are joined in the returned error. Once
// ctx is canceled, tasks that have not started are skipped and ctx.Err() is
// returned.
func (p *Pool) Run(ctx context.Context, n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	if !p.running.Load() {
		return ErrClosed
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	wg.Add(n)
	for i := range n {
		task := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			if err := fn(i); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("task %d: %w", i, err))
				mu.Unlock()
			}
		}
		select {
		case p.queues[i%p.workers] <- task:
		case <-ctx.Done():
			wg.Done()
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Join(errs...)
}

// Workers returns the number of workers.
func (p *Pool) Workers() int {
	return p.workers
}

// Close runs all queued tasks, then stops the workers. It is safe to call
// more than once.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}
