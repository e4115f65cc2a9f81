// Package parallel provides the worker pool the engine uses for
// background canvas work (buffer clears, target synchronization).
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed-size pool of goroutines executing submitted work.
//
// The pool is started by NewWorkerPool and stopped by Close. Work submitted
// after Close is executed inline on the caller's goroutine so that callers
// never lose work during teardown.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// queue carries submitted work to the workers.
	queue chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	closeOnce sync.Once
}

// NewWorkerPool creates a pool with the given number of workers and starts
// it. If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Buffered queue hides submission latency for short bursts of work.
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), queueSize),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int { return p.workers }

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			p.drain()
			return
		case work := <-p.queue:
			if work != nil {
				work()
			}
		}
	}
}

// drain executes all work remaining in the queue.
func (p *WorkerPool) drain() {
	for {
		select {
		case work := <-p.queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// Submit sends a single work item to the pool. If the pool has been
// closed, the work runs inline on the caller's goroutine.
func (p *WorkerPool) Submit(fn func()) {
	if fn == nil {
		return
	}
	if !p.running.Load() {
		fn()
		return
	}

	select {
	case p.queue <- fn:
	case <-p.done:
		fn()
	}
}

// ExecuteAll distributes the work items across workers and waits for all
// of them to complete.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}

	var completion sync.WaitGroup
	completion.Add(len(work))
	for _, fn := range work {
		fn := fn
		p.Submit(func() {
			defer completion.Done()
			fn()
		})
	}
	completion.Wait()
}

// Close stops the pool and waits for workers to finish their queued work.
// Idempotent.
func (p *WorkerPool) Close() {
	p.closeOnce.Do(func() {
		p.running.Store(false)
		close(p.done)
		p.wg.Wait()
	})
}
