package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed reports work submitted after the pool shut down.
var ErrPoolClosed = errors.New("parallel: worker pool is closed")

// Job is one unit of tile work. A non-nil error (or a recovered panic)
// lands in the job's result slot, inspected after the draw barrier.
type Job func() error

// WorkerPool is a fixed-size pool of goroutines for tile rendering.
//
// Work is distributed by static round-robin partition: job i always runs on
// worker i mod N, and each worker consumes its own queue in FIFO order.
// There is no work stealing — a tile job must run whole on one worker so
// that within-tile triangle order is preserved, and tile costs are uniform
// enough that stealing buys nothing.
//
// The pool is created once and reused across draw calls and frames.
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker job queues.
	workQueues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used. Workers start immediately
// and wait for jobs.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]
	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return
		case work := <-myQueue:
			if work != nil {
				work()
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// ExecuteAll runs all jobs and blocks until every one has finished — this is
// the end-of-draw-call barrier. The returned slice has one slot per job:
// nil on success, the job's error or recovered panic otherwise.
//
// If the pool is closed, every slot reports ErrPoolClosed.
func (p *WorkerPool) ExecuteAll(jobs []Job) []error {
	errs := make([]error, len(jobs))
	if len(jobs) == 0 {
		return errs
	}
	if !p.running.Load() {
		for i := range errs {
			errs[i] = ErrPoolClosed
		}
		return errs
	}

	var completionWG sync.WaitGroup
	completionWG.Add(len(jobs))

	for i, job := range jobs {
		workerID := i % p.workers
		slot := &errs[i]
		j := job

		wrapped := func() {
			defer completionWG.Done()
			defer func() {
				if r := recover(); r != nil {
					*slot = fmt.Errorf("worker fault: %v", r)
				}
			}()
			*slot = j()
		}

		select {
		case p.workQueues[workerID] <- wrapped:
		case <-p.done:
			*slot = ErrPoolClosed
			completionWG.Done()
		}
	}

	completionWG.Wait()
	return errs
}

// Close gracefully shuts down the pool. It stops accepting new work, waits
// for queued work to finish, and stops all workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
