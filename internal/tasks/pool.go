// Package tasks provides the background execution substrate for deferred
// work. The HTTP layer only needs "run this after the response is sent, at
// least once, in no particular order"; Pool satisfies that with a fixed set
// of worker goroutines draining a bounded queue.
package tasks

import (
	"errors"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
)

// ErrClosed is returned by Schedule once the pool is shutting down.
var ErrClosed = errors.New("task pool closed")

// Pool executes scheduled tasks on a fixed number of worker goroutines.
// Tasks are attempted exactly once each; there is no ordering guarantee
// between tasks, and a panicking task is contained without affecting the
// worker or other tasks.
type Pool struct {
	queue chan func()
	log   zerolog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool starts workers goroutines draining a queue of queueSize pending
// tasks. workers and queueSize are coerced to at least 1. Panics and task
// lifecycle problems are logged to lg.
func NewPool(workers, queueSize int, lg zerolog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	p := &Pool{
		queue: make(chan func(), queueSize),
		log:   lg,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Schedule enqueues task for execution by a worker. It blocks while the
// queue is full (backpressure, not rejection) and returns ErrClosed once
// Close has been called.
func (p *Pool) Schedule(task func()) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	// Holding the lock across the send keeps Close's channel close from
	// racing an in-flight Schedule.
	defer p.mu.Unlock()
	p.queue <- task
	return nil
}

// Close stops accepting new tasks and waits until the queue is drained and
// every worker has exited. Safe to call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
}

// worker drains the queue until it is closed and empty.
func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.queue {
		p.run(task)
	}
}

// run executes one task, containing panics so a bad task cannot take the
// worker down with it.
func (p *Pool) run(task func()) {
	defer func() {
		if rec := recover(); rec != nil {
			p.log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("task panic recovered")
		}
	}()
	task()
}
