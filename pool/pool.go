package pool

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

var ErrClosed = errors.New("limiter is shutting down")

// Limiter bounds how many CPU-heavy jobs run at once. Callers block until a
// slot frees up or their context ends.
type Limiter struct {
	sem chan struct{}

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewLimiter(maxWorkers int) *Limiter {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	return &Limiter{
		sem: make(chan struct{}, maxWorkers),
	}
}

// Do runs fn once a slot is free. After Wait has been called it returns
// ErrClosed without running fn.
func (l *Limiter) Do(ctx context.Context, fn func() error) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.wg.Add(1)
	l.mu.Unlock()
	defer l.wg.Done()

	select {
	case l.sem <- struct{}{}:
		defer func() { <-l.sem }()
		return fn()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Limiter) Capacity() int {
	return cap(l.sem)
}

// Wait stops new jobs and blocks until every in-flight Do has returned.
func (l *Limiter) Wait() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	l.wg.Wait()
}
