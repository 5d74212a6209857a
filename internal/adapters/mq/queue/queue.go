// Package queue provides the bounded in-memory queue that feeds input rows
// to the transform workers.
package queue

import (
	"context"
	"sync"

	"github.com/okian/hiredw/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultCapacity = 1024
)

// Job is one queued item together with its position in the input.
type Job[T any] struct {
	Index int
	Item  T
}

// InMemoryQueue is a bounded FIFO of jobs backed by a buffered channel.
type InMemoryQueue[T any] struct {
	jobs   chan Job[T]
	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a queue with configuration options.
func NewInMemoryQueue[T any](opts ...Option) *InMemoryQueue[T] {
	cfg := config{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	metrics.UpdateQueueSize(0)
	return &InMemoryQueue[T]{jobs: make(chan Job[T], cfg.capacity)}
}

// Enqueue blocks until j is queued or ctx is done. It fails with ErrClosed
// after Close.
func (q *InMemoryQueue[T]) Enqueue(ctx context.Context, j Job[T]) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrClosed
	}
	select {
	case q.jobs <- j:
		metrics.UpdateQueueSize(len(q.jobs))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue returns the receive side. It is closed after Close once drained.
func (q *InMemoryQueue[T]) Dequeue() <-chan Job[T] {
	return q.jobs
}

// Len returns the number of queued jobs.
func (q *InMemoryQueue[T]) Len() int {
	size := len(q.jobs)
	metrics.UpdateQueueSize(size)
	return size
}

// Close stops accepting jobs. Queued jobs remain readable.
func (q *InMemoryQueue[T]) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}
