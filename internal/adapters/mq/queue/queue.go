// Package queue defines the contract for enqueuing and consuming sessions
// waiting for analysis. The in-memory implementation is a bounded channel.
package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 1024
)

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a session without blocking. It fails with ErrQueueFull or
	// ErrQueueClosed.
	Enqueue(ctx context.Context, s model.Session) error

	// Dequeue returns the channel sessions arrive on. It is closed, after the
	// remaining sessions are drained, once the queue is closed.
	Dequeue(ctx context.Context) <-chan model.Session

	// Len returns the current number of queued sessions.
	Len(ctx context.Context) int

	// Close stops accepting sessions.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	sessions chan model.Session
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.sessions = make(chan model.Session, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)

	return q
}

// Enqueue adds a session to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, s model.Session) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return ErrQueueClosed
	}

	select {
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		return fmt.Errorf("enqueue session %s: %w", s.ID, ctx.Err())
	default:
	}

	select {
	case q.sessions <- s:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.sessions))
		return nil
	default:
		metrics.RecordQueueEnqueueError()
		return ErrQueueFull
	}
}

// Dequeue returns the receive side of the queue. Every caller shares the same
// channel, so each session is delivered to exactly one consumer.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan model.Session {
	return q.sessions
}

// Len returns the current number of queued sessions.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.sessions)
	metrics.UpdateQueueSize(size)
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	// consumers drain what is buffered, then see the channel closed
	close(q.sessions)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
