// File: queue/bounded.go
// Package queue implements the blocking bounded queue baseline.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package queue

import (
	"sync"

	eapache "github.com/eapache/queue"

	"github.com/momentics/hioload-disruptor/api"
)

// Ensure compile-time interface compliance.
var _ api.TransferQueue[int] = (*BoundedQueue[int])(nil)
var _ api.GracefulShutdown = (*BoundedQueue[int])(nil)

// BoundedQueue is a classic mutex/condvar bounded FIFO. Every operation
// takes the lock; that is the point of the baseline.
type BoundedQueue[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	items    *eapache.Queue
	capacity int
	closed   bool

	puts  uint64
	takes uint64
}

// NewBounded creates a queue holding at most capacity items.
func NewBounded[T any](capacity int) *BoundedQueue[T] {
	if capacity < 1 {
		capacity = 1
	}
	q := &BoundedQueue[T]{
		items:    eapache.New(),
		capacity: capacity,
	}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Put appends an item, blocking while the queue is full.
// Returns api.ErrQueueClosed after Close.
func (q *BoundedQueue[T]) Put(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.items.Length() >= q.capacity && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return api.ErrQueueClosed
	}
	q.items.Add(item)
	q.puts++
	q.notEmpty.Signal()
	return nil
}

// Take removes the oldest item, blocking while the queue is empty.
// Returns api.ErrQueueClosed once the queue is closed and drained.
func (q *BoundedQueue[T]) Take() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.items.Length() == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	var zero T
	if q.items.Length() == 0 {
		return zero, api.ErrQueueClosed
	}
	item := q.items.Remove().(T)
	q.takes++
	q.notFull.Signal()
	return item, nil
}

// TryPut appends without blocking; api.ErrQueueFull when full.
func (q *BoundedQueue[T]) TryPut(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return api.ErrQueueClosed
	}
	if q.items.Length() >= q.capacity {
		return api.ErrQueueFull
	}
	q.items.Add(item)
	q.puts++
	q.notEmpty.Signal()
	return nil
}

// TryTake removes without blocking; api.ErrQueueEmpty when empty.
func (q *BoundedQueue[T]) TryTake() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if q.items.Length() == 0 {
		if q.closed {
			return zero, api.ErrQueueClosed
		}
		return zero, api.ErrQueueEmpty
	}
	item := q.items.Remove().(T)
	q.takes++
	q.notFull.Signal()
	return item, nil
}

// DrainBatch blocks for at least one item, then removes up to max items in
// one critical section.
func (q *BoundedQueue[T]) DrainBatch(max int) (api.Batch[T], error) {
	if max < 1 {
		max = 1
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.items.Length() == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if q.items.Length() == 0 {
		return nil, api.ErrQueueClosed
	}
	n := q.items.Length()
	if n > max {
		n = max
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, q.items.Remove().(T))
	}
	q.takes += uint64(n)
	q.notFull.Broadcast()
	return sliceBatch[T](out), nil
}

// Enqueue implements api.TransferQueue.
func (q *BoundedQueue[T]) Enqueue(item T) bool {
	return q.TryPut(item) == nil
}

// Dequeue implements api.TransferQueue.
func (q *BoundedQueue[T]) Dequeue() (T, bool) {
	item, err := q.TryTake()
	return item, err == nil
}

// Len returns the current item count.
func (q *BoundedQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}

// Cap returns the fixed capacity.
func (q *BoundedQueue[T]) Cap() int {
	return q.capacity
}

// Stats returns put/take counters.
func (q *BoundedQueue[T]) Stats() map[string]any {
	q.mu.Lock()
	defer q.mu.Unlock()
	return map[string]any{
		"puts":   q.puts,
		"takes":  q.takes,
		"length": q.items.Length(),
		"closed": q.closed,
	}
}

// Close unblocks all waiters. Pending items remain takeable; further puts
// fail with api.ErrQueueClosed. Implements api.GracefulShutdown.
func (q *BoundedQueue[T]) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	q.notFull.Broadcast()
	q.notEmpty.Broadcast()
	return nil
}

// Shutdown implements api.GracefulShutdown.
func (q *BoundedQueue[T]) Shutdown() error {
	return q.Close()
}
