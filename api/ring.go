// Package api
// Author: momentics@gmail.com
//
// Bounded transfer queue contract for cross-goroutine producer/consumer.

package api

// TransferQueue is a bounded FIFO contract shared by the lock-based
// baseline queue. Both operations are non-blocking.
type TransferQueue[T any] interface {
	// Enqueue adds an item, returns false if full.
	Enqueue(item T) bool
	// Dequeue removes oldest item, returns false if empty.
	Dequeue() (T, bool)
	// Len returns current number of items.
	Len() int
	// Cap returns buffer capacity.
	Cap() int
}
