// File: api/wait.go
// Package api defines the consumer wait-strategy contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Cursor is the minimal read surface of a monotonic sequence counter.
// Loads carry acquire semantics: a reader observing a published value also
// observes every write made before the matching release store.
type Cursor interface {
	// Load returns the current sequence value.
	Load() int64
}

// Alert exposes the cooperative-shutdown check a wait strategy must honor
// on every iteration of its wait loop.
type Alert interface {
	// CheckAlert returns ErrAlerted once the owning processor has been
	// asked to halt, nil otherwise.
	CheckAlert() error
}

// WaitStrategy governs how a consumer waits for a sequence to become
// available. Implementations trade latency against idle CPU; they never
// affect correctness.
//
// cursor is the publisher cursor, dependent the effective upper bound the
// caller may consume (minimum of the cursor and any upstream consumers).
// WaitFor returns a value >= sequence, or ErrAlerted via alert.
type WaitStrategy interface {
	WaitFor(sequence int64, cursor Cursor, dependent Cursor, alert Alert) (int64, error)

	// SignalAllWhenBlocking wakes consumers parked on a blocking primitive.
	// Publishers call it after advancing the cursor; strategies without a
	// blocking primitive implement it as a no-op.
	SignalAllWhenBlocking()
}
