// File: core/disruptor/sequencer.go
// Package disruptor defines the claim/publish coordination contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package disruptor

import (
	"github.com/momentics/hioload-disruptor/api"
	"github.com/momentics/hioload-disruptor/core/sequence"
)

// goschedEvery throttles runtime.Gosched calls in claim spin loops.
const goschedEvery = 64

// Sequencer coordinates sequence claims between producers and the gating
// consumer sequences. Implementations differ only in the claim protocol;
// gating and publication semantics are identical.
type Sequencer interface {
	// Next claims the next n sequences (n >= 1) and returns the highest,
	// spinning while the ring lacks capacity.
	Next(n int64) int64

	// TryNext claims without waiting; returns api.ErrInsufficientCapacity
	// when the ring is full.
	TryNext(n int64) (int64, error)

	// Publish makes the inclusive range [lo, hi] visible to consumers.
	// All slot writes for the range must have completed.
	Publish(lo, hi int64)

	// HighestPublished returns the highest sequence in [lo, hi] such that
	// every sequence up to it has been published. Consumers only ever see
	// a contiguous prefix.
	HighestPublished(lo, hi int64) int64

	// Cursor returns the shared publisher cursor.
	Cursor() *sequence.Sequence

	// AddGating registers consumer sequences producers must not overtake.
	AddGating(seqs ...*sequence.Sequence)

	// RemoveGating deregisters a gating sequence.
	RemoveGating(seq *sequence.Sequence) bool

	// Capacity returns the fixed ring capacity.
	Capacity() int64

	// Remaining returns the number of free slots at this instant.
	Remaining() int64

	// WaitStrategy returns the strategy publishes signal through.
	WaitStrategy() api.WaitStrategy
}
