// File: core/disruptor/ring.go
// Package disruptor implements the preallocated slot ring.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package disruptor

import (
	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-disruptor/api"
	"github.com/momentics/hioload-disruptor/core/sequence"
)

// slot pads each event onto its own cache line so adjacent slots written by
// different producers never false-share.
type slot[T any] struct {
	_     cpu.CacheLinePad
	event T
}

// RingBuffer owns the slot storage and maps sequences to slots via bitmask.
// Slots are allocated once at construction and reused in place; the ring
// never allocates on the publish or consume path.
type RingBuffer[T any] struct {
	slots []slot[T]
	mask  int64
	seqr  Sequencer
}

// NewRingBuffer preallocates capacity slots via factory. capacity must be a
// positive power of two and factory non-nil; violations fail construction
// with a structured configuration error.
func NewRingBuffer[T any](capacity int64, factory func() T, mode api.ProducerMode, ws api.WaitStrategy) (*RingBuffer[T], error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, api.ErrInvalidCapacity,
			"ring buffer capacity must be a positive power of two").
			WithContext("capacity", capacity)
	}
	if factory == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, api.ErrNilFactory,
			"ring buffer requires an event factory")
	}

	r := &RingBuffer[T]{
		slots: make([]slot[T], capacity),
		mask:  capacity - 1,
	}
	for i := range r.slots {
		r.slots[i].event = factory()
	}

	switch mode {
	case api.MultiProducer:
		r.seqr = newMultiProducerSequencer(capacity, ws)
	default:
		r.seqr = newSingleProducerSequencer(capacity, ws)
	}
	return r, nil
}

// Get returns the slot for a sequence. Pure index mapping: masking always
// yields a valid slot, so the caller is responsible for staying inside its
// granted ownership window.
func (r *RingBuffer[T]) Get(seq int64) *T {
	return &r.slots[seq&r.mask].event
}

// Next claims the next sequence, waiting while the ring is full.
func (r *RingBuffer[T]) Next() int64 {
	return r.seqr.Next(1)
}

// NextN claims a contiguous batch of n sequences and returns the highest.
func (r *RingBuffer[T]) NextN(n int) int64 {
	return r.seqr.Next(int64(n))
}

// TryNext claims without waiting; api.ErrInsufficientCapacity when full.
func (r *RingBuffer[T]) TryNext() (int64, error) {
	return r.seqr.TryNext(1)
}

// Publish makes a claimed sequence visible to consumers.
func (r *RingBuffer[T]) Publish(seq int64) {
	r.seqr.Publish(seq, seq)
}

// PublishRange makes the inclusive range [lo, hi] visible to consumers.
func (r *RingBuffer[T]) PublishRange(lo, hi int64) {
	r.seqr.Publish(lo, hi)
}

// NewBarrier builds a consumer barrier gated on the publisher cursor and,
// for staged pipelines, the sequences of upstream processors.
func (r *RingBuffer[T]) NewBarrier(deps ...*sequence.Sequence) *Barrier {
	return newBarrier(r.seqr, deps...)
}

// AddGating registers consumer sequences with the producer gate.
func (r *RingBuffer[T]) AddGating(seqs ...*sequence.Sequence) {
	r.seqr.AddGating(seqs...)
}

// RemoveGating deregisters a consumer sequence from the producer gate.
func (r *RingBuffer[T]) RemoveGating(seq *sequence.Sequence) bool {
	return r.seqr.RemoveGating(seq)
}

// Cursor returns the current publisher cursor value.
func (r *RingBuffer[T]) Cursor() int64 {
	return r.seqr.Cursor().Load()
}

// Capacity returns the fixed slot count.
func (r *RingBuffer[T]) Capacity() int64 {
	return r.seqr.Capacity()
}

// Remaining returns the free slot count at this instant.
func (r *RingBuffer[T]) Remaining() int64 {
	return r.seqr.Remaining()
}
