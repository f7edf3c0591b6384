// File: core/disruptor/sequencer_multi.go
// Package disruptor implements the multi-producer claim protocol.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Claims serialize through a CAS loop on the shared cursor, so the cursor
// tracks the highest claimed sequence, not the highest published one. A
// per-slot availability buffer records which ring cycle last published each
// slot; HighestPublished scans it forward so consumers always observe a
// contiguous prefix even when producers finish out of claim order.

package disruptor

import (
	"math/bits"
	"runtime"
	"sync/atomic"

	"github.com/momentics/hioload-disruptor/api"
	"github.com/momentics/hioload-disruptor/core/sequence"
)

var _ Sequencer = (*multiProducerSequencer)(nil)

type multiProducerSequencer struct {
	cursor   *sequence.Sequence
	gating   *sequence.Group
	ws       api.WaitStrategy
	capacity int64
	mask     int64
	shift    uint

	// available[seq&mask] holds int32(seq>>shift), the cycle number that
	// last published the slot. Initialized to -1 (nothing published).
	available []atomic.Int32
}

func newMultiProducerSequencer(capacity int64, ws api.WaitStrategy) *multiProducerSequencer {
	s := &multiProducerSequencer{
		cursor:    sequence.New(),
		gating:    sequence.NewGroup(),
		ws:        ws,
		capacity:  capacity,
		mask:      capacity - 1,
		shift:     uint(bits.TrailingZeros64(uint64(capacity))),
		available: make([]atomic.Int32, capacity),
	}
	for i := range s.available {
		s.available[i].Store(-1)
	}
	return s
}

func (s *multiProducerSequencer) Next(n int64) int64 {
	var spins uint32
	for {
		current := s.cursor.Load()
		next := current + n
		wrapPoint := next - s.capacity

		if wrapPoint > s.gating.Minimum(current) {
			// Ring full: wait for the trailing consumer.
			spins++
			if spins%goschedEvery == 0 {
				runtime.Gosched()
			}
			continue
		}
		if s.cursor.CompareAndSwap(current, next) {
			return next
		}
		// Lost the claim race to another producer.
		spins++
		if spins%goschedEvery == 0 {
			runtime.Gosched()
		}
	}
}

func (s *multiProducerSequencer) TryNext(n int64) (int64, error) {
	for {
		current := s.cursor.Load()
		next := current + n
		if next-s.capacity > s.gating.Minimum(current) {
			return api.InitialSequenceValue, api.ErrInsufficientCapacity
		}
		if s.cursor.CompareAndSwap(current, next) {
			return next, nil
		}
	}
}

func (s *multiProducerSequencer) Publish(lo, hi int64) {
	for seq := lo; seq <= hi; seq++ {
		s.setAvailable(seq)
	}
	s.ws.SignalAllWhenBlocking()
}

func (s *multiProducerSequencer) setAvailable(seq int64) {
	s.available[seq&s.mask].Store(int32(seq >> s.shift))
}

func (s *multiProducerSequencer) isAvailable(seq int64) bool {
	return s.available[seq&s.mask].Load() == int32(seq>>s.shift)
}

func (s *multiProducerSequencer) HighestPublished(lo, hi int64) int64 {
	for seq := lo; seq <= hi; seq++ {
		if !s.isAvailable(seq) {
			return seq - 1
		}
	}
	return hi
}

func (s *multiProducerSequencer) Cursor() *sequence.Sequence { return s.cursor }

func (s *multiProducerSequencer) AddGating(seqs ...*sequence.Sequence) {
	s.gating.Add(seqs...)
}

func (s *multiProducerSequencer) RemoveGating(seq *sequence.Sequence) bool {
	return s.gating.Remove(seq)
}

func (s *multiProducerSequencer) Capacity() int64 { return s.capacity }

func (s *multiProducerSequencer) Remaining() int64 {
	produced := s.cursor.Load()
	consumed := s.gating.Minimum(produced)
	return s.capacity - (produced - consumed)
}

func (s *multiProducerSequencer) WaitStrategy() api.WaitStrategy { return s.ws }
