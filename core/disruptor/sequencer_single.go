// File: core/disruptor/sequencer_single.go
// Package disruptor implements the single-producer claim fast path.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Exactly one goroutine may call Next/TryNext/Publish. This is a documented
// precondition, not a runtime-enforced one: the claim path keeps its state in
// plain fields and relies on the cursor's release store alone for
// visibility. Callers needing multiple logical producers over this sequencer
// must serialize them externally or use the multi-producer variant.

package disruptor

import (
	"runtime"

	"github.com/momentics/hioload-disruptor/api"
	"github.com/momentics/hioload-disruptor/core/sequence"
)

var _ Sequencer = (*singleProducerSequencer)(nil)

type singleProducerSequencer struct {
	cursor   *sequence.Sequence
	gating   *sequence.Group
	ws       api.WaitStrategy
	capacity int64

	// Single-writer claim state; no atomics needed.
	nextValue  int64
	cachedGate int64
}

func newSingleProducerSequencer(capacity int64, ws api.WaitStrategy) *singleProducerSequencer {
	return &singleProducerSequencer{
		cursor:     sequence.New(),
		gating:     sequence.NewGroup(),
		ws:         ws,
		capacity:   capacity,
		nextValue:  api.InitialSequenceValue,
		cachedGate: api.InitialSequenceValue,
	}
}

func (s *singleProducerSequencer) Next(n int64) int64 {
	next := s.nextValue + n
	wrapPoint := next - s.capacity

	// The cached gate avoids rescanning consumer sequences on every claim;
	// rescan only when the wrap point passed the last observed minimum.
	if wrapPoint > s.cachedGate || s.cachedGate > s.nextValue {
		var spins uint32
		for {
			gate := s.gating.Minimum(s.nextValue)
			if wrapPoint <= gate {
				s.cachedGate = gate
				break
			}
			spins++
			if spins%goschedEvery == 0 {
				runtime.Gosched()
			}
		}
	}

	s.nextValue = next
	return next
}

func (s *singleProducerSequencer) TryNext(n int64) (int64, error) {
	next := s.nextValue + n
	wrapPoint := next - s.capacity
	if wrapPoint > s.cachedGate {
		gate := s.gating.Minimum(s.nextValue)
		if wrapPoint > gate {
			return api.InitialSequenceValue, api.ErrInsufficientCapacity
		}
		s.cachedGate = gate
	}
	s.nextValue = next
	return next, nil
}

func (s *singleProducerSequencer) Publish(_, hi int64) {
	s.cursor.Store(hi)
	s.ws.SignalAllWhenBlocking()
}

// HighestPublished is the range upper bound: with a single producer the
// cursor itself is always contiguous.
func (s *singleProducerSequencer) HighestPublished(_, hi int64) int64 {
	return hi
}

func (s *singleProducerSequencer) Cursor() *sequence.Sequence { return s.cursor }

func (s *singleProducerSequencer) AddGating(seqs ...*sequence.Sequence) {
	s.gating.Add(seqs...)
}

func (s *singleProducerSequencer) RemoveGating(seq *sequence.Sequence) bool {
	return s.gating.Remove(seq)
}

func (s *singleProducerSequencer) Capacity() int64 { return s.capacity }

func (s *singleProducerSequencer) Remaining() int64 {
	produced := s.cursor.Load()
	consumed := s.gating.Minimum(produced)
	return s.capacity - (produced - consumed)
}

func (s *singleProducerSequencer) WaitStrategy() api.WaitStrategy { return s.ws }
