// File: core/sequence/sequence.go
// Package sequence implements padded atomic position counters.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Sequence is padded on both sides to keep each counter alone on its cache
// line; neighboring counters (cursor, consumer sequences) are the hottest
// words in the system and must never false-share.

package sequence

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-disruptor/api"
)

// Ensure compile-time interface compliance.
var _ api.Cursor = (*Sequence)(nil)

// Sequence is a monotonically increasing int64 counter with acquire/release
// memory ordering. It starts at api.InitialSequenceValue (-1) and never
// decreases.
type Sequence struct {
	_     cpu.CacheLinePad
	value atomic.Int64
	_     cpu.CacheLinePad
}

// New returns a sequence initialized to api.InitialSequenceValue.
func New() *Sequence {
	return NewAt(api.InitialSequenceValue)
}

// NewAt returns a sequence initialized to the given value.
func NewAt(initial int64) *Sequence {
	s := &Sequence{}
	s.value.Store(initial)
	return s
}

// Load returns the current value with acquire semantics.
func (s *Sequence) Load() int64 {
	return s.value.Load()
}

// Store sets the value with release semantics. Callers must only move the
// sequence forward.
func (s *Sequence) Store(v int64) {
	s.value.Store(v)
}

// CompareAndSwap atomically replaces old with new on match.
func (s *Sequence) CompareAndSwap(old, new int64) bool {
	return s.value.CompareAndSwap(old, new)
}

// AddAndGet atomically adds n and returns the resulting value.
func (s *Sequence) AddAndGet(n int64) int64 {
	return s.value.Add(n)
}

// IncrementAndGet atomically adds one and returns the resulting value.
func (s *Sequence) IncrementAndGet() int64 {
	return s.value.Add(1)
}
