// File: core/sequence/group.go
// Package sequence implements copy-on-write gating sequence groups.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Group registration is rare (construction/teardown) while Minimum runs on
// every producer claim, so the member slice is swapped atomically as a whole
// and readers never take the mutex.

package sequence

import (
	"sync"
	"sync/atomic"
)

// Group is a registered set of gating sequences. Add and Remove are
// mutex-serialized copy-on-write updates; Minimum is a lock-free scan of the
// current snapshot.
type Group struct {
	mu   sync.Mutex
	seqs atomic.Value // stores []*Sequence
}

// NewGroup creates an empty gating group.
func NewGroup() *Group {
	g := &Group{}
	g.seqs.Store([]*Sequence{})
	return g
}

// Add registers sequences with the group.
func (g *Group) Add(seqs ...*Sequence) {
	if len(seqs) == 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	old := g.seqs.Load().([]*Sequence)
	next := make([]*Sequence, len(old), len(old)+len(seqs))
	copy(next, old)
	next = append(next, seqs...)
	g.seqs.Store(next)
}

// Remove deregisters a sequence; reports whether it was present.
func (g *Group) Remove(seq *Sequence) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	old := g.seqs.Load().([]*Sequence)
	next := make([]*Sequence, 0, len(old))
	found := false
	for _, s := range old {
		if s == seq {
			found = true
			continue
		}
		next = append(next, s)
	}
	if found {
		g.seqs.Store(next)
	}
	return found
}

// Size returns the number of registered sequences.
func (g *Group) Size() int {
	return len(g.seqs.Load().([]*Sequence))
}

// Minimum returns the smallest registered sequence value, or fallback when
// the group is empty. Producers gate claims on this bound.
func (g *Group) Minimum(fallback int64) int64 {
	seqs := g.seqs.Load().([]*Sequence)
	min := fallback
	for _, s := range seqs {
		if v := s.Load(); v < min {
			min = v
		}
	}
	return min
}
