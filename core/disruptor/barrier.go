// File: core/disruptor/barrier.go
// Package disruptor implements the consumer sequence barrier.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package disruptor

import (
	"sync/atomic"

	"github.com/momentics/hioload-disruptor/api"
	"github.com/momentics/hioload-disruptor/core/sequence"
)

// Ensure compile-time interface compliance.
var _ api.Alert = (*Barrier)(nil)

// Barrier computes the highest sequence a consumer may safely process:
// min(cursor, upstream sequences), post-filtered to the highest contiguous
// published prefix. It also carries the cooperative alert flag that unblocks
// a waiting consumer on shutdown.
type Barrier struct {
	seqr      Sequencer
	ws        api.WaitStrategy
	cursor    *sequence.Sequence
	dependent api.Cursor
	alerted   atomic.Bool
}

func newBarrier(seqr Sequencer, deps ...*sequence.Sequence) *Barrier {
	cursor := seqr.Cursor()
	return &Barrier{
		seqr:      seqr,
		ws:        seqr.WaitStrategy(),
		cursor:    cursor,
		dependent: sequence.NewComposite(cursor, deps...),
	}
}

// WaitFor blocks via the wait strategy until the desired sequence is
// available, then returns the actual highest available sequence, which may
// exceed desired and enables batch draining. Returns api.ErrAlerted once
// Alert has been raised.
func (b *Barrier) WaitFor(desired int64) (int64, error) {
	if err := b.CheckAlert(); err != nil {
		return api.InitialSequenceValue, err
	}

	available, err := b.ws.WaitFor(desired, b.cursor, b.dependent, b)
	if err != nil {
		return api.InitialSequenceValue, err
	}
	if available < desired {
		return available, nil
	}
	return b.seqr.HighestPublished(desired, available), nil
}

// CheckAlert implements api.Alert.
func (b *Barrier) CheckAlert() error {
	if b.alerted.Load() {
		return api.ErrAlerted
	}
	return nil
}

// Alert raises the shutdown signal and wakes any parked waiter.
func (b *Barrier) Alert() {
	b.alerted.Store(true)
	b.ws.SignalAllWhenBlocking()
}

// ClearAlert re-arms the barrier.
func (b *Barrier) ClearAlert() {
	b.alerted.Store(false)
}
