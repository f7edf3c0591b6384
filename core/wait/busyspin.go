// File: core/wait/busyspin.go
// Package wait implements the busy-spin strategy.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package wait

import "github.com/momentics/hioload-disruptor/api"

// Ensure compile-time interface compliance.
var _ api.WaitStrategy = (*BusySpin)(nil)

// BusySpin polls the dependent cursor in a tight loop. It owns the core it
// runs on; use only when consumer count is below physical core count.
type BusySpin struct{}

// NewBusySpin returns the busy-spin strategy.
func NewBusySpin() *BusySpin {
	return &BusySpin{}
}

// WaitFor spins until dependent reaches sequence or the barrier alerts.
func (*BusySpin) WaitFor(sequence int64, _ api.Cursor, dependent api.Cursor, alert api.Alert) (int64, error) {
	for {
		if err := alert.CheckAlert(); err != nil {
			return api.InitialSequenceValue, err
		}
		if available := dependent.Load(); available >= sequence {
			return available, nil
		}
	}
}

// SignalAllWhenBlocking is a no-op; nothing ever parks.
func (*BusySpin) SignalAllWhenBlocking() {}
