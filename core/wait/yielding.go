// File: core/wait/yielding.go
// Package wait implements the yielding strategy.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package wait

import (
	"runtime"

	"github.com/momentics/hioload-disruptor/api"
)

var _ api.WaitStrategy = (*Yielding)(nil)

// spinTries is the number of tight-loop iterations before each poll starts
// yielding to the scheduler.
const spinTries = 100

// Yielding spins a bounded number of iterations, then cooperatively yields
// the processor between polls. The default strategy: near busy-spin latency
// under load without starving sibling goroutines when idle.
type Yielding struct{}

// NewYielding returns the yielding strategy.
func NewYielding() *Yielding {
	return &Yielding{}
}

// WaitFor polls dependent, degrading from spinning to runtime.Gosched.
func (*Yielding) WaitFor(sequence int64, _ api.Cursor, dependent api.Cursor, alert api.Alert) (int64, error) {
	counter := spinTries
	for {
		if err := alert.CheckAlert(); err != nil {
			return api.InitialSequenceValue, err
		}
		if available := dependent.Load(); available >= sequence {
			return available, nil
		}
		if counter > 0 {
			counter--
			continue
		}
		runtime.Gosched()
	}
}

// SignalAllWhenBlocking is a no-op; nothing ever parks.
func (*Yielding) SignalAllWhenBlocking() {}
