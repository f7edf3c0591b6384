// File: core/wait/blocking.go
// Package wait implements the blocking strategy.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package wait

import (
	"runtime"
	"sync"

	"github.com/momentics/hioload-disruptor/api"
)

var _ api.WaitStrategy = (*Blocking)(nil)

// Blocking parks consumers on a condition variable until the publisher
// cursor advances. Publishers must call SignalAllWhenBlocking after every
// publish; barrier alerts broadcast through the same path. Highest latency,
// lowest idle CPU of the three strategies.
type Blocking struct {
	mu   sync.Mutex
	cond *sync.Cond
}

// NewBlocking returns a blocking strategy with its own condition variable.
// A strategy instance must not be shared between independent rings: a
// publish signal on one ring would spuriously wake consumers of the other.
func NewBlocking() *Blocking {
	b := &Blocking{}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// WaitFor parks until the cursor reaches sequence, then spins lightly on
// dependent. The second wait cannot park: upstream consumers advance their
// sequences with plain release stores and signal nothing.
func (b *Blocking) WaitFor(sequence int64, cursor api.Cursor, dependent api.Cursor, alert api.Alert) (int64, error) {
	if cursor.Load() < sequence {
		b.mu.Lock()
		for cursor.Load() < sequence {
			if err := alert.CheckAlert(); err != nil {
				b.mu.Unlock()
				return api.InitialSequenceValue, err
			}
			b.cond.Wait()
		}
		b.mu.Unlock()
	}

	for {
		if err := alert.CheckAlert(); err != nil {
			return api.InitialSequenceValue, err
		}
		if available := dependent.Load(); available >= sequence {
			return available, nil
		}
		runtime.Gosched()
	}
}

// SignalAllWhenBlocking wakes every parked consumer.
func (b *Blocking) SignalAllWhenBlocking() {
	b.mu.Lock()
	b.cond.Broadcast()
	b.mu.Unlock()
}
