// File: core/disruptor/processor.go
// Package disruptor implements the batch event processor.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package disruptor

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-disruptor/api"
	"github.com/momentics/hioload-disruptor/core/sequence"
)

// defaultPolicy halts the processor on any handler error. Errors are never
// swallowed unless the caller installs a policy that says so.
type defaultPolicy[T any] struct{}

func (defaultPolicy[T]) OnEventError(*T, int64, error) api.ErrorAction {
	return api.Stop
}

// BatchEventProcessor drains contiguous available batches from a ring
// through a barrier and drives a single api.EventHandler. Lifecycle:
// Idle -> Running -> Halted; a halted processor cannot be restarted.
type BatchEventProcessor[T any] struct {
	ring    *RingBuffer[T]
	barrier *Barrier
	handler api.EventHandler[T]
	policy  api.ErrorHandler[T]
	seq     *sequence.Sequence

	state  atomic.Int32
	doneCh chan struct{}

	errMu sync.Mutex
	err   error

	events  atomic.Uint64
	batches atomic.Uint64
}

// NewBatchEventProcessor wires a processor to a ring and barrier. policy may
// be nil, in which case every handler error halts the processor (Stop).
func NewBatchEventProcessor[T any](ring *RingBuffer[T], barrier *Barrier, handler api.EventHandler[T], policy api.ErrorHandler[T]) *BatchEventProcessor[T] {
	if policy == nil {
		policy = defaultPolicy[T]{}
	}
	return &BatchEventProcessor[T]{
		ring:    ring,
		barrier: barrier,
		handler: handler,
		policy:  policy,
		seq:     sequence.New(),
		doneCh:  make(chan struct{}),
	}
}

// Sequence returns the processor's progress counter; producers gate on it.
func (p *BatchEventProcessor[T]) Sequence() *sequence.Sequence {
	return p.seq
}

// State reports the current lifecycle state.
func (p *BatchEventProcessor[T]) State() api.ProcessorState {
	return api.ProcessorState(p.state.Load())
}

// Done is closed when the processor has fully stopped.
func (p *BatchEventProcessor[T]) Done() <-chan struct{} {
	return p.doneCh
}

// Err returns the error that halted the processor, if any.
func (p *BatchEventProcessor[T]) Err() error {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	return p.err
}

// Stats returns processed event and batch counters.
func (p *BatchEventProcessor[T]) Stats() map[string]any {
	return map[string]any{
		"state":    p.State().String(),
		"sequence": p.seq.Load(),
		"events":   p.events.Load(),
		"batches":  p.batches.Load(),
	}
}

// Run executes the processing loop until halted. It blocks; callers start it
// on a dedicated goroutine. Returns nil on cooperative shutdown, the halting
// error when the error policy stopped processing.
func (p *BatchEventProcessor[T]) Run() error {
	if !p.state.CompareAndSwap(int32(api.ProcessorIdle), int32(api.ProcessorRunning)) {
		if p.State() == api.ProcessorHalted {
			return api.ErrProcessorHalted
		}
		return api.ErrProcessorRunning
	}
	defer func() {
		p.state.Store(int32(api.ProcessorHalted))
		close(p.doneCh)
	}()

	next := p.seq.Load() + 1
	for {
		available, err := p.barrier.WaitFor(next)
		if err != nil {
			if errors.Is(err, api.ErrAlerted) {
				return nil
			}
			p.setErr(err)
			return err
		}
		if available < next {
			continue
		}

		for ; next <= available; next++ {
			if err := p.processEvent(p.ring.Get(next), next, next == available); err != nil {
				// Progress up to the event before the failure stays
				// visible to producer gating.
				p.seq.Store(next - 1)
				p.setErr(err)
				return err
			}
			p.events.Add(1)
		}

		p.seq.Store(available)
		p.batches.Add(1)
	}
}

// processEvent invokes the handler, consulting the error policy after every
// failed attempt: Retry re-invokes, Resume skips, Stop propagates.
func (p *BatchEventProcessor[T]) processEvent(ev *T, seq int64, endOfBatch bool) error {
	for {
		err := p.handler.OnEvent(ev, seq, endOfBatch)
		if err == nil {
			return nil
		}
		switch p.policy.OnEventError(ev, seq, err) {
		case api.Retry:
			continue
		case api.Resume:
			return nil
		default:
			return api.NewError(api.ErrCodeProcessing, err,
				fmt.Sprintf("event handler failed at sequence %d", seq)).
				WithContext("sequence", seq)
		}
	}
}

// Halt requests cooperative shutdown. Safe to call from any goroutine and
// idempotent; a processor blocked in WaitFor unblocks via the barrier alert.
func (p *BatchEventProcessor[T]) Halt() {
	if p.state.CompareAndSwap(int32(api.ProcessorIdle), int32(api.ProcessorHalted)) {
		// Never started; nothing will close doneCh in Run.
		close(p.doneCh)
		return
	}
	p.barrier.Alert()
}

func (p *BatchEventProcessor[T]) setErr(err error) {
	p.errMu.Lock()
	if p.err == nil {
		p.err = err
	}
	p.errMu.Unlock()
}
