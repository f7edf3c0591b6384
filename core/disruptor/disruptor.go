// File: core/disruptor/disruptor.go
// Package disruptor implements the top-level facade.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package disruptor

import (
	"log"
	"runtime"
	"strconv"
	"sync/atomic"

	"github.com/momentics/hioload-disruptor/affinity"
	"github.com/momentics/hioload-disruptor/api"
	"github.com/momentics/hioload-disruptor/control"
	"github.com/momentics/hioload-disruptor/core/sequence"
	"github.com/momentics/hioload-disruptor/core/wait"
)

func defaultWaitStrategy() api.WaitStrategy {
	return wait.NewYielding()
}

// Ensure compile-time interface compliance.
var _ api.GracefulShutdown = (*Disruptor[struct{}])(nil)

// Disruptor wires a ring buffer, its barriers, and batch event processors
// into one unit with a single start/shutdown lifecycle. Handlers register
// before Start; publishing is allowed from construction but events are only
// consumed once Start has launched the processors.
type Disruptor[T any] struct {
	capacity int64
	mode     api.ProducerMode
	ws       api.WaitStrategy
	policy   api.ErrorHandler[T]
	pinCPUs  []int
	metrics  *control.MetricsRegistry

	ring     *RingBuffer[T]
	procs    []*BatchEventProcessor[T]
	started  atomic.Bool
	shutdown atomic.Bool
}

// New builds a disruptor around factory-allocated events. Defaults:
// capacity 1024, single producer, yielding wait strategy.
func New[T any](factory func() T, opts ...Option[T]) (*Disruptor[T], error) {
	d := &Disruptor[T]{
		capacity: 1024,
		mode:     api.SingleProducer,
		ws:       defaultWaitStrategy(),
	}
	for _, opt := range opts {
		opt(d)
	}

	ring, err := NewRingBuffer(d.capacity, factory, d.mode, d.ws)
	if err != nil {
		return nil, err
	}
	d.ring = ring
	return d, nil
}

// ConsumerGroup tracks a pipeline stage so further stages can chain after
// it with Then.
type ConsumerGroup[T any] struct {
	d     *Disruptor[T]
	procs []*BatchEventProcessor[T]
}

// HandleEventsWith registers one parallel processor per handler, each gating
// the producers directly on the ring cursor.
func (d *Disruptor[T]) HandleEventsWith(handlers ...api.EventHandler[T]) *ConsumerGroup[T] {
	return d.stage(nil, handlers...)
}

// Then registers downstream processors that must not overtake this stage.
// The upstream sequences leave the producer gate: only the slowest leaf
// stage bounds ring capacity.
func (g *ConsumerGroup[T]) Then(handlers ...api.EventHandler[T]) *ConsumerGroup[T] {
	upstream := make([]*sequence.Sequence, len(g.procs))
	for i, p := range g.procs {
		upstream[i] = p.Sequence()
	}
	next := g.d.stage(upstream, handlers...)
	for _, s := range upstream {
		g.d.ring.RemoveGating(s)
	}
	return next
}

// Processors returns the processors of this stage, for joining or stats.
func (g *ConsumerGroup[T]) Processors() []*BatchEventProcessor[T] {
	return g.procs
}

func (d *Disruptor[T]) stage(deps []*sequence.Sequence, handlers ...api.EventHandler[T]) *ConsumerGroup[T] {
	group := &ConsumerGroup[T]{d: d}
	for _, h := range handlers {
		barrier := d.ring.NewBarrier(deps...)
		p := NewBatchEventProcessor(d.ring, barrier, h, d.policy)
		d.ring.AddGating(p.Sequence())
		d.procs = append(d.procs, p)
		group.procs = append(group.procs, p)
	}
	return group
}

// Start launches every registered processor on its own goroutine, pinning
// threads when configured. Fails with api.ErrNoHandlers when no handler was
// registered and api.ErrStarted on double start.
func (d *Disruptor[T]) Start() error {
	if len(d.procs) == 0 {
		return api.ErrNoHandlers
	}
	if !d.started.CompareAndSwap(false, true) {
		return api.ErrStarted
	}

	for i, p := range d.procs {
		cpu := -1
		if i < len(d.pinCPUs) {
			cpu = d.pinCPUs[i]
		}
		go func(p *BatchEventProcessor[T], cpu int) {
			if cpu >= 0 {
				if unpin, err := affinity.PinThread(cpu); err != nil {
					log.Printf("disruptor: pin cpu %d: %v", cpu, err)
				} else {
					defer unpin()
				}
			}
			_ = p.Run()
		}(p, cpu)
	}
	return nil
}

// PublishEvent claims the next sequence, lets fill mutate the slot in
// place, and publishes it. Blocks while the ring is full.
func (d *Disruptor[T]) PublishEvent(fill func(ev *T, seq int64)) int64 {
	seq := d.ring.Next()
	fill(d.ring.Get(seq), seq)
	d.ring.Publish(seq)
	return seq
}

// PublishEvents claims a contiguous batch of n sequences, fills each slot,
// and publishes the whole range at once.
func (d *Disruptor[T]) PublishEvents(n int, fill func(ev *T, seq int64)) (int64, int64) {
	hi := d.ring.NextN(n)
	lo := hi - int64(n) + 1
	for seq := lo; seq <= hi; seq++ {
		fill(d.ring.Get(seq), seq)
	}
	d.ring.PublishRange(lo, hi)
	return lo, hi
}

// TryPublishEvent publishes without blocking; api.ErrInsufficientCapacity
// when the ring is full.
func (d *Disruptor[T]) TryPublishEvent(fill func(ev *T, seq int64)) (int64, error) {
	seq, err := d.ring.TryNext()
	if err != nil {
		return api.InitialSequenceValue, err
	}
	fill(d.ring.Get(seq), seq)
	d.ring.Publish(seq)
	return seq, nil
}

// Ring exposes the underlying ring buffer for manual claim/publish flows.
func (d *Disruptor[T]) Ring() *RingBuffer[T] {
	return d.ring
}

// Shutdown drains published events, halts all processors cooperatively, and
// joins them. Publishers must have stopped claiming before Shutdown; a
// claimed-but-unpublished sequence is a caller contract breach and would
// stall the drain. Returns the first processor error, if any.
func (d *Disruptor[T]) Shutdown() error {
	if !d.shutdown.CompareAndSwap(false, true) {
		return nil
	}

	if d.started.Load() {
		d.awaitDrain()
	}
	for _, p := range d.procs {
		p.Halt()
	}
	for _, p := range d.procs {
		<-p.Done()
	}
	d.publishStats()

	var first error
	for _, p := range d.procs {
		if err := p.Err(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// awaitDrain spins until every running processor has consumed up to the
// cursor. Processors that halted on error are not waited for.
func (d *Disruptor[T]) awaitDrain() {
	for {
		cursor := d.ring.Cursor()
		drained := true
		for _, p := range d.procs {
			if p.State() == api.ProcessorHalted {
				continue
			}
			if p.Sequence().Load() < cursor {
				drained = false
				break
			}
		}
		if drained {
			return
		}
		runtime.Gosched()
	}
}

// Stats returns a snapshot of the ring and all processor counters.
func (d *Disruptor[T]) Stats() map[string]any {
	stats := map[string]any{
		"capacity":   d.ring.Capacity(),
		"cursor":     d.ring.Cursor(),
		"remaining":  d.ring.Remaining(),
		"mode":       d.mode.String(),
		"processors": len(d.procs),
	}
	for i, p := range d.procs {
		for k, v := range p.Stats() {
			stats[procKey(i, k)] = v
		}
	}
	return stats
}

// SnapshotStats publishes Stats into the configured metrics registry.
func (d *Disruptor[T]) SnapshotStats() {
	d.publishStats()
}

func (d *Disruptor[T]) publishStats() {
	if d.metrics == nil {
		return
	}
	d.metrics.SetAll("disruptor", d.Stats())
}

func procKey(i int, k string) string {
	return "processor." + strconv.Itoa(i) + "." + k
}
