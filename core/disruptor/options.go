// File: core/disruptor/options.go
// Package disruptor defines functional options for the Disruptor facade.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package disruptor

import (
	"github.com/momentics/hioload-disruptor/api"
	"github.com/momentics/hioload-disruptor/control"
)

// Option customizes disruptor initialization.
type Option[T any] func(*Disruptor[T])

// WithCapacity sets the ring capacity; must be a positive power of two.
func WithCapacity[T any](capacity int64) Option[T] {
	return func(d *Disruptor[T]) {
		d.capacity = capacity
	}
}

// WithProducerMode selects single- or multi-producer claim protocol.
func WithProducerMode[T any](mode api.ProducerMode) Option[T] {
	return func(d *Disruptor[T]) {
		d.mode = mode
	}
}

// WithWaitStrategy overrides the default yielding wait strategy.
func WithWaitStrategy[T any](ws api.WaitStrategy) Option[T] {
	return func(d *Disruptor[T]) {
		d.ws = ws
	}
}

// WithErrorHandler installs the error policy applied to every processor
// registered after this option. Default policy is Stop.
func WithErrorHandler[T any](policy api.ErrorHandler[T]) Option[T] {
	return func(d *Disruptor[T]) {
		d.policy = policy
	}
}

// WithPinnedCPUs pins processor goroutines to the given CPUs in
// registration order. Extra processors run unpinned.
func WithPinnedCPUs[T any](cpus ...int) Option[T] {
	return func(d *Disruptor[T]) {
		d.pinCPUs = append([]int(nil), cpus...)
	}
}

// WithMetrics publishes runtime counters into the registry on shutdown and
// on SnapshotStats calls.
func WithMetrics[T any](reg *control.MetricsRegistry) Option[T] {
	return func(d *Disruptor[T]) {
		d.metrics = reg
	}
}
