// File: core/disruptor/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package disruptor implements the lock-free event-passing core: a
// preallocated power-of-two ring buffer, single- and multi-producer claim
// sequencers, sequence barriers with cooperative alerting, and batch event
// processors. Producers claim a sequence, write the slot in place, and
// publish with a release store; consumers drain every contiguous published
// sequence exactly once, in order, gated only by atomic counters.
//
// The hot path allocates nothing and takes no locks. The only blocking
// primitive in the system lives inside the optional Blocking wait strategy.
package disruptor
