// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and constants.

package api

// InitialSequenceValue is the value of every sequence before anything has
// been claimed or consumed. The first claimed sequence is therefore 0.
const InitialSequenceValue int64 = -1

// ProducerMode selects the claim protocol of a ring buffer.
type ProducerMode int

const (
	// SingleProducer requires exactly one publishing goroutine. The claim
	// path runs without CAS; violating the single-writer discipline is a
	// caller contract breach, not a runtime-detected condition.
	SingleProducer ProducerMode = iota
	// MultiProducer serializes claims of any number of goroutines through
	// an atomic compare-and-swap loop on the shared cursor.
	MultiProducer
)

func (m ProducerMode) String() string {
	switch m {
	case SingleProducer:
		return "single"
	case MultiProducer:
		return "multi"
	default:
		return "unknown"
	}
}

// ProcessorState enumerates the lifecycle of an event processor.
type ProcessorState int32

const (
	ProcessorIdle ProcessorState = iota
	ProcessorRunning
	ProcessorHalted
)

func (s ProcessorState) String() string {
	switch s {
	case ProcessorIdle:
		return "idle"
	case ProcessorRunning:
		return "running"
	case ProcessorHalted:
		return "halted"
	default:
		return "unknown"
	}
}
