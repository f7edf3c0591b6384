// File: api/handler.go
// Package api defines event and error handler contracts.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// EventHandler consumes events drained from a ring buffer. The event pointer
// is only valid for the duration of the call; the slot is reused once the
// processor sequence advances past it.
//
// endOfBatch marks the last event of the currently available run, letting
// handlers flush amortized work once per wake-up.
type EventHandler[T any] interface {
	OnEvent(event *T, sequence int64, endOfBatch bool) error
}

// ErrorAction tells a processor how to proceed after OnEvent returned an
// error. The zero value is Stop: errors are never dropped by default.
type ErrorAction int

const (
	// Stop halts the processor; the error surfaces to whoever joins it.
	Stop ErrorAction = iota
	// Resume skips the failing event and continues with the batch.
	Resume
	// Retry re-invokes the handler with the same event.
	Retry
)

func (a ErrorAction) String() string {
	switch a {
	case Stop:
		return "stop"
	case Resume:
		return "resume"
	case Retry:
		return "retry"
	default:
		return "unknown"
	}
}

// ErrorHandler decides the ErrorAction for a failed event. Policies
// returning Retry are re-consulted after every failed attempt, so a policy
// that always retries a permanently failing event will spin forever.
type ErrorHandler[T any] interface {
	OnEventError(event *T, sequence int64, err error) ErrorAction
}
