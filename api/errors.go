// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-disruptor.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	// ErrAlerted is not a failure: it is the cooperative shutdown signal
	// propagated through barrier waits to unblock a halting processor.
	ErrAlerted = errors.New("barrier alerted")

	// ErrInvalidCapacity rejects ring capacities that are not powers of two.
	ErrInvalidCapacity = errors.New("capacity must be a positive power of two")

	// ErrNilFactory rejects construction without an event factory.
	ErrNilFactory = errors.New("event factory must not be nil")

	// ErrInsufficientCapacity is returned by non-blocking claims when the
	// ring has no free slot.
	ErrInsufficientCapacity = errors.New("insufficient ring capacity")

	// ErrProcessorRunning indicates a second Run on an active processor.
	ErrProcessorRunning = errors.New("processor already running")

	// ErrProcessorHalted indicates Run on a processor that already halted.
	ErrProcessorHalted = errors.New("processor halted")

	// ErrStarted indicates a second Start on an active disruptor.
	ErrStarted = errors.New("disruptor already started")

	// ErrNoHandlers indicates Start without any registered event handler.
	ErrNoHandlers = errors.New("no event handlers registered")

	// ErrQueueClosed indicates an operation on a closed bounded queue.
	ErrQueueClosed = errors.New("queue is closed")

	// ErrQueueFull is returned by non-blocking puts on a full queue.
	ErrQueueFull = errors.New("queue is full")

	// ErrQueueEmpty is returned by non-blocking takes on an empty queue.
	ErrQueueEmpty = errors.New("queue is empty")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeResourceExhausted
	ErrCodeAlerted
	ErrCodeProcessing
	ErrCodeInternal
)

// Error represents a structured error with code and context. Construction
// failures wrap one of the sentinels above so callers can test with
// errors.Is while still receiving the offending values.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the wrapped sentinel for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new structured error wrapping a sentinel cause.
func NewError(code ErrorCode, cause error, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     cause,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
