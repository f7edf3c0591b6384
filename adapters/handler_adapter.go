// File: adapters/handler_adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package adapters provides glue code between the core API contracts
// and plain functions or runtime components.

package adapters

import "github.com/momentics/hioload-disruptor/api"

// EventHandlerFunc adapts a function to api.EventHandler.
type EventHandlerFunc[T any] func(event *T, sequence int64, endOfBatch bool) error

// OnEvent implements api.EventHandler.
func (f EventHandlerFunc[T]) OnEvent(event *T, sequence int64, endOfBatch bool) error {
	return f(event, sequence, endOfBatch)
}

// ErrorHandlerFunc adapts a function to api.ErrorHandler.
type ErrorHandlerFunc[T any] func(event *T, sequence int64, err error) api.ErrorAction

// OnEventError implements api.ErrorHandler.
func (f ErrorHandlerFunc[T]) OnEventError(event *T, sequence int64, err error) api.ErrorAction {
	return f(event, sequence, err)
}

// FixedPolicy returns an api.ErrorHandler that always answers with action.
func FixedPolicy[T any](action api.ErrorAction) api.ErrorHandler[T] {
	return ErrorHandlerFunc[T](func(*T, int64, error) api.ErrorAction {
		return action
	})
}
