// File: queue/batch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package queue

import "github.com/momentics/hioload-disruptor/api"

var _ api.Batch[int] = sliceBatch[int](nil)

// sliceBatch adapts a drained slice to the api.Batch view.
type sliceBatch[T any] []T

func (b sliceBatch[T]) Len() int    { return len(b) }
func (b sliceBatch[T]) Get(i int) T { return b[i] }
func (b sliceBatch[T]) Slice() []T  { return b }
