// File: queue/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package queue provides the lock-based bounded blocking queue used as the
// performance baseline against the disruptor core. A mutex and two condition
// variables guard an eapache FIFO bounded by capacity: Put blocks while
// full, Take blocks while empty. It exists for comparison drivers only and
// takes no part in the lock-free hot path.
package queue
