// File: core/sequence/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package sequence provides the cache-line padded atomic counters that carry
// all synchronization in hioload-disruptor: the publisher cursor, per-consumer
// progress sequences, copy-on-write gating groups, and composite minimum
// views. Sequence numbers replace locks: release stores on publish paired
// with acquire loads on consume make slot contents visible without a mutex.
package sequence
