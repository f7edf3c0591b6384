// File: control/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package control provides the runtime management surface: a thread-safe
// configuration store with reload listeners and a metrics registry the
// disruptor and queue components publish their counters into. Nothing in
// this package sits on a hot path; snapshots copy under a read lock.
package control
