// File: core/wait/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package wait implements the api.WaitStrategy variants: BusySpin (lowest
// latency, one core burned), Yielding (bounded spin then scheduler yield),
// and Blocking (mutex plus condition variable, lowest idle CPU). Strategy
// choice is a construction-time latency/CPU trade-off and never changes
// correctness.
package wait
