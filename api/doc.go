// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package api defines the public contracts of hioload-disruptor: wait
// strategies, event and error handler capabilities, batch views, runtime
// control, graceful shutdown, and the error taxonomy shared by the core
// packages. The package has no dependencies on the implementations; core
// packages implement these contracts and assert compliance at compile time.
package api
