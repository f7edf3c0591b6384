// File: core/sequence/composite.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sequence

import "github.com/momentics/hioload-disruptor/api"

var _ api.Cursor = (*Composite)(nil)

// Composite presents the minimum of a cursor and a fixed set of dependent
// sequences as a single read-only cursor. Barriers hand it to wait
// strategies so staged consumers never overtake their upstream stage.
type Composite struct {
	cursor *Sequence
	deps   []*Sequence
}

// NewComposite builds a composite view. With no dependents the view is the
// cursor itself.
func NewComposite(cursor *Sequence, deps ...*Sequence) api.Cursor {
	if len(deps) == 0 {
		return cursor
	}
	owned := make([]*Sequence, len(deps))
	copy(owned, deps)
	return &Composite{cursor: cursor, deps: owned}
}

// Load returns min(cursor, dependents).
func (c *Composite) Load() int64 {
	min := c.cursor.Load()
	for _, d := range c.deps {
		if v := d.Load(); v < min {
			min = v
		}
	}
	return min
}
