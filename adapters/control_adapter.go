// File: adapters/control_adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Adapter implementing the api.Control interface over the control package's
// config store and metrics registry, with dynamic debug probes.

package adapters

import (
	"sync"

	"github.com/momentics/hioload-disruptor/api"
	"github.com/momentics/hioload-disruptor/control"
)

// Ensure compile-time interface compliance.
var _ api.Control = (*ControlAdapter)(nil)

// ControlAdapter bridges api.Control to ConfigStore and MetricsRegistry.
type ControlAdapter struct {
	config  *control.ConfigStore
	metrics *control.MetricsRegistry

	mu     sync.RWMutex
	probes map[string]func() any
}

// NewControlAdapter creates an adapter around the given stores. Nil stores
// are replaced with fresh empty ones.
func NewControlAdapter(cfg *control.ConfigStore, metrics *control.MetricsRegistry) *ControlAdapter {
	if cfg == nil {
		cfg = control.NewConfigStore()
	}
	if metrics == nil {
		metrics = control.NewMetricsRegistry()
	}
	return &ControlAdapter{
		config:  cfg,
		metrics: metrics,
		probes:  make(map[string]func() any),
	}
}

// GetConfig returns a config snapshot.
func (c *ControlAdapter) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

// SetConfig merges new config values and triggers reload listeners.
func (c *ControlAdapter) SetConfig(cfg map[string]any) error {
	c.config.SetConfig(cfg)
	return nil
}

// Stats returns a metrics snapshot merged with live probe values.
func (c *ControlAdapter) Stats() map[string]any {
	out := c.metrics.GetSnapshot()
	c.mu.RLock()
	defer c.mu.RUnlock()
	for name, probe := range c.probes {
		out["probe."+name] = probe()
	}
	return out
}

// OnReload registers a config reload listener.
func (c *ControlAdapter) OnReload(fn func()) {
	c.config.OnReload(fn)
}

// RegisterDebugProbe registers a named live-value probe.
func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.mu.Lock()
	c.probes[name] = fn
	c.mu.Unlock()
}
