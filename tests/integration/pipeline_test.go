// File: tests/integration/pipeline_test.go
package integration

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/hioload-disruptor/adapters"
	"github.com/momentics/hioload-disruptor/api"
	"github.com/momentics/hioload-disruptor/control"
	"github.com/momentics/hioload-disruptor/core/disruptor"
	"github.com/momentics/hioload-disruptor/core/wait"
)

type tick struct {
	seq     int64
	payload int64
}

// TestFullPipeline drives the public API end to end: config store, staged
// consumers, metrics registry, control adapter probes, graceful shutdown.
func TestFullPipeline(t *testing.T) {
	cfg := control.NewConfigStore()
	cfg.SetConfig(map[string]any{
		"capacity": int64(128),
		"events":   int64(20000),
	})
	capacity, _ := cfg.Get("capacity")
	events, _ := cfg.Get("events")
	metrics := control.NewMetricsRegistry()

	var enriched, journaled atomic.Int64
	d, err := disruptor.New(func() tick { return tick{} },
		disruptor.WithCapacity[tick](capacity.(int64)),
		disruptor.WithWaitStrategy[tick](wait.NewYielding()),
		disruptor.WithMetrics[tick](metrics),
	)
	if err != nil {
		t.Fatal(err)
	}

	first := d.HandleEventsWith(adapters.EventHandlerFunc[tick](func(ev *tick, seq int64, _ bool) error {
		ev.payload = seq * 2
		enriched.Add(1)
		return nil
	}))
	first.Then(adapters.EventHandlerFunc[tick](func(ev *tick, seq int64, _ bool) error {
		if ev.payload != seq*2 {
			t.Errorf("seq %d: downstream read %d before upstream wrote %d", seq, ev.payload, seq*2)
		}
		journaled.Add(1)
		return nil
	}))

	ctl := adapters.NewControlAdapter(cfg, metrics)
	ctl.RegisterDebugProbe("ring.cursor", func() any { return d.Ring().Cursor() })

	if err := d.Start(); err != nil {
		t.Fatal(err)
	}

	total := events.(int64)
	for i := int64(0); i < total; i++ {
		d.PublishEvent(func(ev *tick, seq int64) {
			ev.seq = seq
		})
	}
	if err := d.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if got := enriched.Load(); got != total {
		t.Fatalf("stage one processed %d, want %d", got, total)
	}
	if got := journaled.Load(); got != total {
		t.Fatalf("stage two processed %d, want %d", got, total)
	}

	stats := ctl.Stats()
	if stats["probe.ring.cursor"].(int64) != total-1 {
		t.Fatalf("cursor probe = %v, want %d", stats["probe.ring.cursor"], total-1)
	}
	if _, ok := stats["disruptor.processor.0.events"]; !ok {
		t.Fatal("shutdown did not publish processor metrics")
	}
}

// TestErrorPolicyScenarios checks the spec'd Stop and Resume behaviors at a
// poisoned sequence through the public facade.
func TestErrorPolicyScenarios(t *testing.T) {
	poison := int64(5)

	t.Run("stop", func(t *testing.T) {
		var processed atomic.Int64
		d, err := disruptor.New(func() tick { return tick{} },
			disruptor.WithCapacity[tick](16),
		)
		if err != nil {
			t.Fatal(err)
		}
		d.HandleEventsWith(adapters.EventHandlerFunc[tick](func(ev *tick, seq int64, _ bool) error {
			if seq == poison {
				return api.NewError(api.ErrCodeProcessing, nil, "poisoned event")
			}
			processed.Add(1)
			return nil
		}))
		if err := d.Start(); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 10; i++ {
			d.PublishEvent(func(*tick, int64) {})
		}
		if err := d.Shutdown(); err == nil {
			t.Fatal("Shutdown returned nil, want surfaced processing error")
		}
		if got := processed.Load(); got != poison {
			t.Fatalf("processed %d events under Stop, want %d", got, poison)
		}
	})

	t.Run("resume", func(t *testing.T) {
		var processed atomic.Int64
		d, err := disruptor.New(func() tick { return tick{} },
			disruptor.WithCapacity[tick](16),
			disruptor.WithErrorHandler[tick](adapters.FixedPolicy[tick](api.Resume)),
		)
		if err != nil {
			t.Fatal(err)
		}
		d.HandleEventsWith(adapters.EventHandlerFunc[tick](func(ev *tick, seq int64, _ bool) error {
			if seq == poison {
				return api.NewError(api.ErrCodeProcessing, nil, "poisoned event")
			}
			processed.Add(1)
			return nil
		}))
		if err := d.Start(); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 10; i++ {
			d.PublishEvent(func(*tick, int64) {})
		}
		if err := d.Shutdown(); err != nil {
			t.Fatalf("Shutdown under Resume: %v", err)
		}
		if got := processed.Load(); got != 9 {
			t.Fatalf("processed %d events under Resume, want 9 (sequence 5 skipped)", got)
		}
	})
}

// TestAlertDeliveryBounded halts a blocked consumer through the facade and
// requires it to stop within bounded time.
func TestAlertDeliveryBounded(t *testing.T) {
	d, err := disruptor.New(func() tick { return tick{} },
		disruptor.WithCapacity[tick](8),
		disruptor.WithWaitStrategy[tick](wait.NewBlocking()),
	)
	if err != nil {
		t.Fatal(err)
	}
	d.HandleEventsWith(adapters.EventHandlerFunc[tick](func(*tick, int64, bool) error {
		return nil
	}))
	if err := d.Start(); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	start := time.Now()
	go func() { done <- d.Shutdown() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Shutdown: %v", err)
		}
		if elapsed := time.Since(start); elapsed > 2*time.Second {
			t.Fatalf("shutdown took %v, want bounded delivery", elapsed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("blocked consumer never received the alert")
	}
}
