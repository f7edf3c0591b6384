package disruptor

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/momentics/hioload-disruptor/api"
	"github.com/momentics/hioload-disruptor/core/wait"
)

// recordingHandler appends processed sequences, optionally failing chosen ones.
type recordingHandler struct {
	mu       sync.Mutex
	seen     []int64
	failSeq  int64
	failErr  error
	failures int
	maxFails int
}

func (h *recordingHandler) OnEvent(ev *payload, seq int64, _ bool) error {
	if h.failErr != nil && seq == h.failSeq && (h.maxFails == 0 || h.failures < h.maxFails) {
		h.failures++
		return h.failErr
	}
	h.mu.Lock()
	h.seen = append(h.seen, seq)
	h.mu.Unlock()
	return nil
}

func (h *recordingHandler) sequences() []int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]int64, len(h.seen))
	copy(out, h.seen)
	return out
}

type fixedPolicy struct{ action api.ErrorAction }

func (p fixedPolicy) OnEventError(*payload, int64, error) api.ErrorAction { return p.action }

func startProcessor(t *testing.T, r *RingBuffer[payload], h api.EventHandler[payload], policy api.ErrorHandler[payload]) (*BatchEventProcessor[payload], chan error) {
	t.Helper()
	p := NewBatchEventProcessor(r, r.NewBarrier(), h, policy)
	r.AddGating(p.Sequence())
	runErr := make(chan error, 1)
	go func() { runErr <- p.Run() }()
	return p, runErr
}

func waitForSequence(t *testing.T, p *BatchEventProcessor[payload], want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for p.Sequence().Load() < want {
		if time.Now().After(deadline) {
			t.Fatalf("processor stuck at %d, want %d", p.Sequence().Load(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestProcessor_ProcessesInOrder(t *testing.T) {
	r := newTestRing(t, 16, api.SingleProducer, wait.NewYielding())
	h := &recordingHandler{}
	p, _ := startProcessor(t, r, h, nil)
	defer func() { p.Halt(); <-p.Done() }()

	const n = 100
	for i := 0; i < n; i++ {
		seq := r.Next()
		r.Get(seq).id = seq
		r.Publish(seq)
	}

	waitForSequence(t, p, n-1)
	seen := h.sequences()
	if len(seen) != n {
		t.Fatalf("processed %d events, want %d", len(seen), n)
	}
	for i, seq := range seen {
		if seq != int64(i) {
			t.Fatalf("position %d processed sequence %d: order violated", i, seq)
		}
	}
}

func TestProcessor_HaltUnblocksAndHalts(t *testing.T) {
	r := newTestRing(t, 8, api.SingleProducer, wait.NewBlocking())
	h := &recordingHandler{}
	p, runErr := startProcessor(t, r, h, nil)

	time.Sleep(10 * time.Millisecond)
	p.Halt()

	select {
	case err := <-runErr:
		if err != nil {
			t.Fatalf("Run = %v, want nil on cooperative shutdown", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Halt")
	}
	if got := p.State(); got != api.ProcessorHalted {
		t.Fatalf("state = %v, want halted", got)
	}
}

func TestProcessor_StopPolicyHaltsAtFailure(t *testing.T) {
	r := newTestRing(t, 16, api.SingleProducer, wait.NewYielding())
	handlerErr := errors.New("boom")
	h := &recordingHandler{failSeq: 5, failErr: handlerErr}
	p, runErr := startProcessor(t, r, h, nil) // nil policy defaults to Stop

	for i := 0; i < 10; i++ {
		seq := r.Next()
		r.Publish(seq)
	}

	select {
	case err := <-runErr:
		if !errors.Is(err, handlerErr) {
			t.Fatalf("Run = %v, want wrapped handler error", err)
		}
		var structured *api.Error
		if !errors.As(err, &structured) {
			t.Fatal("halting error is not a structured *api.Error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("processor did not halt under Stop policy")
	}

	// Everything before the failing sequence was fully processed, nothing after.
	seen := h.sequences()
	if len(seen) != 5 {
		t.Fatalf("processed %v, want exactly sequences 0..4", seen)
	}
	if got := p.Sequence().Load(); got != 4 {
		t.Fatalf("processor sequence = %d, want 4", got)
	}
	if err := p.Err(); !errors.Is(err, handlerErr) {
		t.Fatalf("Err = %v, want handler error", err)
	}
}

func TestProcessor_ResumePolicySkipsFailure(t *testing.T) {
	r := newTestRing(t, 16, api.SingleProducer, wait.NewYielding())
	h := &recordingHandler{failSeq: 5, failErr: errors.New("boom")}
	p, _ := startProcessor(t, r, h, fixedPolicy{api.Resume})
	defer func() { p.Halt(); <-p.Done() }()

	for i := 0; i < 10; i++ {
		seq := r.Next()
		r.Publish(seq)
	}

	waitForSequence(t, p, 9)
	seen := h.sequences()
	if len(seen) != 9 {
		t.Fatalf("processed %d events, want 9 (sequence 5 skipped)", len(seen))
	}
	for _, seq := range seen {
		if seq == 5 {
			t.Fatal("sequence 5 processed despite Resume skip")
		}
	}
	if h.failures != 1 {
		t.Fatalf("handler failed %d times, want 1 (no retry under Resume)", h.failures)
	}
}

func TestProcessor_RetryPolicyReinvokesSameEvent(t *testing.T) {
	r := newTestRing(t, 16, api.SingleProducer, wait.NewYielding())
	h := &recordingHandler{failSeq: 3, failErr: errors.New("transient"), maxFails: 2}
	p, _ := startProcessor(t, r, h, fixedPolicy{api.Retry})
	defer func() { p.Halt(); <-p.Done() }()

	for i := 0; i < 6; i++ {
		seq := r.Next()
		r.Publish(seq)
	}

	waitForSequence(t, p, 5)
	if h.failures != 2 {
		t.Fatalf("handler failed %d times, want 2 transient failures", h.failures)
	}
	seen := h.sequences()
	if len(seen) != 6 {
		t.Fatalf("processed %d events, want all 6 after retries", len(seen))
	}
	if seen[3] != 3 {
		t.Fatalf("retried event processed out of order: %v", seen)
	}
}

func TestProcessor_RunTwiceRejected(t *testing.T) {
	r := newTestRing(t, 8, api.SingleProducer, wait.NewYielding())
	p, _ := startProcessor(t, r, &recordingHandler{}, nil)

	time.Sleep(10 * time.Millisecond)
	if err := p.Run(); !errors.Is(err, api.ErrProcessorRunning) {
		t.Fatalf("second Run = %v, want ErrProcessorRunning", err)
	}

	p.Halt()
	<-p.Done()
	if err := p.Run(); !errors.Is(err, api.ErrProcessorHalted) {
		t.Fatalf("Run after halt = %v, want ErrProcessorHalted", err)
	}
}

func TestProcessor_HaltBeforeRun(t *testing.T) {
	r := newTestRing(t, 8, api.SingleProducer, wait.NewYielding())
	p := NewBatchEventProcessor[payload](r, r.NewBarrier(), &recordingHandler{}, nil)

	p.Halt()
	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed after Halt on idle processor")
	}
	if got := p.State(); got != api.ProcessorHalted {
		t.Fatalf("state = %v, want halted", got)
	}
}

func TestProcessor_StatsCounters(t *testing.T) {
	r := newTestRing(t, 16, api.SingleProducer, wait.NewYielding())
	h := &recordingHandler{}
	p, _ := startProcessor(t, r, h, nil)
	defer func() { p.Halt(); <-p.Done() }()

	for i := 0; i < 20; i++ {
		seq := r.Next()
		r.Publish(seq)
	}
	waitForSequence(t, p, 19)

	stats := p.Stats()
	if got := stats["events"].(uint64); got != 20 {
		t.Fatalf("events = %d, want 20", got)
	}
	if got := stats["batches"].(uint64); got == 0 || got > 20 {
		t.Fatalf("batches = %d, want within (0,20]", got)
	}
	if got := fmt.Sprint(stats["state"]); got != "running" {
		t.Fatalf("state = %q, want running", got)
	}
}
