package scan

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sanverite/netring/internal/core"
	"github.com/sanverite/netring/internal/probe"
)

// captureSink records emissions and waiting notices. Locked because the
// runner emits from its own goroutine while tests poll.
type captureSink struct {
	mu       sync.Mutex
	scans    []core.ScanResult
	notified []time.Duration
}

func (s *captureSink) Emit(scan core.ScanResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans = append(s.scans, scan)
	return nil
}

func (s *captureSink) CycleScheduled(wait time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notified = append(s.notified, wait)
}

func (s *captureSink) emissions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scans)
}

func fakeProbes(r *Runner) {
	r.probeTCP = func(_ context.Context, cfg probe.TCPConfig) core.TargetResult {
		target := core.Target{Host: cfg.Host, Port: cfg.Port, Type: core.TestTCP}
		return core.Summarize(target, cfg.Count, cfg.Count, make([]float64, cfg.Count), "")
	}
	r.probeICMP = func(_ context.Context, cfg probe.ICMPConfig) core.TargetResult {
		target := core.Target{Host: cfg.Host, Type: core.TestICMP}
		return core.Summarize(target, cfg.Count, 0, nil, "ping_error: lost")
	}
}

func TestRunnerValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"no hosts", Config{Ports: []uint16{80}, Count: 1}, ErrNoHosts},
		{"no work", Config{Hosts: []string{"a"}, Count: 1}, ErrNoWork},
		{"bad count", Config{Hosts: []string{"a"}, Ports: []uint16{80}}, ErrBadCount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.cfg, &captureSink{}, nil, nil); !errors.Is(err, tc.want) {
				t.Fatalf("New() error = %v, want %v", err, tc.want)
			}
		})
	}

	// ICMP alone is valid work even with zero ports.
	if _, err := New(Config{Hosts: []string{"a"}, Ping: true, Count: 1}, &captureSink{}, nil, nil); err != nil {
		t.Fatalf("ping-only config rejected: %v", err)
	}
}

func TestRunnerSingleShotCycle(t *testing.T) {
	sink := &captureSink{}
	state := core.NewState()
	r, err := New(Config{
		Hosts: []string{"a", "b"},
		Ports: []uint16{80, 443},
		Ping:  true,
		Count: 2,
		Once:  true,
	}, sink, state, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fakeProbes(r)

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("single-shot run did not terminate")
	}

	if len(sink.scans) != 1 {
		t.Fatalf("emissions = %d, want 1", len(sink.scans))
	}
	scan := sink.scans[0]
	if scan.ScanID == "" || scan.Timestamp.IsZero() {
		t.Fatalf("scan missing identity: %+v", scan)
	}

	// TCP matrix in host-outer/port-inner order, then ICMP per host.
	wantOrder := []core.Target{
		{Host: "a", Port: 80, Type: core.TestTCP},
		{Host: "a", Port: 443, Type: core.TestTCP},
		{Host: "b", Port: 80, Type: core.TestTCP},
		{Host: "b", Port: 443, Type: core.TestTCP},
		{Host: "a", Type: core.TestICMP},
		{Host: "b", Type: core.TestICMP},
	}
	if len(scan.Results) != len(wantOrder) {
		t.Fatalf("results = %d, want %d", len(scan.Results), len(wantOrder))
	}
	for i, w := range wantOrder {
		got := scan.Results[i]
		if got.Host != w.Host || got.Port != w.Port || got.Type != w.Type {
			t.Fatalf("results[%d] = %s %d %s, want %+v", i, got.Host, got.Port, got.Type, w)
		}
	}

	// Fake probes: TCP up, ICMP down with its latest error.
	if scan.Results[0].Status != core.StatusUp {
		t.Fatalf("tcp result status = %q, want up", scan.Results[0].Status)
	}
	if scan.Results[4].Status != core.StatusDown || scan.Results[4].Err != "ping_error: lost" {
		t.Fatalf("icmp result = %+v, want down with ping_error", scan.Results[4])
	}

	// Single-shot mode never schedules a next cycle.
	if len(sink.notified) != 0 {
		t.Fatalf("waiting notice sent in single-shot mode: %v", sink.notified)
	}

	snap := state.GetSnapshot()
	if snap.RunState != core.StateTerminated {
		t.Fatalf("run state = %q, want terminated", snap.RunState)
	}
	if snap.Cycles != 1 || snap.LastScan == nil {
		t.Fatalf("state did not record the cycle: %+v", snap)
	}
}

func TestRunnerContinuousModeNotifiesAndStops(t *testing.T) {
	sink := &captureSink{}
	r, err := New(Config{
		Hosts:    []string{"a"},
		Ports:    []uint16{80},
		Count:    1,
		Interval: 50 * time.Millisecond,
	}, sink, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fakeProbes(r)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	// Let at least two cycles complete, then stop.
	deadline := time.After(5 * time.Second)
	for {
		if sink.emissions() >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("continuous mode produced fewer than two cycles")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop after cancellation")
	}

	if len(sink.notified) == 0 {
		t.Fatal("no waiting notice in continuous mode")
	}
	if sink.notified[0] != 50*time.Millisecond {
		t.Fatalf("notified wait = %v, want 50ms", sink.notified[0])
	}
}

func TestRunnerRebuildsTargetsEachCycle(t *testing.T) {
	var cycles int
	sink := &captureSink{}
	r, err := New(Config{
		Hosts:    []string{"a"},
		Ports:    []uint16{80},
		Count:    1,
		Interval: time.Millisecond,
	}, sink, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.probeICMP = func(_ context.Context, cfg probe.ICMPConfig) core.TargetResult {
		t.Fatal("icmp probe invoked with ping disabled")
		return core.TargetResult{}
	}
	r.probeTCP = func(_ context.Context, cfg probe.TCPConfig) core.TargetResult {
		cycles++
		target := core.Target{Host: cfg.Host, Port: cfg.Port, Type: core.TestTCP}
		return core.Summarize(target, 1, 1, []float64{1}, "")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for {
		if sink.emissions() >= 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("runner stalled before three cycles")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done

	if cycles < 3 {
		t.Fatalf("probe invoked %d times, want one per cycle across >= 3 cycles", cycles)
	}
}
