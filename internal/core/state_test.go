package core

import (
	"errors"
	"testing"
	"time"
)

func TestStateLifecycle(t *testing.T) {
	s := NewState()
	if got := s.GetSnapshot().RunState; got != StateIdle {
		t.Fatalf("initial state = %q, want idle", got)
	}

	if err := s.SetRunState(StateRunning); err != nil {
		t.Fatalf("idle -> running: %v", err)
	}
	if s.GetSnapshot().StartedAt.IsZero() {
		t.Fatal("startedAt not set on transition to running")
	}

	// Idempotent no-op.
	if err := s.SetRunState(StateRunning); err != nil {
		t.Fatalf("running -> running should be a no-op: %v", err)
	}

	if err := s.SetRunState(StateTerminated); err != nil {
		t.Fatalf("running -> terminated: %v", err)
	}
	if err := s.SetRunState(StateRunning); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("terminated -> running = %v, want ErrInvalidTransition", err)
	}
}

func TestStateSkippingIdleIsRejected(t *testing.T) {
	s := NewState()
	if err := s.SetRunState(StateTerminated); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("idle -> terminated = %v, want ErrInvalidTransition", err)
	}
}

func TestStateRecordScanSnapshotIsolation(t *testing.T) {
	s := NewState()
	scan := ScanResult{
		ScanID:    "scan-1",
		Timestamp: time.Now(),
		Results: []TargetResult{
			{Host: "a", Type: TestICMP, Attempts: 1, Successful: 1, ResponseTimesMs: []float64{4}},
		},
	}
	s.RecordScan(scan)

	snap := s.GetSnapshot()
	if snap.Cycles != 1 {
		t.Fatalf("cycles = %d, want 1", snap.Cycles)
	}
	if snap.LastScan == nil || snap.LastScan.ScanID != "scan-1" {
		t.Fatalf("last scan = %+v, want scan-1", snap.LastScan)
	}

	// Mutating the snapshot must not leak back into state.
	snap.LastScan.Results[0].Host = "mutated"
	snap.LastScan.Results[0].ResponseTimesMs[0] = 99
	again := s.GetSnapshot()
	if again.LastScan.Results[0].Host != "a" || again.LastScan.Results[0].ResponseTimesMs[0] != 4 {
		t.Fatalf("snapshot mutation leaked into state: %+v", again.LastScan.Results[0])
	}
}
