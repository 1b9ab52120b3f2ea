// Package core owns the prober's domain model and observable state.
//
// Overview
//
// The core package defines what a probe works on (Target), what it produces
// (TargetResult, ScanResult), the shared aggregation that turns per-attempt
// outcomes into a classified result (Summarize), and a small state machine
// observing the runner (State).
//
// Aggregation
//
// Summarize is a pure reduction used by both the TCP and ICMP probes. Status
// derives from the success rate alone: up at 1.0, down at 0.0, otherwise
// partial. The latest error tag survives only when no attempt succeeded; the
// average latency covers exactly the successful attempts.
//
// Concurrency & Safety
//
// Probe results are plain values owned by their producing goroutine until the
// cycle joins. State is the single concurrency boundary: read access is via
// GetSnapshot(), which returns a deep copy suitable for use without further
// locking; mutation is via RecordScan and SetRunState, each holding the
// internal lock briefly. Callers must never take the lock directly.
//
// Lifecycle
//
// RunState reflects the coarse runner lifecycle:
//
//	idle    -> running
//	running -> terminated
//
// SetRunState enforces these transitions. On the transition to Running,
// startedAt is set; Uptime derives from startedAt. The API layer consumes
// snapshot copies to serve JSON.
package core
