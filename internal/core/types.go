package core

import (
	"net"
	"strconv"
	"time"
)

// TestType identifies the kind of connectivity check a target receives.
type TestType string

const (
	TestTCP  TestType = "tcp"
	TestICMP TestType = "icmp"
)

// Status classifies a target after all of its attempts completed.
//
// The classification is a pure function of the success rate:
// every attempt succeeded -> up, none succeeded -> down, otherwise partial.
type Status string

const (
	StatusUp      Status = "up"
	StatusDown    Status = "down"
	StatusPartial Status = "partial"
)

// Target is one unit of probing work: a host, an optional port, and a test
// kind. Port is meaningful only when Type is TestTCP; ICMP targets carry a
// zero port. Targets are immutable once built for a cycle.
type Target struct {
	Host string
	Port uint16
	Type TestType
}

// Addr renders the target's dial address ("host:port") for TCP targets and
// the bare host for ICMP targets.
func (t Target) Addr() string {
	if t.Type == TestTCP {
		return net.JoinHostPort(t.Host, strconv.Itoa(int(t.Port)))
	}
	return t.Host
}

// TargetResult aggregates every attempt against one target within one cycle.
//
// Invariants maintained by Summarize:
//   - Status is up iff Successful == Attempts, down iff Successful == 0,
//     partial otherwise.
//   - Err is populated only when Successful == 0; a single success clears it
//     even if earlier attempts failed.
//   - AvgResponseMs is meaningful only when Successful > 0 and is the mean of
//     exactly the successful attempts' latencies.
type TargetResult struct {
	Host            string
	Port            uint16 // meaningful only for TestTCP
	Type            TestType
	Attempts        int
	Successful      int
	SuccessRate     float64
	AvgResponseMs   float64 // valid iff Successful > 0
	ResponseTimesMs []float64
	Status          Status
	Err             string // latest error tag, set iff Successful == 0
}

// ScanResult is the outcome of one full cycle: every target's result in
// deterministic construction order (all TCP targets, then all ICMP targets),
// stamped with a wall-clock timestamp and a unique scan ID. It is handed to
// the output sinks once and not retained by the engine.
type ScanResult struct {
	ScanID    string
	Timestamp time.Time
	Results   []TargetResult
}
