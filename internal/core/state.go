package core

import (
	"errors"
	"sync"
	"time"
)

// RunState represents the lifecycle of the scan runner. The state machine is
// intentionally small: a runner is idle until its first cycle, running while
// cycles execute, and terminated once it stops (after one cycle in single-shot
// mode, or on shutdown in continuous mode). Intended transitions:
//
// idle       -> running
// running    -> terminated
//
// Transitions outside this set are rejected by SetRunState.
type RunState string

const (
	StateIdle       RunState = "idle"
	StateRunning    RunState = "running"
	StateTerminated RunState = "terminated"
)

// Snapshot is a threadsafe read model returned to the API layer.
// Nested slices are defensive copies, so callers may safely retain the value
// without additional locking.
type Snapshot struct {
	RunState  RunState
	StartedAt time.Time
	Cycles    int64
	LastScan  *ScanResult // nil until the first cycle completes
}

// State holds the runner's observable state with synchronization.
// Use the provided methods to mutate; callers should never take the lock
// directly. The probing engine itself carries no cross-cycle state — State
// exists purely so the status API can observe the latest cycle.
type State struct {
	mu        sync.RWMutex
	run       RunState
	startedAt time.Time
	cycles    int64
	lastScan  *ScanResult
}

// NewState constructs a default-idle state.
func NewState() *State {
	return &State{run: StateIdle}
}

// GetSnapshot returns a deep copy safe for concurrent reads.
func (s *State) GetSnapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last *ScanResult
	if s.lastScan != nil {
		cp := *s.lastScan
		cp.Results = append([]TargetResult(nil), s.lastScan.Results...)
		for i, r := range cp.Results {
			cp.Results[i].ResponseTimesMs = append([]float64(nil), r.ResponseTimesMs...)
		}
		last = &cp
	}

	return Snapshot{
		RunState:  s.run,
		StartedAt: s.startedAt,
		Cycles:    s.cycles,
		LastScan:  last,
	}
}

// Uptime returns the wall-clock duration since the runner entered Running.
// Returns zero if it never started.
func (s *State) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.startedAt.IsZero() {
		return 0
	}
	return time.Since(s.startedAt)
}

// RecordScan replaces the last scan with a new value and bumps the cycle
// counter. The result is copied defensively.
func (s *State) RecordScan(scan ScanResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := scan
	cp.Results = append([]TargetResult(nil), scan.Results...)
	for i, r := range cp.Results {
		cp.Results[i].ResponseTimesMs = append([]float64(nil), r.ResponseTimesMs...)
	}
	s.lastScan = &cp
	s.cycles++
}

// ErrInvalidTransition is returned when SetRunState receives an illegal transition.
var ErrInvalidTransition = errors.New("invalid run state transition")

// SetRunState transitions the runner to the next state, enforcing the
// idle -> running -> terminated machine. On the transition to Running,
// startedAt is set.
//
// Returns ErrInvalidTransition if the (current -> next) edge is not allowed.
func (s *State) SetRunState(next RunState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.run
	if cur == next {
		// Idempotent: no-op
		return nil
	}
	if !allowedTransition(cur, next) {
		return ErrInvalidTransition
	}
	if next == StateRunning && s.startedAt.IsZero() {
		s.startedAt = time.Now()
	}
	s.run = next
	return nil
}

func allowedTransition(cur, next RunState) bool {
	switch cur {
	case StateIdle:
		return next == StateRunning
	case StateRunning:
		return next == StateTerminated
	default:
		return false
	}
}
