package scan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/sanverite/netring/internal/core"
	"github.com/sanverite/netring/internal/probe"
)

// Pre-flight validation failures. These are the engine's only fatal
// conditions; once a cycle starts, every failure is captured as result data.
var (
	ErrNoHosts  = errors.New("at least one host is required")
	ErrNoWork   = errors.New("no ports to probe and ICMP disabled")
	ErrBadCount = errors.New("attempt count must be positive")
)

const (
	DefaultInterval    = 5 * time.Second
	DefaultMaxParallel = 128
)

// Config carries everything a Runner needs for its cycles. Hosts and Ports
// are fixed for the Runner's lifetime; targets are rebuilt fresh each cycle.
type Config struct {
	// Hosts to probe (required, non-empty).
	Hosts []string
	// Ports for TCP probing; may be empty when Ping is enabled.
	Ports []uint16
	// Ping enables one ICMP probe per host in addition to the TCP matrix.
	Ping bool
	// Count is the number of attempts per target (> 0).
	Count int
	// TCPTimeout bounds each TCP connect attempt.
	TCPTimeout time.Duration
	// PingTimeout bounds each ICMP echo-reply wait.
	PingTimeout time.Duration
	// Once stops the runner after a single cycle.
	Once bool
	// Interval is the pause between cycles in continuous mode.
	// Defaults to DefaultInterval.
	Interval time.Duration
	// MaxParallel caps the number of concurrently executing probes.
	// Defaults to DefaultMaxParallel.
	MaxParallel int64
	// Rate paces probe launches per second; 0 leaves launches unpaced.
	Rate float64
}

// Sink consumes one ScanResult per cycle. The runner calls Emit exactly once
// per cycle, after every target's probe has completed.
type Sink interface {
	Emit(core.ScanResult) error
}

// CycleNotifier is optionally implemented by sinks that want to surface the
// pause before the next cycle. Only invoked in continuous mode.
type CycleNotifier interface {
	CycleScheduled(wait time.Duration)
}

// Runner drives scan cycles: expand targets, fan out one probe per target,
// join, emit, and either terminate (single-shot) or sleep and repeat. It
// carries no state across cycles beyond its immutable configuration.
type Runner struct {
	cfg     Config
	sink    Sink
	state   *core.State
	logger  *zap.Logger
	sem     *semaphore.Weighted
	limiter *rate.Limiter

	// probe indirection, overridden in tests
	probeTCP  func(context.Context, probe.TCPConfig) core.TargetResult
	probeICMP func(context.Context, probe.ICMPConfig) core.TargetResult
}

// New validates cfg and constructs a Runner. state receives lifecycle
// transitions and the latest scan for observation; pass nil when nothing
// observes the runner.
func New(cfg Config, sink Sink, state *core.State, logger *zap.Logger) (*Runner, error) {
	if len(cfg.Hosts) == 0 {
		return nil, ErrNoHosts
	}
	if len(cfg.Ports) == 0 && !cfg.Ping {
		return nil, ErrNoWork
	}
	if cfg.Count <= 0 {
		return nil, ErrBadCount
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = DefaultMaxParallel
	}
	if state == nil {
		state = core.NewState()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Runner{
		cfg:       cfg,
		sink:      sink,
		state:     state,
		logger:    logger.With(zap.String("component", "scan")),
		sem:       semaphore.NewWeighted(cfg.MaxParallel),
		probeTCP:  probe.ProbeTCP,
		probeICMP: probe.ProbeICMP,
	}
	if cfg.Rate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), 1)
	}
	return r, nil
}

// Run executes cycles until the first emission (single-shot mode) or until
// ctx is cancelled. Each cycle is all-or-nothing: every target's result is
// collected before the sink sees anything, and a cycle that has started is
// never abandoned mid-flight.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.state.SetRunState(core.StateRunning); err != nil {
		return fmt.Errorf("runner already used: %w", err)
	}
	defer func() { _ = r.state.SetRunState(core.StateTerminated) }()

	for {
		result := r.runCycle(ctx)
		if err := r.sink.Emit(result); err != nil {
			return fmt.Errorf("emit scan result: %w", err)
		}
		r.state.RecordScan(result)

		if r.cfg.Once {
			return nil
		}
		if n, ok := r.sink.(CycleNotifier); ok {
			n.CycleScheduled(r.cfg.Interval)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.cfg.Interval):
		}
	}
}

// runCycle probes every target once and collects results keyed by the
// target's construction index, so the emitted order is deterministic
// regardless of completion order.
func (r *Runner) runCycle(ctx context.Context) core.ScanResult {
	targets := BuildTargets(r.cfg.Hosts, r.cfg.Ports, r.cfg.Ping)
	started := time.Now()
	r.logger.Info("cycle started",
		zap.Int("targets", len(targets)),
		zap.Int("attempts_per_target", r.cfg.Count))

	results := make([]core.TargetResult, len(targets))
	var wg sync.WaitGroup
	for i, t := range targets {
		// Launch pacing and the concurrency cap deliberately ignore ctx: a
		// cycle that has started runs to completion, with the per-attempt
		// timeouts bounding the worst case. Probes still receive ctx so
		// in-flight dials collapse quickly on shutdown.
		if r.limiter != nil {
			_ = r.limiter.Wait(context.Background())
		}
		_ = r.sem.Acquire(context.Background(), 1)
		wg.Add(1)
		go func(i int, t core.Target) {
			defer wg.Done()
			defer r.sem.Release(1)
			results[i] = r.probeTarget(ctx, t)
		}(i, t)
	}
	wg.Wait()

	var up, down int
	for _, res := range results {
		switch res.Status {
		case core.StatusUp:
			up++
		case core.StatusDown:
			down++
		}
	}
	r.logger.Info("cycle completed",
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("up", up),
		zap.Int("down", down),
		zap.Int("partial", len(results)-up-down))

	return core.ScanResult{
		ScanID:    uuid.NewString(),
		Timestamp: time.Now(),
		Results:   results,
	}
}

func (r *Runner) probeTarget(ctx context.Context, t core.Target) core.TargetResult {
	switch t.Type {
	case core.TestICMP:
		return r.probeICMP(ctx, probe.ICMPConfig{
			Host:    t.Host,
			Count:   r.cfg.Count,
			Timeout: r.cfg.PingTimeout,
		})
	default:
		return r.probeTCP(ctx, probe.TCPConfig{
			Host:    t.Host,
			Port:    t.Port,
			Count:   r.cfg.Count,
			Timeout: r.cfg.TCPTimeout,
		})
	}
}
