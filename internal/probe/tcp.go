package probe

import (
	"context"
	"net"
	"time"

	"github.com/sanverite/netring/internal/core"
)

// TCPConfig controls a single TCP probe execution against one (host, port)
// target.
type TCPConfig struct {
	// Host is a DNS name or IP literal.
	Host string
	// Port is the TCP port to connect to.
	Port uint16
	// Count is the number of connect attempts (> 0). Attempts run strictly
	// sequentially within the probe.
	Count int
	// Timeout bounds each individual connect attempt. If zero,
	// DefaultTCPTimeout is used.
	Timeout time.Duration
}

// Sensible defaults mirroring the CLI's.
const (
	DefaultTCPTimeout  = 2 * time.Second
	DefaultICMPTimeout = 1 * time.Second
)

// resolveTCPAddr resolves "host:port" to a dialable address once per probe.
// Package var so tests can force resolution outcomes.
var resolveTCPAddr = func(address string) (*net.TCPAddr, error) {
	return net.ResolveTCPAddr("tcp", address)
}

// ProbeTCP runs cfg.Count timed TCP connect attempts and aggregates them into
// a TargetResult.
//
// The host:port address is resolved exactly once. If resolution fails the
// probe short-circuits to a down result tagged dns_resolution_failed without
// consuming any attempts. Each attempt dials with cfg.Timeout as the bound; a
// completed connect counts as success and records the elapsed time including
// connection setup, after which the connection is closed immediately. A
// connect error records "connection_error: <detail>"; a timeout records
// "timeout". Failures never abort the remaining attempts.
func ProbeTCP(ctx context.Context, cfg TCPConfig) core.TargetResult {
	target := core.Target{Host: cfg.Host, Port: cfg.Port, Type: core.TestTCP}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTCPTimeout
	}

	addr, err := resolveTCPAddr(target.Addr())
	if err != nil {
		return core.Summarize(target, cfg.Count, 0, nil, "dns_resolution_failed")
	}

	var (
		latencies  []float64
		successful int
		lastErr    string
	)
	dialer := &net.Dialer{Timeout: timeout}
	for i := 0; i < cfg.Count; i++ {
		start := time.Now()
		conn, err := dialer.DialContext(ctx, "tcp", addr.String())
		elapsed := time.Since(start)

		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				lastErr = "timeout"
			} else {
				lastErr = "connection_error: " + err.Error()
			}
			continue
		}
		_ = conn.Close()
		successful++
		latencies = append(latencies, float64(elapsed)/float64(time.Millisecond))
	}

	return core.Summarize(target, cfg.Count, successful, latencies, lastErr)
}
