package probe

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"github.com/sanverite/netring/internal/core"
)

// IANA protocol numbers for echo traffic.
const (
	protocolICMP     = 1
	protocolIPv6ICMP = 58
)

// ICMPConfig controls a single ICMP probe execution against one host.
type ICMPConfig struct {
	// Host is a DNS name or IP literal (either family).
	Host string
	// Count is the number of echo attempts (> 0), sent sequentially with
	// sequence numbers 1..Count.
	Count int
	// Timeout bounds the wait for each echo reply. If zero,
	// DefaultICMPTimeout is used.
	Timeout time.Duration
}

// lookupIPAddr resolves a bare hostname; the first resolved address is used.
// Package var so tests can force resolution outcomes.
var lookupIPAddr = func(ctx context.Context, host string) ([]net.IPAddr, error) {
	return net.DefaultResolver.LookupIPAddr(ctx, host)
}

// pinger is one open echo session against a resolved address. Sessions are
// owned exclusively by their probe and closed when the probe ends.
type pinger interface {
	Ping(ctx context.Context, seq int, timeout time.Duration) (time.Duration, error)
	Close() error
}

// newPinger acquires the raw ICMP capability for the address family of ip.
// Package var so tests can substitute a fake session.
var newPinger = func(ip net.IP) (pinger, error) {
	return openSession(ip)
}

// ProbeICMP resolves cfg.Host, opens one echo session, and runs cfg.Count
// timed echo-request/echo-reply round trips, aggregating them into a
// TargetResult.
//
// Short-circuits, each consuming zero attempts: a lookup that yields no
// addresses is tagged dns_resolution_failed; a lookup error is tagged
// "dns_error: <detail>"; a session-acquisition failure — typically missing
// privilege for raw sockets — is tagged "icmp_client_error: <detail>" with a
// privilege hint. Per-attempt failures, including reply timeouts, are tagged
// "ping_error: <detail>" and never abort the remaining attempts.
func ProbeICMP(ctx context.Context, cfg ICMPConfig) core.TargetResult {
	target := core.Target{Host: cfg.Host, Type: core.TestICMP}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultICMPTimeout
	}

	ip := net.ParseIP(cfg.Host)
	if ip == nil {
		addrs, err := lookupIPAddr(ctx, cfg.Host)
		if err != nil {
			return core.Summarize(target, cfg.Count, 0, nil, "dns_error: "+err.Error())
		}
		if len(addrs) == 0 {
			return core.Summarize(target, cfg.Count, 0, nil, "dns_resolution_failed")
		}
		ip = addrs[0].IP
	}

	sess, err := newPinger(ip)
	if err != nil {
		tag := fmt.Sprintf("icmp_client_error: %v (requires elevated privileges)", err)
		return core.Summarize(target, cfg.Count, 0, nil, tag)
	}
	defer sess.Close()

	var (
		latencies  []float64
		successful int
		lastErr    string
	)
	for seq := 1; seq <= cfg.Count; seq++ {
		rtt, err := sess.Ping(ctx, seq, timeout)
		if err != nil {
			lastErr = "ping_error: " + err.Error()
			continue
		}
		successful++
		latencies = append(latencies, float64(rtt)/float64(time.Millisecond))
	}

	return core.Summarize(target, cfg.Count, successful, latencies, lastErr)
}

// session owns one raw ICMP socket for the lifetime of a single probe. The
// echo identifier is drawn once at session open and reused for every
// sequence number, distinguishing this probe's replies from those of
// concurrent probes sharing the host.
type session struct {
	conn     *icmp.PacketConn
	dst      *net.IPAddr
	proto    int
	echoType icmp.Type
	id       int
}

func openSession(ip net.IP) (pinger, error) {
	var (
		conn     *icmp.PacketConn
		proto    int
		echoType icmp.Type
		err      error
	)
	if ip.To4() != nil {
		conn, err = icmp.ListenPacket("ip4:icmp", "0.0.0.0")
		proto = protocolICMP
		echoType = ipv4.ICMPTypeEcho
	} else {
		conn, err = icmp.ListenPacket("ip6:ipv6-icmp", "::")
		proto = protocolIPv6ICMP
		echoType = ipv6.ICMPTypeEchoRequest
	}
	if err != nil {
		return nil, err
	}
	return &session{
		conn:     conn,
		dst:      &net.IPAddr{IP: ip},
		proto:    proto,
		echoType: echoType,
		id:       rand.Intn(1 << 16),
	}, nil
}

// Ping sends one echo request and waits up to timeout for the matching
// reply. It returns the round-trip time on success. A raw socket sees every
// echo reply arriving at the host, so replies are filtered by identifier and
// sequence number until the deadline fires.
func (s *session) Ping(ctx context.Context, seq int, timeout time.Duration) (time.Duration, error) {
	msg := icmp.Message{
		Type: s.echoType,
		Code: 0,
		Body: &icmp.Echo{ID: s.id, Seq: seq, Data: []byte("netring echo")},
	}
	wire, err := msg.Marshal(nil)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	if _, err := s.conn.WriteTo(wire, s.dst); err != nil {
		return 0, err
	}

	deadline := start.Add(timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return 0, err
	}

	buf := make([]byte, 1500)
	for {
		n, _, err := s.conn.ReadFrom(buf)
		if err != nil {
			return 0, err
		}
		reply, err := icmp.ParseMessage(s.proto, buf[:n])
		if err != nil {
			continue
		}
		if reply.Type != ipv4.ICMPTypeEchoReply && reply.Type != ipv6.ICMPTypeEchoReply {
			continue
		}
		echo, ok := reply.Body.(*icmp.Echo)
		if !ok || echo.ID != s.id || echo.Seq != seq {
			continue
		}
		return time.Since(start), nil
	}
}

func (s *session) Close() error {
	return s.conn.Close()
}
