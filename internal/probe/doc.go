// Package probe contains the active connectivity probes.
//
// # Overview
//
// A probe is one bounded, self-contained connectivity check against a single
// target: a fixed number of timed attempts executed strictly sequentially,
// each governed by its own timeout. Probes accept a context, spawn no
// background goroutines, share no state with sibling probes, and always
// return a fully aggregated core.TargetResult — failures are captured as
// result data, never as errors.
//
// # TCP Probe
//
// ProbeTCP resolves host:port once, then runs Count timed connect attempts.
// A connect that completes within the timeout is a success and records the
// elapsed time; the connection is closed immediately after measurement. A
// failed resolution short-circuits the whole target without consuming
// attempts.
//
// # ICMP Probe
//
// ProbeICMP resolves the host (IP literals pass through, otherwise the first
// looked-up address wins), opens one raw echo session for the resolved
// address family, and runs Count echo-request/echo-reply round trips with
// sequence numbers 1..Count. The echo identifier is random per probe and
// stable across its attempts. Opening the session usually requires elevated
// privileges; an acquisition failure short-circuits the target with zero
// echoes sent.
//
// # Error Model
//
// Per-attempt and per-target failures surface as the error tags defined by
// core: dns_resolution_failed, dns_error, connection_error, timeout,
// icmp_client_error, ping_error. Only the latest tag survives aggregation,
// and only when no attempt succeeded.
package probe
