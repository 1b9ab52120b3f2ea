// Package scan expands targets and orchestrates scan cycles.
//
// # Overview
//
// BuildTargets turns the configured hosts, ports, and ICMP flag into one
// cycle's ordered target list: the host x port TCP matrix (hosts outer,
// ports inner) followed by one ICMP target per host. Runner executes cycles
// over that list: one goroutine per target bounded by a weighted semaphore,
// optionally paced by a rate limiter, joined into an index-ordered result
// slice, and emitted as a single ScanResult to the configured Sink.
//
// # Scheduling
//
// Within a target, attempts are strictly sequential (the probes own that).
// Across targets there is no timing guarantee, but the emitted result order
// always matches target-construction order, never completion order. A cycle
// emits all-or-nothing: the sink sees one ScanResult per cycle and no
// partial results. In continuous mode the runner sleeps Config.Interval
// between cycles; Config.Once terminates after the first emission.
//
// # Lifecycle
//
// Run moves the observed core.State from idle to running, and to terminated
// on return. Cycles carry no state from one to the next; targets are rebuilt
// every cycle from the immutable configuration.
package scan
