// Command netring is a parallel TCP + ICMP connectivity prober.
//
// Usage:
//
//	netring [flags] host [host...]
//
// Examples:
//
//	netring example.com                          TCP check on port 80
//	netring example.com -p 80,443,8000-8100      multiple ports and a range
//	netring a.example.com b.example.com -ping    several hosts plus ICMP echo
//	netring example.com -json -once              one cycle, machine-readable
//
// Flags:
//
//	-p              ports: comma list and/or a-b ranges (default "80")
//	-count          attempts per target (default 3)
//	-timeout        TCP connect timeout in milliseconds (default 2000)
//	-ping           enable ICMP echo probing (raw sockets, usually needs root)
//	-ping-timeout   ICMP reply timeout in milliseconds (default 1000)
//	-once           run a single cycle and exit
//	-interval       pause between cycles (default 5s)
//	-json           emit pretty JSON instead of the human summary
//	-quiet          suppress banner and waiting notices
//	-max-parallel   maximum concurrent probes (default 128)
//	-rate           probe launches per second, 0 = unpaced
//	-serve          optional HTTP status listen address
//	-v              verbose structured logging to stderr
//
// Behavior:
//
// Expands hosts and ports into one probe target per (host, port) pair plus
// one ICMP target per host when -ping is set, probes all targets
// concurrently, and prints one aggregated summary per cycle. Continuous mode
// repeats until SIGINT/SIGTERM; -once exits after the first cycle. With
// -serve, a local HTTP endpoint exposes the latest cycle at /v1/status.
package main
