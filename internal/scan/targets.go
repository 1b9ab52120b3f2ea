package scan

import "github.com/sanverite/netring/internal/core"

// BuildTargets expands the configured hosts and ports into one cycle's
// ordered target list: the full host x port matrix first (outer loop over
// hosts, inner loop over ports), then one ICMP target per host when ping is
// enabled. The collected cycle results preserve exactly this order.
func BuildTargets(hosts []string, tcpPorts []uint16, ping bool) []core.Target {
	targets := make([]core.Target, 0, len(hosts)*len(tcpPorts)+len(hosts))
	for _, h := range hosts {
		for _, p := range tcpPorts {
			targets = append(targets, core.Target{Host: h, Port: p, Type: core.TestTCP})
		}
	}
	if ping {
		for _, h := range hosts {
			targets = append(targets, core.Target{Host: h, Type: core.TestICMP})
		}
	}
	return targets
}
