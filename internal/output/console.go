package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/sanverite/netring/internal/core"
	"github.com/sanverite/netring/internal/ports"
)

const divider = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

var (
	hostColor = color.New(color.FgBlue)
	portColor = color.New(color.FgYellow)
	kindColor = color.New(color.FgCyan)
	errColor  = color.New(color.FgRed)
	okColor   = color.New(color.FgGreen)
	icmpColor = color.New(color.FgMagenta)
	dimColor  = color.New(color.Faint)
	boldColor = color.New(color.Bold)
)

// ConsoleSink renders a line-oriented human summary per target: a status
// marker, host[:port], successful/attempts ratio, the average latency when
// defined, the test kind, and the error detail when the target is fully
// down. Quiet suppresses the banner and waiting notices, never the summary.
type ConsoleSink struct {
	W     io.Writer
	Quiet bool
}

// Banner prints the startup line describing what will be scanned.
// Call before the first cycle in non-quiet human mode.
func (s *ConsoleSink) Banner(hosts []string, tcpPorts []uint16, ping bool) {
	if s.Quiet {
		return
	}
	line := fmt.Sprintf("\n%s Hosts: [%s]", boldColor.Sprint("🔍 Scanning"),
		okColor.Sprint(strings.Join(hosts, ", ")))
	if len(tcpPorts) > 0 {
		line += fmt.Sprintf(", Ports: [%s]", portColor.Sprint(strings.ReplaceAll(ports.Format(tcpPorts), ",", ", ")))
	}
	if ping {
		line += icmpColor.Sprint(", ICMP Ping: enabled")
	}
	fmt.Fprintln(s.W, line)
	fmt.Fprintln(s.W, dimColor.Sprint(divider))
}

// Emit writes one summary block for the cycle.
func (s *ConsoleSink) Emit(scan core.ScanResult) error {
	fmt.Fprintln(s.W, "\n📊 Summary")
	fmt.Fprintln(s.W, dimColor.Sprint(divider))

	for _, r := range scan.Results {
		var marker string
		switch r.Status {
		case core.StatusUp:
			marker = "✅"
		case core.StatusDown:
			marker = "❌"
		case core.StatusPartial:
			marker = "⚠️"
		default:
			marker = "❓"
		}

		hostPort := fmt.Sprintf("%s (ICMP)", hostColor.Sprint(r.Host))
		if r.Type == core.TestTCP {
			hostPort = fmt.Sprintf("%s:%s", hostColor.Sprint(r.Host), portColor.Sprintf("%d", r.Port))
		}

		if r.Successful > 0 {
			fmt.Fprintf(s.W, "%s %s → %d/%d successful (Avg: %.2f ms) [%s]\n",
				marker, hostPort, r.Successful, r.Attempts, r.AvgResponseMs, kindColor.Sprint(string(r.Type)))
			continue
		}
		detail := ""
		if r.Err != "" {
			detail = fmt.Sprintf(" (%s)", errColor.Sprint(r.Err))
		}
		fmt.Fprintf(s.W, "%s %s → %d/%d successful [%s]%s\n",
			marker, hostPort, r.Successful, r.Attempts, kindColor.Sprint(string(r.Type)), detail)
	}
	return nil
}

// CycleScheduled prints the waiting notice between cycles in continuous mode.
func (s *ConsoleSink) CycleScheduled(wait time.Duration) {
	if s.Quiet {
		return
	}
	fmt.Fprintf(s.W, "\n⏱️  Waiting %s before next scan...\n", wait)
}
