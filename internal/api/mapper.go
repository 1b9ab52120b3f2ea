package api

import (
	"time"

	"github.com/sanverite/netring/internal/core"
	"github.com/sanverite/netring/internal/output"
)

// FromCoreSnapshot converts core.Snapshot to the public StatusResponse.
// It computes uptime based on StartedAt and current wall-clock time.
func FromCoreSnapshot(s core.Snapshot) StatusResponse {
	var started string
	var uptime int64
	if !s.StartedAt.IsZero() {
		started = s.StartedAt.UTC().Format(time.RFC3339)
		uptime = int64(time.Since(s.StartedAt).Seconds())
	}

	var last *output.ScanView
	if s.LastScan != nil {
		view := output.FromScanResult(*s.LastScan)
		last = &view
	}

	return StatusResponse{
		State:       string(s.RunState),
		StartedAt:   started,
		UptimeSec:   uptime,
		Cycles:      s.Cycles,
		LastScan:    last,
		GeneratedAt: TimeNow().UTC().Format(time.RFC3339),
	}
}
