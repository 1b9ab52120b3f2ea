package api

import (
	"time"

	"github.com/sanverite/netring/internal/output"
)

// Public JSON types returned by the API. These stay decoupled from the
// internal core types to preserve API stability and allow internal
// refactors without breaking clients.

// StatusResponse is the top-level payload for GET /v1/status.
type StatusResponse struct {
	State       string           `json:"state"`
	StartedAt   string           `json:"started_at"`
	UptimeSec   int64            `json:"uptime_sec"`
	Cycles      int64            `json:"cycles"`
	LastScan    *output.ScanView `json:"last_scan"`
	GeneratedAt string           `json:"generated_at"`
}

// APIError is a standard error payload.
type APIError struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"` // RFC3339
}

// TimeNow abstracts time for tests; overridden in tests.
var TimeNow = func() time.Time { return time.Now() }
