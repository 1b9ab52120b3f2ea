package output

import (
	"strconv"

	"github.com/sanverite/netring/internal/core"
)

// Public JSON types for the machine-readable renderer and the status API.
// These are intentionally decoupled from the core types so the wire format
// stays stable across internal refactors. Optional fields are pointers:
// absent means undefined, not zero.

// TargetView is the serialized form of one target's aggregated result.
type TargetView struct {
	Host              string    `json:"host"`
	Port              *uint16   `json:"port"`
	TestType          string    `json:"test_type"`
	Attempts          int       `json:"attempts"`
	Successful        int       `json:"successful"`
	SuccessRate       float64   `json:"success_rate"`
	AvgResponseTimeMs *float64  `json:"avg_response_time_ms"`
	ResponseTimes     []float64 `json:"response_times"`
	Status            string    `json:"status"`
	Error             *string   `json:"error"`
}

// ScanView is the serialized form of one full cycle.
type ScanView struct {
	ScanID        string       `json:"scan_id"`
	ScanTimestamp string       `json:"scan_timestamp"` // unix seconds
	Results       []TargetView `json:"results"`
}

// FromScanResult maps a cycle's result into its stable JSON view.
func FromScanResult(scan core.ScanResult) ScanView {
	views := make([]TargetView, len(scan.Results))
	for i, r := range scan.Results {
		views[i] = FromTargetResult(r)
	}
	return ScanView{
		ScanID:        scan.ScanID,
		ScanTimestamp: strconv.FormatInt(scan.Timestamp.Unix(), 10),
		Results:       views,
	}
}

// FromTargetResult maps one aggregated result into its JSON view. Port is
// present only for TCP targets, the average only when at least one attempt
// succeeded, and the error only when none did.
func FromTargetResult(r core.TargetResult) TargetView {
	v := TargetView{
		Host:          r.Host,
		TestType:      string(r.Type),
		Attempts:      r.Attempts,
		Successful:    r.Successful,
		SuccessRate:   r.SuccessRate,
		ResponseTimes: append([]float64(nil), r.ResponseTimesMs...),
		Status:        string(r.Status),
	}
	if r.Type == core.TestTCP {
		port := r.Port
		v.Port = &port
	}
	if r.Successful > 0 {
		avg := r.AvgResponseMs
		v.AvgResponseTimeMs = &avg
	}
	if r.Err != "" {
		errTag := r.Err
		v.Error = &errTag
	}
	return v
}
