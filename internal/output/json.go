package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sanverite/netring/internal/core"
)

// JSONSink renders each cycle as one pretty-printed JSON document on W.
type JSONSink struct {
	W io.Writer
}

// Emit writes the cycle's ScanView followed by a newline.
func (s *JSONSink) Emit(scan core.ScanResult) error {
	doc, err := json.MarshalIndent(FromScanResult(scan), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scan result: %w", err)
	}
	doc = append(doc, '\n')
	if _, err := s.W.Write(doc); err != nil {
		return fmt.Errorf("write scan result: %w", err)
	}
	return nil
}
