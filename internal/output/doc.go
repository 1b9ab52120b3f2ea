// Package output renders scan results for consumption outside the engine.
//
// Two sinks implement scan.Sink: JSONSink serializes the full cycle as a
// pretty-printed document built from stable view types (ScanView,
// TargetView), and ConsoleSink prints a colored, line-oriented human summary
// per target. The view types and their mappers are also consumed by the
// status API, so both machine-readable surfaces share one wire format.
//
// Color output goes through github.com/fatih/color; the CLI disables it when
// stdout is not a terminal.
package output
