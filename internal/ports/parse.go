// Package ports parses port specification strings.
//
// A specification is a comma-separated list of tokens, each either a single
// port ("443") or an inclusive range ("8000-8100"). Parsing is deliberately
// permissive: tokens that fail to parse, values outside the 16-bit port
// range, and ranges whose bounds are reversed contribute no ports and never
// abort their sibling tokens. Order is preserved — tokens left to right,
// ranges ascending — and duplicates are kept as written.
package ports

import (
	"strconv"
	"strings"
)

// Parse expands spec into the concrete list of ports it denotes.
// Malformed tokens are silently dropped; an all-malformed (or empty) spec
// yields an empty list.
func Parse(spec string) []uint16 {
	var out []uint16
	for _, tok := range strings.Split(spec, ",") {
		if strings.Contains(tok, "-") {
			out = append(out, expandRange(tok)...)
			continue
		}
		if v, err := strconv.ParseUint(tok, 10, 16); err == nil {
			out = append(out, uint16(v))
		}
	}
	return out
}

// expandRange expands an "a-b" token into the ascending inclusive sequence
// a..b. Extra "-"-separated fields beyond the first two are ignored, matching
// the lenient token contract. A reversed range is empty, not an error.
func expandRange(tok string) []uint16 {
	bounds := strings.Split(tok, "-")
	if len(bounds) < 2 {
		return nil
	}
	start, err := strconv.ParseUint(bounds[0], 10, 16)
	if err != nil {
		return nil
	}
	end, err := strconv.ParseUint(bounds[1], 10, 16)
	if err != nil {
		return nil
	}
	if start > end {
		return nil
	}
	out := make([]uint16, 0, end-start+1)
	for p := start; p <= end; p++ {
		out = append(out, uint16(p))
	}
	return out
}

// Format renders ports back into a specification string that Parse maps to
// the identical list. Each port becomes its own token; ranges are not
// re-synthesized.
func Format(ports []uint16) string {
	if len(ports) == 0 {
		return ""
	}
	toks := make([]string, len(ports))
	for i, p := range ports {
		toks[i] = strconv.FormatUint(uint64(p), 10)
	}
	return strings.Join(toks, ",")
}
