package core

// Summarize reduces a target's per-attempt outcomes into a TargetResult.
// It is the single aggregation path shared by the TCP and ICMP probes.
//
// attempts is the configured attempt count (> 0); successful is how many
// attempts succeeded; latenciesMs holds the successful attempts' latencies in
// order; lastErr is the most recent error tag observed (latest-error-wins).
// lastErr survives into the result only when no attempt succeeded.
func Summarize(target Target, attempts, successful int, latenciesMs []float64, lastErr string) TargetResult {
	res := TargetResult{
		Host:            target.Host,
		Port:            target.Port,
		Type:            target.Type,
		Attempts:        attempts,
		Successful:      successful,
		SuccessRate:     float64(successful) / float64(attempts),
		ResponseTimesMs: latenciesMs,
	}

	if successful > 0 {
		var sum float64
		for _, ms := range latenciesMs {
			sum += ms
		}
		res.AvgResponseMs = sum / float64(len(latenciesMs))
	}

	switch successful {
	case attempts:
		res.Status = StatusUp
	case 0:
		res.Status = StatusDown
		res.Err = lastErr
	default:
		res.Status = StatusPartial
	}
	return res
}
