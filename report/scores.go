package report

import "github.com/netsim-lab/tracecomp/analysis"

// Score is a protocol's standing relative to the others, each axis in [0, 1].
// RTT, Delay and Jitter are inverted so that 1 is best.
type Score struct {
	Protocol   string
	Throughput float64
	RTT        float64
	Delay      float64
	Jitter     float64
}

// BitRate returns the throughput used for cross-protocol comparison in bit/s:
// the measured series mean when present and positive, otherwise the
// calculated byte rate times 8.
func BitRate(p analysis.ProtocolSummary) float64 {
	if p.HasMeasuredThroughput && p.MeasuredThroughput > 0 {
		return p.MeasuredThroughput
	}
	return p.CalculatedThroughput * 8
}

// Scores normalises each protocol against the best value on every axis.
func Scores(report *analysis.AggregateReport) []Score {
	if report == nil {
		return nil
	}
	maxOr1 := func(sel func(analysis.ProtocolSummary) float64) float64 {
		m := 0.0
		for _, p := range report.Protocols {
			if v := sel(p); v > m {
				m = v
			}
		}
		if m <= 0 {
			return 1
		}
		return m
	}
	maxTput := maxOr1(BitRate)
	maxRTT := maxOr1(func(p analysis.ProtocolSummary) float64 { return p.MeanRTT })
	maxDelay := maxOr1(func(p analysis.ProtocolSummary) float64 { return p.MeanDelay })
	maxJitter := maxOr1(func(p analysis.ProtocolSummary) float64 { return p.MeanJitter })

	inverted := func(v, max float64) float64 {
		if v <= 0 {
			return 1
		}
		return 1 - v/max
	}

	scores := make([]Score, 0, len(report.Protocols))
	for _, p := range report.Protocols {
		scores = append(scores, Score{
			Protocol:   p.Protocol,
			Throughput: BitRate(p) / maxTput,
			RTT:        inverted(p.MeanRTT, maxRTT),
			Delay:      inverted(p.MeanDelay, maxDelay),
			Jitter:     inverted(p.MeanJitter, maxJitter),
		})
	}
	return scores
}
