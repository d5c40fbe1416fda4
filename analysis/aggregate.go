package analysis

// ProtocolSummary holds the averaged view of one protocol's FlowMetrics.
type ProtocolSummary struct {
	Protocol string

	MeanRTT    float64
	MeanDelay  float64
	MeanJitter float64

	RTTP50   float64
	RTTP95   float64
	DelayP50 float64
	DelayP95 float64

	CalculatedThroughput  float64 // bytes/s, from the trace
	MeasuredThroughput    float64 // mean of the external series, else CalculatedThroughput
	HasMeasuredThroughput bool    // true when MeasuredThroughput came from the external series

	SentPackets       int
	ReceivedPackets   int
	PacketLossPercent float64
	ObservedTimeSpan  float64
}

// AggregateReport compares protocols in the order they were analysed.
type AggregateReport struct {
	Protocols []ProtocolSummary
}

// Lookup returns the summary for a protocol name.
func (r *AggregateReport) Lookup(protocol string) (ProtocolSummary, bool) {
	for _, p := range r.Protocols {
		if p.Protocol == protocol {
			return p, true
		}
	}
	return ProtocolSummary{}, false
}

// SummarizeFlow averages one protocol's metrics. The input is not modified.
// Safe for nil (returns zero-value fields).
func SummarizeFlow(m *FlowMetrics) ProtocolSummary {
	if m == nil {
		return ProtocolSummary{}
	}
	s := ProtocolSummary{
		Protocol:             m.Protocol,
		MeanRTT:              m.RTT.Mean(),
		MeanDelay:            m.Delay.Mean(),
		MeanJitter:           m.Jitter.Mean(),
		RTTP50:               m.RTT.Quantile(0.5),
		RTTP95:               m.RTT.Quantile(0.95),
		DelayP50:             m.Delay.Quantile(0.5),
		DelayP95:             m.Delay.Quantile(0.95),
		CalculatedThroughput: m.CalculatedThroughput,
		MeasuredThroughput:   m.CalculatedThroughput,
		SentPackets:          m.SentPackets,
		ReceivedPackets:      m.ReceivedPackets,
		PacketLossPercent:    m.PacketLossPercent,
		ObservedTimeSpan:     m.ObservedTimeSpan,
	}
	if len(m.Throughput) > 0 {
		s.MeasuredThroughput = m.Throughput.Mean()
		s.HasMeasuredThroughput = true
	}
	return s
}

// Summarize builds the comparison report from per-protocol metrics.
func Summarize(flows []*FlowMetrics) *AggregateReport {
	report := &AggregateReport{
		Protocols: make([]ProtocolSummary, 0, len(flows)),
	}
	for _, m := range flows {
		report.Protocols = append(report.Protocols, SummarizeFlow(m))
	}
	return report
}
