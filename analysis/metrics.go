// Per-protocol results of one pass over a trace file.

package analysis

// FlowMetrics is the handoff from the flow engine to aggregation and reporting.
type FlowMetrics struct {
	Protocol string // display name, e.g. "TCP"

	RTT    Series // round trip at the origin node
	Delay  Series // one way, origin to far end
	Jitter Series // |delay[i] - delay[i-1]|, stamped at delay[i]

	CalculatedThroughput float64 // TotalBytesSent / ObservedTimeSpan, bytes/s
	SentPackets          int
	ReceivedPackets      int     // counted at the RTT receiver only
	LastPacketSize       int     // size of the most recent send; diagnostic only
	TotalBytesSent       int64   // sum of send sizes
	ObservedTimeSpan     float64 // max - min time over all decoded lines
	PacketLossPercent    float64

	// Throughput is the externally measured series attached after the pass.
	Throughput Series

	SkippedLines int // lines with fewer than the required fields
}

// NewFlowMetrics returns empty metrics with non-nil series.
func NewFlowMetrics(protocol string) *FlowMetrics {
	return &FlowMetrics{
		Protocol:   protocol,
		RTT:        Series{},
		Delay:      Series{},
		Jitter:     Series{},
		Throughput: Series{},
	}
}

// AttachThroughput sets the external throughput series; nil becomes empty.
func (m *FlowMetrics) AttachThroughput(s Series) {
	if s == nil {
		s = Series{}
	}
	m.Throughput = s
}

// PacketLoss returns (sent - received) / sent * 100, or 0 if nothing was sent.
func PacketLoss(sent, received int) float64 {
	if sent <= 0 {
		return 0
	}
	return float64(sent-received) / float64(sent) * 100
}
