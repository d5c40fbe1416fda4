package analysis

import (
	"math"

	"github.com/netsim-lab/tracecomp/analysis/trace"
)

// Engine folds decoded trace events for one protocol tag into FlowMetrics.
// It holds state for a single pass and is not safe for concurrent use.
type Engine struct {
	cfg EngineConfig

	pending map[string]float64 // seq no -> send time; later sends overwrite

	rtt    Series
	delay  Series
	jitter Series

	sent       int
	received   int
	lastSize   int
	totalBytes int64

	seen    bool
	minTime float64
	maxTime float64

	skipped int
}

// NewEngine creates an Engine for cfg. The config is not validated here;
// ParseTrace and ParseTraceFile call cfg.Validate before folding.
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		cfg:     cfg,
		pending: make(map[string]float64),
		rtt:     Series{},
		delay:   Series{},
		jitter:  Series{},
	}
}

// Config returns the engine's configuration.
func (e *Engine) Config() EngineConfig { return e.cfg }

// Observe folds one decoded event into the running state.
// Every event widens the observed time span; only events whose packet type
// matches the protocol tag can produce samples or counts.
func (e *Engine) Observe(ev trace.Event) {
	if !e.seen || ev.Time < e.minTime {
		e.minTime = ev.Time
	}
	if !e.seen || ev.Time > e.maxTime {
		e.maxTime = ev.Time
	}
	e.seen = true

	if ev.PacketType != e.cfg.ProtocolTag {
		return
	}

	switch {
	case ev.Kind == trace.KindEnqueue && ev.Src == e.cfg.OriginNode:
		e.pending[ev.SeqNo] = ev.Time
		e.sent++
		e.totalBytes += int64(ev.Size)
		e.lastSize = ev.Size

	case ev.Kind == trace.KindReceive && ev.Dst == e.cfg.OriginNode:
		sentAt, ok := e.pending[ev.SeqNo]
		if !ok {
			return
		}
		e.rtt = append(e.rtt, Sample{Time: ev.Time, Value: ev.Time - sentAt})
		e.received++
		if e.cfg.Strict {
			delete(e.pending, ev.SeqNo)
		}

	case ev.Kind == trace.KindReceive && ev.Dst == e.cfg.FarEndNode:
		sentAt, ok := e.pending[ev.SeqNo]
		if !ok {
			return
		}
		e.delay = append(e.delay, Sample{Time: ev.Time, Value: ev.Time - sentAt})
		if n := len(e.delay); n > 1 {
			e.jitter = append(e.jitter, Sample{
				Time:  ev.Time,
				Value: math.Abs(e.delay[n-1].Value - e.delay[n-2].Value),
			})
		}
	}
}

// Skip records a line that was too short to decode.
func (e *Engine) Skip() { e.skipped++ }

// Pending returns the number of sequence numbers with a recorded send time.
func (e *Engine) Pending() int { return len(e.pending) }

// Result derives the scalar metrics from the current state.
// The returned series share backing arrays with the engine; callers that keep
// observing must not mutate them.
func (e *Engine) Result() *FlowMetrics {
	m := NewFlowMetrics(e.cfg.ProtocolTag)
	m.RTT = e.rtt
	m.Delay = e.delay
	m.Jitter = e.jitter
	m.SentPackets = e.sent
	m.ReceivedPackets = e.received
	m.LastPacketSize = e.lastSize
	m.TotalBytesSent = e.totalBytes
	m.SkippedLines = e.skipped

	if e.seen {
		m.ObservedTimeSpan = e.maxTime - e.minTime
	}
	if m.ObservedTimeSpan > 0 {
		m.CalculatedThroughput = float64(e.totalBytes) / m.ObservedTimeSpan
	}
	m.PacketLossPercent = PacketLoss(e.sent, e.received)
	return m
}
