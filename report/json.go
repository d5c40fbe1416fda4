package report

import (
	"fmt"
	"io"

	"github.com/francoispqt/gojay"

	"github.com/netsim-lab/tracecomp/analysis"
)

type protocolJSON analysis.ProtocolSummary

func (p protocolJSON) IsNil() bool { return false }
func (p protocolJSON) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("protocol", p.Protocol)
	enc.Float64Key("rtt_mean_s", p.MeanRTT)
	enc.Float64Key("rtt_p50_s", p.RTTP50)
	enc.Float64Key("rtt_p95_s", p.RTTP95)
	enc.Float64Key("delay_mean_s", p.MeanDelay)
	enc.Float64Key("delay_p50_s", p.DelayP50)
	enc.Float64Key("delay_p95_s", p.DelayP95)
	enc.Float64Key("jitter_mean_s", p.MeanJitter)
	enc.Float64Key("throughput_calculated_bps", p.CalculatedThroughput)
	if p.HasMeasuredThroughput {
		enc.Float64Key("throughput_measured_bitps", p.MeasuredThroughput)
	}
	enc.IntKey("sent_packets", p.SentPackets)
	enc.IntKey("received_packets", p.ReceivedPackets)
	enc.Float64Key("packet_loss_percent", p.PacketLossPercent)
	enc.Float64Key("total_time_s", p.ObservedTimeSpan)
}

type protocolsJSON []analysis.ProtocolSummary

func (ps protocolsJSON) IsNil() bool { return ps == nil }
func (ps protocolsJSON) MarshalJSONArray(enc *gojay.Encoder) {
	for _, p := range ps {
		enc.Object(protocolJSON(p))
	}
}

type scoreJSON Score

func (s scoreJSON) IsNil() bool { return false }
func (s scoreJSON) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("protocol", s.Protocol)
	enc.Float64Key("throughput", s.Throughput)
	enc.Float64Key("rtt", s.RTT)
	enc.Float64Key("delay", s.Delay)
	enc.Float64Key("jitter", s.Jitter)
}

type scoresJSON []Score

func (ss scoresJSON) IsNil() bool { return ss == nil }
func (ss scoresJSON) MarshalJSONArray(enc *gojay.Encoder) {
	for _, s := range ss {
		enc.Object(scoreJSON(s))
	}
}

type reportJSON struct {
	report *analysis.AggregateReport
}

func (r reportJSON) IsNil() bool { return r.report == nil }
func (r reportJSON) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ArrayKey("protocols", protocolsJSON(r.report.Protocols))
	enc.ArrayKey("scores", scoresJSON(Scores(r.report)))
}

// WriteJSON encodes the report, including relative scores, as one JSON object.
func WriteJSON(w io.Writer, report *analysis.AggregateReport) error {
	if report == nil {
		report = &analysis.AggregateReport{}
	}
	enc := gojay.NewEncoder(w)
	if err := enc.EncodeObject(reportJSON{report: report}); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if _, err := w.Write([]byte{'\n'}); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
