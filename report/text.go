// Package report renders aggregated flow metrics as text, JSON, CSV tables and charts.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/netsim-lab/tracecomp/analysis"
)

const rule = "=================================================="

// WriteText prints the comparison summary. flows may be nil; when present it
// supplies the per-protocol last packet size and skipped-line counts.
func WriteText(w io.Writer, report *analysis.AggregateReport, flows []*analysis.FlowMetrics) error {
	b := &strings.Builder{}
	fmt.Fprintln(b)
	fmt.Fprintln(b, rule)
	fmt.Fprintln(b, "PERFORMANCE METRICS COMPARISON")
	fmt.Fprintln(b, rule)

	for i, p := range report.Protocols {
		fmt.Fprintf(b, "\n%s Metrics:\n", p.Protocol)
		fmt.Fprintf(b, "Average RTT          : %.4f s (p50 %.4f, p95 %.4f)\n", p.MeanRTT, p.RTTP50, p.RTTP95)
		fmt.Fprintf(b, "Average Jitter       : %.4f s\n", p.MeanJitter)
		fmt.Fprintf(b, "Average Delay        : %.4f s (p50 %.4f, p95 %.4f)\n", p.MeanDelay, p.DelayP50, p.DelayP95)
		if p.HasMeasuredThroughput {
			fmt.Fprintf(b, "Measured Throughput  : %s (%.2f Kbps)\n",
				humanize.SIWithDigits(p.MeasuredThroughput, 2, "bit/s"), p.MeasuredThroughput/1024)
		}
		fmt.Fprintf(b, "Calculated Throughput: %s (%.2f KB/s)\n",
			humanize.SIWithDigits(p.CalculatedThroughput, 2, "B/s"), p.CalculatedThroughput/1024)
		fmt.Fprintf(b, "Sent Packets         : %d\n", p.SentPackets)
		fmt.Fprintf(b, "Received Packets     : %d\n", p.ReceivedPackets)
		fmt.Fprintf(b, "Packet Loss          : %.2f%%\n", p.PacketLossPercent)
		fmt.Fprintf(b, "Total Time           : %.4f s\n", p.ObservedTimeSpan)
		if i < len(flows) && flows[i] != nil {
			f := flows[i]
			fmt.Fprintf(b, "Bytes Sent           : %s (last packet %s)\n",
				humanize.Bytes(uint64(f.TotalBytesSent)), humanize.Bytes(uint64(f.LastPacketSize)))
			if f.SkippedLines > 0 {
				fmt.Fprintf(b, "Skipped Lines        : %s\n", humanize.Comma(int64(f.SkippedLines)))
			}
		}
	}

	scores := Scores(report)
	if len(scores) > 1 {
		fmt.Fprintf(b, "\nRelative Scores (higher is better):\n")
		fmt.Fprintf(b, "%-10s %10s %10s %10s %10s\n", "Protocol", "Throughput", "RTT", "Delay", "Jitter")
		for _, s := range scores {
			fmt.Fprintf(b, "%-10s %10.2f %10.2f %10.2f %10.2f\n", s.Protocol, s.Throughput, s.RTT, s.Delay, s.Jitter)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
