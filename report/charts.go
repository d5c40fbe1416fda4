package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/netsim-lab/tracecomp/analysis"
)

const (
	chartWidth  = 1000
	chartHeight = 600
)

// palette is cycled per protocol, in analysis order.
var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("ff7f0e"),
}

func lineStyle(i int) chart.Style {
	return chart.Style{
		StrokeColor: palette[i%len(palette)].WithAlpha(180),
		StrokeWidth: 1.5,
	}
}

// seriesChart describes one comparison plot over a FlowMetrics series.
type seriesChart struct {
	file   string
	title  string
	yName  string
	pick   func(*analysis.FlowMetrics) analysis.Series
	mean   func(analysis.ProtocolSummary) float64
	scale  float64 // divides values before plotting
	legend string  // printf format for the legend average
}

var seriesCharts = []seriesChart{
	{
		file: "rtt_comparison.png", title: "Round Trip Time (RTT) Comparison", yName: "RTT (seconds)",
		pick:  func(m *analysis.FlowMetrics) analysis.Series { return m.RTT },
		mean:  func(p analysis.ProtocolSummary) float64 { return p.MeanRTT },
		scale: 1, legend: "%s RTT (avg: %.4fs)",
	},
	{
		file: "jitter_comparison.png", title: "Jitter Comparison", yName: "Jitter (seconds)",
		pick:  func(m *analysis.FlowMetrics) analysis.Series { return m.Jitter },
		mean:  func(p analysis.ProtocolSummary) float64 { return p.MeanJitter },
		scale: 1, legend: "%s Jitter (avg: %.4fs)",
	},
	{
		file: "delay_comparison.png", title: "End-to-End Delay Comparison", yName: "Delay (seconds)",
		pick:  func(m *analysis.FlowMetrics) analysis.Series { return m.Delay },
		mean:  func(p analysis.ProtocolSummary) float64 { return p.MeanDelay },
		scale: 1, legend: "%s Delay (avg: %.4fs)",
	},
	{
		file: "throughput_over_time.png", title: "Throughput Over Time", yName: "Throughput (Kbps)",
		pick:  func(m *analysis.FlowMetrics) analysis.Series { return m.Throughput },
		mean:  func(p analysis.ProtocolSummary) float64 { return p.MeasuredThroughput / 1024 },
		scale: 1024, legend: "%s Throughput (avg: %.2f Kbps)",
	},
}

// RenderCharts writes the comparison PNGs into dir and returns the paths written.
// A chart whose series are all empty is skipped; a chart that fails to render
// is logged and skipped so the remaining charts are still produced.
func RenderCharts(dir string, flows []*analysis.FlowMetrics, report *analysis.AggregateReport) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var written []string
	for _, sc := range seriesCharts {
		ch, ok := buildSeriesChart(sc, flows, report)
		if !ok {
			logrus.Debugf("skipping %s: no samples", sc.file)
			continue
		}
		path := filepath.Join(dir, sc.file)
		if err := renderPNG(path, ch.Render); err != nil {
			logrus.Warnf("chart %s: %v", sc.file, err)
			continue
		}
		logrus.Infof("Saved %s", path)
		written = append(written, path)
	}

	if report != nil && len(report.Protocols) > 0 {
		path := filepath.Join(dir, "avg_throughput_comparison.png")
		bc := buildThroughputBars(report)
		if err := renderPNG(path, bc.Render); err != nil {
			logrus.Warnf("chart %s: %v", filepath.Base(path), err)
		} else {
			logrus.Infof("Saved %s", path)
			written = append(written, path)
		}
	}
	return written, nil
}

func buildSeriesChart(sc seriesChart, flows []*analysis.FlowMetrics, report *analysis.AggregateReport) (chart.Chart, bool) {
	var series []chart.Series
	for i, f := range flows {
		if f == nil {
			continue
		}
		s := sc.pick(f)
		if len(s) == 0 {
			continue
		}
		ys := s.Values()
		for j := range ys {
			ys[j] /= sc.scale
		}
		avg := 0.0
		if report != nil && i < len(report.Protocols) {
			avg = sc.mean(report.Protocols[i])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf(sc.legend, f.Protocol, avg),
			XValues: s.Times(),
			YValues: ys,
			Style:   lineStyle(i),
		})
	}
	if len(series) == 0 {
		return chart.Chart{}, false
	}

	ch := chart.Chart{
		Title:      sc.title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Simulation Time (seconds)"},
		YAxis:      chart.YAxis{Name: sc.yName},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch, true
}

func buildThroughputBars(report *analysis.AggregateReport) chart.BarChart {
	bars := make([]chart.Value, 0, len(report.Protocols))
	for i, p := range report.Protocols {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%.2f)", p.Protocol, BitRate(p)/1024),
			Value: BitRate(p) / 1024,
			Style: chart.Style{
				FillColor:   palette[i%len(palette)].WithAlpha(180),
				StrokeColor: palette[i%len(palette)],
			},
		})
	}
	return chart.BarChart{
		Title:      "Average Throughput Comparison (Kbps)",
		Width:      800,
		Height:     chartHeight,
		BarWidth:   120,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Bars:       bars,
	}
}

func renderPNG(path string, render func(chart.RendererProvider, io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
