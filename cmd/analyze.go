package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/netsim-lab/tracecomp/analysis"
	"github.com/netsim-lab/tracecomp/analysis/throughput"
	"github.com/netsim-lab/tracecomp/report"
)

// OutputOptions selects which artifacts are written next to the text summary.
type OutputOptions struct {
	JSON   bool
	CSV    bool
	Charts bool
}

// ErrTraceMissing is returned when a primary trace file does not exist.
var ErrTraceMissing = errors.New("trace file not found")

// checkTraces verifies every primary trace exists before any parsing starts.
func checkTraces(cfg RunConfig) error {
	for _, p := range cfg.Protocols {
		if _, err := os.Stat(p.Trace); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%s %s: %w", p.Name, p.Trace, ErrTraceMissing)
			}
			return fmt.Errorf("checking %s trace: %w", p.Name, err)
		}
	}
	return nil
}

// analyzeFlows parses every configured trace and attaches its throughput series.
// Per-file failures are logged and degrade to empty metrics.
func analyzeFlows(cfg RunConfig) []*analysis.FlowMetrics {
	flows := make([]*analysis.FlowMetrics, 0, len(cfg.Protocols))
	for _, p := range cfg.Protocols {
		logrus.Infof("Parsing %s trace file: %s", p.Name, p.Trace)
		m, err := analysis.ParseTraceFile(p.Trace, cfg.EngineConfig(p))
		if err != nil {
			logrus.Errorf("%s trace: %v", p.Name, err)
			m = analysis.NewFlowMetrics(p.Name)
		}
		m.Protocol = p.Name

		series := analysis.Series{}
		if p.Throughput != "" {
			logrus.Infof("Parsing %s throughput file: %s", p.Name, p.Throughput)
			series, err = throughput.LoadFile(p.Throughput)
			if err != nil {
				logrus.Errorf("%s throughput: %v", p.Name, err)
				series = analysis.Series{}
			}
		}
		m.AttachThroughput(series)
		flows = append(flows, m)
	}
	return flows
}

// runAnalysis is the whole analyze pipeline. It only fails for run-fatal
// conditions: invalid config, a missing primary trace, or unwritable output.
func runAnalysis(cfg RunConfig, opts OutputOptions, stdout io.Writer) (*analysis.AggregateReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}
	if err := checkTraces(cfg); err != nil {
		return nil, err
	}

	flows := analyzeFlows(cfg)
	summary := analysis.Summarize(flows)

	if err := report.WriteText(stdout, summary, flows); err != nil {
		return summary, fmt.Errorf("writing summary: %w", err)
	}

	if opts.JSON {
		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			return summary, fmt.Errorf("creating output dir: %w", err)
		}
		path := filepath.Join(cfg.OutDir, "summary.json")
		if err := writeJSONFile(path, summary); err != nil {
			return summary, err
		}
		logrus.Infof("Saved %s", path)
	}
	if opts.CSV {
		if _, err := report.WriteSeriesCSV(cfg.OutDir, flows); err != nil {
			return summary, err
		}
	}
	if opts.Charts {
		if _, err := report.RenderCharts(cfg.OutDir, flows, summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func writeJSONFile(path string, summary *analysis.AggregateReport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := report.WriteJSON(file, summary); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
