package analysis

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/netsim-lab/tracecomp/analysis/trace"
)

// maxLineBytes bounds a single trace line; ns-2 lines are well under 1 KiB.
const maxLineBytes = 1 << 20

// ParseTrace folds every line of r through an Engine for cfg.
// Short lines are skipped. A line with an unparsable time aborts the pass:
// the returned metrics are empty and the error names the line number.
func ParseTrace(r io.Reader, cfg EngineConfig) (*FlowMetrics, error) {
	if err := cfg.Validate(); err != nil {
		return NewFlowMetrics(cfg.ProtocolTag), fmt.Errorf("invalid engine config: %w", err)
	}

	engine := NewEngine(cfg)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		ev, ok, err := trace.DecodeLine(scanner.Text())
		if err != nil {
			return NewFlowMetrics(cfg.ProtocolTag), fmt.Errorf("line %d: %w", lineNo, err)
		}
		if !ok {
			engine.Skip()
			continue
		}
		engine.Observe(ev)
	}
	if err := scanner.Err(); err != nil {
		return NewFlowMetrics(cfg.ProtocolTag), fmt.Errorf("reading trace: %w", err)
	}

	m := engine.Result()
	logrus.Debugf("trace %q: %d lines, %d skipped, %d sent, %d received, %d pending",
		cfg.ProtocolTag, lineNo, m.SkippedLines, m.SentPackets, m.ReceivedPackets, engine.Pending())
	return m, nil
}

// ParseTraceFile opens path and runs ParseTrace over it.
// A missing file is not an error: it yields empty metrics and a warning.
func ParseTraceFile(path string, cfg EngineConfig) (*FlowMetrics, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logrus.Warnf("trace file %s not found", path)
			return NewFlowMetrics(cfg.ProtocolTag), nil
		}
		return NewFlowMetrics(cfg.ProtocolTag), fmt.Errorf("opening trace file: %w", err)
	}
	defer func() { _ = file.Close() }()

	m, err := ParseTrace(file, cfg)
	if err != nil {
		return m, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}
