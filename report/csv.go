package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/netsim-lab/tracecomp/analysis"
)

// WriteSeriesCSV writes one tidy "time,value" table per non-empty series, named
// <protocol>_<series>.csv in dir. It returns the paths written.
func WriteSeriesCSV(dir string, flows []*analysis.FlowMetrics) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	var written []string
	for _, f := range flows {
		if f == nil {
			continue
		}
		tables := []struct {
			name   string
			series analysis.Series
		}{
			{"rtt", f.RTT},
			{"delay", f.Delay},
			{"jitter", f.Jitter},
			{"throughput", f.Throughput},
		}
		for _, tbl := range tables {
			if len(tbl.series) == 0 {
				continue
			}
			path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", strings.ToLower(f.Protocol), tbl.name))
			if err := writeSeries(path, tbl.series); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}
	logrus.Debugf("wrote %d series tables to %s", len(written), dir)
	return written, nil
}

func writeSeries(path string, s analysis.Series) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating series file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"time", "value"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, p := range s {
		row := []string{
			strconv.FormatFloat(p.Time, 'f', -1, 64),
			strconv.FormatFloat(p.Value, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}
