// Package throughput loads externally generated "time value" throughput files.
package throughput

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/netsim-lab/tracecomp/analysis"
)

// Load reads two whitespace-separated numeric columns per line.
// Rows with fewer than two fields or an unparsable number are skipped.
// File order is preserved.
func Load(r io.Reader) (analysis.Series, error) {
	series := analysis.Series{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			continue
		}
		series = append(series, analysis.Sample{Time: t, Value: v})
	}
	if err := scanner.Err(); err != nil {
		return series, fmt.Errorf("reading throughput series: %w", err)
	}
	return series, nil
}

// LoadFile opens path and runs Load over it.
// A missing file yields an empty series and a warning, not an error.
func LoadFile(path string) (analysis.Series, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logrus.Warnf("throughput file %s not found", path)
			return analysis.Series{}, nil
		}
		return analysis.Series{}, fmt.Errorf("opening throughput file: %w", err)
	}
	defer func() { _ = file.Close() }()

	series, err := Load(file)
	if err != nil {
		return series, fmt.Errorf("loading %s: %w", path, err)
	}
	logrus.Debugf("throughput file %s: %d samples", path, len(series))
	return series, nil
}
