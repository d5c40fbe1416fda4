// Package testutil provides shared test infrastructure for tracecomp.
// It builds synthetic trace lines and resolves fixtures under testdata/.
package testutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Line formats a 12-field trace line with the positional layout the decoder
// expects. Unused columns are filled with placeholders.
func Line(code string, time float64, src, dst, tag string, size int, seq string) string {
	return fmt.Sprintf("%s %g %s %s %s %d ------- 1 %d 0.0 %s 0", code, time, src, dst, tag, size, size, seq)
}

// WriteTrace writes lines to a new file in a temp dir and returns its path.
func WriteTrace(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// FixturePath resolves a file in the repo root testdata/ directory.
// The path is resolved relative to this source file: internal/testutil/ → testdata/.
func FixturePath(t *testing.T, name string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata", name)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Failed to stat fixture %s: %v", name, err)
	}
	return path
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
