package throughput

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MalformedRow_Skipped(t *testing.T) {
	// GIVEN rows where the middle value is not numeric
	input := "1.0 1000\n2.0 bad\n3.0 3000\n"

	// WHEN loaded
	series, err := Load(strings.NewReader(input))

	// THEN only the two numeric rows survive, in file order
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, 1.0, series[0].Time)
	assert.Equal(t, 1000.0, series[0].Value)
	assert.Equal(t, 3.0, series[1].Time)
	assert.Equal(t, 3000.0, series[1].Value)
}

func TestLoad_ShortAndBlankRows_Skipped(t *testing.T) {
	input := "\n0.5\nx 10\n0.5 10 extra\n"
	series, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, 0.5, series[0].Time)
	assert.Equal(t, 10.0, series[0].Value)
}

func TestLoad_UnsortedInput_OrderAndDuplicatesPreserved(t *testing.T) {
	input := "3 30\n1 10\n1 10\n"
	series, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 1}, series.Times())
	assert.Equal(t, []float64{30, 10, 10}, series.Values())
}

func TestLoadFile_MissingFile_EmptySeriesNoError(t *testing.T) {
	series, err := LoadFile(filepath.Join(t.TempDir(), "absent.tr"))
	require.NoError(t, err)
	assert.NotNil(t, series)
	assert.Empty(t, series)
}

func TestLoadFile_ExistingFile_Loaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tcp_throughput.tr")
	require.NoError(t, os.WriteFile(path, []byte("0.1 800\n0.2 1600\n"), 0o644))

	series, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, 1200.0, series.Mean())
}
