package analysis

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netsim-lab/tracecomp/analysis/trace"
	"github.com/netsim-lab/tracecomp/internal/testutil"
)

func TestParseTraceFile_DumbbellFixture_TCP(t *testing.T) {
	// GIVEN the dumbbell fixture with two TCP sends and one round trip
	path := testutil.FixturePath(t, "dumbbell.tr")

	// WHEN parsed for the tcp tag
	m, err := ParseTraceFile(path, DefaultEngineConfig("tcp"))
	require.NoError(t, err)

	// THEN counters, series and derived scalars match the fixture
	assert.Equal(t, 2, m.SentPackets)
	assert.Equal(t, 1, m.ReceivedPackets)
	assert.Equal(t, int64(2000), m.TotalBytesSent)
	assert.Equal(t, 1000, m.LastPacketSize)
	assert.Equal(t, 50.0, m.PacketLossPercent)
	assert.Equal(t, 2.0, m.ObservedTimeSpan, "5-field line at t=5.0 must not widen the span")
	assert.Equal(t, 1000.0, m.CalculatedThroughput)
	assert.Equal(t, 1, m.SkippedLines)

	require.Len(t, m.RTT, 1)
	assert.Equal(t, Sample{Time: 1.0, Value: 1.0}, m.RTT[0])
	require.Len(t, m.Delay, 2)
	testutil.AssertFloat64Equal(t, "delay[0]", 0.3, m.Delay[0].Value, 1e-9)
	testutil.AssertFloat64Equal(t, "delay[1]", 0.4, m.Delay[1].Value, 1e-9)
	require.Len(t, m.Jitter, 1)
	testutil.AssertFloat64Equal(t, "jitter[0]", 0.1, m.Jitter[0].Value, 1e-9)
	assert.Equal(t, 0.9, m.Jitter[0].Time)
}

func TestParseTraceFile_DumbbellFixture_CBR(t *testing.T) {
	path := testutil.FixturePath(t, "dumbbell.tr")
	m, err := ParseTraceFile(path, DefaultEngineConfig("cbr"))
	require.NoError(t, err)

	// the dropped cbr packet never arrives
	assert.Equal(t, 1, m.SentPackets)
	assert.Equal(t, 0, m.ReceivedPackets)
	assert.Equal(t, 100.0, m.PacketLossPercent)
	assert.Equal(t, 2.0, m.ObservedTimeSpan)
	assert.Equal(t, 250.0, m.CalculatedThroughput)
	assert.Empty(t, m.Delay)
}

func TestParseTraceFile_MissingFile_EmptyResultNoError(t *testing.T) {
	m, err := ParseTraceFile(filepath.Join(t.TempDir(), "nope.tr"), DefaultEngineConfig("tcp"))
	require.NoError(t, err)
	assert.Empty(t, m.RTT)
	assert.Empty(t, m.Delay)
	assert.Empty(t, m.Jitter)
	assert.Equal(t, 0, m.SentPackets)
	assert.Equal(t, 0.0, m.ObservedTimeSpan)
	assert.Equal(t, 0.0, m.CalculatedThroughput)
}

func TestParseTrace_BadTime_AbortsFile(t *testing.T) {
	// GIVEN a good send followed by a well-formed line with an unparsable time
	input := strings.Join([]string{
		testutil.Line("+", 0.0, "0", "2", "tcp", 100, "1"),
		"r oops 2 0 tcp 100 ------- 1 100 0.0 1 0",
	}, "\n")

	// WHEN parsed
	m, err := ParseTrace(strings.NewReader(input), DefaultEngineConfig("tcp"))

	// THEN the pass fails with a ParseError on line 2 and the result is empty
	require.Error(t, err)
	var pe *trace.ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, 0, m.SentPackets)
}

func TestParseTrace_ShortLineWithBadTime_Skipped(t *testing.T) {
	// GIVEN a 5-field line whose time is not a number
	input := strings.Join([]string{
		testutil.Line("+", 0.0, "0", "2", "tcp", 100, "1"),
		"r ??? 2 0 tcp",
		testutil.Line("r", 0.5, "2", "0", "tcp", 100, "1"),
	}, "\n")

	// THEN it is skipped without error and does not touch the span
	m, err := ParseTrace(strings.NewReader(input), DefaultEngineConfig("tcp"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, m.ObservedTimeSpan)
	assert.Equal(t, 1, m.SkippedLines)
	assert.Len(t, m.RTT, 1)
}

func TestParseTrace_InvalidConfig_Rejected(t *testing.T) {
	_, err := ParseTrace(strings.NewReader(""), EngineConfig{ProtocolTag: "tcp", OriginNode: "0", FarEndNode: "0"})
	assert.Error(t, err)
}

func TestParseTrace_SpanNeverNegative(t *testing.T) {
	inputs := []string{
		"",
		testutil.Line("+", 7.0, "0", "2", "tcp", 1, "1"),
		testutil.Line("+", 7.0, "0", "2", "tcp", 1, "1") + "\n" + testutil.Line("-", 2.0, "0", "2", "tcp", 1, "1"),
	}
	for _, in := range inputs {
		m, err := ParseTrace(strings.NewReader(in), DefaultEngineConfig("tcp"))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, m.ObservedTimeSpan, 0.0)
	}
}
