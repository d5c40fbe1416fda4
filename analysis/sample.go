// analysis/sample.go
package analysis

import (
	"github.com/influxdata/tdigest"
	"golang.org/x/exp/constraints"
)

// Sample is one (time, value) point. Used for RTT, delay, jitter and throughput.
type Sample struct {
	Time  float64
	Value float64
}

// Series holds samples in trace arrival order; it is not sorted by time.
type Series []Sample

// Times returns the time column.
func (s Series) Times() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Time
	}
	return out
}

// Values returns the value column.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Mean is the arithmetic mean of the values; 0 for an empty series.
func (s Series) Mean() float64 {
	return CalculateMean(s.Values())
}

// Quantile estimates the q-th quantile (0..1) of the values with a t-digest.
// Returns 0 for an empty series.
func (s Series) Quantile(q float64) float64 {
	if len(s) == 0 {
		return 0
	}
	td := tdigest.NewWithCompression(100)
	for _, p := range s {
		td.Add(p.Value, 1)
	}
	return td.Quantile(q)
}

// CalculateMean returns the mean of a data list, or exactly 0 when it is empty.
func CalculateMean[T constraints.Integer | constraints.Float](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}

	return sum / float64(len(numbers))
}
