package dataprocessing

import (
	"math"
	"sort"
)

// sample collects the non-null cell values of one numeric column within a
// group. Values are cell-level, not employee-weighted, matching the
// published summaries.
type sample struct {
	values []float64
	sum    float64
}

func (s *sample) add(v float64) {
	s.values = append(s.values, v)
	s.sum += v
}

func (s *sample) mean() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.sum / float64(len(s.values))
}

func (s *sample) median() float64 {
	n := len(s.values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, s.values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// stddev is the sample standard deviation (n-1 denominator).
func (s *sample) stddev() float64 {
	n := len(s.values)
	if n < 2 {
		return 0
	}
	mean := s.mean()
	var ss float64
	for _, v := range s.values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// round2 rounds to 2 decimal places for stable CSV/JSON output.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
