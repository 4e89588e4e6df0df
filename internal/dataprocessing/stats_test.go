package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSample(t *testing.T) {
	t.Run("empty sample", func(t *testing.T) {
		var s sample
		assert.Equal(t, 0.0, s.mean())
		assert.Equal(t, 0.0, s.median())
		assert.Equal(t, 0.0, s.stddev())
	})

	t.Run("mean and median", func(t *testing.T) {
		var s sample
		for _, v := range []float64{10, 20, 60} {
			s.add(v)
		}
		assert.InDelta(t, 30, s.mean(), 0.001)
		assert.InDelta(t, 20, s.median(), 0.001)
	})

	t.Run("even count median averages the middle pair", func(t *testing.T) {
		var s sample
		for _, v := range []float64{40, 10, 30, 20} {
			s.add(v)
		}
		assert.InDelta(t, 25, s.median(), 0.001)
	})

	t.Run("median does not mutate insertion order", func(t *testing.T) {
		var s sample
		for _, v := range []float64{3, 1, 2} {
			s.add(v)
		}
		_ = s.median()
		assert.Equal(t, []float64{3, 1, 2}, s.values)
	})

	t.Run("sample standard deviation", func(t *testing.T) {
		var s sample
		for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
			s.add(v)
		}
		// n-1 denominator
		assert.InDelta(t, 2.138, s.stddev(), 0.001)
	})

	t.Run("single value has zero deviation", func(t *testing.T) {
		var s sample
		s.add(42)
		assert.Equal(t, 0.0, s.stddev())
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 13.46, round2(13.456))
	assert.Equal(t, 13.45, round2(13.454))
	assert.Equal(t, -2.5, round2(-2.499))
	assert.Equal(t, 0.0, round2(0))
}
