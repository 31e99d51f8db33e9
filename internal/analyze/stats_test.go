package analyze

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	t.Run("known series", func(t *testing.T) {
		s := Summarize([]float64{5, 1, 4, 2, 3})
		assert.Equal(t, 5, s.N)
		assert.InDelta(t, 3.0, s.Mean, 1e-9)
		assert.InDelta(t, 3.0, s.Median, 1e-9)
		assert.InDelta(t, math.Sqrt(2.5), s.StdDev, 1e-9)
		assert.Equal(t, 1.0, s.Min)
		assert.Equal(t, 5.0, s.Max)
	})

	t.Run("input is not reordered", func(t *testing.T) {
		values := []float64{5, 1, 4}
		_ = Summarize(values)
		assert.Equal(t, []float64{5, 1, 4}, values)
	})

	t.Run("single value", func(t *testing.T) {
		s := Summarize([]float64{4.2})
		assert.Equal(t, 1, s.N)
		assert.Equal(t, 4.2, s.Mean)
		assert.Zero(t, s.StdDev)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, Summary{}, Summarize(nil))
	})
}

func TestHistogram(t *testing.T) {
	t.Run("uniform bins", func(t *testing.T) {
		bins := Histogram([]float64{1, 2, 3, 4, 5}, 2)
		require.Len(t, bins, 2)
		assert.Equal(t, 2, bins[0].N) // [1, 3)
		assert.Equal(t, 3, bins[1].N) // [3, 5]
		assert.Equal(t, 1.0, bins[0].Low)
		assert.Equal(t, 5.0, bins[1].High)
	})

	t.Run("max lands in the last bin", func(t *testing.T) {
		bins := Histogram([]float64{0, 10}, 4)
		require.Len(t, bins, 4)
		assert.Equal(t, 1, bins[3].N)
	})

	t.Run("constant series collapses to one bin", func(t *testing.T) {
		bins := Histogram([]float64{4, 4, 4}, 5)
		require.Len(t, bins, 1)
		assert.Equal(t, 3, bins[0].N)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Histogram(nil, 10))
		assert.Empty(t, Histogram([]float64{1}, 0))
	})
}

func TestCorrelation(t *testing.T) {
	t.Run("perfect positive", func(t *testing.T) {
		r, err := Correlation([]float64{1, 2, 3}, []float64{2, 4, 6})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, r, 1e-9)
	})

	t.Run("perfect negative", func(t *testing.T) {
		r, err := Correlation([]float64{1, 2, 3}, []float64{6, 4, 2})
		require.NoError(t, err)
		assert.InDelta(t, -1.0, r, 1e-9)
	})

	t.Run("zero variance yields zero, not NaN", func(t *testing.T) {
		r, err := Correlation([]float64{1, 1, 1}, []float64{2, 4, 6})
		require.NoError(t, err)
		assert.Zero(t, r)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := Correlation([]float64{1}, []float64{1, 2})
		assert.Error(t, err)
	})

	t.Run("too few points", func(t *testing.T) {
		r, err := Correlation([]float64{1}, []float64{2})
		require.NoError(t, err)
		assert.Zero(t, r)
	})
}
