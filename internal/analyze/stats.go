package analyze

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics for one numeric column.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
}

// Summarize computes descriptive statistics via gonum. An empty input
// yields a zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		N:      len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P25:    stat.Quantile(0.25, stat.Empirical, sorted, nil),
		P75:    stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}

// Bin is one bucket of a histogram: [Low, High) except the last bin, which
// is closed on both ends.
type Bin struct {
	Low  float64
	High float64
	N    int
}

// Histogram distributes values into the given number of uniform buckets.
// Empty input or a non-positive bin count yields an empty result. A constant
// series collapses into a single bucket.
func Histogram(values []float64, bins int) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if min == max {
		return []Bin{{Low: min, High: max, N: len(values)}}
	}

	out := make([]Bin, bins)
	width := (max - min) / float64(bins)
	for i := range out {
		out[i].Low = min + float64(i)*width
		out[i].High = min + float64(i+1)*width
	}
	out[bins-1].High = max

	for _, v := range values {
		i := int((v - min) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].N++
	}
	return out
}

// Correlation computes the Pearson correlation coefficient of two equal
// length series. Fewer than two points, or a zero-variance series, yields
// zero rather than NaN so downstream reporting stays printable.
func Correlation(xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) {
		return 0, fmt.Errorf("series length mismatch: %d vs %d", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return 0, nil
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0, nil
	}
	return r, nil
}
