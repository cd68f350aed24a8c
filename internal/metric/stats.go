package metric

import (
	"math"
	"sort"
)

// Median returns the lower-middle element of the sorted samples
// (sorted[len/2]). For even-length inputs this is intentionally not the
// interpolated median: historical baselines were recorded with this
// estimator and switching would silently shift every recorded threshold.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

// Mean returns the arithmetic mean, or 0 for an empty sample set.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the sample standard deviation (N-1 denominator).
// Fewer than two samples have no spread, so the result is 0.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
