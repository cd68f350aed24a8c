package compare

import (
	"sort"

	"benchgate/internal/metric"
)

// Direction classifies how a metric moved relative to its reference.
type Direction string

const (
	Regression  Direction = "regression"
	Improvement Direction = "improvement"
	Neutral     Direction = "neutral"
)

// Comparison is the verdict for one benchmark name present in both the
// current and reference sets. It is derived per report and never persisted.
type Comparison struct {
	Name        string
	Baseline    float64
	Current     float64
	Ratio       float64 // current / baseline
	DiffPercent float64 // (current - baseline) / baseline * 100
	Threshold   float64
	Passed      bool
	Direction   Direction
	Unit        metric.Unit
}

// Config carries the threshold policy for one gate run. Thresholds are
// explicit inputs, not package state.
type Config struct {
	// DeltaThreshold is expressed in percentage points: a benchmark
	// regresses when it is more than this much slower than baseline.
	DeltaThreshold float64
	// ThroughputThreshold and AllocationThreshold are ratio percentages:
	// 110 means the current value may be at most 10% larger than baseline.
	ThroughputThreshold float64
	AllocationThreshold float64
}

// Delta compares current records against baseline values using the
// delta-percent policy: diff = (current-baseline)/baseline*100, regression
// when diff exceeds the threshold, improvement when it undercuts the
// negated threshold. Names missing from either side and non-positive
// baseline values are excluded, not failed. Output is ordered by name.
func Delta(current map[string]metric.Record, base map[string]float64, threshold float64) []Comparison {
	names := make([]string, 0, len(current))
	for name := range current {
		names = append(names, name)
	}
	sort.Strings(names)

	var comparisons []Comparison
	for _, name := range names {
		baseValue, ok := base[name]
		if !ok || baseValue <= 0 {
			continue
		}
		rec := current[name]
		diff := (rec.Median - baseValue) / baseValue * 100

		comp := Comparison{
			Name:        name,
			Baseline:    baseValue,
			Current:     rec.Median,
			Ratio:       rec.Median / baseValue,
			DiffPercent: diff,
			Threshold:   threshold,
			Direction:   Neutral,
			Passed:      true,
			Unit:        rec.Unit,
		}
		switch {
		case diff > threshold:
			comp.Direction = Regression
			comp.Passed = false
		case diff < -threshold:
			comp.Direction = Improvement
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

// Ratio compares two value maps using the ratio-percent policy:
// ratioPercent = current/baseline*100, passing while it stays at or below
// thresholdPercent. Time and allocation metrics share the same
// larger-is-worse semantics, so no per-unit sign handling exists. Only the
// name intersection is compared; non-positive baselines are skipped.
func Ratio(base, current map[string]float64, thresholdPercent float64, unit metric.Unit) []Comparison {
	names := make([]string, 0, len(base))
	for name := range base {
		if _, ok := current[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var comparisons []Comparison
	for _, name := range names {
		baseValue := base[name]
		if baseValue <= 0 {
			continue
		}
		curValue := current[name]
		ratio := curValue / baseValue
		ratioPercent := ratio * 100
		passed := ratioPercent <= thresholdPercent

		comp := Comparison{
			Name:        name,
			Baseline:    baseValue,
			Current:     curValue,
			Ratio:       ratio,
			DiffPercent: (ratio - 1) * 100,
			Threshold:   thresholdPercent,
			Passed:      passed,
			Direction:   Neutral,
			Unit:        unit,
		}
		if !passed {
			comp.Direction = Regression
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

// Failed counts the comparisons that broke their threshold.
func Failed(comparisons []Comparison) int {
	n := 0
	for _, c := range comparisons {
		if !c.Passed {
			n++
		}
	}
	return n
}

// Regressions filters comparisons classified as regressions.
func Regressions(comparisons []Comparison) []Comparison {
	var out []Comparison
	for _, c := range comparisons {
		if c.Direction == Regression {
			out = append(out, c)
		}
	}
	return out
}

// Improvements filters comparisons classified as improvements.
func Improvements(comparisons []Comparison) []Comparison {
	var out []Comparison
	for _, c := range comparisons {
		if c.Direction == Improvement {
			out = append(out, c)
		}
	}
	return out
}
