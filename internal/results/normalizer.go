package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"benchgate/internal/metric"
)

// ErrUnknownShape marks a document that parsed as JSON but matched none of
// the recognized result formats. Callers skip the file with a warning
// instead of aborting the batch.
var ErrUnknownShape = errors.New("unrecognized values format")

// phase is the per-phase statistics object used by CPU benchmark results.
// Pointer fields distinguish "absent" from zero so that source-supplied
// statistics are never recomputed and overwritten.
type phase struct {
	Values []float64 `json:"values"`
	Median *float64  `json:"median"`
	Mean   *float64  `json:"mean"`
	StdDev *float64  `json:"stddev"`
}

// Parse normalizes one raw result document into a Record.
//
// Recognized shapes, probed in order:
//  1. "values" is a flat number array (legacy format): the array is the
//     sample list.
//  2. "values" is a keyed object: the "total" key is preferred (composite
//     CPU benchmarks), falling back to "DEFAULT" (memory/startup
//     benchmarks). The chosen entry is either a statistics object with a
//     nested sample array, or a bare sample array.
//
// Precomputed median/mean/stddev supplied by the source are used verbatim;
// only absent fields are recomputed from the samples.
func Parse(data []byte, stem string) (metric.Record, error) {
	var doc struct {
		Values json.RawMessage `json:"values"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return metric.Record{}, fmt.Errorf("invalid result document: %w", err)
	}
	if len(doc.Values) == 0 {
		return metric.Record{}, ErrUnknownShape
	}

	name := DeriveName(stem)

	// Legacy format: values is directly an array of samples.
	var flat []float64
	if err := json.Unmarshal(doc.Values, &flat); err == nil {
		return metric.FromSamples(name, flat, metric.Milliseconds), nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(doc.Values, &keyed); err != nil {
		return metric.Record{}, fmt.Errorf("values is neither an array nor an object: %w", err)
	}

	entry, ok := keyed["total"]
	if !ok {
		entry, ok = keyed["DEFAULT"]
	}
	if !ok {
		return metric.Record{}, ErrUnknownShape
	}

	return parsePhase(name, entry)
}

func parsePhase(name string, raw json.RawMessage) (metric.Record, error) {
	// The entry may itself be a bare sample array.
	var flat []float64
	if err := json.Unmarshal(raw, &flat); err == nil {
		return metric.FromSamples(name, flat, metric.Milliseconds), nil
	}

	var ph phase
	if err := json.Unmarshal(raw, &ph); err != nil {
		return metric.Record{}, fmt.Errorf("invalid phase entry: %w", err)
	}

	rec := metric.Record{
		Name:   name,
		Median: metric.Median(ph.Values),
		Mean:   metric.Mean(ph.Values),
		StdDev: metric.StdDev(ph.Values),
		Values: ph.Values,
		Unit:   metric.Milliseconds,
	}
	// Source-supplied statistics win over recomputation.
	if ph.Median != nil {
		rec.Median = *ph.Median
	}
	if ph.Mean != nil {
		rec.Mean = *ph.Mean
	}
	if ph.StdDev != nil {
		rec.StdDev = *ph.StdDev
	}
	return rec, nil
}

// DeriveName extracts the benchmark name from a result file's stem.
// Producers write files as <framework>_<benchmark>.json; everything up to
// and including the first underscore is the producer prefix. A stem without
// an underscore is used unmodified.
func DeriveName(stem string) string {
	if i := strings.Index(stem, "_"); i >= 0 {
		return stem[i+1:]
	}
	return stem
}

// Stem returns the file's base name without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
