package results

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Report is a parsed BenchmarkDotNet JSON report. Only the fields the gate
// reads are typed; merge operations work on the raw document instead so
// unknown fields survive a round trip.
type Report struct {
	Title      string      `json:"Title"`
	Benchmarks []Benchmark `json:"Benchmarks"`
}

// Benchmark is one entry of a BenchmarkDotNet report.
type Benchmark struct {
	Method     string      `json:"Method"`
	FullName   string      `json:"FullName"`
	Statistics *Statistics `json:"Statistics"`
	Memory     *Memory     `json:"Memory"`
}

// Statistics carries the precomputed timing summary, in nanoseconds.
type Statistics struct {
	Mean   float64 `json:"Mean"`
	Median float64 `json:"Median"`
	StdDev float64 `json:"StandardDeviation"`
}

// Memory carries the allocation summary for one benchmark.
type Memory struct {
	BytesAllocatedPerOperation float64 `json:"BytesAllocatedPerOperation"`
	Gen0Collections            float64 `json:"Gen0Collections"`
	Gen1Collections            float64 `json:"Gen1Collections"`
	Gen2Collections            float64 `json:"Gen2Collections"`
}

// AllocationEntry is the customSmallerIsBetter format consumed by
// github-action-benchmark.
type AllocationEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Extra string  `json:"extra,omitempty"`
}

// LoadThroughput reads a merged BenchmarkDotNet report and returns mean
// nanoseconds per operation keyed by method name. A missing file yields an
// empty map: one side may legitimately have no throughput data.
// Entries without a positive mean are dropped.
func LoadThroughput(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]float64{}, nil
		}
		return nil, err
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("invalid benchmark report %s: %w", path, err)
	}

	metrics := make(map[string]float64)
	for _, b := range report.Benchmarks {
		if b.Statistics == nil || b.Statistics.Mean <= 0 {
			continue
		}
		metrics[b.Method] = b.Statistics.Mean
	}
	return metrics, nil
}

// LoadAllocations reads a customSmallerIsBetter file and returns values
// keyed by benchmark name. A missing file yields an empty map.
func LoadAllocations(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]float64{}, nil
		}
		return nil, err
	}

	var entries []AllocationEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid allocations file %s: %w", path, err)
	}

	metrics := make(map[string]float64)
	for _, e := range entries {
		metrics[e.Name] = e.Value
	}
	return metrics, nil
}

// ExtractAllocations converts a full BenchmarkDotNet report into
// customSmallerIsBetter entries. Names are simplified to the last segment
// of the fully qualified name; GC generation counts are preserved as extra
// context when non-zero.
func ExtractAllocations(report Report) []AllocationEntry {
	entries := make([]AllocationEntry, 0, len(report.Benchmarks))
	for _, b := range report.Benchmarks {
		name := b.FullName
		if name == "" {
			name = b.Method
		}
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}

		entry := AllocationEntry{
			Name: name,
			Unit: "bytes",
		}
		if b.Memory != nil {
			entry.Value = b.Memory.BytesAllocatedPerOperation
			entry.Extra = gcExtra(b.Memory, "%g")
		}
		entries = append(entries, entry)
	}
	return entries
}

func gcExtra(m *Memory, format string) string {
	var parts []string
	for _, gen := range []struct {
		label string
		count float64
	}{
		{"Gen0", m.Gen0Collections},
		{"Gen1", m.Gen1Collections},
		{"Gen2", m.Gen2Collections},
	} {
		if gen.count > 0 {
			parts = append(parts, fmt.Sprintf("%s: "+format, gen.label, gen.count))
		}
	}
	return strings.Join(parts, ", ")
}
