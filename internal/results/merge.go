package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SuiteReport pairs a suite prefix with the raw bytes of that suite's
// BenchmarkDotNet report.
type SuiteReport struct {
	Suite string
	Data  []byte
}

// FindSuiteReports discovers per-suite BenchmarkDotNet reports below
// baseDir, expecting the layout <suite>/results/*-report-full-compressed.json.
// Suites are returned in lexical order with their directory name
// capitalized as the prefix.
func FindSuiteReports(baseDir string) ([]SuiteReport, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, err
	}

	var suites []SuiteReport
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(baseDir, e.Name(), "results", "*-report-full-compressed.json"))
		if err != nil || len(matches) == 0 {
			continue
		}
		sort.Strings(matches)
		data, err := os.ReadFile(matches[0])
		if err != nil {
			return nil, fmt.Errorf("reading suite report %s: %w", matches[0], err)
		}
		suites = append(suites, SuiteReport{Suite: capitalize(e.Name()), Data: data})
	}
	sort.Slice(suites, func(i, j int) bool { return suites[i].Suite < suites[j].Suite })
	return suites, nil
}

// MergeSuites combines per-suite reports into a single BenchmarkDotNet
// document plus customSmallerIsBetter allocation entries. Benchmark names
// are prefixed "<Suite>/<Method>" so merged suites cannot collide. Fields
// the gate does not understand are carried through untouched; the first
// suite's HostEnvironmentInfo serves as the template for the merged report.
func MergeSuites(title, namespace string, suites []SuiteReport) ([]byte, []AllocationEntry, error) {
	var merged []map[string]json.RawMessage
	var allocations []AllocationEntry
	var hostInfo json.RawMessage

	for _, s := range suites {
		var doc struct {
			HostEnvironmentInfo json.RawMessage              `json:"HostEnvironmentInfo"`
			Benchmarks          []map[string]json.RawMessage `json:"Benchmarks"`
		}
		if err := json.Unmarshal(s.Data, &doc); err != nil {
			return nil, nil, fmt.Errorf("invalid report for suite %s: %w", s.Suite, err)
		}
		if hostInfo == nil {
			hostInfo = doc.HostEnvironmentInfo
		}

		for _, b := range doc.Benchmarks {
			method := "Unknown"
			if raw, ok := b["Method"]; ok {
				_ = json.Unmarshal(raw, &method)
			}
			fullName := s.Suite + "/" + method

			b["Method"], _ = json.Marshal(fullName)
			if namespace != "" {
				b["FullName"], _ = json.Marshal(namespace + "." + fullName)
			}
			merged = append(merged, b)

			entry := AllocationEntry{Name: fullName, Unit: "bytes"}
			if raw, ok := b["Memory"]; ok {
				var mem Memory
				if json.Unmarshal(raw, &mem) == nil {
					entry.Value = mem.BytesAllocatedPerOperation
					entry.Extra = gcExtra(&mem, "%.4f")
				}
			}
			allocations = append(allocations, entry)
		}
	}

	out := struct {
		Title               string                         `json:"Title"`
		HostEnvironmentInfo json.RawMessage                `json:"HostEnvironmentInfo,omitempty"`
		Benchmarks          []map[string]json.RawMessage   `json:"Benchmarks"`
	}{
		Title:               title,
		HostEnvironmentInfo: hostInfo,
		Benchmarks:          merged,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal merged report: %w", err)
	}
	return data, allocations, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
