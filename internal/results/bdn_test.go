package results

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `{
	"Title": "Abies Benchmarks",
	"HostEnvironmentInfo": {"RuntimeVersion": ".NET 9.0"},
	"Benchmarks": [
		{
			"Method": "DiffLargeTree",
			"FullName": "Abies.Benchmarks.DomDiffingBenchmarks.DiffLargeTree",
			"Statistics": {"Mean": 1500000.0, "Median": 1450000.0},
			"Memory": {"BytesAllocatedPerOperation": 2048, "Gen0Collections": 1.5}
		},
		{
			"Method": "NoStats",
			"Statistics": {"Mean": 0}
		}
	]
}`

func TestLoadThroughput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "throughput.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleReport), 0644))

	metrics, err := LoadThroughput(path)
	require.NoError(t, err)

	// Entries without a positive mean are dropped.
	assert.Len(t, metrics, 1)
	assert.Equal(t, 1500000.0, metrics["DiffLargeTree"])
}

func TestLoadThroughput_MissingFile(t *testing.T) {
	metrics, err := LoadThroughput(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, metrics)
}

func TestLoadAllocations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "allocations.json")
	content := `[{"name": "Diffing/DiffLargeTree", "value": 2048, "unit": "bytes"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	metrics, err := LoadAllocations(path)
	require.NoError(t, err)
	assert.Equal(t, 2048.0, metrics["Diffing/DiffLargeTree"])
}

func TestExtractAllocations(t *testing.T) {
	var report Report
	require.NoError(t, json.Unmarshal([]byte(sampleReport), &report))

	entries := ExtractAllocations(report)
	require.Len(t, entries, 2)

	assert.Equal(t, "DiffLargeTree", entries[0].Name) // namespace stripped
	assert.Equal(t, 2048.0, entries[0].Value)
	assert.Equal(t, "bytes", entries[0].Unit)
	assert.Contains(t, entries[0].Extra, "Gen0: 1.5")

	assert.Equal(t, "NoStats", entries[1].Name)
	assert.Zero(t, entries[1].Value)
}

func TestMergeSuites(t *testing.T) {
	suiteA := []byte(`{
		"HostEnvironmentInfo": {"RuntimeVersion": ".NET 9.0"},
		"Benchmarks": [
			{"Method": "DiffLargeTree", "Statistics": {"Mean": 100.0}, "Memory": {"BytesAllocatedPerOperation": 512, "Gen0Collections": 0.25}}
		]
	}`)
	suiteB := []byte(`{
		"Benchmarks": [
			{"Method": "RenderPage", "Statistics": {"Mean": 200.0}}
		]
	}`)

	merged, allocations, err := MergeSuites("Engine Benchmarks", "Abies.Benchmarks", []SuiteReport{
		{Suite: "Diffing", Data: suiteA},
		{Suite: "Rendering", Data: suiteB},
	})
	require.NoError(t, err)

	var out Report
	require.NoError(t, json.Unmarshal(merged, &out))
	assert.Equal(t, "Engine Benchmarks", out.Title)
	require.Len(t, out.Benchmarks, 2)
	assert.Equal(t, "Diffing/DiffLargeTree", out.Benchmarks[0].Method)
	assert.Equal(t, "Abies.Benchmarks.Diffing/DiffLargeTree", out.Benchmarks[0].FullName)
	assert.Equal(t, "Rendering/RenderPage", out.Benchmarks[1].Method)

	require.Len(t, allocations, 2)
	assert.Equal(t, "Diffing/DiffLargeTree", allocations[0].Name)
	assert.Equal(t, 512.0, allocations[0].Value)
	assert.Equal(t, "Gen0: 0.2500", allocations[0].Extra)
	assert.Zero(t, allocations[1].Value)
}

func TestFindSuiteReports(t *testing.T) {
	base := t.TempDir()
	resultsDir := filepath.Join(base, "diffing", "results")
	require.NoError(t, os.MkdirAll(resultsDir, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(resultsDir, "Abies.Benchmarks.DomDiffingBenchmarks-report-full-compressed.json"),
		[]byte(`{"Benchmarks": []}`), 0644))
	// Directory without a report is ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(base, "empty"), 0755))

	suites, err := FindSuiteReports(base)
	require.NoError(t, err)
	require.Len(t, suites, 1)
	assert.Equal(t, "Diffing", suites[0].Suite)
}
