package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"benchgate/internal/results"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_WritesAllocationEntries(t *testing.T) {
	dir := t.TempDir()
	report := map[string]any{
		"Title": "Abies.Benchmarks.RenderingBenchmarks",
		"Benchmarks": []map[string]any{
			{
				"Method":   "RenderPage",
				"FullName": "Abies.Benchmarks.RenderingBenchmarks.RenderPage",
				"Memory": map[string]any{
					"BytesAllocatedPerOperation": 2048.0,
					"Gen0Collections":            1.5,
				},
			},
		},
	}
	data, err := json.Marshal(report)
	require.NoError(t, err)
	input := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(input, data, 0644))

	output := filepath.Join(dir, "allocations.json")
	out, err := executeCommand(rootCmd, "extract", input, output)

	require.NoError(t, err)
	assert.Contains(t, out, "Extracted 1 allocation entries")

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	var entries []results.AllocationEntry
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "RenderPage", entries[0].Name)
	assert.Equal(t, 2048.0, entries[0].Value)
	assert.Equal(t, "bytes", entries[0].Unit)
	assert.Contains(t, entries[0].Extra, "Gen0: 1.5")
}

func TestExtract_InvalidReport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(input, []byte("{broken"), 0644))

	_, err := executeCommand(rootCmd, "extract", input, filepath.Join(dir, "out.json"))
	assert.Error(t, err)
}
