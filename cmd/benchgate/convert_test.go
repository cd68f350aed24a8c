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

func TestConvert_WritesBenchmarkFormat(t *testing.T) {
	dir := t.TempDir()
	resultsDir := filepath.Join(dir, "results")
	require.NoError(t, os.Mkdir(resultsDir, 0755))
	writeResultFile(t, resultsDir, "01_run1k", []float64{90, 95, 92.5})
	writeResultFile(t, resultsDir, "02_replace1k", []float64{120, 118, 119})

	output := filepath.Join(dir, "out", "benchmark.json")
	out, err := executeCommand(rootCmd, "convert",
		"--results-dir", resultsDir,
		"--output", output)

	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 results")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var entries []results.AllocationEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, "01_run1k", entries[0].Name)
	assert.Equal(t, "ms", entries[0].Unit)
	assert.Equal(t, 92.5, entries[0].Value)
	assert.Contains(t, entries[0].Extra, "samples: 3")
	assert.Equal(t, "02_replace1k", entries[1].Name)
	assert.Equal(t, 119.0, entries[1].Value)
}

func TestConvert_NoResultsExitsTwo(t *testing.T) {
	dir := t.TempDir()

	out, code := executeCommandExit(rootCmd, "convert",
		"--results-dir", dir,
		"--output", filepath.Join(dir, "out.json"))

	assert.Equal(t, 2, code)
	assert.Contains(t, out, "No result files found")
}
