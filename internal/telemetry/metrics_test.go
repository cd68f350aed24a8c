package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateMetrics_WriteTextfile(t *testing.T) {
	m := NewGateMetrics()
	m.RecordComparison("delta", true)
	m.RecordComparison("delta", false)
	m.RecordComparison("ratio", true)
	m.RecordFailure("timeout")
	m.SetPassed(false)

	path := filepath.Join(t.TempDir(), "benchgate.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `benchgate_comparisons_total{policy="delta"} 2`)
	assert.Contains(t, out, `benchgate_regressions_total{policy="delta"} 1`)
	assert.Contains(t, out, `benchgate_comparisons_total{policy="ratio"} 1`)
	assert.Contains(t, out, `benchgate_test_failures_total{category="timeout"} 1`)
	assert.Contains(t, out, "benchgate_passed 0")
}

func TestGateMetrics_SetPassed(t *testing.T) {
	m := NewGateMetrics()
	m.SetPassed(true)

	path := filepath.Join(t.TempDir(), "benchgate.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "benchgate_passed 1")
}
