package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trxHeader = `<?xml version="1.0" encoding="utf-8"?>
<TestRun xmlns="http://microsoft.com/schemas/VisualStudio/TeamTest/2010">
  <Results>`

const trxFooter = `  </Results>
</TestRun>`

func writeTRX(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.trx")
	require.NoError(t, os.WriteFile(path, []byte(trxHeader+body+trxFooter), 0644))
	return path
}

func TestAnalyze_AllPassed(t *testing.T) {
	path := writeTRX(t, `
    <UnitTestResult testName="CounterIncrements" outcome="Passed" />
    <UnitTestResult testName="TodoAdds" outcome="Passed" />`)

	out, err := executeCommand(rootCmd, "analyze", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Total Tests: 2")
	assert.Contains(t, out, "All tests passed!")
}

func TestAnalyze_AssertionFailureFails(t *testing.T) {
	path := writeTRX(t, `
    <UnitTestResult testName="CounterIncrements" outcome="Failed">
      <Output><ErrorInfo><Message>Assert.Equal failed: Expected true but was false</Message></ErrorInfo></Output>
    </UnitTestResult>`)

	out, code := executeCommandExit(rootCmd, "analyze", path)

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "1 assertion failure(s)")
	assert.Contains(t, out, "CounterIncrements")
}

func TestAnalyze_TimeoutLenientPasses(t *testing.T) {
	path := writeTRX(t, `
    <UnitTestResult testName="PageLoads" outcome="Failed">
      <Output><ErrorInfo><Message>Timeout 30000ms exceeded while waiting for selector</Message></ErrorInfo></Output>
    </UnitTestResult>`)

	out, err := executeCommand(rootCmd, "analyze", path)

	require.NoError(t, err)
	assert.Contains(t, out, "timeout failure(s)")
	assert.Contains(t, out, "build passes in lenient mode")
}

func TestAnalyze_TimeoutStrictFails(t *testing.T) {
	path := writeTRX(t, `
    <UnitTestResult testName="PageLoads" outcome="Failed">
      <Output><ErrorInfo><Message>Timeout 30000ms exceeded while waiting for selector</Message></ErrorInfo></Output>
    </UnitTestResult>`)

	out, code := executeCommandExit(rootCmd, "analyze", path, "--strict")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "strict mode")
}

func TestAnalyze_UnknownFailureFailsSafe(t *testing.T) {
	path := writeTRX(t, `
    <UnitTestResult testName="Mystery" outcome="Failed">
      <Output><ErrorInfo><Message>The process crashed unexpectedly</Message></ErrorInfo></Output>
    </UnitTestResult>`)

	out, code := executeCommandExit(rootCmd, "analyze", path)

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "unclassified failure(s)")
}

func TestAnalyze_MissingFileExitsTwo(t *testing.T) {
	out, code := executeCommandExit(rootCmd, "analyze", "/no/such/file.trx")

	assert.Equal(t, 2, code)
	assert.Contains(t, out, "not found")
}

func TestAnalyze_EmptyReportExitsTwo(t *testing.T) {
	path := writeTRX(t, "")

	out, code := executeCommandExit(rootCmd, "analyze", path)

	assert.Equal(t, 2, code)
	assert.Contains(t, out, "No test results found")
}
