package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromTestCounts_Precedence(t *testing.T) {
	tests := []struct {
		name                                 string
		failed, assertion, unknown, timeout  int
		strict                               bool
		wantPass                             bool
		wantReason                           Reason
	}{
		{"all passed", 0, 0, 0, 0, false, true, ReasonOK},
		{"assertion always fails", 3, 1, 1, 2, false, false, ReasonAssertionFailures},
		{"assertion beats timeout even in lenient mode", 2, 1, 0, 1, false, false, ReasonAssertionFailures},
		{"unknown fails safe", 2, 0, 1, 1, false, false, ReasonUnknownFailures},
		{"timeout tolerated by default", 1, 0, 0, 1, false, true, ReasonOK},
		{"timeout fails under strict", 1, 0, 0, 1, true, false, ReasonTimeoutStrict},
		{"failed but uncategorized fails safe", 1, 0, 0, 0, false, false, ReasonUnknownFailures},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := FromTestCounts(tc.failed, tc.assertion, tc.unknown, tc.timeout, tc.strict)
			assert.Equal(t, tc.wantPass, d.Pass)
			assert.Equal(t, tc.wantReason, d.Reason)
		})
	}
}

func TestFromComparisons(t *testing.T) {
	assert.Equal(t, Decision{Pass: true, Reason: ReasonOK}, FromComparisons(0))
	assert.Equal(t, Decision{Pass: false, Reason: ReasonRegression}, FromComparisons(2))
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, Decision{Pass: true, Reason: ReasonOK}.ExitCode())
	assert.Equal(t, 1, Decision{Pass: false, Reason: ReasonRegression}.ExitCode())
	assert.Equal(t, 1, Decision{Pass: false, Reason: ReasonTimeoutStrict}.ExitCode())
	assert.Equal(t, 2, NoResults().ExitCode())
}
