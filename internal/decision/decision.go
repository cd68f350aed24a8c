// Package decision turns classified results into the single pass/fail
// outcome a CI pipeline acts on.
package decision

// Reason is the machine-readable tag explaining a gate outcome. The CLI
// maps it to a process exit code.
type Reason string

const (
	ReasonOK                Reason = "ok"
	ReasonRegression        Reason = "regression"
	ReasonAssertionFailures Reason = "assertion-failures"
	ReasonUnknownFailures   Reason = "unknown-failures"
	ReasonTimeoutStrict     Reason = "timeout-strict"
	// ReasonNoResults marks a structural failure: nothing to compare is
	// distinct from a comparison that found a regression.
	ReasonNoResults Reason = "no-results"
)

// Decision is the aggregate outcome of one gate run.
type Decision struct {
	Pass   bool
	Reason Reason
}

// ExitCode maps the decision to the conventional CI exit codes: 0 pass,
// 1 policy failure, 2 structural error.
func (d Decision) ExitCode() int {
	if d.Pass {
		return 0
	}
	if d.Reason == ReasonNoResults {
		return 2
	}
	return 1
}

// FromTestCounts applies the test-path policy in strict precedence order:
// assertion failures always fail; unclassified failures fail as a
// fail-safe; timeouts fail only under strict mode; anything else passes.
// A report with zero failed tests passes outright.
func FromTestCounts(failed, assertion, unknown, timeout int, strict bool) Decision {
	if failed == 0 {
		return Decision{Pass: true, Reason: ReasonOK}
	}
	if assertion > 0 {
		return Decision{Pass: false, Reason: ReasonAssertionFailures}
	}
	if unknown > 0 {
		return Decision{Pass: false, Reason: ReasonUnknownFailures}
	}
	if timeout > 0 {
		if strict {
			return Decision{Pass: false, Reason: ReasonTimeoutStrict}
		}
		return Decision{Pass: true, Reason: ReasonOK}
	}
	// Failed tests that produced no categorized failures: fail safe.
	return Decision{Pass: false, Reason: ReasonUnknownFailures}
}

// FromComparisons applies the benchmark-path policy: any comparison that
// broke its threshold fails the run.
func FromComparisons(failed int) Decision {
	if failed > 0 {
		return Decision{Pass: false, Reason: ReasonRegression}
	}
	return Decision{Pass: true, Reason: ReasonOK}
}

// NoResults is the structural failure for a run with nothing to report.
func NoResults() Decision {
	return Decision{Pass: false, Reason: ReasonNoResults}
}
