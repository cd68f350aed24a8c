package triage

import "regexp"

// Category is the triage bucket for one test result.
type Category string

const (
	CategoryPassed    Category = "passed"
	CategoryTimeout   Category = "timeout"
	CategoryAssertion Category = "assertion"
	CategoryUnknown   Category = "unknown"
)

// rule pairs a category with the patterns that select it. Rules are
// evaluated in order and the first match wins: timeouts run before
// assertions because a timed-out wait often quotes the assertion it was
// waiting on, and that text must not reclassify the failure.
type rule struct {
	category Category
	patterns []*regexp.Regexp
}

var rules = []rule{
	{CategoryTimeout, compilePatterns(
		`TimeoutException`,
		`Timeout.*exceeded`,
		`timeout.*ms`,
		`waiting for.*timed out`,
		`Timeout \d+ms exceeded`,
		`Page\..*\(\).*Timeout`,
		`locator.*timeout`,
	)},
	{CategoryAssertion, compilePatterns(
		`Expected.*but.*got`,
		`Expected.*to.*but`,
		`Assert\.`,
		`AssertionException`,
		`ToBeVisible.*failed`,
		`ToHaveText.*failed`,
		`ToContain.*failed`,
		`Expected true but was false`,
		`Expected false but was true`,
	)},
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return compiled
}

// Classify assigns a failure category from the result's message and stack
// trace. It is a pure function: passed results are passed, matched rules
// win in order, and anything unmatched lands in the unknown bucket so it
// can never slip through the gate unnoticed.
func Classify(outcome, message, stackTrace string) Category {
	if outcome == "Passed" {
		return CategoryPassed
	}

	combined := message + " " + stackTrace
	for _, r := range rules {
		for _, re := range r.patterns {
			if re.MatchString(combined) {
				return r.category
			}
		}
	}
	return CategoryUnknown
}
