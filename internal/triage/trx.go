package triage

import (
	"encoding/xml"
	"fmt"
)

// TestResult is one classified test outcome from a TRX report.
type TestResult struct {
	Name       string
	Outcome    string
	Message    string
	StackTrace string
	Category   Category
}

// Counts aggregates outcomes and failure categories for one report.
type Counts struct {
	Total     int
	Passed    int
	Failed    int
	Timeout   int
	Assertion int
	Unknown   int
}

type trxFile struct {
	XMLName xml.Name    `xml:"TestRun"`
	Results []trxResult `xml:"Results>UnitTestResult"`
}

type trxResult struct {
	TestName string `xml:"testName,attr"`
	Outcome  string `xml:"outcome,attr"`
	Output   struct {
		ErrorInfo struct {
			Message    string `xml:"Message"`
			StackTrace string `xml:"StackTrace"`
		} `xml:"ErrorInfo"`
	} `xml:"Output"`
}

// ParseTRX extracts and classifies every UnitTestResult from a Visual
// Studio TRX document. Results keep document order; counts are derived in
// the same pass.
func ParseTRX(data []byte) ([]TestResult, Counts, error) {
	var file trxFile
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, Counts{}, fmt.Errorf("invalid TRX document: %w", err)
	}

	results := make([]TestResult, 0, len(file.Results))
	var counts Counts
	for _, r := range file.Results {
		name := r.TestName
		if name == "" {
			name = "Unknown"
		}
		outcome := r.Outcome
		if outcome == "" {
			outcome = "Unknown"
		}

		result := TestResult{
			Name:       name,
			Outcome:    outcome,
			Message:    r.Output.ErrorInfo.Message,
			StackTrace: r.Output.ErrorInfo.StackTrace,
		}
		result.Category = Classify(result.Outcome, result.Message, result.StackTrace)
		results = append(results, result)

		counts.Total++
		switch result.Outcome {
		case "Passed":
			counts.Passed++
		case "Failed":
			counts.Failed++
		}
		switch result.Category {
		case CategoryTimeout:
			counts.Timeout++
		case CategoryAssertion:
			counts.Assertion++
		case CategoryUnknown:
			counts.Unknown++
		}
	}
	return results, counts, nil
}

// Failures returns the results that did not pass, optionally restricted to
// one category. An empty category selects all failures.
func Failures(results []TestResult, category Category) []TestResult {
	var out []TestResult
	for _, r := range results {
		if r.Outcome == "Passed" {
			continue
		}
		if category != "" && r.Category != category {
			continue
		}
		out = append(out, r)
	}
	return out
}
