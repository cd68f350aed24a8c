package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"benchgate/internal/compare"
)

// MarkdownTable renders baseline comparisons as a markdown table, one row
// per benchmark in name order. Every comparison appears, not only the
// failing ones, so the report stays auditable.
func MarkdownTable(comparisons []compare.Comparison) string {
	var b strings.Builder
	b.WriteString("| Benchmark | Baseline | Current | Diff | Status |\n")
	b.WriteString("|-----------|----------|---------|------|--------|\n")

	for _, c := range comparisons {
		var status string
		switch c.Direction {
		case compare.Regression:
			status = "🔴 REGRESSION"
		case compare.Improvement:
			status = "🟢 Improved"
		default:
			status = "⚪ OK"
		}
		fmt.Fprintf(&b, "| %s | %.1fms | %.1fms | %s | %s |\n",
			c.Name, c.Baseline, c.Current, FormatPercent(c.DiffPercent), status)
	}
	return b.String()
}

// WriteGateTable prints a same-job comparison table and returns the
// passed/failed tally. Comparisons arrive already sorted by name.
func WriteGateTable(w io.Writer, title string, comparisons []compare.Comparison) (passed, failed int) {
	if len(comparisons) == 0 {
		fmt.Fprintf(w, "\n%s: No benchmarks to compare\n", title)
		return 0, 0
	}

	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "BENCHMARK\tBASELINE\tCURRENT\tCHANGE\tSTATUS")
	for _, c := range comparisons {
		status := "✓ PASS"
		if !c.Passed {
			status = "✗ FAIL"
			failed++
		} else {
			passed++
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			Truncate(c.Name, 40),
			FormatValue(c.Baseline, c.Unit),
			FormatValue(c.Current, c.Unit),
			FormatPercent(c.DiffPercent),
			status)
	}
	tw.Flush()
	return passed, failed
}
