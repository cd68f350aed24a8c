package report

import (
	"fmt"

	"benchgate/internal/metric"
)

// FormatValue renders a metric value with a unit scaled for humans.
func FormatValue(value float64, unit metric.Unit) string {
	switch unit {
	case metric.Nanoseconds:
		switch {
		case value >= 1e9:
			return fmt.Sprintf("%.2f s", value/1e9)
		case value >= 1e6:
			return fmt.Sprintf("%.2f ms", value/1e6)
		case value >= 1e3:
			return fmt.Sprintf("%.2f μs", value/1e3)
		default:
			return fmt.Sprintf("%.2f ns", value)
		}
	case metric.Bytes:
		switch {
		case value >= 1<<30:
			return fmt.Sprintf("%.2f GiB", value/(1<<30))
		case value >= 1<<20:
			return fmt.Sprintf("%.2f MiB", value/(1<<20))
		case value >= 1<<10:
			return fmt.Sprintf("%.2f KiB", value/(1<<10))
		default:
			return fmt.Sprintf("%.0f B", value)
		}
	default:
		return fmt.Sprintf("%.2f %s", value, unit)
	}
}

// FormatPercent renders a signed percentage with one decimal.
func FormatPercent(p float64) string {
	if p > 0 {
		return fmt.Sprintf("+%.1f%%", p)
	}
	return fmt.Sprintf("%.1f%%", p)
}

// Truncate shortens long benchmark names for fixed-width tables.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-2] + ".."
}
