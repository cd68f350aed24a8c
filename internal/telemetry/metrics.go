package telemetry

import (
	"bytes"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// GateMetrics records gate outcomes on a private registry. A single-shot
// CLI has nothing to scrape, so the metrics are written as a textfile for
// the node exporter's textfile collector instead.
type GateMetrics struct {
	ComparisonsTotal *prometheus.CounterVec
	RegressionsTotal *prometheus.CounterVec
	FailuresTotal    *prometheus.CounterVec
	GatePassed       prometheus.Gauge

	registry *prometheus.Registry
}

// NewGateMetrics creates and registers the gate metrics.
func NewGateMetrics() *GateMetrics {
	m := &GateMetrics{registry: prometheus.NewRegistry()}

	m.ComparisonsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchgate_comparisons_total",
			Help: "Total number of benchmark comparisons evaluated",
		},
		[]string{"policy"},
	)
	m.RegressionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchgate_regressions_total",
			Help: "Total number of comparisons that broke their threshold",
		},
		[]string{"policy"},
	)
	m.FailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchgate_test_failures_total",
			Help: "Total number of classified test failures",
		},
		[]string{"category"},
	)
	m.GatePassed = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "benchgate_passed",
			Help: "Whether the gate passed (1) or failed (0)",
		},
	)

	m.registry.MustRegister(
		m.ComparisonsTotal,
		m.RegressionsTotal,
		m.FailuresTotal,
		m.GatePassed,
	)
	return m
}

// RecordComparison counts one evaluated comparison for the given policy.
func (m *GateMetrics) RecordComparison(policy string, passed bool) {
	m.ComparisonsTotal.WithLabelValues(policy).Inc()
	if !passed {
		m.RegressionsTotal.WithLabelValues(policy).Inc()
	}
}

// RecordFailure counts one classified test failure.
func (m *GateMetrics) RecordFailure(category string) {
	m.FailuresTotal.WithLabelValues(category).Inc()
}

// SetPassed records the final gate outcome.
func (m *GateMetrics) SetPassed(ok bool) {
	if ok {
		m.GatePassed.Set(1)
	} else {
		m.GatePassed.Set(0)
	}
}

// WriteTextfile writes all gathered metrics in text exposition format.
func (m *GateMetrics) WriteTextfile(path string) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := encoder.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric family %s: %w", mf.GetName(), err)
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
