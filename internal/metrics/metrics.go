// Package metrics records generation statistics and writes them in the
// Prometheus text format for node_exporter's textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/user/errnogen/internal/codegen"
)

// Generation holds the gauges for one errnogen run.
type Generation struct {
	registry *prometheus.Registry

	Entries     prometheus.Gauge
	Skipped     prometheus.Gauge
	Duration    prometheus.Gauge
	LastSuccess prometheus.Gauge
}

// NewGeneration creates the gauges on a private registry. output labels
// every series so several generated headers can share one textfile dir.
func NewGeneration(output string) *Generation {
	labels := prometheus.Labels{"output": output}
	m := &Generation{
		registry: prometheus.NewRegistry(),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "errnogen_entries",
			Help:        "Number of error constants written to the generated header.",
			ConstLabels: labels,
		}),
		Skipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "errnogen_skipped_entries",
			Help:        "Number of source names skipped (no E prefix or duplicate).",
			ConstLabels: labels,
		}),
		Duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "errnogen_duration_seconds",
			Help:        "Time taken to load and render the error table.",
			ConstLabels: labels,
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "errnogen_last_success_timestamp_seconds",
			Help:        "Unix time of the last successful generation.",
			ConstLabels: labels,
		}),
	}
	m.registry.MustRegister(m.Entries, m.Skipped, m.Duration, m.LastSuccess)
	return m
}

// Observe records a successful generation finished at now.
func (m *Generation) Observe(result *codegen.Result, now time.Time) {
	m.Entries.Set(float64(result.Count))
	m.Skipped.Set(float64(result.Skipped))
	m.Duration.Set(result.Duration.Seconds())
	m.LastSuccess.Set(float64(now.Unix()))
}

// Gatherer exposes the private registry.
func (m *Generation) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile atomically writes all gauges to path.
func (m *Generation) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
