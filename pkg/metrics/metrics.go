// Package metrics exposes prometheus collectors for node runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	rejected    *prometheus.CounterVec
}

// New creates the collectors on a dedicated registry, together with the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexal_node_runs_total",
				Help: "Total number of node runs by final state",
			},
			[]string{"node_type_id", "state"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lexal_node_run_duration_seconds",
				Help:    "Duration of node runs",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"node_type_id"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexal_node_runs_rejected_total",
				Help: "Total number of invocations rejected before a run was created",
			},
			[]string{"node_type_id", "reason"},
		),
	}

	m.registry.MustRegister(
		m.runs,
		m.runDuration,
		m.rejected,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveRun counts a finished run and records how long it took.
func (m *Metrics) ObserveRun(nodeTypeID string, state string, duration time.Duration) {
	m.runs.WithLabelValues(nodeTypeID, state).Inc()
	m.runDuration.WithLabelValues(nodeTypeID).Observe(duration.Seconds())
}

// Rejected counts an invocation refused before execution.
func (m *Metrics) Rejected(nodeTypeID string, reason string) {
	m.rejected.WithLabelValues(nodeTypeID, reason).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
