// Package metrics defines the Prometheus collectors for the ingestion
// pipeline and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for ingest_requests_total.
const (
	OutcomeSuccess     = "success"
	OutcomeRejected    = "rejected"   // guard or empty-content conditions
	OutcomeAIFailure   = "ai_failure"
	OutcomeInvalid     = "validation_failure"
	OutcomePersistFail = "persistence_failure"
)

// Metrics holds all Prometheus collectors for the pipeline.
type Metrics struct {
	IngestsTotal        *prometheus.CounterVec
	StageDuration       *prometheus.HistogramVec
	RatesPersistedTotal prometheus.Counter
	registry            *prometheus.Registry
}

// New creates and registers all pipeline metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		IngestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_requests_total",
				Help: "Total ingestion requests by outcome.",
			},
			[]string{"outcome"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ingest_stage_duration_seconds",
				Help:    "Pipeline stage latency in seconds.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"stage"},
		),
		RatesPersistedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "rates_persisted_total",
				Help: "Total rate records written to the datastore.",
			},
		),
		registry: reg,
	}
	reg.MustRegister(m.IngestsTotal, m.StageDuration, m.RatesPersistedTotal)
	return m
}

// Handler returns the scrape endpoint for this metric set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveOutcome is a nil-safe outcome counter increment.
func (m *Metrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.IngestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveStage is a nil-safe stage latency observation.
func (m *Metrics) ObserveStage(stage string, seconds float64) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(seconds)
}

// AddPersisted is a nil-safe persisted-rows counter increment.
func (m *Metrics) AddPersisted(n int) {
	if m == nil {
		return
	}
	m.RatesPersistedTotal.Add(float64(n))
}
