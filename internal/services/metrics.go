package services

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the screening pipelines.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	llmRequests *prometheus.CounterVec
	llmDuration *prometheus.HistogramVec
	extractions *prometheus.CounterVec
	batchItems  *prometheus.CounterVec
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "screener_llm_requests_total",
			Help: "Structured LLM calls by schema and outcome.",
		}, []string{"schema", "outcome"}),
		llmDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "screener_llm_request_duration_seconds",
			Help:    "Latency of structured LLM calls.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		}, []string{"schema"}),
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "screener_extractions_total",
			Help: "Document text extractions by outcome.",
		}, []string{"outcome"}),
		batchItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "screener_batch_items_total",
			Help: "Batch screening items by outcome.",
		}, []string{"outcome"}),
	}

	registry.MustRegister(m.llmRequests, m.llmDuration, m.extractions, m.batchItems)
	return m
}

func (m *Metrics) ObserveLLM(schema, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.llmRequests.WithLabelValues(schema, outcome).Inc()
	m.llmDuration.WithLabelValues(schema).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveExtraction(outcome string) {
	if m == nil {
		return
	}
	m.extractions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveBatchItem(outcome string) {
	if m == nil {
		return
	}
	m.batchItems.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
