package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_model/go"
	"github.com/rs/zerolog/log"
)

// MetricsRegistry holds all Prometheus metrics for the caution service.
type MetricsRegistry struct {
	// Request metrics
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Query layer metrics
	CautionQueries    *prometheus.CounterVec
	PersonaSelections *prometheus.CounterVec
}

// Query result labels for CautionQueries.
const (
	QueryResultSuccess   = "success"
	QueryResultNoPersona = "no_persona"
	QueryResultError     = "error"
)

// NewMetricsRegistry creates and registers all caution service metrics.
func NewMetricsRegistry() *MetricsRegistry {
	registry := &MetricsRegistry{
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cautiond_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
			[]string{"endpoint", "status"},
		),
		RequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "cautiond_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		CautionQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cautiond_caution_queries_total",
				Help: "Caution feed queries by result",
			},
			[]string{"result"},
		),
		PersonaSelections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cautiond_persona_selections_total",
				Help: "Persona selections by persona slug",
			},
			[]string{"persona"},
		),
	}

	return registry
}

// register exposes the registry's collectors to the default Prometheus
// gatherer. Called once, from InitializeMetrics.
func (m *MetricsRegistry) register() {
	prometheus.MustRegister(
		m.RequestDuration,
		m.RequestsInFlight,
		m.CautionQueries,
		m.PersonaSelections,
	)
}

// RecordQuery counts one caution feed query with the given result label.
func (m *MetricsRegistry) RecordQuery(result string) {
	m.CautionQueries.WithLabelValues(result).Inc()
}

// RecordSelection counts one persona selection.
func (m *MetricsRegistry) RecordSelection(persona string) {
	m.PersonaSelections.WithLabelValues(persona).Inc()
}

// QuerySummary is a JSON snapshot of the query counters, exposed on
// /metrics/summary for clients that do not scrape Prometheus.
type QuerySummary struct {
	Success   float64 `json:"success"`
	NoPersona float64 `json:"no_persona"`
	Errors    float64 `json:"errors"`
}

// Summary reads the query counters back out of the registry.
func (m *MetricsRegistry) Summary() QuerySummary {
	return QuerySummary{
		Success:   m.counterValue(QueryResultSuccess),
		NoPersona: m.counterValue(QueryResultNoPersona),
		Errors:    m.counterValue(QueryResultError),
	}
}

// counterValue extracts the current value of one CautionQueries label.
func (m *MetricsRegistry) counterValue(result string) float64 {
	counter, err := m.CautionQueries.GetMetricWithLabelValues(result)
	if err != nil {
		return 0
	}
	metric := &io_prometheus_client.Metric{}
	if err := counter.Write(metric); err != nil {
		return 0
	}
	return metric.GetCounter().GetValue()
}

// MetricsHandler returns the Prometheus scrape handler.
func (m *MetricsRegistry) MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the global metrics registry instance.
var DefaultMetrics *MetricsRegistry

// InitializeMetrics initializes and registers the global metrics registry.
func InitializeMetrics() {
	DefaultMetrics = NewMetricsRegistry()
	DefaultMetrics.register()
	log.Info().Msg("Prometheus metrics registry initialized")
}
