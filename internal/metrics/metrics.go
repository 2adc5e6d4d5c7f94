package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Ingest outcomes recorded per record.
const (
	OutcomeAdded      = "added"
	OutcomeSkipped    = "skipped"
	OutcomeStoreError = "store_error"
)

// Metrics holds all Prometheus collectors of the service. Each instance owns
// its registry, so tests can create as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	IngestRecords       *prometheus.CounterVec
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers all collectors, including the Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		IngestRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "swift_codes_ingest_records_total",
			Help: "Records processed by batch ingestion, by outcome",
		}, []string{"outcome"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "swift_codes_http_requests_total",
			Help: "HTTP requests served, by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "swift_codes_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// IncrementIngested records one ingest outcome. A nil receiver is a no-op.
func (m *Metrics) IncrementIngested(outcome string) {
	if m == nil {
		return
	}
	m.IngestRecords.WithLabelValues(outcome).Inc()
}

// ObserveRequest records a served HTTP request. A nil receiver is a no-op.
func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
