package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingestion pipeline.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec // labels: endpoint={objects,approaches}, outcome={live,mock,invalid}
	FallbackServed  *prometheus.CounterVec // labels: feed={catalog,neo}, reason={unauthenticated,upstream_unavailable,malformed_response}
	ObjectsReturned prometheus.Histogram

	// Upstream fetch metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: feed={catalog,neo}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: feed={catalog,neo}
	CacheLookups     *prometheus.CounterVec   // labels: feed={catalog,neo}, result={hit,miss}

	Ready prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "space_pipeline",
			Name:      "requests_total",
			Help:      "Pipeline requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		FallbackServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "space_pipeline",
			Name:      "fallback_served_total",
			Help:      "Mock-data substitutions by feed and failure reason.",
		}, []string{"feed", "reason"}),
		ObjectsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "space_pipeline",
			Name:      "objects_returned",
			Help:      "Number of entities in a served envelope.",
			Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "space_pipeline",
			Name:      "upstream_requests_total",
			Help:      "Upstream feed fetches by feed and outcome.",
		}, []string{"feed", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "space_pipeline",
			Name:      "upstream_duration_seconds",
			Help:      "Upstream feed fetch duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"feed"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "space_pipeline",
			Name:      "cache_lookups_total",
			Help:      "Upstream response cache lookups by feed and result.",
		}, []string{"feed", "result"}),
		Ready: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "space_pipeline",
			Name:      "ready",
			Help:      "1 when the service can produce envelopes, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RequestsTotal,
		m.FallbackServed,
		m.ObjectsReturned,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.CacheLookups,
		m.Ready,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RequestsTotal:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "space_pipeline", Name: "requests_total"}, []string{"endpoint", "outcome"}),
		FallbackServed:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "space_pipeline", Name: "fallback_served_total"}, []string{"feed", "reason"}),
		ObjectsReturned:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "space_pipeline", Name: "objects_returned"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "space_pipeline", Name: "upstream_requests_total"}, []string{"feed", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "space_pipeline", Name: "upstream_duration_seconds"}, []string{"feed"}),
		CacheLookups:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "space_pipeline", Name: "cache_lookups_total"}, []string{"feed", "result"}),
		Ready:            prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "space_pipeline", Name: "ready"}),
	}
}
