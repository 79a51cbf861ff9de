// Package metrics exposes Prometheus metrics for analysis runs, cache
// traffic, and the HTTP API.
//
// A [Registry] implements the three hook interfaces of pkg/observability,
// so wiring it up is a matter of registering it:
//
//	reg := metrics.NewRegistry()
//	observability.SetAnalysisHooks(reg)
//	observability.SetCacheHooks(reg)
//	observability.SetServerHooks(reg)
//	router.Handle("/metrics", reg.Handler())
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every netvalue metric on its own Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	AnalysisNodes    *prometheus.HistogramVec
	AnalysesInFlight prometheus.Gauge

	CacheEventsTotal *prometheus.CounterVec
	CacheBytesStored *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewRegistry creates a registry with all metrics initialized, plus the
// Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{registry: reg}
	r.initAnalysisMetrics()
	r.initCacheMetrics()
	r.initHTTPMetrics()
	return r
}

// Prometheus returns the underlying Prometheus registry.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Registry) initAnalysisMetrics() {
	r.AnalysesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netvalue_analyses_total",
			Help: "Total number of analysis runs",
		},
		[]string{"kind", "status"},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netvalue_analysis_duration_seconds",
			Help:    "Analysis run duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"kind"},
	)

	r.AnalysisNodes = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netvalue_analysis_nodes",
			Help:    "Number of nodes in analysed graphs",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		},
		[]string{"kind"},
	)

	r.AnalysesInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netvalue_analyses_in_flight",
			Help: "Number of analysis runs currently executing",
		},
	)
}

func (r *Registry) initCacheMetrics() {
	r.CacheEventsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netvalue_cache_events_total",
			Help: "Cache hits, misses and writes by key type",
		},
		[]string{"event", "key_type"},
	)

	r.CacheBytesStored = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netvalue_cache_bytes_stored_total",
			Help: "Bytes written to the cache by key type",
		},
		[]string{"key_type"},
	)
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netvalue_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netvalue_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
}
