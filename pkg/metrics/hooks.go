package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/matzehuels/netvalue/pkg/observability"
)

// OnAnalysisStart tracks an analysis in flight.
func (r *Registry) OnAnalysisStart(_ context.Context, kind string, nodeCount int) {
	r.AnalysesInFlight.Inc()
	r.AnalysisNodes.WithLabelValues(kind).Observe(float64(nodeCount))
}

// OnAnalysisComplete records the outcome and duration of an analysis.
func (r *Registry) OnAnalysisComplete(_ context.Context, kind string, _ int, duration time.Duration, err error) {
	r.AnalysesInFlight.Dec()
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.AnalysesTotal.WithLabelValues(kind, status).Inc()
	r.AnalysisDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// OnCacheHit records a cache hit.
func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheEventsTotal.WithLabelValues("hit", keyType).Inc()
}

// OnCacheMiss records a cache miss.
func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheEventsTotal.WithLabelValues("miss", keyType).Inc()
}

// OnCacheSet records a cache write.
func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheEventsTotal.WithLabelValues("set", keyType).Inc()
	r.CacheBytesStored.WithLabelValues(keyType).Add(float64(size))
}

// OnRequest records an HTTP request.
func (r *Registry) OnRequest(_ context.Context, method, route string, status int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

var (
	_ observability.AnalysisHooks = (*Registry)(nil)
	_ observability.CacheHooks    = (*Registry)(nil)
	_ observability.ServerHooks   = (*Registry)(nil)
)
