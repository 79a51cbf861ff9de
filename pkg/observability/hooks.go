// Package observability lets the analysis runner, the cache layer and the
// HTTP server report events without depending on a metrics backend.
//
// Each event family has an interface and a no-op default. pkg/metrics
// implements all three on top of Prometheus and the serve command installs
// it at startup; the CLI commands keep the defaults:
//
//	reg := metrics.NewRegistry()
//	observability.SetAnalysisHooks(reg)
//	observability.SetCacheHooks(reg)
//	observability.SetServerHooks(reg)
//	defer observability.Reset()
//
// Emitters fetch the current hooks on every event:
//
//	observability.Analysis().OnAnalysisStart(ctx, "shapley", n)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// AnalysisHooks receives one start and one completion event per analysis.
// kind is "label", "metcalfe", "shapley", "exact" or "rank".
type AnalysisHooks interface {
	OnAnalysisStart(ctx context.Context, kind string, nodeCount int)
	OnAnalysisComplete(ctx context.Context, kind string, nodeCount int, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType names the cached
// artifact ("graph", "label", "value").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives one event per HTTP request. route is the matched
// chi pattern, e.g. "/v1/shapley".
type ServerHooks interface {
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

type NoopAnalysisHooks struct{}

func (NoopAnalysisHooks) OnAnalysisStart(context.Context, string, int) {}
func (NoopAnalysisHooks) OnAnalysisComplete(context.Context, string, int, time.Duration, error) {
}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// hookSet is swapped as a whole so readers never see a half-updated set.
type hookSet struct {
	analysis AnalysisHooks
	cache    CacheHooks
	server   ServerHooks
}

func defaults() *hookSet {
	return &hookSet{NoopAnalysisHooks{}, NoopCacheHooks{}, NoopServerHooks{}}
}

var current atomic.Pointer[hookSet]

func init() { current.Store(defaults()) }

// update applies fn to a copy of the current set and installs the copy.
func update(fn func(*hookSet)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetAnalysisHooks installs h. A nil h is ignored.
func SetAnalysisHooks(h AnalysisHooks) {
	if h != nil {
		update(func(s *hookSet) { s.analysis = h })
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetServerHooks installs h. A nil h is ignored.
func SetServerHooks(h ServerHooks) {
	if h != nil {
		update(func(s *hookSet) { s.server = h })
	}
}

func Analysis() AnalysisHooks { return current.Load().analysis }
func Cache() CacheHooks       { return current.Load().cache }
func Server() ServerHooks     { return current.Load().server }

// Reset puts the no-op hooks back.
func Reset() { current.Store(defaults()) }
