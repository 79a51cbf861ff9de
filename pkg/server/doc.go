// Package server exposes the analyses of pkg/analysis over HTTP.
//
// # Endpoints
//
//	GET  /healthz         liveness probe
//	GET  /version         build information
//	GET  /metrics         Prometheus metrics (when a handler is configured)
//	POST /v1/label        {"graph": ..., "source": "a", "depth_limit": 0}
//	POST /v1/metcalfe     {"graph": ..., "subset": ["a", "b"]}
//	POST /v1/shapley      {"graph": ..., "node": "a"}
//	POST /v1/exact        {"graph": ..., "node": "a"}
//	POST /v1/rank         {"graph": ..., "workers": 8}
//	POST /v1/render       {"graph": ..., "source": "a", "format": "svg"}
//
// The graph is the node-link document of pkg/graph. Every analysis request
// also accepts "uniform" to ignore node weights. Responses wrap the
// analysis report:
//
//	{"request_id": "...", "graph_hash": "...", "cached": false, "duration_ms": 0.4, "report": {...}}
//
// Errors use the envelope of pkg/httputil.
//
// # Middleware
//
// Every request gets an X-Request-ID (the client's, sanitised, or a new
// UUID), panic recovery, a timeout, a body size limit and a structured
// access log line. Request counts and latencies go to the registered
// observability.ServerHooks keyed by route pattern.
package server
