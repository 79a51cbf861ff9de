package server

import (
	"context"
	"net/http"
	"time"

	"github.com/matzehuels/netvalue/pkg/analysis"
	"github.com/matzehuels/netvalue/pkg/buildinfo"
	errs "github.com/matzehuels/netvalue/pkg/errors"
	"github.com/matzehuels/netvalue/pkg/graph"
	"github.com/matzehuels/netvalue/pkg/httputil"
	"github.com/matzehuels/netvalue/pkg/network"
	"github.com/matzehuels/netvalue/pkg/render/nodelink"
)

// =============================================================================
// Request / Response Types
// =============================================================================

// graphRequest is embedded by every analysis request.
type graphRequest struct {
	Graph   graph.Graph `json:"graph"`
	Uniform bool        `json:"uniform,omitempty"`
	Refresh bool        `json:"refresh,omitempty"`
}

type labelRequest struct {
	graphRequest
	Source     string `json:"source" validate:"required"`
	DepthLimit int    `json:"depth_limit,omitempty" validate:"min=0"`
}

type metcalfeRequest struct {
	graphRequest
	Subset []string `json:"subset,omitempty"`
}

type nodeRequest struct {
	graphRequest
	Node string `json:"node" validate:"required"`
}

type rankRequest struct {
	graphRequest
	Workers int `json:"workers,omitempty" validate:"min=0,max=256"`
}

type renderRequest struct {
	graphRequest
	Source string `json:"source,omitempty"`
	Engine string `json:"engine,omitempty"`
	Format string `json:"format,omitempty" validate:"omitempty,oneof=svg dot"`
	Scores bool   `json:"scores,omitempty"`
}

// Response is the body of a successful analysis request.
type Response struct {
	RequestID  string        `json:"request_id"`
	GraphHash  string        `json:"graph_hash"`
	Cached     bool          `json:"cached"`
	DurationMS float64       `json:"duration_ms"`
	Report     *graph.Report `json:"report"`
}

type analyzeFunc func(ctx context.Context, g *network.Graph, opts analysis.Options) (*analysis.Result, error)

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleLabel(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.analyze(w, r, req.graphRequest, func(ctx context.Context, g *network.Graph, opts analysis.Options) (*analysis.Result, error) {
		opts.DepthLimit = req.DepthLimit
		return s.runner.Label(ctx, g, req.Source, opts)
	})
}

func (s *Server) handleMetcalfe(w http.ResponseWriter, r *http.Request) {
	var req metcalfeRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.analyze(w, r, req.graphRequest, func(ctx context.Context, g *network.Graph, opts analysis.Options) (*analysis.Result, error) {
		return s.runner.Metcalfe(ctx, g, req.Subset, opts)
	})
}

func (s *Server) handleShapley(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.analyze(w, r, req.graphRequest, func(ctx context.Context, g *network.Graph, opts analysis.Options) (*analysis.Result, error) {
		return s.runner.Shapley(ctx, g, req.Node, opts)
	})
}

func (s *Server) handleExact(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.analyze(w, r, req.graphRequest, func(ctx context.Context, g *network.Graph, opts analysis.Options) (*analysis.Result, error) {
		return s.runner.Exact(ctx, g, req.Node, opts)
	})
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.analyze(w, r, req.graphRequest, func(ctx context.Context, g *network.Graph, opts analysis.Options) (*analysis.Result, error) {
		opts.Workers = req.Workers
		return s.runner.Rank(ctx, g, opts)
	})
}

// handleRender draws the graph, coloured by branch when a source is given
// and sized by Shapley value when scores are requested.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decode(w, r, &req) {
		return
	}
	id := RequestID(r.Context())
	if err := nodelink.ValidateEngine(req.Engine); err != nil {
		httputil.WriteError(w, id, err)
		return
	}
	g, err := s.network(req.Graph)
	if err != nil {
		httputil.WriteError(w, id, err)
		return
	}

	opts := nodelink.Options{Engine: req.Engine}
	base := analysis.Options{Uniform: req.Uniform, Refresh: req.Refresh, Logger: s.logger}
	if req.Source != "" {
		res, err := s.runner.Label(r.Context(), g, req.Source, base)
		if err != nil {
			httputil.WriteError(w, id, err)
			return
		}
		opts.Labels = res.Labels()
	}
	if req.Scores && g.NodeCount() > 0 {
		res, err := s.runner.Rank(r.Context(), g, base)
		if err != nil {
			httputil.WriteError(w, id, err)
			return
		}
		opts.Scores = res.Scores()
	}

	format := req.Format
	if format == "" {
		format = nodelink.FormatSVG
	}
	out, err := nodelink.Render(nodelink.ToDOT(g, opts), format, 1)
	if err != nil {
		httputil.WriteError(w, id, err)
		return
	}
	if format == nodelink.FormatSVG {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "text/vnd.graphviz")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httputil.DecodeJSON(r, v); err != nil {
		httputil.WriteError(w, RequestID(r.Context()), err)
		return false
	}
	return true
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request, req graphRequest, fn analyzeFunc) {
	id := RequestID(r.Context())
	g, err := s.network(req.Graph)
	if err != nil {
		httputil.WriteError(w, id, err)
		return
	}

	opts := analysis.Options{
		Uniform: req.Uniform,
		Refresh: req.Refresh,
		Logger:  s.logger.With("request_id", id),
	}
	res, err := fn(r.Context(), g, opts)
	if err != nil {
		httputil.WriteError(w, id, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, Response{
		RequestID:  id,
		GraphHash:  res.GraphHash,
		Cached:     res.CacheInfo.Hit,
		DurationMS: float64(res.Stats.Duration) / float64(time.Millisecond),
		Report:     res.Report,
	})
}

// network converts the request graph and enforces the node limit.
func (s *Server) network(data graph.Graph) (*network.Graph, error) {
	if len(data.Nodes) > s.cfg.MaxNodes {
		return nil, errs.New(errs.ErrCodeTooLarge, "graph has %d nodes, limit is %d", len(data.Nodes), s.cfg.MaxNodes)
	}
	g, err := graph.ToNetwork(data)
	if err != nil {
		return nil, err
	}
	if g.NodeCount() > s.cfg.MaxNodes {
		return nil, errs.New(errs.ErrCodeTooLarge, "graph has %d nodes, limit is %d", g.NodeCount(), s.cfg.MaxNodes)
	}
	return g, nil
}
