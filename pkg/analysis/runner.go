package analysis

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netvalue/pkg/cache"
	errs "github.com/matzehuels/netvalue/pkg/errors"
	"github.com/matzehuels/netvalue/pkg/graph"
	nvio "github.com/matzehuels/netvalue/pkg/io"
	"github.com/matzehuels/netvalue/pkg/network"
	"github.com/matzehuels/netvalue/pkg/observability"
	"github.com/matzehuels/netvalue/pkg/source"
	"github.com/matzehuels/netvalue/pkg/value"
)

// Cache key types reported to observability hooks.
const (
	keyTypeGraph = "graph"
	keyTypeValue = "value"
	keyTypeLabel = "label"
)

// Runner encapsulates analysis execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store analysis results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Fetcher reads graph files and URLs for Load.
	Fetcher *source.Fetcher

	// TTL is the lifetime of cached results; 0 means cache.ResultTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Fetcher: source.New(nil),
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// =============================================================================
// Graph Loading
// =============================================================================

// Load reads a graph file or http(s) URL with caching and reports whether the decoded graph
// came from the cache. The cache key is the hash of the file contents and
// format, so an edited file is decoded afresh.
func (r *Runner) Load(ctx context.Context, path string, opts Options) (*network.Graph, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	data, err := r.Fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, false, err
	}
	format := nvio.DetectFormat(source.Name(path))
	key := r.Keyer.GraphKey(cache.Hash(append([]byte(format+":"), data...)))

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err != nil {
			opts.Logger.Warn("cache read failed", "key", key, "error", err)
		} else if hit {
			if g, err := graph.ReadGraph(bytes.NewReader(cached)); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeGraph)
				opts.Logger.Debug("loaded graph from cache", "file", source.Name(path), "nodes", g.NodeCount())
				return g, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeGraph)
	}

	g, err := nvio.Read(bytes.NewReader(data), format)
	if err != nil {
		return nil, false, err
	}
	opts.Logger.Debug("decoded graph", "file", source.Name(path), "format", format,
		"nodes", g.NodeCount(), "edges", g.EdgeCount())

	if encoded, err := graph.MarshalGraph(g); err == nil {
		r.store(ctx, opts.Logger, key, keyTypeGraph, encoded, cache.GraphTTL)
	}
	return g, false, nil
}

// =============================================================================
// Analyses
// =============================================================================

// Metcalfe computes the Metcalfe value of subset. A nil subset means the
// whole graph.
func (r *Runner) Metcalfe(ctx context.Context, g *network.Graph, subset []string, opts Options) (*Result, error) {
	members := subset
	if members == nil {
		members = g.Nodes()
	}
	keyOpts := cache.ValueKeyOpts{Kind: graph.KindMetcalfe, Subset: members, Uniform: opts.Uniform}
	return r.run(ctx, graph.KindMetcalfe, g, &opts, keyTypeValue, keyOpts, func(rep *graph.Report) error {
		v, err := value.Metcalfe(g, members, weightsFor(g, opts))
		if err != nil {
			return err
		}
		rep.Subset = subset
		rep.SetValue(v)
		return nil
	})
}

// Shapley computes the Shapley value of node with the closed form.
func (r *Runner) Shapley(ctx context.Context, g *network.Graph, node string, opts Options) (*Result, error) {
	keyOpts := cache.ValueKeyOpts{Kind: graph.KindShapley, Node: node, Uniform: opts.Uniform}
	return r.run(ctx, graph.KindShapley, g, &opts, keyTypeValue, keyOpts, func(rep *graph.Report) error {
		v, err := value.Shapley(g, node, weightsFor(g, opts))
		if err != nil {
			return err
		}
		rep.Node = node
		rep.SetValue(v)
		return nil
	})
}

// Exact computes the Shapley value of node by coalition enumeration and,
// for comparison, with the closed form.
func (r *Runner) Exact(ctx context.Context, g *network.Graph, node string, opts Options) (*Result, error) {
	keyOpts := cache.ValueKeyOpts{Kind: graph.KindExact, Node: node, Uniform: opts.Uniform}
	return r.run(ctx, graph.KindExact, g, &opts, keyTypeValue, keyOpts, func(rep *graph.Report) error {
		w := weightsFor(g, opts)
		exact, err := value.Exact(g, node, w, value.WithMaxNodes(opts.ExactMaxNodes))
		if err != nil {
			return err
		}
		approx, err := value.Shapley(g, node, w)
		if err != nil {
			return err
		}
		rep.Node = node
		rep.SetValue(exact)
		rep.Approx = &approx
		return nil
	})
}

// Label computes the traversal coordinates of every node from source.
func (r *Runner) Label(ctx context.Context, g *network.Graph, source string, opts Options) (*Result, error) {
	return r.runLabel(ctx, g, source, &opts)
}

// Rank computes every node's Shapley value on a worker pool and sorts
// them from highest to lowest.
func (r *Runner) Rank(ctx context.Context, g *network.Graph, opts Options) (*Result, error) {
	keyOpts := cache.ValueKeyOpts{Kind: graph.KindRank, Uniform: opts.Uniform}
	return r.run(ctx, graph.KindRank, g, &opts, keyTypeValue, keyOpts, func(rep *graph.Report) error {
		if g.NodeCount() == 0 {
			return errs.New(errs.ErrCodeEmptyGraph, "cannot rank an empty graph")
		}
		scores, err := shapleyParallel(ctx, g, weightsFor(g, opts), opts.Workers)
		if err != nil {
			return err
		}
		value.SortScores(scores)
		rep.Scores = make([]graph.Score, len(scores))
		for i, s := range scores {
			rep.Scores[i] = graph.Score{Node: s.Node, Value: s.Value}
		}
		return nil
	})
}

// =============================================================================
// Internal Implementation
// =============================================================================

func (r *Runner) runLabel(ctx context.Context, g *network.Graph, source string, opts *Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(opts)

	graphHash, err := hashGraph(g)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.LabelKey(graphHash, cache.LabelKeyOpts{Source: source, DepthLimit: opts.DepthLimit})

	return r.execute(ctx, graph.KindLabel, g, opts, graphHash, key, keyTypeLabel, func(rep *graph.Report) error {
		labels, err := value.Label(g, source, opts.labelOpts()...)
		if err != nil {
			return err
		}
		rep.Source = source
		for _, id := range g.Nodes() {
			c := labels[id]
			rep.Labels = append(rep.Labels, graph.NodeLabel{ID: id, Depth: c.Depth, Branch: c.Branch})
		}
		return nil
	})
}

func (r *Runner) run(ctx context.Context, kind string, g *network.Graph, opts *Options,
	keyType string, keyOpts cache.ValueKeyOpts, compute func(*graph.Report) error) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(opts)

	graphHash, err := hashGraph(g)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ValueKey(graphHash, keyOpts)
	return r.execute(ctx, kind, g, opts, graphHash, key, keyType, compute)
}

// execute wraps compute with cache lookup, observability hooks and logging.
func (r *Runner) execute(ctx context.Context, kind string, g *network.Graph, opts *Options,
	graphHash, key, keyType string, compute func(*graph.Report) error) (*Result, error) {
	start := time.Now()
	hooks := observability.Analysis()
	hooks.OnAnalysisStart(ctx, kind, g.NodeCount())

	res := &Result{
		GraphHash: graphHash,
		Stats:     Stats{NodeCount: g.NodeCount(), EdgeCount: g.EdgeCount()},
		CacheInfo: CacheInfo{Key: key},
	}

	report, hit, err := r.cached(ctx, opts, key, keyType, func() (*graph.Report, error) {
		rep := &graph.Report{
			Kind:      kind,
			NodeCount: g.NodeCount(),
			EdgeCount: g.EdgeCount(),
			Uniform:   opts.Uniform,
		}
		if err := compute(rep); err != nil {
			return nil, err
		}
		return rep, nil
	})
	res.Stats.Duration = time.Since(start)
	hooks.OnAnalysisComplete(ctx, kind, g.NodeCount(), res.Stats.Duration, err)
	if err != nil {
		opts.Logger.Debug("analysis failed", "kind", kind, "error", err)
		return nil, err
	}

	res.Report = report
	res.CacheInfo.Hit = hit
	opts.Logger.Debug("analysis complete",
		"kind", kind,
		"nodes", res.Stats.NodeCount,
		"cached", hit,
		"duration", res.Stats.Duration)
	return res, nil
}

func (r *Runner) cached(ctx context.Context, opts *Options, key, keyType string,
	compute func() (*graph.Report, error)) (*graph.Report, bool, error) {
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err != nil {
			opts.Logger.Warn("cache read failed", "key", key, "error", err)
		} else if hit {
			if report, err := graph.UnmarshalReport(data); err == nil {
				observability.Cache().OnCacheHit(ctx, keyType)
				return report, true, nil
			}
			// Undecodable entry: fall through and overwrite it.
		}
		observability.Cache().OnCacheMiss(ctx, keyType)
	}

	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	report, err := compute()
	if err != nil {
		return nil, false, err
	}
	if data, err := graph.MarshalReport(report); err == nil {
		r.store(ctx, opts.Logger, key, keyType, data, r.resultTTL())
	}
	return report, false, nil
}

func (r *Runner) store(ctx context.Context, logger *log.Logger, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) resultTTL() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.ResultTTL
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// weightsFor returns the weights an analysis should use: nil (uniform) when
// requested, otherwise the node weights stored in the graph.
func weightsFor(g *network.Graph, opts Options) value.Weights {
	if opts.Uniform {
		return nil
	}
	return value.Weights(g.Weights())
}

// hashGraph returns the content hash of g, including node weights.
func hashGraph(g *network.Graph) (string, error) {
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInternal, err, "hash graph")
	}
	return cache.Hash(data), nil
}
