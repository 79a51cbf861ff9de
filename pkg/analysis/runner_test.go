package analysis

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/netvalue/pkg/cache"
	errs "github.com/matzehuels/netvalue/pkg/errors"
	"github.com/matzehuels/netvalue/pkg/network"
	"github.com/matzehuels/netvalue/pkg/observability"
	"github.com/matzehuels/netvalue/pkg/value"
)

func star(t *testing.T) *network.Graph {
	t.Helper()
	g := network.New(nil)
	for _, id := range []string{"hub", "a", "b", "c"} {
		if err := g.AddNode(network.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	for _, leaf := range []string{"a", "b", "c"} {
		if err := g.AddEdge(network.Edge{From: "hub", To: leaf}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func triangle(t *testing.T) *network.Graph {
	t.Helper()
	g := network.New(nil)
	for _, id := range []string{"x", "y", "z"} {
		g.AddNode(network.Node{ID: id})
	}
	g.AddEdge(network.Edge{From: "x", To: "y"})
	g.AddEdge(network.Edge{From: "y", To: "z"})
	g.AddEdge(network.Edge{From: "z", To: "x"})
	return g
}

func fileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner left nil fields: %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", opts.Workers, DefaultWorkers)
	}
	if opts.ExactMaxNodes != DefaultExactMaxNodes {
		t.Errorf("ExactMaxNodes = %d, want %d", opts.ExactMaxNodes, DefaultExactMaxNodes)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"NegativeWorkers", Options{Workers: -1}},
		{"TooManyWorkers", Options{Workers: MaxWorkers + 1}},
		{"NegativeDepth", Options{DepthLimit: -2}},
		{"ExactTooLarge", Options{ExactMaxNodes: 31}},
		{"ExactAboveCeiling", Options{ExactMaxNodes: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errs.Is(err, errs.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestMetcalfe(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	g := star(t)

	res, err := r.Metcalfe(ctx, g, nil, Options{})
	if err != nil {
		t.Fatalf("Metcalfe: %v", err)
	}
	if got := *res.Report.Value; got != 16 {
		t.Errorf("whole graph = %v, want 16", got)
	}
	if res.Report.NodeCount != 4 || res.Report.EdgeCount != 3 {
		t.Errorf("counts = %d/%d, want 4/3", res.Report.NodeCount, res.Report.EdgeCount)
	}

	// The leaves alone are three singletons.
	res, err = r.Metcalfe(ctx, g, []string{"a", "b", "c"}, Options{})
	if err != nil {
		t.Fatalf("Metcalfe subset: %v", err)
	}
	if got := *res.Report.Value; got != 3 {
		t.Errorf("leaves = %v, want 3", got)
	}

	res, err = r.Metcalfe(ctx, g, []string{}, Options{})
	if err != nil {
		t.Fatalf("Metcalfe empty: %v", err)
	}
	if got := *res.Report.Value; got != 0 {
		t.Errorf("empty subset = %v, want 0", got)
	}

	if _, err := r.Metcalfe(ctx, g, []string{"ghost"}, Options{}); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("unknown member error = %v, want INVALID_INPUT", err)
	}
}

func TestMetcalfeWeights(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	g := star(t)
	n, _ := g.Node("a")
	w := 4.0
	n.Weight = &w

	res, err := r.Metcalfe(ctx, g, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := *res.Report.Value; got != 49 {
		t.Errorf("weighted = %v, want 49", got)
	}

	res, err = r.Metcalfe(ctx, g, nil, Options{Uniform: true})
	if err != nil {
		t.Fatal(err)
	}
	if got := *res.Report.Value; got != 16 {
		t.Errorf("uniform = %v, want 16", got)
	}
	if !res.Report.Uniform {
		t.Error("report should record uniform weights")
	}
}

func TestShapley(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	g := star(t)

	res, err := r.Shapley(context.Background(), g, "hub", Options{})
	if err != nil {
		t.Fatalf("Shapley: %v", err)
	}
	if got := *res.Report.Value; !near(got, 6) {
		t.Errorf("hub = %v, want 6", got)
	}
	if res.Report.Node != "hub" {
		t.Errorf("Node = %q", res.Report.Node)
	}

	_, err = r.Shapley(context.Background(), g, "ghost", Options{})
	if !errs.Is(err, errs.ErrCodeInvalidSource) {
		t.Errorf("unknown node error = %v, want INVALID_SOURCE", err)
	}
}

func TestExact(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	res, err := r.Exact(context.Background(), triangle(t), "x", Options{})
	if err != nil {
		t.Fatalf("Exact: %v", err)
	}
	if got := *res.Report.Value; !near(got, 3) {
		t.Errorf("exact = %v, want 3", got)
	}
	if res.Report.Approx == nil || !near(*res.Report.Approx, 8.0/3) {
		t.Errorf("approx = %v, want 8/3", res.Report.Approx)
	}
}

func TestExactLimit(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	g := star(t)
	_, err := r.Exact(context.Background(), g, "hub", Options{ExactMaxNodes: 3})
	if !errs.Is(err, errs.ErrCodeTooLarge) {
		t.Errorf("error = %v, want TOO_LARGE", err)
	}
}

func TestLabel(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Label(context.Background(), star(t), "hub", Options{})
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	rep := res.Report
	if rep.Source != "hub" {
		t.Errorf("Source = %q", rep.Source)
	}
	want := map[string][2]int{"hub": {0, 0}, "a": {1, 1}, "b": {1, 2}, "c": {1, 3}}
	if len(rep.Labels) != len(want) {
		t.Fatalf("got %d labels, want %d", len(rep.Labels), len(want))
	}
	for _, l := range rep.Labels {
		if w := want[l.ID]; l.Depth != w[0] || l.Branch != w[1] {
			t.Errorf("%s = (%d,%d), want (%d,%d)", l.ID, l.Depth, l.Branch, w[0], w[1])
		}
	}
}

func TestLabelDepthLimit(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	g := network.New(nil)
	for _, id := range []string{"a", "b", "c"} {
		g.AddNode(network.Node{ID: id})
	}
	g.AddEdge(network.Edge{From: "a", To: "b"})
	g.AddEdge(network.Edge{From: "b", To: "c"})

	res, err := r.Label(context.Background(), g, "a", Options{DepthLimit: 1})
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	for _, l := range res.Report.Labels {
		if l.ID == "c" && l.Depth != -1 {
			t.Errorf("c should be unreached with limit 1, got depth %d", l.Depth)
		}
	}
}

func TestRank(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Rank(context.Background(), star(t), Options{Workers: 2})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	scores := res.Report.Scores
	if len(scores) != 4 {
		t.Fatalf("got %d scores, want 4", len(scores))
	}
	if scores[0].Node != "hub" || !near(scores[0].Value, 6) {
		t.Errorf("top = %+v, want hub=6", scores[0])
	}
	var sum float64
	for _, s := range scores {
		sum += s.Value
	}
	if !near(sum, 16) {
		t.Errorf("scores sum to %v, want Metcalfe value 16", sum)
	}
}

func TestRankEmpty(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Rank(context.Background(), network.New(nil), Options{})
	if !errs.Is(err, errs.ErrCodeEmptyGraph) {
		t.Errorf("error = %v, want EMPTY_GRAPH", err)
	}
}

func TestShapleyParallelWorkerCounts(t *testing.T) {
	g := star(t)
	want, err := shapleyParallel(context.Background(), g, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, workers := range []int{0, 3, 16} {
		got, err := shapleyParallel(context.Background(), g, nil, workers)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		for i := range want {
			if got[i].Node != want[i].Node || math.Abs(got[i].Value-want[i].Value) > 1e-9 {
				t.Errorf("workers=%d: score[%d] = %+v, want %+v", workers, i, got[i], want[i])
			}
		}
	}
	if want[0].Node != "hub" || math.Abs(want[0].Value-6) > 1e-9 {
		t.Errorf("hub score = %+v, want 6", want[0])
	}
}

func TestShapleyParallelFirstError(t *testing.T) {
	// "c" has no weight, so its job fails and the pool reports it.
	w := value.Weights{"hub": 1, "a": 1, "b": 1}
	_, err := shapleyParallel(context.Background(), star(t), w, 2)
	if !errs.Is(err, errs.ErrCodeWeightMismatch) {
		t.Errorf("error = %v, want WEIGHT_MISMATCH", err)
	}
}

func TestRankCancelled(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Rank(ctx, star(t), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestResultCaching(t *testing.T) {
	r := fileRunner(t)
	ctx := context.Background()
	g := star(t)

	first, err := r.Shapley(ctx, g, "a", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.Hit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Shapley(ctx, g, "a", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.Hit {
		t.Error("second run should hit the cache")
	}
	if *second.Report.Value != *first.Report.Value {
		t.Errorf("cached value %v != computed %v", *second.Report.Value, *first.Report.Value)
	}
	if second.GraphHash != first.GraphHash {
		t.Error("graph hash changed between runs")
	}

	refreshed, err := r.Shapley(ctx, g, "a", Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.Hit {
		t.Error("refresh should bypass the cache")
	}

	// Changing a weight changes the graph hash, so the entry is not reused.
	n, _ := g.Node("hub")
	w := 3.0
	n.Weight = &w
	changed, err := r.Shapley(ctx, g, "a", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if changed.CacheInfo.Hit {
		t.Error("changed weights should miss the cache")
	}
}

func TestLoad(t *testing.T) {
	r := fileRunner(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "net.json")
	data := `{"nodes": [{"id": "a", "weight": 2}], "edges": [{"from": "a", "to": "b"}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	g, hit, err := r.Load(ctx, path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if hit {
		t.Error("first load should miss the cache")
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("got %d nodes %d edges, want 2 and 1", g.NodeCount(), g.EdgeCount())
	}

	g, hit, err = r.Load(ctx, path, Options{})
	if err != nil {
		t.Fatalf("Load (cached): %v", err)
	}
	if !hit {
		t.Error("second load should hit the cache")
	}
	if g.Weights()["a"] != 2 {
		t.Errorf("cached graph lost weights: %v", g.Weights())
	}
}

func TestLoadMissing(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, _, err := r.Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"), Options{})
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

type recordingHooks struct {
	observability.NoopAnalysisHooks
	observability.NoopCacheHooks

	mu        sync.Mutex
	started   []string
	completed []error
	hits      int
	misses    int
	sets      int
}

func (h *recordingHooks) OnAnalysisStart(_ context.Context, kind string, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = append(h.started, kind)
}

func (h *recordingHooks) OnAnalysisComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed = append(h.completed, err)
}

func (h *recordingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *recordingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
}

func TestHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetAnalysisHooks(hooks)
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	r := fileRunner(t)
	ctx := context.Background()
	g := star(t)

	for i := 0; i < 2; i++ {
		if _, err := r.Metcalfe(ctx, g, nil, Options{}); err != nil {
			t.Fatal(err)
		}
	}
	_, _ = r.Shapley(ctx, g, "ghost", Options{})

	if len(hooks.started) != 3 || hooks.started[0] != "metcalfe" || hooks.started[2] != "shapley" {
		t.Errorf("started = %v", hooks.started)
	}
	if len(hooks.completed) != 3 || hooks.completed[0] != nil || hooks.completed[2] == nil {
		t.Errorf("completed = %v", hooks.completed)
	}
	if hooks.hits != 1 || hooks.misses != 2 || hooks.sets != 1 {
		t.Errorf("cache events hits=%d misses=%d sets=%d, want 1/2/1", hooks.hits, hooks.misses, hooks.sets)
	}
}
