package value

import (
	"math/bits"

	errs "github.com/matzehuels/netvalue/pkg/errors"
)

// MaxExactNodes is the default node limit for exact enumeration.
const MaxExactNodes = 20

// ExactOption configures Exact and ExactAll.
type ExactOption func(*exactConfig)

type exactConfig struct {
	maxNodes int
}

// ExactNodeCeiling bounds WithMaxNodes. The coalition table holds 2^n
// float64 values, so 24 nodes already take 128 MiB.
const ExactNodeCeiling = 24

// WithMaxNodes overrides MaxExactNodes. Values above ExactNodeCeiling are
// clamped.
func WithMaxNodes(n int) ExactOption {
	return func(c *exactConfig) {
		if n > ExactNodeCeiling {
			n = ExactNodeCeiling
		}
		c.maxNodes = n
	}
}

// Exact returns the Shapley value of node by enumerating every coalition of
// the other nodes:
//
//	φ(i) = Σ_{S ⊆ V∖{i}} |S|!(n-|S|-1)!/n! · (value(S ∪ {i}) - value(S))
//
// The cost is exponential in the node count, so graphs above the limit are
// rejected with TOO_LARGE.
func Exact(g Graph, node string, w Weights, opts ...ExactOption) (float64, error) {
	if !g.HasNode(node) {
		return 0, errs.New(errs.ErrCodeInvalidSource, "node %q is not in the graph", node)
	}
	values, err := ExactAll(g, w, opts...)
	if err != nil {
		return 0, err
	}
	return values[node], nil
}

// ExactAll returns the exact Shapley value of every node of g.
func ExactAll(g Graph, w Weights, opts ...ExactOption) (map[string]float64, error) {
	cfg := exactConfig{maxNodes: MaxExactNodes}
	for _, opt := range opts {
		opt(&cfg)
	}

	nodes := g.Nodes()
	n := len(nodes)
	if n > cfg.maxNodes {
		return nil, errs.New(errs.ErrCodeTooLarge,
			"exact enumeration supports at most %d nodes, graph has %d", cfg.maxNodes, n)
	}
	weights, err := w.resolve(g)
	if err != nil {
		return nil, err
	}

	t := newCoalitionTable(g, nodes, weights)

	// coef[s] = s!(n-s-1)!/n! = 1/(n·C(n-1, s))
	coef := make([]float64, n)
	binom := 1.0
	for s := 0; s < n; s++ {
		coef[s] = 1 / (float64(n) * binom)
		binom = binom * float64(n-1-s) / float64(s+1)
	}

	out := make(map[string]float64, n)
	full := uint32(1)<<uint(n) - 1
	for i, id := range nodes {
		bit := uint32(1) << uint(i)
		var phi float64
		for s := uint32(0); s <= full; s++ {
			if s&bit != 0 {
				continue
			}
			phi += coef[bits.OnesCount32(s)] * (t.values[s|bit] - t.values[s])
		}
		out[id] = phi
	}
	return out, nil
}

// coalitionTable holds the Metcalfe value of every node subset, indexed by
// bitmask over the graph's node order.
type coalitionTable struct {
	adj    []uint32
	weight []float64
	values []float64
}

func newCoalitionTable(g Graph, nodes []string, weights Weights) *coalitionTable {
	n := len(nodes)
	index := make(map[string]int, n)
	for i, id := range nodes {
		index[id] = i
	}

	t := &coalitionTable{
		adj:    make([]uint32, n),
		weight: make([]float64, n),
		values: make([]float64, 1<<uint(n)),
	}
	for i, id := range nodes {
		t.weight[i] = weights[id]
		for _, nb := range g.Neighbors(id) {
			if j, ok := index[nb]; ok {
				t.adj[i] |= 1 << uint(j)
			}
		}
	}
	for s := range t.values {
		t.values[s] = t.value(uint32(s))
	}
	return t
}

// value computes the Metcalfe value of the coalition s by flood fill.
func (t *coalitionTable) value(s uint32) float64 {
	var total float64
	rest := s
	for rest != 0 {
		seed := rest & -rest
		comp := seed
		frontier := seed
		for frontier != 0 {
			i := bits.TrailingZeros32(frontier)
			frontier &^= 1 << uint(i)
			next := t.adj[i] & s &^ comp
			comp |= next
			frontier |= next
		}
		rest &^= comp

		var sum float64
		for c := comp; c != 0; c &= c - 1 {
			sum += t.weight[bits.TrailingZeros32(c)]
		}
		total += sum * sum
	}
	return total
}
