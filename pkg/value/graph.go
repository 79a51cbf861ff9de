package value

import (
	errs "github.com/matzehuels/netvalue/pkg/errors"
)

// Graph is the read-only view of an undirected graph that the evaluators need.
// network.Graph implements it.
type Graph interface {
	// Nodes returns every node ID in a stable order.
	Nodes() []string
	// Neighbors returns the IDs adjacent to id. The order decides branch
	// assignment in Label.
	Neighbors(id string) []string
	// HasNode reports whether id is a node of the graph.
	HasNode(id string) bool
	// Components returns the connected components of the subgraph induced
	// by subset.
	Components(subset []string) [][]string
}

// Weights maps node IDs to node weights. A nil Weights means uniform weight 1.
type Weights map[string]float64

// Uniform returns a fresh weight map assigning 1 to every node of g.
func Uniform(g Graph) Weights {
	nodes := g.Nodes()
	w := make(Weights, len(nodes))
	for _, id := range nodes {
		w[id] = 1
	}
	return w
}

// WeightsFromSlice binds a positional weight vector to g: w[i] becomes the
// weight of g.Nodes()[i]. A vector shorter than the node count is rejected
// with WEIGHT_MISMATCH; trailing extra entries are ignored.
func WeightsFromSlice(g Graph, w []float64) (Weights, error) {
	nodes := g.Nodes()
	if len(w) < len(nodes) {
		return nil, errs.New(errs.ErrCodeWeightMismatch,
			"weight vector has %d entries, graph has %d nodes", len(w), len(nodes))
	}
	out := make(Weights, len(nodes))
	for i, id := range nodes {
		if err := errs.ValidateWeight(id, w[i]); err != nil {
			return nil, err
		}
		out[id] = w[i]
	}
	return out, nil
}

// resolve returns the weights to use for a computation over g.
// A nil receiver yields a fresh uniform vector. Otherwise every node of g
// must have a finite weight.
func (w Weights) resolve(g Graph) (Weights, error) {
	if w == nil {
		return Uniform(g), nil
	}
	for _, id := range g.Nodes() {
		x, ok := w[id]
		if !ok {
			return nil, errs.New(errs.ErrCodeWeightMismatch, "no weight for node %q", id)
		}
		if err := errs.ValidateWeight(id, x); err != nil {
			return nil, err
		}
	}
	return w, nil
}
