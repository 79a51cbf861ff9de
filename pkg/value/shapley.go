package value

import (
	"cmp"
	"slices"

	errs "github.com/matzehuels/netvalue/pkg/errors"
)

// Shapley returns the Shapley value of node under the Metcalfe game,
// computed from one [Label] traversal and a pass over all ordered pairs of
// reachable nodes.
//
// A pair (a, b) contributes w[a]·w[b]·SubCount(depth(a), depth(b), n) when a
// and b lie in different branches, or when a == b == node. Unreached nodes
// never contribute. The sum is divided by the node count n.
func Shapley(g Graph, node string, w Weights) (float64, error) {
	labels, err := Label(g, node)
	if err != nil {
		return 0, err
	}
	weights, err := w.resolve(g)
	if err != nil {
		return 0, err
	}
	return shapleyFromLabels(g.Nodes(), labels, node, weights), nil
}

func shapleyFromLabels(nodes []string, labels Labels, node string, weights Weights) float64 {
	n := len(nodes)
	counts := newSubCounts(n)
	reached := labels.Reached(nodes)

	var acc float64
	for _, a := range reached {
		la := labels[a]
		for _, b := range reached {
			lb := labels[b]
			if la.Branch != lb.Branch || (a == node && b == node) {
				acc += weights[a] * weights[b] * counts.get(la.Depth, lb.Depth)
			}
		}
	}
	return acc / float64(n)
}

// Score is the Shapley value of one node.
type Score struct {
	Node  string  `json:"node"`
	Value float64 `json:"value"`
}

// ShapleyAll returns the Shapley value of every node of g.
func ShapleyAll(g Graph, w Weights) (map[string]float64, error) {
	weights, err := w.resolve(g)
	if err != nil {
		return nil, err
	}
	nodes := g.Nodes()
	out := make(map[string]float64, len(nodes))
	for _, id := range nodes {
		labels, err := Label(g, id)
		if err != nil {
			return nil, err
		}
		out[id] = shapleyFromLabels(nodes, labels, id, weights)
	}
	return out, nil
}

// Rank returns every node's Shapley value sorted from highest to lowest.
// Ties keep graph order. Returns EMPTY_GRAPH for a graph without nodes.
func Rank(g Graph, w Weights) ([]Score, error) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil, errs.New(errs.ErrCodeEmptyGraph, "cannot rank an empty graph")
	}
	values, err := ShapleyAll(g, w)
	if err != nil {
		return nil, err
	}
	scores := make([]Score, len(nodes))
	for i, id := range nodes {
		scores[i] = Score{Node: id, Value: values[id]}
	}
	SortScores(scores)
	return scores, nil
}

// SortScores orders scores from highest to lowest value, keeping the
// existing order between equal values.
func SortScores(scores []Score) {
	slices.SortStableFunc(scores, func(a, b Score) int {
		return cmp.Compare(b.Value, a.Value)
	})
}

// Efficiency returns the sum of all Shapley values next to the Metcalfe
// value of the whole graph. The two agree on forests; on graphs with
// cycles the difference measures the DFS-tree approximation.
func Efficiency(g Graph, w Weights) (sum, total float64, err error) {
	values, err := ShapleyAll(g, w)
	if err != nil {
		return 0, 0, err
	}
	for _, id := range g.Nodes() {
		sum += values[id]
	}
	total, err = Total(g, w)
	if err != nil {
		return 0, 0, err
	}
	return sum, total, nil
}
