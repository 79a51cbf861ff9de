package value

import (
	errs "github.com/matzehuels/netvalue/pkg/errors"
)

// Metcalfe returns the Metcalfe value of subset: the sum over connected
// components of the induced subgraph of the squared component weight.
//
// An empty subset is worth 0. Duplicate IDs count once. Every member must
// be a node of g (INVALID_INPUT otherwise) and w must cover every node of g
// (WEIGHT_MISMATCH otherwise).
func Metcalfe(g Graph, subset []string, w Weights) (float64, error) {
	if len(subset) == 0 {
		return 0, nil
	}
	for _, id := range subset {
		if !g.HasNode(id) {
			return 0, errs.New(errs.ErrCodeInvalidInput, "coalition member %q is not in the graph", id)
		}
	}
	weights, err := w.resolve(g)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, comp := range g.Components(subset) {
		var sum float64
		for _, id := range comp {
			sum += weights[id]
		}
		total += sum * sum
	}
	return total, nil
}

// Total returns the Metcalfe value of the whole graph.
func Total(g Graph, w Weights) (float64, error) {
	return Metcalfe(g, g.Nodes(), w)
}
