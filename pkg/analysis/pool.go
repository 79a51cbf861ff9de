package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/netvalue/pkg/network"
	"github.com/matzehuels/netvalue/pkg/value"
)

// shapleyParallel computes the Shapley value of every node with at most
// workers goroutines. Scores come back in graph node order. The first error,
// or context cancellation, stops the remaining work.
func shapleyParallel(ctx context.Context, g *network.Graph, w value.Weights, workers int) ([]value.Score, error) {
	nodes := g.Nodes()
	scores := make([]value.Score, len(nodes))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))
	for i, id := range nodes {
		if ctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := value.Shapley(g, id, w)
			if err != nil {
				return err
			}
			scores[i] = value.Score{Node: id, Value: v}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}
