// Package analysis runs network value computations with caching.
//
// The CLI and the HTTP API both go through a [Runner] so that graph
// decoding, cache lookups, observability hooks and logging behave the same
// way for every entry point.
//
// # Operations
//
//   - [Runner.Load]: decode a graph file, cached by content hash
//   - [Runner.Label]: depth/branch coordinates from a source node
//   - [Runner.Metcalfe]: Metcalfe value of the graph or a subset
//   - [Runner.Shapley]: closed-form Shapley value of one node
//   - [Runner.Exact]: enumerated Shapley value, with the closed form alongside
//   - [Runner.Rank]: every node's Shapley value, computed on a worker pool
//
// Each operation returns a [Result] whose Report is the JSON document the
// CLI prints and the API returns.
//
// # Usage
//
//	runner := analysis.NewRunner(cache, nil, logger)
//	defer runner.Close()
//
//	g, _, err := runner.Load(ctx, "friends.json", analysis.Options{})
//	if err != nil {
//	    return err
//	}
//	res, err := runner.Rank(ctx, g, analysis.Options{Workers: 8})
//	if err != nil {
//	    return err
//	}
//	for _, s := range res.Report.Scores {
//	    fmt.Println(s.Node, s.Value)
//	}
//
// # Caching
//
// Result keys combine the hash of the graph (including weights) with the
// operation's inputs, so a changed file never serves a stale result.
// Options.Refresh bypasses reads but still stores the fresh result.
package analysis
