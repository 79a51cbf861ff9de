// Package pkg provides the libraries behind netvalue, which measures the
// value of undirected networks and of the nodes in them.
//
// # Overview
//
// The Metcalfe value of a network is the sum over its connected components
// of the squared component weight. The Shapley value of a node is its share
// of that total, computed from a depth/branch labelling of the graph. The
// pkg directory is organized into four areas:
//
//  1. Domain: [value] (labelling, Metcalfe, Shapley, exact enumeration) and
//     [network] (the in-memory graph)
//  2. Serialization and input: [graph], [io], [source]
//  3. Orchestration: [analysis] (cached runs), [server] (HTTP API)
//  4. Infrastructure: [cache], [config], [errors], [httputil],
//     [observability], [metrics], [render], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	network file or URL
//	         ↓
//	    [source] + [io] (fetch and decode)
//	         ↓
//	    [network] (graph structure)
//	         ↓
//	    [analysis] → [value] (cached computation)
//	         ↓
//	    [graph.Report] as JSON, table, or [render] diagram
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/netvalue/pkg/io"
//	    "github.com/matzehuels/netvalue/pkg/value"
//	)
//
//	g, _ := io.Import("star.json")
//	total, _ := value.Metcalfe(g, g.Nodes(), nil)
//	hub, _ := value.Shapley(g, "hub", nil)
//
// With caching and hooks, go through an [analysis.Runner]:
//
//	runner := analysis.NewRunner(cache.NewNullCache(), nil, logger)
//	res, _ := runner.Rank(ctx, g, analysis.Options{})
//	for _, s := range res.Report.Scores {
//	    fmt.Println(s.Node, s.Value)
//	}
package pkg
