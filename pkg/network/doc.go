// Package network provides the undirected graph that netvalue computes
// Metcalfe and Shapley values on.
//
// # Overview
//
// A [Graph] holds string-identified nodes and undirected edges. It keeps
// nodes and adjacency lists in insertion order, so that the depth-first
// labeling in package value (which depends on neighbor order) is
// reproducible from one run to the next.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [Graph.AddNode] and edges with
// [Graph.AddEdge]:
//
//	g := network.New(nil)
//	g.AddNode(network.Node{ID: "a"})
//	g.AddNode(network.Node{ID: "b"})
//	g.AddEdge(network.Edge{From: "a", To: "b"})
//
// Query the structure with [Graph.Neighbors], [Graph.Degree] and
// [Graph.Components]. [Graph.Subgraph] builds an induced subgraph.
//
// # Weights
//
// Nodes may carry an optional weight. [Graph.Weights] returns a fresh
// ID-keyed weight map in which unweighted nodes default to 1. Positional
// weight vectors are interpreted against [Graph.Index], i.e. insertion order.
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. Once built, a graph
// can be read from any number of goroutines; none of the read methods
// modify internal state.
package network
