// Package graph provides serialization types for networks and analysis
// reports.
//
// This package defines the canonical wire format for netvalue's data,
// used for graph files, API requests and responses, and cached results.
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Graph], [Report]: Serialization types (this package)
//   - pkg/network.Graph: Internal graph representation
//   - pkg/value: Computations over the internal representation
//
// Use [FromNetwork]/[ToNetwork] to convert between them.
//
// # Graph Serialization
//
// Graphs use a node-link format. Edges are undirected, so from/to only
// record the order in which they were written:
//
//	{
//	  "nodes": [{"id": "alice", "weight": 2}, {"id": "bob"}],
//	  "edges": [{"from": "alice", "to": "bob"}]
//	}
//
// A node without "weight" weighs 1. Edges may name nodes that are not
// listed in "nodes"; they are added with default weight.
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("net.json")    // File → network
//	graph.WriteGraphFile(g, "output.json")     // network → File
//	data, _ := graph.MarshalGraph(g)           // network → []byte
//	parsed, _ := graph.UnmarshalGraph(data)    // []byte → Graph
//
// The struct tags also carry yaml and toml names; pkg/io uses them for the
// other file formats.
//
// # Reports
//
// [Report] is discriminated by Kind ("label", "metcalfe", "shapley",
// "exact", "rank"). See [Report] for which fields each kind fills.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
