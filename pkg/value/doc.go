// Package value computes network-value attribution on undirected graphs.
//
// # Overview
//
// Metcalfe's law values a network by the square of its size. For a node
// subset S the Metcalfe value is the sum, over the connected components C of
// the subgraph induced by S, of the squared total weight of C:
//
//	value(S) = Σ_C (Σ_{x ∈ C} w[x])²
//
// Treating value as the characteristic function of a cooperative game, the
// Shapley value of a node is its fair share of value(V). Computing it exactly
// means enumerating 2^(n-1) coalitions. [Shapley] instead uses a closed form
// over node pairs:
//
//  1. [Label] runs one depth-first traversal from the node and gives every
//     reachable node a (depth, branch) coordinate. The branch identifies the
//     top-level subtree of the source a node was discovered in.
//  2. Every ordered pair (a, b) in different branches contributes
//     w[a]·w[b]·[SubCount](depth(a), depth(b), n); the pair (i, i)
//     contributes w[i]²·n.
//  3. The sum is divided by n.
//
// # Depth Is DFS-Tree Distance
//
// Depth is the distance along the DFS tree that [Label] builds, not the
// shortest-path distance in the graph. This is the modelling choice the
// closed form rests on: it is exact on forests and an approximation on
// graphs with cycles (a triangle gives 8/3 per node against an exact 3).
// Replacing the traversal with a breadth-first search changes the value
// being computed. [Exact] enumerates coalitions on small graphs and makes
// the gap measurable.
//
// # Weights
//
// [Weights] are keyed by node ID. A nil Weights means every node weighs 1;
// the uniform vector is built fresh on every call. Positional vectors go
// through [WeightsFromSlice], which binds position i to the i-th ID of
// Graph.Nodes.
//
// # Errors
//
// Errors are *errors.Error values from package
// github.com/matzehuels/netvalue/pkg/errors:
//
//   - INVALID_SOURCE: the source or target node is not in the graph
//   - WEIGHT_MISMATCH: weights do not cover every node
//   - INVALID_INPUT: negative depth limit, unknown subset member, non-finite weight
//   - EMPTY_GRAPH: ranking an empty graph
//   - TOO_LARGE: exact enumeration on a graph above the node limit
//
// # Concurrency
//
// All functions are pure. They read the graph without modifying it and
// allocate their label map and visited set per call, so they can run in
// parallel on a shared graph as long as nobody mutates it.
package value
