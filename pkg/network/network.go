package network

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Graph.AddEdge] when either endpoint does
	// not exist in the graph.
	ErrUnknownNode = errors.New("unknown node")
)

// Metadata stores arbitrary key-value pairs attached to nodes or the graph.
// Metadata maps are never nil - they are initialized to empty maps by
// [New] and [Graph.AddNode].
type Metadata map[string]any

// Node is a vertex of the network.
//
// Weight is optional: a nil Weight means the node takes the default weight
// of 1 when [Graph.Weights] is asked for a weight vector.
type Node struct {
	ID     string   // Unique identifier
	Label  string   // Display label (defaults to ID)
	Weight *float64 // Optional node weight
	Meta   Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// WeightOr returns the node weight, or def when the node has none.
func (n Node) WeightOr(def float64) float64 {
	if n.Weight == nil {
		return def
	}
	return *n.Weight
}

// Edge is an undirected connection between two nodes. From and To are
// interchangeable; they only record the order in which the edge was given.
type Edge struct {
	From string
	To   string
}

// Graph is a simple undirected graph.
//
// Node order and neighbor order are insertion order, which makes every
// traversal over the graph reproducible. Parallel edges collapse into one;
// a self-loop is stored once in the node's own neighbor list.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent mutation; concurrent reads are safe.
type Graph struct {
	nodes map[string]*Node
	order []string
	index map[string]int
	adj   map[string][]string
	edges []Edge
	meta  Metadata
}

// New creates an empty Graph with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		nodes: make(map[string]*Node),
		index: make(map[string]int),
		adj:   make(map[string][]string),
		meta:  meta,
	}
}

// Meta returns the graph-level metadata map.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	g.nodes[node.ID] = node
	g.index[node.ID] = len(g.order)
	g.order = append(g.order, node.ID)
	g.adj[node.ID] = nil
	return nil
}

// EnsureNode adds a bare node with the given ID unless it already exists.
// It is used by loaders for formats that only list edges.
func (g *Graph) EnsureNode(id string) error {
	if g.HasNode(id) {
		return nil
	}
	return g.AddNode(Node{ID: id})
}

// AddEdge adds an undirected edge between two existing nodes.
// Returns ErrUnknownNode if either endpoint doesn't exist. Adding an edge
// that already exists (in either direction) is a no-op.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownNode
	}
	if g.HasEdge(e.From, e.To) {
		return nil
	}
	g.edges = append(g.edges, e)
	g.adj[e.From] = append(g.adj[e.From], e.To)
	if e.From != e.To {
		g.adj[e.To] = append(g.adj[e.To], e.From)
	}
	return nil
}

// RemoveEdge removes the edge between u and v if it exists.
// No error is returned if the edge does not exist.
func (g *Graph) RemoveEdge(u, v string) {
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool {
		return (e.From == u && e.To == v) || (e.From == v && e.To == u)
	})
	g.adj[u] = slices.DeleteFunc(g.adj[u], func(s string) bool { return s == v })
	g.adj[v] = slices.DeleteFunc(g.adj[v], func(s string) bool { return s == u })
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v string) bool {
	return slices.Contains(g.adj[u], v)
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node with the given ID and true, or nil and false if not found.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all node IDs in insertion order.
// The returned slice is a copy and may be modified by the caller.
func (g *Graph) Nodes() []string { return slices.Clone(g.order) }

// NodeList returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs, so modifications affect the graph.
func (g *Graph) NodeList() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Neighbors returns the IDs adjacent to id in the order the edges were added.
// Returns nil if the node has no neighbors or doesn't exist. The returned
// slice should not be modified - use it as a read-only view.
func (g *Graph) Neighbors(id string) []string { return g.adj[id] }

// Degree returns the number of neighbors of the node.
// A self-loop counts once. Returns 0 if the node doesn't exist.
func (g *Graph) Degree(id string) int { return len(g.adj[id]) }

// Index returns the insertion position of the node, or -1 if not found.
// Positional weight vectors are interpreted against this order.
func (g *Graph) Index(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	return -1
}

// Weights returns the weight of every node keyed by ID. Nodes without an
// explicit weight get 1. A fresh map is built on every call.
func (g *Graph) Weights() map[string]float64 {
	w := make(map[string]float64, len(g.order))
	for _, id := range g.order {
		w[id] = g.nodes[id].WeightOr(1)
	}
	return w
}

// HasWeights reports whether any node carries an explicit weight.
func (g *Graph) HasWeights() bool {
	for _, n := range g.nodes {
		if n.Weight != nil {
			return true
		}
	}
	return false
}

// Subgraph returns the subgraph induced by the given node IDs.
// Unknown IDs are ignored. Node structs are copied; metadata maps are shared.
// The returned graph keeps the relative node and edge order of g.
func (g *Graph) Subgraph(ids []string) *Graph {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		if g.HasNode(id) {
			keep[id] = true
		}
	}

	sub := New(g.meta)
	for _, id := range g.order {
		if keep[id] {
			_ = sub.AddNode(*g.nodes[id])
		}
	}
	for _, e := range g.edges {
		if keep[e.From] && keep[e.To] {
			_ = sub.AddEdge(e)
		}
	}
	return sub
}

// Components returns the connected components of the subgraph induced by
// subset. A nil subset means the whole graph. Unknown IDs are ignored and
// duplicates count once.
//
// Components are ordered by their first member in graph order, and members
// within a component follow graph order, so the result is deterministic.
func (g *Graph) Components(subset []string) [][]string {
	var members []string
	if subset == nil {
		members = g.order
	} else {
		seen := make(map[string]bool, len(subset))
		for _, id := range subset {
			if g.HasNode(id) && !seen[id] {
				seen[id] = true
			}
		}
		members = make([]string, 0, len(seen))
		for _, id := range g.order {
			if seen[id] {
				members = append(members, id)
			}
		}
	}
	if len(members) == 0 {
		return nil
	}

	in := make(map[string]bool, len(members))
	uf := newUnionFind()
	for _, id := range members {
		in[id] = true
		uf.add(id)
	}
	for _, e := range g.edges {
		if in[e.From] && in[e.To] {
			uf.union(e.From, e.To)
		}
	}

	slot := make(map[string]int)
	var comps [][]string
	for _, id := range members {
		root := uf.find(id)
		i, ok := slot[root]
		if !ok {
			i = len(comps)
			slot[root] = i
			comps = append(comps, nil)
		}
		comps[i] = append(comps[i], id)
	}
	return comps
}

// IsConnected reports whether the graph has exactly one connected component.
// An empty graph is not connected.
func (g *Graph) IsConnected() bool {
	return len(g.Components(nil)) == 1
}

// IsForest reports whether the graph has no cycles. Self-loops count as cycles.
func (g *Graph) IsForest() bool {
	for _, e := range g.edges {
		if e.From == e.To {
			return false
		}
	}
	return len(g.edges) == len(g.order)-len(g.Components(nil))
}
