package graph

import (
	errs "github.com/matzehuels/netvalue/pkg/errors"
	"github.com/matzehuels/netvalue/pkg/network"
)

// =============================================================================
// Graph - Network Serialization
// =============================================================================

// Graph is the canonical serialization format for networks.
// Used for graph files, API requests, and cache keys.
//
// Node order is significant: it fixes positional weights and the neighbor
// order the branch labelling follows, so conversions preserve it.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes" toml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges" toml:"edges"`
}

// =============================================================================
// Node / Edge
// =============================================================================

// Node is one network participant.
type Node struct {
	ID     string         `json:"id" yaml:"id" toml:"id"`
	Label  string         `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Weight *float64       `json:"weight,omitempty" yaml:"weight,omitempty" toml:"weight,omitempty"`
	Meta   map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is an undirected link. From and To are interchangeable.
type Edge struct {
	From string `json:"from" yaml:"from" toml:"from"`
	To   string `json:"to" yaml:"to" toml:"to"`
}

// =============================================================================
// Network ↔ Graph Conversion
// =============================================================================

// FromNetwork converts a network to its serialization format, keeping node
// and edge insertion order.
func FromNetwork(g *network.Graph) Graph {
	nodes := g.NodeList()
	edges := g.Edges()

	out := Graph{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		nd := Node{ID: n.ID, Label: n.Label}
		if n.Weight != nil {
			w := *n.Weight
			nd.Weight = &w
		}
		if len(n.Meta) > 0 {
			nd.Meta = map[string]any(n.Meta)
		}
		out.Nodes[i] = nd
	}
	for i, e := range edges {
		out.Edges[i] = Edge{From: e.From, To: e.To}
	}
	return out
}

// ToNetwork builds a network from its serialization format.
// Edges may mention nodes that are not listed; they are created with no
// weight. Invalid IDs, duplicate nodes and non-finite weights are reported
// as INVALID_FORMAT.
func ToNetwork(data Graph) (*network.Graph, error) {
	g := network.New(nil)
	for _, n := range data.Nodes {
		if err := errs.ValidateNodeID(n.ID); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "node %q", n.ID)
		}
		nd := network.Node{ID: n.ID, Label: n.Label, Meta: network.Metadata(n.Meta)}
		if n.Weight != nil {
			if err := errs.ValidateWeight(n.ID, *n.Weight); err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "node %q", n.ID)
			}
			w := *n.Weight
			nd.Weight = &w
		}
		if err := g.AddNode(nd); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "node %q", n.ID)
		}
	}
	for _, e := range data.Edges {
		for _, id := range []string{e.From, e.To} {
			if err := errs.ValidateNodeID(id); err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "edge %s-%s", e.From, e.To)
			}
			if err := g.EnsureNode(id); err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "edge %s-%s", e.From, e.To)
			}
		}
		if err := g.AddEdge(network.Edge{From: e.From, To: e.To}); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "edge %s-%s", e.From, e.To)
		}
	}
	return g, nil
}
