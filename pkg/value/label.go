package value

import (
	errs "github.com/matzehuels/netvalue/pkg/errors"
)

// Unreached marks both coordinates of a node that the traversal never visited.
const Unreached = -1

// Coord is the position of a node relative to a traversal source.
type Coord struct {
	Depth  int // DFS-tree distance from the source
	Branch int // top-level subtree id; 0 for the source itself
}

// Reached reports whether the traversal visited the node.
func (c Coord) Reached() bool { return c.Branch != Unreached }

// Labels maps every node of a graph to its coordinate.
type Labels map[string]Coord

// Reached returns the IDs of visited nodes in the order given by ids.
func (l Labels) Reached(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if l[id].Reached() {
			out = append(out, id)
		}
	}
	return out
}

// Branches returns the number of distinct branches, not counting the source.
func (l Labels) Branches() int {
	seen := make(map[int]bool)
	for _, c := range l {
		if c.Reached() && c.Branch > 0 {
			seen[c.Branch] = true
		}
	}
	return len(seen)
}

// LabelOption configures Label.
type LabelOption func(*labelConfig)

type labelConfig struct {
	depthLimit int
}

// WithDepthLimit stops expanding nodes at the given depth. Nodes one layer
// past the last expanded one are still labelled. Zero restores the default,
// which is the node count, so a limit of 0 cannot be requested; use 1 to
// label the source's neighbours without expanding them.
func WithDepthLimit(limit int) LabelOption {
	return func(c *labelConfig) { c.depthLimit = limit }
}

// frame is one entry of the explicit traversal stack.
type frame struct {
	node  string
	depth int
	nbrs  []string
	next  int
}

// Label runs a depth-first traversal from source and returns the coordinate
// of every node in g. Unreached nodes are present with (Unreached, Unreached).
//
// The branch counter starts at 1 and is incremented every time a frame of
// depth 0 or 1 is exhausted, so each direct subtree of the source gets its
// own branch id. Neighbors are visited in g.Neighbors order.
//
// Returns INVALID_SOURCE if source is not in g, and INVALID_INPUT for a
// negative depth limit.
func Label(g Graph, source string, opts ...LabelOption) (Labels, error) {
	if !g.HasNode(source) {
		return nil, errs.New(errs.ErrCodeInvalidSource, "source node %q is not in the graph", source)
	}

	var cfg labelConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := errs.ValidateDepthLimit(cfg.depthLimit); err != nil {
		return nil, err
	}

	nodes := g.Nodes()
	limit := cfg.depthLimit
	if limit == 0 {
		limit = len(nodes)
	}

	labels := make(Labels, len(nodes))
	for _, id := range nodes {
		labels[id] = Coord{Depth: Unreached, Branch: Unreached}
	}
	labels[source] = Coord{}

	visited := map[string]bool{source: true}
	stack := []frame{{node: source, nbrs: g.Neighbors(source)}}
	branch := 1

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.nbrs) {
			if top.depth <= 1 {
				branch++
			}
			stack = stack[:len(stack)-1]
			continue
		}

		child := top.nbrs[top.next]
		top.next++
		if visited[child] {
			continue
		}
		visited[child] = true
		depth := top.depth + 1
		labels[child] = Coord{Depth: depth, Branch: branch}
		if top.depth < limit-1 {
			stack = append(stack, frame{node: child, depth: depth, nbrs: g.Neighbors(child)})
		}
	}

	return labels, nil
}
