package cache

// Keyer builds cache keys. Every key embeds the content hash of the graph
// and weights it was computed from, so editing the input file invalidates
// its entries without explicit deletes.
type Keyer interface {
	// GraphKey addresses a decoded graph by the hash of its source bytes.
	GraphKey(contentHash string) string
	// ValueKey addresses a Metcalfe, Shapley, exact or rank result.
	ValueKey(graphHash string, opts ValueKeyOpts) string
	// LabelKey addresses the traversal labels of one source node.
	LabelKey(graphHash string, opts LabelKeyOpts) string
}

// ValueKeyOpts are the inputs that change a value computation.
type ValueKeyOpts struct {
	Kind    string   `json:"kind"`
	Node    string   `json:"node,omitempty"`
	Subset  []string `json:"subset,omitempty"`
	Uniform bool     `json:"uniform,omitempty"`
}

// LabelKeyOpts are the inputs that change a labelling.
type LabelKeyOpts struct {
	Source     string `json:"source"`
	DepthLimit int    `json:"depth_limit,omitempty"`
}

// DefaultKeyer produces unprefixed keys of the form "type:hash".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GraphKey generates a key for a decoded graph.
func (DefaultKeyer) GraphKey(contentHash string) string {
	return "graph:" + contentHash
}

// ValueKey generates a key for a value computation over a graph.
func (DefaultKeyer) ValueKey(graphHash string, opts ValueKeyOpts) string {
	return hashKey("value", graphHash, opts)
}

// LabelKey generates a key for a labelling.
func (DefaultKeyer) LabelKey(graphHash string, opts LabelKeyOpts) string {
	return hashKey("label", graphHash, opts)
}

var _ Keyer = DefaultKeyer{}
