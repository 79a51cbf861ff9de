package analysis

import (
	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/netvalue/pkg/errors"
	"github.com/matzehuels/netvalue/pkg/value"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWorkers is the number of goroutines Rank uses when Workers is 0.
	DefaultWorkers = 4

	// MaxWorkers caps the rank worker pool.
	MaxWorkers = 256

	// DefaultExactMaxNodes is the exact enumeration limit when none is set.
	DefaultExactMaxNodes = value.MaxExactNodes
)

// =============================================================================
// Options - Analysis Configuration
// =============================================================================

// Options configures a single analysis run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Uniform ignores node weights from the graph and weighs every node 1.
	Uniform bool `json:"uniform,omitempty"`

	// DepthLimit bounds the labelling traversal; 0 means the node count.
	DepthLimit int `json:"depth_limit,omitempty" validate:"min=0"`

	// Workers is the rank worker pool size; 0 means DefaultWorkers.
	Workers int `json:"workers,omitempty" validate:"min=0,max=256"`

	// ExactMaxNodes caps exact enumeration; 0 means DefaultExactMaxNodes.
	ExactMaxNodes int `json:"exact_max_nodes,omitempty" validate:"min=0,max=24"`

	// Refresh skips cache reads but still writes fresh results.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives progress messages. Defaults to the runner's logger.
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults validates options and fills in defaults.
// Calling it more than once is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errs.ValidateStruct(o); err != nil {
		return err
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.ExactMaxNodes == 0 {
		o.ExactMaxNodes = DefaultExactMaxNodes
	}
	o.validated = true
	return nil
}

// labelOpts converts the options into value.Label options.
func (o *Options) labelOpts() []value.LabelOption {
	if o.DepthLimit == 0 {
		return nil
	}
	return []value.LabelOption{value.WithDepthLimit(o.DepthLimit)}
}
