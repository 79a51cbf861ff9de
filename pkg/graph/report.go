package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// Report kinds.
const (
	KindLabel    = "label"
	KindMetcalfe = "metcalfe"
	KindShapley  = "shapley"
	KindRank     = "rank"
	KindExact    = "exact"
)

// =============================================================================
// Report - Unified Analysis Result Format
// =============================================================================

// Report is the serialization format for analysis results, used for CLI
// JSON output, API responses, and cached results.
//
// This is a discriminated union - check Kind to see which fields are set:
//
//	label:    Source, Labels
//	metcalfe: Subset, Value
//	shapley:  Node, Value
//	exact:    Node, Value (and Approx when both were computed)
//	rank:     Scores
//
// Shared fields (all kinds):
//   - NodeCount, EdgeCount: size of the analysed graph
//   - Uniform: whether weights were forced to 1
type Report struct {
	// Discriminator
	Kind string `json:"kind" yaml:"kind"`

	NodeCount int  `json:"node_count" yaml:"node_count"`
	EdgeCount int  `json:"edge_count" yaml:"edge_count"`
	Uniform   bool `json:"uniform,omitempty" yaml:"uniform,omitempty"`

	// Single value (metcalfe, shapley, exact)
	Node   string   `json:"node,omitempty" yaml:"node,omitempty"`
	Subset []string `json:"subset,omitempty" yaml:"subset,omitempty"`
	Value  *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Approx *float64 `json:"approx,omitempty" yaml:"approx,omitempty"`

	// label
	Source string      `json:"source,omitempty" yaml:"source,omitempty"`
	Labels []NodeLabel `json:"labels,omitempty" yaml:"labels,omitempty"`

	// rank
	Scores []Score `json:"scores,omitempty" yaml:"scores,omitempty"`
}

// NodeLabel is the traversal coordinate of one node. Unreached nodes carry
// -1 in both fields.
type NodeLabel struct {
	ID     string `json:"id" yaml:"id"`
	Depth  int    `json:"depth" yaml:"depth"`
	Branch int    `json:"branch" yaml:"branch"`
}

// Score is the value attributed to one node.
type Score struct {
	Node  string  `json:"node" yaml:"node"`
	Value float64 `json:"value" yaml:"value"`
}

// SetValue stores v in the report.
func (r *Report) SetValue(v float64) { r.Value = &v }

// Validate checks that the fields required by Kind are set.
func (r *Report) Validate() error {
	switch r.Kind {
	case KindLabel:
		if r.Source == "" {
			return fmt.Errorf("label report requires source")
		}
	case KindMetcalfe:
		if r.Value == nil {
			return fmt.Errorf("metcalfe report requires value")
		}
	case KindShapley, KindExact:
		if r.Node == "" || r.Value == nil {
			return fmt.Errorf("%s report requires node and value", r.Kind)
		}
	case KindRank:
	default:
		return fmt.Errorf("unknown report kind %q", r.Kind)
	}
	return nil
}

// MarshalReport serializes a report to indented JSON.
func MarshalReport(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// UnmarshalReport decodes and validates a report.
func UnmarshalReport(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// WriteReportFile writes a report as JSON.
func WriteReportFile(r *Report, path string) error {
	data, err := MarshalReport(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
