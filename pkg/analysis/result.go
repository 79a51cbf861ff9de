package analysis

import (
	"time"

	"github.com/matzehuels/netvalue/pkg/graph"
	"github.com/matzehuels/netvalue/pkg/value"
)

// Result is the outcome of one Runner operation.
type Result struct {
	// Report is the serializable analysis output.
	Report *graph.Report

	// GraphHash identifies the analysed graph and weights. It is the
	// content hash used in cache keys and API responses.
	GraphHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats describes the analysed graph and how long the run took.
type Stats struct {
	NodeCount int
	EdgeCount int
	Duration  time.Duration
}

// CacheInfo reports whether the result came from the cache.
type CacheInfo struct {
	Hit bool
	Key string
}

// Labels returns the coordinates of a label report keyed by node.
func (r *Result) Labels() value.Labels {
	labels := make(value.Labels, len(r.Report.Labels))
	for _, l := range r.Report.Labels {
		labels[l.ID] = value.Coord{Depth: l.Depth, Branch: l.Branch}
	}
	return labels
}

// Scores returns the values of a rank report keyed by node.
func (r *Result) Scores() map[string]float64 {
	scores := make(map[string]float64, len(r.Report.Scores))
	for _, s := range r.Report.Scores {
		scores[s.Node] = s.Value
	}
	return scores
}
