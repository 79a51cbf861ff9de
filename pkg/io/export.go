package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/netvalue/pkg/errors"
	"github.com/matzehuels/netvalue/pkg/graph"
	"github.com/matzehuels/netvalue/pkg/network"
)

// WriteJSON encodes a network as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *network.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(graph.FromNetwork(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes a network as YAML and writes it to w.
func WriteYAML(g *network.Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(graph.FromNetwork(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// WriteEdgeList writes one "u v" line per edge, followed by one line per
// isolated node. Weights are not preserved.
func WriteEdgeList(g *network.Graph, w io.Writer) error {
	for _, e := range g.Edges() {
		if _, err := fmt.Fprintf(w, "%s %s\n", e.From, e.To); err != nil {
			return err
		}
	}
	for _, id := range g.Nodes() {
		if g.Degree(id) == 0 {
			if _, err := fmt.Fprintln(w, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Write encodes g in the named format. TOML output is not supported.
func Write(g *network.Graph, w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		return WriteJSON(g, w)
	case FormatYAML:
		return WriteYAML(g, w)
	case FormatEdgeList:
		return WriteEdgeList(g, w)
	default:
		return errs.New(errs.ErrCodeUnsupported, "cannot write graph format %q", format)
	}
}

// Export writes g to path in the format implied by its extension.
func Export(g *network.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f, DetectFormat(path))
}
