package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	errs "github.com/matzehuels/netvalue/pkg/errors"
	"github.com/matzehuels/netvalue/pkg/network"
)

// WriteGraph encodes g as indented JSON in node insertion order.
func WriteGraph(g *network.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromNetwork(g)); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// ReadGraph decodes a JSON graph and builds the network. Malformed JSON is
// INVALID_FORMAT; structural problems come from ToNetwork.
func ReadGraph(r io.Reader) (*network.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode graph")
	}
	return ToNetwork(data)
}

// MarshalGraph is WriteGraph into a byte slice. The analysis runner stores
// this encoding in the cache.
func MarshalGraph(g *network.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph decodes the wire form only. Call ToNetwork to build the
// network.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode graph")
	}
	return g, nil
}

func WriteGraphFile(g *network.Graph, path string) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadGraphFile reads a JSON graph file. A missing file is FILE_NOT_FOUND.
func ReadGraphFile(path string) (*network.Graph, error) {
	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	case err != nil:
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
