package io

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/netvalue/pkg/errors"
	"github.com/matzehuels/netvalue/pkg/graph"
	"github.com/matzehuels/netvalue/pkg/network"
)

// Format names accepted by [Read] and [Write].
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatTOML     = "toml"
	FormatEdgeList = "edgelist"
)

// ReadJSON decodes a JSON graph from r into a network.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "a", "weight": 2}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// Errors are *errors.Error values with code INVALID_FORMAT; the cause
// names the offending node or edge. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*network.Graph, error) {
	var data graph.Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode json")
	}
	return graph.ToNetwork(data)
}

// ReadYAML decodes the same node-link structure from YAML:
//
//	nodes:
//	  - id: a
//	    weight: 2
//	  - id: b
//	edges:
//	  - {from: a, to: b}
func ReadYAML(r io.Reader) (*network.Graph, error) {
	var data graph.Graph
	if err := yaml.NewDecoder(r).Decode(&data); err != nil && err != io.EOF {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return graph.ToNetwork(data)
}

// ReadTOML decodes the node-link structure from TOML arrays of tables:
//
//	[[nodes]]
//	id = "a"
//	weight = 2.0
//
//	[[edges]]
//	from = "a"
//	to = "b"
func ReadTOML(r io.Reader) (*network.Graph, error) {
	var data graph.Graph
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode toml")
	}
	return graph.ToNetwork(data)
}

// ReadEdgeList reads whitespace-separated "u v" pairs, one edge per line.
// A line with a single token declares an isolated node. Blank lines and
// lines starting with '#' are skipped. Edges are unweighted: a trailing
// networkx data dict ("u v {'since': 2019}") is skipped, any other extra
// column is INVALID_FORMAT.
func ReadEdgeList(r io.Reader) (*network.Graph, error) {
	var data graph.Graph
	seen := make(map[string]bool)
	addNode := func(id string) {
		if !seen[id] {
			seen[id] = true
			data.Nodes = append(data.Nodes, graph.Node{ID: id})
		}
	}

	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 2 {
			if !strings.HasPrefix(fields[2], "{") || !strings.HasSuffix(line, "}") {
				return nil, errs.New(errs.ErrCodeInvalidFormat,
					"edge list line %d: want \"u v\", got %d columns", lineNo, len(fields))
			}
			fields = fields[:2]
		}
		addNode(fields[0])
		if len(fields) > 1 {
			addNode(fields[1])
			data.Edges = append(data.Edges, graph.Edge{From: fields[0], To: fields[1]})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read edge list")
	}
	return graph.ToNetwork(data)
}

// Read decodes r in the named format.
func Read(r io.Reader, format string) (*network.Graph, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatEdgeList:
		return ReadEdgeList(r)
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported graph format %q", format)
	}
}

// DetectFormat maps a file extension to a format name. Unknown extensions
// fall back to the edge list format.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatEdgeList
	}
}

// Import reads the graph file at path, choosing the decoder from the file
// extension. A missing file is reported as FILE_NOT_FOUND.
func Import(path string) (*network.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, DetectFormat(path))
}
