package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/netvalue/pkg/errors"
	"github.com/matzehuels/netvalue/pkg/network"
)

func weight(w float64) *float64 { return &w }

func TestMarshalGraph(t *testing.T) {
	tests := []struct {
		name      string
		build     func() *network.Graph
		wantNodes int
		wantEdges int
		check     func(t *testing.T, g Graph)
	}{
		{
			name:  "Empty",
			build: func() *network.Graph { return network.New(nil) },
		},
		{
			name: "KeepsInsertionOrder",
			build: func() *network.Graph {
				g := network.New(nil)
				g.AddNode(network.Node{ID: "z"})
				g.AddNode(network.Node{ID: "a"})
				g.AddEdge(network.Edge{From: "z", To: "a"})
				return g
			},
			wantNodes: 2,
			wantEdges: 1,
			check: func(t *testing.T, g Graph) {
				if g.Nodes[0].ID != "z" || g.Nodes[1].ID != "a" {
					t.Errorf("node order = %s,%s, want z,a", g.Nodes[0].ID, g.Nodes[1].ID)
				}
			},
		},
		{
			name: "PreservesWeightAndMeta",
			build: func() *network.Graph {
				g := network.New(nil)
				g.AddNode(network.Node{ID: "a", Label: "Alice", Weight: weight(2.5), Meta: network.Metadata{"team": "core"}})
				return g
			},
			wantNodes: 1,
			check: func(t *testing.T, g Graph) {
				n := g.Nodes[0]
				if n.Weight == nil || *n.Weight != 2.5 {
					t.Errorf("weight = %v, want 2.5", n.Weight)
				}
				if n.Label != "Alice" {
					t.Errorf("label = %q, want Alice", n.Label)
				}
				if n.Meta["team"] != "core" {
					t.Errorf("meta team = %v, want core", n.Meta["team"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalGraph(tt.build())
			if err != nil {
				t.Fatalf("MarshalGraph: %v", err)
			}
			g, err := UnmarshalGraph(data)
			if err != nil {
				t.Fatalf("UnmarshalGraph: %v", err)
			}
			if len(g.Nodes) != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", len(g.Nodes), tt.wantNodes)
			}
			if len(g.Edges) != tt.wantEdges {
				t.Errorf("edges = %d, want %d", len(g.Edges), tt.wantEdges)
			}
			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

func TestReadGraph(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errs.Code
		check    func(t *testing.T, g *network.Graph)
	}{
		{
			name:  "EdgesCreateNodes",
			input: `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "b"}]}`,
			check: func(t *testing.T, g *network.Graph) {
				if g.NodeCount() != 2 {
					t.Errorf("NodeCount = %d, want 2", g.NodeCount())
				}
				if !g.HasEdge("b", "a") {
					t.Error("edge should be undirected")
				}
			},
		},
		{
			name:  "Weights",
			input: `{"nodes": [{"id": "a", "weight": 3}, {"id": "b"}], "edges": []}`,
			check: func(t *testing.T, g *network.Graph) {
				w := g.Weights()
				if w["a"] != 3 || w["b"] != 1 {
					t.Errorf("weights = %v, want a=3 b=1", w)
				}
			},
		},
		{
			name:     "DuplicateNode",
			input:    `{"nodes": [{"id": "a"}, {"id": "a"}]}`,
			wantCode: errs.ErrCodeInvalidFormat,
		},
		{
			name:     "EmptyID",
			input:    `{"nodes": [{"id": ""}]}`,
			wantCode: errs.ErrCodeInvalidFormat,
		},
		{
			name:     "Malformed",
			input:    `{"nodes": [`,
			wantCode: errs.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGraph(strings.NewReader(tt.input))
			if tt.wantCode != "" {
				if !errs.Is(err, tt.wantCode) {
					t.Fatalf("error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadGraph: %v", err)
			}
			tt.check(t, g)
		})
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	g := network.New(nil)
	g.AddNode(network.Node{ID: "a", Weight: weight(2)})
	g.AddNode(network.Node{ID: "b"})
	g.AddNode(network.Node{ID: "c"})
	g.AddEdge(network.Edge{From: "a", To: "b"})
	g.AddEdge(network.Edge{From: "b", To: "c"})

	path := filepath.Join(t.TempDir(), "net.json")
	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}

	var a, b bytes.Buffer
	WriteGraph(g, &a)
	WriteGraph(got, &b)
	if a.String() != b.String() {
		t.Errorf("round trip changed graph:\n%s\nvs\n%s", a.String(), b.String())
	}
}

func TestReadGraphFileMissing(t *testing.T) {
	_, err := ReadGraphFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReportValidate(t *testing.T) {
	v := 1.0
	tests := []struct {
		name    string
		report  Report
		wantErr bool
	}{
		{"Label", Report{Kind: KindLabel, Source: "a"}, false},
		{"LabelNoSource", Report{Kind: KindLabel}, true},
		{"Shapley", Report{Kind: KindShapley, Node: "a", Value: &v}, false},
		{"ShapleyNoValue", Report{Kind: KindShapley, Node: "a"}, true},
		{"Metcalfe", Report{Kind: KindMetcalfe, Value: &v}, false},
		{"Rank", Report{Kind: KindRank}, false},
		{"Unknown", Report{Kind: "pagerank"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.report.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteReportFile(t *testing.T) {
	r := &Report{Kind: KindShapley, Node: "a", NodeCount: 3}
	r.SetValue(2.5)

	path := filepath.Join(t.TempDir(), "report.json")
	if err := WriteReportFile(r, path); err != nil {
		t.Fatalf("WriteReportFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalReport(data)
	if err != nil {
		t.Fatalf("UnmarshalReport: %v", err)
	}
	if got.Node != "a" || *got.Value != 2.5 || got.NodeCount != 3 {
		t.Errorf("got %+v", got)
	}
}
