package nodelink

import (
	"strings"
	"testing"

	errs "github.com/matzehuels/netvalue/pkg/errors"
	"github.com/matzehuels/netvalue/pkg/network"
	"github.com/matzehuels/netvalue/pkg/value"
)

func path(ids ...string) *network.Graph {
	g := network.New(nil)
	for _, id := range ids {
		g.AddNode(network.Node{ID: id})
	}
	for i := 1; i < len(ids); i++ {
		g.AddEdge(network.Edge{From: ids[i-1], To: ids[i]})
	}
	return g
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(path("a", "b"), Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Error("ToDOT() output missing undirected graph declaration")
	}
	if !strings.Contains(dot, "layout=neato;") {
		t.Error("ToDOT() should default to the neato engine")
	}
	if !strings.Contains(dot, `"a" -- "b";`) {
		t.Error("ToDOT() output missing edge")
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() should not emit directed edges")
	}
}

func TestToDOT_Engine(t *testing.T) {
	dot := ToDOT(path("a"), Options{Engine: "circo"})
	if !strings.Contains(dot, "layout=circo;") {
		t.Errorf("engine not applied:\n%s", dot)
	}
}

func TestToDOT_Labels(t *testing.T) {
	g := path("a", "b", "c")
	g.AddNode(network.Node{ID: "island"})
	labels, err := value.Label(g, "b")
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(g, Options{Labels: labels})

	for _, want := range []string{
		`"b" [label="b", penwidth=3]`,
		`"a" [label="a", fillcolor=1]`,
		`"c" [label="c", fillcolor=2]`,
		`"island" [label="island", style="filled,dashed", fillcolor=lightgrey]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s\n%s", want, dot)
		}
	}
}

func TestToDOT_PaletteWraps(t *testing.T) {
	g := network.New(nil)
	g.AddNode(network.Node{ID: "x"})
	labels := value.Labels{"x": {Depth: 1, Branch: 13}}
	dot := ToDOT(g, Options{Labels: labels})
	if !strings.Contains(dot, "fillcolor=1]") {
		t.Errorf("branch 13 should wrap to colour 1:\n%s", dot)
	}
}

func TestToDOT_Scores(t *testing.T) {
	dot := ToDOT(path("a", "b"), Options{Scores: map[string]float64{"a": 2, "b": 1}})
	if !strings.Contains(dot, `"a" [label="a", width=1.50]`) {
		t.Errorf("largest score should get width 1.50:\n%s", dot)
	}
	if !strings.Contains(dot, `"b" [label="b", width=1.00]`) {
		t.Errorf("half score should get width 1.00:\n%s", dot)
	}
}

func TestFmtLabel_Simple(t *testing.T) {
	n := network.Node{ID: "n1", Label: "Alice"}
	if got := fmtLabel(n, Options{}); got != "Alice" {
		t.Errorf("fmtLabel() simple mode = %q, want %q", got, "Alice")
	}
}

func TestFmtLabel_Detailed(t *testing.T) {
	w := 2.5
	n := network.Node{ID: "n1", Weight: &w, Meta: network.Metadata{"team": "infra"}}
	opts := Options{
		Detailed: true,
		Labels:   value.Labels{"n1": {Depth: 2, Branch: 3}},
		Scores:   map[string]float64{"n1": 4},
	}
	label := fmtLabel(n, opts)

	if !strings.HasPrefix(label, "n1\n") {
		t.Errorf("fmtLabel() detailed should start with ID: %q", label)
	}
	for _, want := range []string{"w: 2.5", "d2 b3", "phi: 4", "team: infra"} {
		if !strings.Contains(label, want) {
			t.Errorf("fmtLabel() detailed missing %q: %q", want, label)
		}
	}
}

func TestValidateEngine(t *testing.T) {
	tests := []struct {
		engine  string
		wantErr bool
	}{
		{"", false},
		{"neato", false},
		{"twopi", false},
		{"osage", true},
		{"NEATO", true}, // case-sensitive
	}
	for _, tt := range tests {
		err := ValidateEngine(tt.engine)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEngine(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "rewrites tag",
			svg:  `<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			svg:  `<svg viewBox="0 0 0 10"></svg>`,
			want: `<svg viewBox="0 0 0 10"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderDOTPassthrough(t *testing.T) {
	out, err := Render("graph G {}", FormatDOT, 1)
	if err != nil || string(out) != "graph G {}" {
		t.Errorf("Render(dot) = %q, %v", out, err)
	}
	if _, err := Render("graph G {}", "gif", 1); !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("Render(gif) error = %v, want UNSUPPORTED", err)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(path("a", "b"), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(`not valid DOT {{{`)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
