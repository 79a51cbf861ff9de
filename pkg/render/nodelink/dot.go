package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/netvalue/pkg/errors"
	"github.com/matzehuels/netvalue/pkg/network"
	"github.com/matzehuels/netvalue/pkg/render"
	"github.com/matzehuels/netvalue/pkg/value"
)

// DefaultEngine lays out undirected networks with a spring model.
const DefaultEngine = "neato"

// Engines are the Graphviz layout engines ToDOT accepts.
var Engines = []string{"dot", "neato", "fdp", "sfdp", "circo", "twopi"}

// paletteSize is the number of colours in the "set312" Brewer scheme.
const paletteSize = 12

// Options configures node-link diagram rendering.
type Options struct {
	// Engine is the Graphviz layout engine. Empty means DefaultEngine.
	Engine string

	// Labels colours nodes by branch and outlines the source node.
	// Nodes missing from Labels, or unreached, are drawn grey and dashed.
	Labels value.Labels

	// Scores scales node size relative to the largest score.
	Scores map[string]float64

	// Detailed adds weight, coordinates and score to node labels.
	// When false, only the display label is shown.
	Detailed bool
}

// ValidateEngine reports whether engine is a supported layout engine.
func ValidateEngine(engine string) error {
	if engine == "" || slices.Contains(Engines, engine) {
		return nil
	}
	return errs.New(errs.ErrCodeInvalidInput, "unknown layout engine %q (want one of %s)",
		engine, strings.Join(Engines, ", "))
}

// ToDOT writes g as an undirected Graphviz graph for [Render].
func ToDOT(g *network.Graph, opts Options) string {
	engine := opts.Engine
	if engine == "" {
		engine = DefaultEngine
	}
	maxScore := 0.0
	for _, s := range opts.Scores {
		maxScore = max(maxScore, s)
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", engine)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, colorscheme=set312, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, n := range g.NodeList() {
		label := fmtLabel(*n, opts)
		attrs := fmtAttrs(*n, label, opts, maxScore)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n network.Node, opts Options) string {
	if !opts.Detailed {
		return n.DisplayLabel()
	}

	parts := []string{fmt.Sprintf("w: %g", n.WeightOr(1))}
	if c, ok := opts.Labels[n.ID]; ok && c.Reached() {
		parts = append(parts, fmt.Sprintf("d%d b%d", c.Depth, c.Branch))
	}
	if s, ok := opts.Scores[n.ID]; ok {
		parts = append(parts, fmt.Sprintf("phi: %.3g", s))
	}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}

	return n.DisplayLabel() + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n network.Node, label string, opts Options, maxScore float64) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}

	if opts.Labels != nil {
		c, ok := opts.Labels[n.ID]
		switch {
		case !ok || !c.Reached():
			attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey")
		case c.Depth == 0:
			attrs = append(attrs, "penwidth=3")
		default:
			attrs = append(attrs, fmt.Sprintf("fillcolor=%d", (c.Branch-1)%paletteSize+1))
		}
	}

	if s, ok := opts.Scores[n.ID]; ok && maxScore > 0 {
		attrs = append(attrs, fmt.Sprintf("width=%.2f", 0.5+s/maxScore))
	}
	return attrs
}

// RenderSVG lays out dot with the embedded Graphviz and returns SVG sized to
// its viewBox.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "start graphviz")
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer parsed.Close()

	var out bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &out); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "graphviz layout")
	}
	return normalizeViewBox(out.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox swaps Graphviz's point-sized svg element for one whose
// width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// Output formats accepted by [Render].
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

// Render produces dot in format. PNG and PDF are converted from the SVG by
// pkg/render and need rsvg-convert; scale only applies to PNG.
func Render(dot, format string, scale float64) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG, FormatPNG, FormatPDF:
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported render format %q", format)
	}

	svg, err := RenderSVG(dot)
	if err != nil || format == FormatSVG {
		return svg, err
	}
	if format == FormatPNG {
		return render.ToPNG(svg, scale)
	}
	return render.ToPDF(svg)
}
