// Package nodelink renders networks as node-link diagrams using Graphviz.
//
// # Overview
//
// Graphviz computes the layout and draws the diagram in one step, so the
// DOT source produced by [ToDOT] is the only intermediate form:
//
//	network → ToDOT() → DOT → RenderSVG() → SVG
//
// # Styling
//
// Given labels from value.Label, nodes are filled by branch using the
// twelve-colour Brewer "set312" scheme (branches past twelve wrap around).
// The source node gets a heavy outline; unreached nodes are grey and
// dashed. Given Shapley scores, node diameter grows with the score.
//
// # Layout Engines
//
// Graphviz provides several layout engines via the Engine option:
//
//   - neato: Spring model (default)
//   - fdp, sfdp: Force-directed, sfdp for large graphs
//   - circo: Circular
//   - twopi: Radial, centred on the first node; useful with a source
//   - dot: Hierarchical
//
// # Usage
//
//	labels, _ := value.Label(g, "hub")
//	dot := nodelink.ToDOT(g, nodelink.Options{Labels: labels, Engine: "twopi"})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.Render(dot, nodelink.FormatPDF, 0)
//	png, err := nodelink.Render(dot, nodelink.FormatPNG, 2.0)  // 2x scale
package nodelink
