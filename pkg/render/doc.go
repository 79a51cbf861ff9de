// Package render converts rendered diagrams between output formats.
//
// [ToPDF] and [ToPNG] convert SVG to other formats using the external
// rsvg-convert tool (from librsvg). The [nodelink] subpackage produces the
// SVG from a network with Graphviz.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Labels: labels})
//	svg, err := nodelink.RenderSVG(dot)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// When rsvg-convert is missing, conversions fail with code UNSUPPORTED.
//
// [nodelink]: github.com/matzehuels/netvalue/pkg/render/nodelink
package render
