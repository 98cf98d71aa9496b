// Package render converts rendered SVG diagrams to other formats.
//
// The [nodelink] subpackage draws gene graphs with Graphviz. [ToPDF] and
// [ToPNG] convert its SVG output using the external rsvg-convert tool.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [nodelink]: github.com/matzehuels/tsg/pkg/render/nodelink
package render
