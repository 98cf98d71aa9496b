package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tsg/pkg/render"
	"github.com/matzehuels/tsg/pkg/tsg"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the genomic location, evidence count and overlay
	// attributes to node labels. When false, only the node ID is shown.
	Detailed bool

	// Path highlights the edges of the named path. Empty means none.
	Path string
}

var strandFill = map[tsg.Strand]string{
	tsg.StrandForward: "lightblue",
	tsg.StrandReverse: "lightsalmon",
	tsg.StrandUnknown: "white",
}

// ToDOT converts one gene graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Nodes are filled by strand. Splice edges are solid; every other edge kind
// (structural joins) is drawn dashed and labelled with its kind.
func ToDOT(g *tsg.Graph, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", g.ID)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(g, n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	onPath := pathEdges(g, opts.Path)
	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := []string{fmt.Sprintf("tooltip=%q", e.ID)}
		if e.Kind != "" && e.Kind != tsg.EdgeSplice {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Kind), "style=dashed", "color=firebrick")
		}
		if onPath[e.ID] {
			attrs = append(attrs, "penwidth=3", "color=darkgreen")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *tsg.Graph, n *tsg.Node, detailed bool) string {
	if !detailed {
		return n.ID
	}

	parts := []string{n.Location()}
	if len(n.Evidence) > 0 {
		parts = append(parts, fmt.Sprintf("reads: %d", len(n.Evidence)))
	}
	for _, a := range g.Attributes(tsg.KindNode, n.ID) {
		parts = append(parts, fmt.Sprintf("%s: %s", a.Key, a.Value))
	}

	return n.ID + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *tsg.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fill, ok := strandFill[n.Strand]; ok && fill != "white" {
		attrs = append(attrs, "fillcolor="+fill)
	}
	return attrs
}

func pathEdges(g *tsg.Graph, id string) map[string]bool {
	p, ok := g.Path(id)
	if !ok {
		return nil
	}
	out := make(map[string]bool)
	for _, s := range p.Steps.Edges() {
		out[s.ID] = true
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg (rsvg-convert) on PATH.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
// Requires librsvg (rsvg-convert) on PATH.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
