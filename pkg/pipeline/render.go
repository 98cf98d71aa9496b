package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/tsg/pkg/cache"
	"github.com/matzehuels/tsg/pkg/observability"
	"github.com/matzehuels/tsg/pkg/render/nodelink"
	"github.com/matzehuels/tsg/pkg/tsg"
)

// Rendered is the image of one graph.
type Rendered struct {
	Graph string
	Data  []byte
}

// Render parses input and renders each graph as a node-link diagram.
// Rendered images are cached per graph.
func (r *Runner) Render(ctx context.Context, input []byte, opts RenderOptions) ([]Rendered, error) {
	if err := opts.SetDefaults(); err != nil {
		return nil, err
	}

	doc, err := r.Parse(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	graphs := doc.Graphs()
	if opts.Graph != "" {
		g, ok := doc.Graph(opts.Graph)
		if !ok {
			return nil, fmt.Errorf("no graph %q in document", opts.Graph)
		}
		graphs = []*tsg.Graph{g}
	}

	inputHash := cache.Hash(input)
	start := time.Now()
	out := make([]Rendered, 0, len(graphs))
	for _, g := range graphs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := r.renderGraph(ctx, g, inputHash, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", g.ID, err)
		}
		out = append(out, Rendered{Graph: g.ID, Data: data})
	}

	r.Logger.Info("rendered graphs",
		"graphs", len(out),
		"format", opts.Format,
		"duration", time.Since(start))
	return out, nil
}

func (r *Runner) renderGraph(ctx context.Context, g *tsg.Graph, inputHash string, opts RenderOptions) ([]byte, error) {
	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed, Path: opts.Path})
	if opts.Format == RenderDOT {
		return []byte(dot), nil
	}

	key := r.Keyer.RenderKey(inputHash, opts.RenderKeyOpts(g.ID))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	var data []byte
	var err error
	switch opts.Format {
	case RenderSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case RenderPNG:
		data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
	case RenderPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	}
	if err != nil {
		return nil, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLRender); err == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return data, nil
}
