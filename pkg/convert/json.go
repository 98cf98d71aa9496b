package convert

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/tsg/pkg/tsg"
)

// The JSON output is a cytoscape.js elements document. Graph-level data
// (attributes and paths) rides along under "graphs", which cytoscape
// ignores.
type (
	jsonDocument struct {
		Elements jsonElements `json:"elements"`
		Graphs   []jsonGraph  `json:"graphs"`
	}
	jsonElements struct {
		Nodes []jsonElement `json:"nodes"`
		Edges []jsonElement `json:"edges"`
	}
	jsonElement struct {
		Data any `json:"data"`
	}
	jsonGraph struct {
		ID         string         `json:"id"`
		Attributes map[string]any `json:"attributes,omitempty"`
		Paths      []jsonPath     `json:"paths,omitempty"`
	}
	jsonPath struct {
		ID         string         `json:"id"`
		Walk       string         `json:"walk"`
		Attributes map[string]any `json:"attributes,omitempty"`
	}
	jsonNode struct {
		ID         string         `json:"id"`
		Graph      string         `json:"graph"`
		Chrom      string         `json:"chrom"`
		Start      int            `json:"ref_start"`
		End        int            `json:"ref_end"`
		Strand     string         `json:"strand"`
		Exons      []string       `json:"exons"`
		Reads      []string       `json:"reads,omitempty"`
		Sequence   string         `json:"sequence,omitempty"`
		Attributes map[string]any `json:"attributes,omitempty"`
	}
	jsonEdge struct {
		ID         string         `json:"id"`
		Source     string         `json:"source"`
		Target     string         `json:"target"`
		Kind       string         `json:"kind,omitempty"`
		Graph      string         `json:"graph,omitempty"`
		Link       bool           `json:"link,omitempty"`
		Attributes map[string]any `json:"attributes,omitempty"`
	}
)

// jsonEncoder collects structured elements per graph and writes a single
// document in finish.
type jsonEncoder struct {
	noHeader
}

func (*jsonEncoder) graph(g *tsg.Graph, s *sink) error {
	jg := jsonGraph{ID: g.ID, Attributes: typedAttributes(g.Attributes(tsg.KindGraph, g.ID))}
	for _, p := range g.Paths() {
		jg.Paths = append(jg.Paths, jsonPath{
			ID:         p.ID,
			Walk:       p.Steps.String(),
			Attributes: typedAttributes(g.Attributes(tsg.KindPath, p.ID)),
		})
	}
	s.items = append(s.items, jg)

	for _, n := range g.Nodes() {
		jn := jsonNode{
			ID:         g.ID + ":" + n.ID,
			Graph:      g.ID,
			Chrom:      n.Chrom,
			Start:      n.Start(),
			End:        n.End(),
			Strand:     n.Strand.String(),
			Exons:      make([]string, len(n.Exons)),
			Sequence:   n.Sequence,
			Attributes: typedAttributes(g.Attributes(tsg.KindNode, n.ID)),
		}
		for i, iv := range n.Exons {
			jn.Exons[i] = iv.String()
		}
		for _, ev := range n.Evidence {
			jn.Reads = append(jn.Reads, ev.String())
		}
		s.items = append(s.items, jn)
		s.records++
	}
	for _, e := range g.Edges() {
		s.items = append(s.items, jsonEdge{
			ID:         g.ID + ":" + e.ID,
			Source:     g.ID + ":" + e.Source,
			Target:     g.ID + ":" + e.Target,
			Kind:       e.Kind,
			Graph:      g.ID,
			Attributes: typedAttributes(g.Attributes(tsg.KindEdge, e.ID)),
		})
		s.records++
	}
	return nil
}

func (*jsonEncoder) links(doc *tsg.Document, s *sink) error {
	for _, l := range doc.Links() {
		s.items = append(s.items, jsonEdge{
			ID:         l.ID,
			Source:     l.Source.String(),
			Target:     l.Target.String(),
			Kind:       l.Kind,
			Link:       true,
			Attributes: typedAttributes(doc.LinkAttributes(l.ID)),
		})
		s.records++
	}
	return nil
}

func (*jsonEncoder) finish(parts []*sink, w io.Writer) error {
	out := jsonDocument{
		Elements: jsonElements{Nodes: []jsonElement{}, Edges: []jsonElement{}},
		Graphs:   []jsonGraph{},
	}
	for _, p := range parts {
		for _, item := range p.items {
			switch v := item.(type) {
			case jsonGraph:
				out.Graphs = append(out.Graphs, v)
			case jsonNode:
				out.Elements.Nodes = append(out.Elements.Nodes, jsonElement{Data: v})
			case jsonEdge:
				out.Elements.Edges = append(out.Elements.Edges, jsonElement{Data: v})
			}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// typedAttributes flattens attributes into native JSON values, last value
// per key winning. It returns nil for no attributes.
func typedAttributes(attrs []tsg.Attribute) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]any, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value.Any()
	}
	return m
}
