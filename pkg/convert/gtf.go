package convert

import (
	"strconv"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"

	"github.com/matzehuels/tsg/pkg/errors"
	"github.com/matzehuels/tsg/pkg/tsg"
)

// Attribute keys the encoder writes itself. Overlay attributes with these
// keys are not repeated.
var gtfReserved = map[string]bool{
	"gene_id": true, "transcript_id": true, "exon_number": true, "exon_id": true,
}

// Overlay keys with a standard GTF spelling, per owner kind. Keys missing
// from the table are carried through verbatim (graph keys are dropped).
var (
	graphAliases = map[string]string{
		"name":         "gene_name",
		"gene_name":    "gene_name",
		"biotype":      "gene_biotype",
		"gene_biotype": "gene_biotype",
		"type":         "gene_type",
		"gene_type":    "gene_type",
	}
	pathAliases = map[string]string{
		"name":               "transcript_name",
		"biotype":            "transcript_biotype",
		"type":               "transcript_type",
		"tpm":                "TPM",
		"fpkm":               "FPKM",
		"coverage":           "cov",
		"transcript_biotype": "transcript_biotype",
	}
	nodeAliases = map[string]string{
		"name": "exon_name",
	}
)

var gffStrand = map[tsg.Strand]seq.Strand{
	tsg.StrandForward: seq.Plus,
	tsg.StrandReverse: seq.Minus,
	tsg.StrandUnknown: seq.None,
}

// gtfEncoder writes each path as a transcript feature followed by its
// exons in traversal order. Coordinates are converted from TSG's exclusive
// end to GTF's inclusive end.
type gtfEncoder struct {
	noHeader
	noLinks
	source string
}

func (e *gtfEncoder) graph(g *tsg.Graph, s *sink) error {
	w := gff.NewWriter(s, 60, false)
	geneAttrs := mapAttributes(g.Attributes(tsg.KindGraph, g.ID), graphAliases, false)

	for _, p := range g.Paths() {
		nodes, err := transcriptNodes(g, p)
		if err != nil {
			if err := s.fail(err); err != nil {
				return err
			}
			continue
		}
		for _, f := range e.features(g, p, nodes, geneAttrs) {
			terminate(f.FeatAttributes)
			if _, err := w.Write(f); err != nil {
				return err
			}
			s.records++
		}
	}
	return nil
}

type orientedNode struct {
	node    *tsg.Node
	reverse bool
}

// transcriptNodes resolves the node steps of a path and rejects paths that
// cannot be written as a single transcript.
func transcriptNodes(g *tsg.Graph, p *tsg.Path) ([]orientedNode, *errors.Error) {
	ref := g.ID + ":" + p.ID
	var out []orientedNode
	seen := make(map[string]bool)
	for _, step := range p.Steps.Nodes() {
		n, ok := g.Node(step.ID)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnconvertiblePath, "unknown node %s", step.ID).For(ref)
		}
		if seen[n.ID] {
			return nil, errors.New(errors.ErrCodeUnconvertiblePath, "node %s visited twice (cyclic coordinates)", n.ID).For(ref)
		}
		seen[n.ID] = true
		if len(out) > 0 {
			first := out[0].node
			if n.Chrom != first.Chrom {
				return nil, errors.New(errors.ErrCodeUnconvertiblePath, "path spans chromosomes %s and %s", first.Chrom, n.Chrom).For(ref)
			}
			if n.Strand != first.Strand {
				return nil, errors.New(errors.ErrCodeUnconvertiblePath, "path mixes strands %s and %s", first.Strand, n.Strand).For(ref)
			}
		}
		for _, iv := range n.Exons {
			if iv.Len() == 0 {
				return nil, errors.New(errors.ErrCodeUnconvertiblePath, "node %s has an empty exon %s", n.ID, iv).For(ref)
			}
		}
		out = append(out, orientedNode{node: n, reverse: step.Orient == tsg.Reverse})
	}
	return out, nil
}

func (e *gtfEncoder) features(g *tsg.Graph, p *tsg.Path, nodes []orientedNode, geneAttrs gff.Attributes) []*gff.Feature {
	first := nodes[0].node
	start, end := first.Start(), first.End()
	for _, on := range nodes {
		for _, iv := range on.node.Exons {
			start = min(start, iv.Start)
			end = max(end, iv.End)
		}
	}

	ids := gff.Attributes{
		{Tag: "gene_id", Value: strconv.Quote(g.ID)},
		{Tag: "transcript_id", Value: strconv.Quote(p.ID)},
	}
	tx := e.feature(first, "transcript", start, end)
	tx.FeatAttributes = append(append(append(gff.Attributes{}, ids...), geneAttrs...),
		mapAttributes(g.Attributes(tsg.KindPath, p.ID), pathAliases, true)...)

	out := []*gff.Feature{tx}
	number := 0
	for _, on := range nodes {
		exons := on.node.Exons
		nodeAttrs := mapAttributes(g.Attributes(tsg.KindNode, on.node.ID), nodeAliases, true)
		for k := range exons {
			idx := k
			if on.reverse {
				idx = len(exons) - 1 - k
			}
			iv := exons[idx]
			number++

			exonID := on.node.ID
			if len(exons) > 1 {
				exonID += "." + strconv.Itoa(idx+1)
			}
			f := e.feature(on.node, "exon", iv.Start, iv.End)
			f.FeatAttributes = append(append(append(gff.Attributes{}, ids...),
				gff.Attribute{Tag: "exon_number", Value: strconv.Quote(strconv.Itoa(number))},
				gff.Attribute{Tag: "exon_id", Value: strconv.Quote(exonID)},
			), nodeAttrs...)
			out = append(out, f)
		}
	}
	return out
}

// feature builds a GTF line for the TSG interval [start, end). biogo
// features are 0-based half-open, which for an exclusive 1-based end means
// start-1 and end-1.
func (e *gtfEncoder) feature(n *tsg.Node, kind string, start, end int) *gff.Feature {
	return &gff.Feature{
		SeqName:    n.Chrom,
		Source:     e.source,
		Feature:    kind,
		FeatStart:  start - 1,
		FeatEnd:    end - 1,
		FeatStrand: gffStrand[n.Strand],
		FeatFrame:  gff.NoFrame,
	}
}

// terminate appends the closing ';' GTF requires after the last attribute.
// biogo only writes separators between attributes.
func terminate(attrs gff.Attributes) {
	if n := len(attrs); n > 0 {
		attrs[n-1].Value += ";"
	}
}

// mapAttributes collapses repeated keys (last value wins, first position
// kept), renames keys through aliases and quotes values. Unknown keys are
// kept when passthrough is set.
func mapAttributes(attrs []tsg.Attribute, aliases map[string]string, passthrough bool) gff.Attributes {
	var order []string
	values := make(map[string]string)
	for _, a := range attrs {
		key, ok := aliases[a.Key]
		if !ok {
			if !passthrough {
				continue
			}
			key = a.Key
		}
		if gtfReserved[key] {
			continue
		}
		if _, seen := values[key]; !seen {
			order = append(order, key)
		}
		values[key] = a.Value.String()
	}
	out := make(gff.Attributes, len(order))
	for i, k := range order {
		out[i] = gff.Attribute{Tag: k, Value: strconv.Quote(values[k])}
	}
	return out
}
