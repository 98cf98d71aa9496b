package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/tsg/pkg/errors"
	"github.com/matzehuels/tsg/pkg/tsg"
)

// svTypes maps junction edge kinds to VCF SVTYPE values. Kinds missing from
// the table are not junctions and are not written.
var svTypes = map[string]string{
	tsg.EdgeDeletion:      "DEL",
	tsg.EdgeDuplication:   "DUP",
	tsg.EdgeInversion:     "INV",
	tsg.EdgeInsertion:     "INS",
	tsg.EdgeSplice:        "SPLICE",
	tsg.EdgeTranslocation: "BND",
	tsg.EdgeFusion:        "BND",
}

type vcfHeaderLine struct {
	Field       string // INFO or ALT
	ID          string
	Number      string
	Type        string
	Description string
}

func (h vcfHeaderLine) String() string {
	if h.Field == "ALT" {
		return fmt.Sprintf("##ALT=<ID=%s,Description=%q>", h.ID, h.Description)
	}
	return fmt.Sprintf("##INFO=<ID=%s,Number=%s,Type=%s,Description=%q>",
		h.ID, h.Number, h.Type, h.Description)
}

var vcfHeader = []vcfHeaderLine{
	{Field: "INFO", ID: "SVTYPE", Number: "1", Type: "String", Description: "Type of structural variant"},
	{Field: "INFO", ID: "END", Number: "1", Type: "Integer", Description: "End position of the variant"},
	{Field: "INFO", ID: "CHR2", Number: "1", Type: "String", Description: "Chromosome of the second breakpoint"},
	{Field: "INFO", ID: "GRAPH", Number: "1", Type: "String", Description: "Graph the record was derived from"},
	{Field: "INFO", ID: "EDGE", Number: "1", Type: "String", Description: "Edge the record was derived from"},
	{Field: "INFO", ID: "NODE", Number: "1", Type: "String", Description: "Node at the first breakend"},
	{Field: "INFO", ID: "MATEGRAPH", Number: "1", Type: "String", Description: "Graph of the mate breakend"},
	{Field: "INFO", ID: "MATENODE", Number: "1", Type: "String", Description: "Node at the mate breakend"},
	{Field: "INFO", ID: "LINKKIND", Number: "1", Type: "String", Description: "Kind of the cross-graph link"},
	{Field: "ALT", ID: "DEL", Description: "Deletion"},
	{Field: "ALT", ID: "DUP", Description: "Duplication"},
	{Field: "ALT", ID: "INV", Description: "Inversion"},
	{Field: "ALT", ID: "INS", Description: "Insertion"},
	{Field: "ALT", ID: "SPLICE", Description: "Splice junction"},
}

// variant is one VCF data line.
type variant struct {
	Chrom string
	Pos   int
	ID    string
	Alt   string
	Info  []tsg.Attribute // written as KEY=VALUE in order
}

func (v variant) String() string {
	info := make([]string, len(v.Info))
	for i, a := range v.Info {
		info[i] = a.Key + "=" + a.Value.String()
	}
	return strings.Join([]string{
		v.Chrom, strconv.Itoa(v.Pos), v.ID, "N", v.Alt, ".", "PASS", strings.Join(info, ";"),
	}, "\t")
}

// vcfEncoder writes junction edges as structural variant records and
// cross-graph links as breakend records.
type vcfEncoder struct{}

func (vcfEncoder) header(doc *tsg.Document, s *sink) error {
	fmt.Fprintln(s, "##fileformat=VCFv4.2")
	fmt.Fprintln(s, "##source=tsg")
	if ref, ok := doc.Header("reference"); ok {
		fmt.Fprintf(s, "##reference=%s\n", ref)
	}
	for _, h := range vcfHeader {
		fmt.Fprintln(s, h)
	}
	fmt.Fprintln(s, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO")
	return nil
}

func (vcfEncoder) graph(g *tsg.Graph, s *sink) error {
	for _, e := range g.Edges() {
		svtype, ok := svTypes[e.Kind]
		if !ok {
			continue
		}
		ref := g.ID + ":" + e.ID
		bp, ok := junction(g, e)
		if !ok {
			if err := s.fail(errors.New(errors.ErrCodeUnconvertibleEdge,
				"%s edge has no breakpoints and its endpoints have no location", e.Kind).For(ref)); err != nil {
				return err
			}
			continue
		}

		v := variant{Chrom: bp.Chrom1, Pos: bp.Pos1, ID: ref}
		v.Info = append(v.Info, tsg.Attr("SVTYPE", svtype))
		if svtype == "BND" {
			v.Alt = breakend(bp.Chrom2, bp.Pos2)
			v.Info = append(v.Info, tsg.Attr("CHR2", bp.Chrom2))
		} else {
			v.Alt = "<" + svtype + ">"
			if bp.Chrom1 != bp.Chrom2 {
				if err := s.fail(errors.New(errors.ErrCodeUnconvertibleEdge,
					"%s edge spans chromosomes %s and %s", e.Kind, bp.Chrom1, bp.Chrom2).For(ref)); err != nil {
					return err
				}
				continue
			}
			v.Pos = min(bp.Pos1, bp.Pos2)
			v.Info = append(v.Info, tsg.Attr("END", max(bp.Pos1, bp.Pos2)))
		}
		v.Info = append(v.Info, tsg.Attr("GRAPH", g.ID), tsg.Attr("EDGE", e.ID))
		fmt.Fprintln(s, v)
		s.records++
	}
	return nil
}

// junction returns the breakpoints of e. Edges declared with a bare kind
// take them from their nodes, see [nodeBreakpoints].
func junction(g *tsg.Graph, e *tsg.Edge) (tsg.Breakpoints, bool) {
	if e.Breakpoints != nil {
		return *e.Breakpoints, true
	}
	src, ok1 := g.Node(e.Source)
	dst, ok2 := g.Node(e.Target)
	if !ok1 || !ok2 {
		return tsg.Breakpoints{}, false
	}
	return nodeBreakpoints(src, dst)
}

// nodeBreakpoints joins src to dst in document coordinates: Pos1 is the
// end of src as written (exclusive), Pos2 the start of dst. Declared edge
// breakpoints use the same convention ("chr1,chr1,200,300" for nodes
// 100-200 and 300-400), so edge and link records line up.
func nodeBreakpoints(src, dst *tsg.Node) (tsg.Breakpoints, bool) {
	if len(src.Exons) == 0 || len(dst.Exons) == 0 {
		return tsg.Breakpoints{}, false
	}
	return tsg.Breakpoints{Chrom1: src.Chrom, Chrom2: dst.Chrom, Pos1: src.End(), Pos2: dst.Start()}, true
}

// links writes each cross-graph link as a breakend from the source node
// end to the target node start.
func (vcfEncoder) links(doc *tsg.Document, s *sink) error {
	for _, l := range doc.Links() {
		src, ok1 := doc.ResolveNode(l.Source)
		dst, ok2 := doc.ResolveNode(l.Target)
		var bp tsg.Breakpoints
		ok := ok1 && ok2
		if ok {
			bp, ok = nodeBreakpoints(src, dst)
		}
		if !ok {
			if err := s.fail(errors.New(errors.ErrCodeUnconvertibleEdge,
				"link endpoints %s and %s do not resolve to located nodes", l.Source, l.Target).For(l.ID)); err != nil {
				return err
			}
			continue
		}
		v := variant{
			Chrom: bp.Chrom1,
			Pos:   bp.Pos1,
			ID:    l.ID,
			Alt:   breakend(bp.Chrom2, bp.Pos2),
			Info: []tsg.Attribute{
				tsg.Attr("SVTYPE", "BND"),
				tsg.Attr("CHR2", bp.Chrom2),
				tsg.Attr("GRAPH", l.Source.Graph),
				tsg.Attr("NODE", l.Source.Node),
				tsg.Attr("MATEGRAPH", l.Target.Graph),
				tsg.Attr("MATENODE", l.Target.Node),
			},
		}
		if l.Kind != "" {
			v.Info = append(v.Info, tsg.Attr("LINKKIND", l.Kind))
		}
		fmt.Fprintln(s, v)
		s.records++
	}
	return nil
}

// breakend renders the ALT of a breakend joined after the reference base.
func breakend(chrom string, pos int) string {
	return "N[" + chrom + ":" + strconv.Itoa(pos) + "["
}
