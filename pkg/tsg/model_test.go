package tsg

import (
	"testing"

	"github.com/matzehuels/tsg/pkg/errors"
)

func TestNodeLocation(t *testing.T) {
	tests := []struct {
		in      string
		chrom   string
		strand  Strand
		exons   int
		wantErr bool
	}{
		{in: "chr1:+:100-200", chrom: "chr1", strand: StrandForward, exons: 1},
		{in: "chr1:-:100-200,300-400", chrom: "chr1", strand: StrandReverse, exons: 2},
		{in: "HLA:A:.:5-9", chrom: "HLA:A", strand: StrandUnknown, exons: 1},
		{in: "chr1:x:100-200", wantErr: true},
		{in: "chr1:+:", wantErr: true},
		{in: "chr1:+:100", wantErr: true},
		{in: "chr1:+:a-b", wantErr: true},
		{in: "chr1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var n Node
			err := n.ParseLocation(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLocation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if n.Chrom != tt.chrom || n.Strand != tt.strand || len(n.Exons) != tt.exons {
				t.Errorf("got %s %s %d exons", n.Chrom, n.Strand, len(n.Exons))
			}
			if n.Location() != tt.in {
				t.Errorf("Location() = %q, want %q", n.Location(), tt.in)
			}
		})
	}
}

func TestNodeSpan(t *testing.T) {
	n := Node{Exons: []Interval{{100, 200}, {300, 400}, {500, 600}}}
	if n.Start() != 100 || n.End() != 600 {
		t.Errorf("Start/End = %d/%d, want 100/600", n.Start(), n.End())
	}
	if n.Span() != 300 {
		t.Errorf("Span() = %d, want 300", n.Span())
	}
	if (&Node{}).End() != 0 {
		t.Error("End() of node without exons should be 0")
	}
}

func TestParseEvidence(t *testing.T) {
	e, err := ParseEvidence("m54:123/ccs:SO")
	if err != nil {
		t.Fatal(err)
	}
	if e.ReadID != "m54:123/ccs" || e.Code != EvidenceSource {
		t.Errorf("got %+v", e)
	}
	if e, _ := ParseEvidence("r1:XX"); e.Code != "XX" {
		t.Errorf("unknown codes must pass through, got %q", e.Code)
	}
	for _, bad := range []string{"r1", ":SO", "r1:"} {
		if _, err := ParseEvidence(bad); err == nil {
			t.Errorf("ParseEvidence(%q) should fail", bad)
		}
	}
}

func TestEdgePayload(t *testing.T) {
	tests := []struct {
		in     string
		kind   string
		hasBP  bool
		wantOK bool
	}{
		{in: "splice", kind: "splice", wantOK: true},
		{in: "chr1,chr1,200,300,splice", kind: "splice", hasBP: true, wantOK: true},
		{in: "chr1,chr2,200,300", wantOK: false},
		{in: "chr1,chr2,a,300,fusion", wantOK: false},
	}

	for _, tt := range tests {
		var e Edge
		err := e.ParsePayload(tt.in)
		if (err == nil) != tt.wantOK {
			t.Fatalf("ParsePayload(%q) error = %v", tt.in, err)
		}
		if !tt.wantOK {
			continue
		}
		if e.Kind != tt.kind || (e.Breakpoints != nil) != tt.hasBP {
			t.Errorf("ParsePayload(%q) = %+v", tt.in, e)
		}
		if e.Payload() != tt.in {
			t.Errorf("Payload() = %q, want %q", e.Payload(), tt.in)
		}
	}
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		in   string
		want Step
	}{
		{"n1+", Step{"n1", Forward}},
		{"e1-", Step{"e1", Reverse}},
		{"n1", Step{"n1", Unoriented}},
		{"+", Step{"+", Unoriented}},
	}
	for _, tt := range tests {
		if got := ParseStep(tt.in); got != tt.want {
			t.Errorf("ParseStep(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	w := Walk{{"n1", Forward}, {"e1", Forward}, {"n2", Forward}}
	if len(w.Nodes()) != 2 || len(w.Edges()) != 1 {
		t.Errorf("Nodes/Edges = %v/%v", w.Nodes(), w.Edges())
	}
	if w.String() != "n1+ e1+ n2+" {
		t.Errorf("String() = %q", w.String())
	}
}

func TestSetCollapsesDuplicates(t *testing.T) {
	s := NewSet("u1", "n2", "n1", "n2")
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if m := s.Members(); m[0] != "n2" || m[1] != "n1" {
		t.Errorf("Members() = %v, want first-seen order", m)
	}
	if !s.Contains("n1") || s.Contains("n3") {
		t.Error("Contains reports wrong membership")
	}
}

func TestParseNodeRef(t *testing.T) {
	r, err := ParseNodeRef("gene_b:n1")
	if err != nil || r != (NodeRef{"gene_b", "n1"}) {
		t.Fatalf("ParseNodeRef = %v, %v", r, err)
	}
	if r, _ := ParseNodeRef("g:a:b"); r.Node != "a:b" {
		t.Errorf("node part should keep later colons, got %q", r.Node)
	}
	for _, bad := range []string{"gene_b", ":n1", "gene_b:"} {
		if _, err := ParseNodeRef(bad); !errors.Is(err, errors.ErrCodeMalformedLine) {
			t.Errorf("ParseNodeRef(%q) error = %v", bad, err)
		}
	}
}

func TestGraphScoping(t *testing.T) {
	d := NewDocument()
	a, err := d.AddGraph("gene_a")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := d.AddGraph("gene_b")

	if err := a.AddNode(Node{ID: "n1"}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddNode(Node{ID: "n1"}); err != nil {
		t.Errorf("same node id in another graph should be allowed: %v", err)
	}
	if err := a.AddNode(Node{ID: "n1"}); !errors.Is(err, errors.ErrCodeDuplicateNodeID) {
		t.Errorf("duplicate node error = %v", err)
	}
	if _, err := d.AddGraph("gene_a"); !errors.Is(err, errors.ErrCodeDuplicateGraphID) {
		t.Errorf("duplicate graph error = %v", err)
	}
	if _, err := d.AddGraph("gene:a"); !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("graph id with colon error = %v", err)
	}
	if _, ok := d.ResolveNode(NodeRef{"gene_b", "n1"}); !ok {
		t.Error("ResolveNode(gene_b:n1) should succeed")
	}
	if _, ok := d.ResolveNode(NodeRef{"gene_c", "n1"}); ok {
		t.Error("ResolveNode on unknown graph should fail")
	}
}

func TestGraphDuplicates(t *testing.T) {
	g := NewGraph("g")
	tests := []struct {
		name string
		add  func() error
		code errors.Code
	}{
		{"edge", func() error { return g.AddEdge(Edge{ID: "e1"}) }, errors.ErrCodeDuplicateEdgeID},
		{"chain", func() error { return g.AddChain(Chain{ID: "c1"}) }, errors.ErrCodeDuplicateChainID},
		{"path", func() error { return g.AddPath(Path{ID: "p1"}) }, errors.ErrCodeDuplicatePathID},
		{"set", func() error { return g.AddSet(NewSet("u1")) }, errors.ErrCodeDuplicateSetID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.add(); err != nil {
				t.Fatalf("first add: %v", err)
			}
			if err := tt.add(); !errors.Is(err, tt.code) {
				t.Errorf("second add error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestAttributesOverlay(t *testing.T) {
	g := NewGraph("g", Attr("name", "KRAS"))
	_ = g.AddNode(Node{ID: "n1"})

	g.Annotate(KindNode, "n1", Attr("ptc", 1))
	g.Annotate(KindNode, "n1", Attr("ptc", 2), Attr("ptf", 0.5))
	g.Annotate(KindGraph, "g", Attr("locus", "chr12"))

	attrs := g.Attributes(KindNode, "n1")
	if len(attrs) != 3 || attrs[0].Value.Int() != 1 || attrs[1].Value.Int() != 2 {
		t.Errorf("Attributes(N, n1) = %v", attrs)
	}
	if got := g.Attributes(KindGraph, "g"); len(got) != 2 || got[0].Key != "name" {
		t.Errorf("graph attributes = %v, want declaration attrs first", got)
	}
	if got := g.Attributes(KindEdge, "e1"); len(got) != 0 {
		t.Errorf("Attributes on missing element = %v, want empty", got)
	}
	if len(g.Annotations()) != 3 {
		t.Errorf("Annotations() = %d, want 3", len(g.Annotations()))
	}
	if !g.Has(KindNode, "n1") || g.Has(KindEdge, "e1") || !g.Has(KindGraph, "g") {
		t.Error("Has reports wrong membership")
	}
}

func TestDocumentLinks(t *testing.T) {
	d := NewDocument()
	d.AddHeader("version", "1.0")
	d.AddHeader("version", "2.0")
	if v, _ := d.Header("version"); v != "1.0" {
		t.Errorf("Header(version) = %q, want first", v)
	}
	if len(d.Headers()) != 2 {
		t.Error("duplicate headers should be kept")
	}

	l := Link{ID: "fusion1", Source: NodeRef{"gene_a", "n3"}, Target: NodeRef{"gene_b", "n1"}, Kind: "fusion"}
	if err := d.AddLink(l); err != nil {
		t.Fatal(err)
	}
	if err := d.AddLink(l); !errors.Is(err, errors.ErrCodeDuplicateLinkID) {
		t.Errorf("duplicate link error = %v", err)
	}
	d.AnnotateLink("fusion1", Attr("reads", 12))
	if v, ok := Last(d.LinkAttributes("fusion1"), "reads"); !ok || v.Int() != 12 {
		t.Errorf("LinkAttributes = %v", d.LinkAttributes("fusion1"))
	}
}

func TestEqual(t *testing.T) {
	build := func(seq string) *Document {
		d := NewDocument()
		g, _ := d.AddGraph("g")
		_ = g.AddNode(Node{ID: "n1", Chrom: "chr1", Strand: StrandForward, Exons: []Interval{{1, 5}}, Sequence: seq})
		return d
	}
	if !Equal(build("ACGT"), build("ACGT")) {
		t.Error("identical documents should be equal")
	}
	if Equal(build("ACGT"), build("ACGA")) {
		t.Error("documents with different sequences should differ")
	}
}
