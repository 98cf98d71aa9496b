package io

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tsg/pkg/errors"
	"github.com/matzehuels/tsg/pkg/tsg"
)

func asError(err error, target **errors.Error) bool { return stderrors.As(err, target) }

func readSample(t *testing.T) *tsg.Document {
	t.Helper()
	doc, err := ImportTSG(filepath.Join("testdata", "two_genes.tsg"))
	if err != nil {
		t.Fatalf("ImportTSG: %v", err)
	}
	return doc
}

func TestReadTSGSample(t *testing.T) {
	doc := readSample(t)

	if v, _ := doc.Header("reference"); v != "GRCh38" {
		t.Errorf("Header(reference) = %q", v)
	}
	if st := doc.Stats(); st.Graphs != 2 || st.Nodes != 6 || st.Edges != 5 || st.Paths != 3 || st.Links != 1 {
		t.Errorf("Stats() = %+v", st)
	}

	a, ok := doc.Graph("gene_a")
	if !ok {
		t.Fatal("gene_a missing")
	}
	if v, _ := tsg.Last(a.Attributes(tsg.KindGraph, "gene_a"), "locus"); v.Str() != "chr1:100-600" {
		t.Errorf("locus = %q", v.Str())
	}
	n1, _ := a.Node("n1")
	if n1.Sequence != "ACGTACGT" || len(n1.Evidence) != 2 || n1.Evidence[0].Code != tsg.EvidenceSource {
		t.Errorf("n1 = %+v", n1)
	}
	attrs := a.Attributes(tsg.KindNode, "n1")
	if len(attrs) != 2 || attrs[0].Value.Type() != tsg.TypeInt || attrs[0].Value.Int() != 10 ||
		attrs[1].Value.Type() != tsg.TypeFloat || attrs[1].Value.Float() != 8.2 {
		t.Errorf("n1 attributes = %v", attrs)
	}
	e1, _ := a.Edge("e1")
	if e1.Kind != tsg.EdgeSplice || e1.Breakpoints == nil || e1.Breakpoints.Pos2 != 300 {
		t.Errorf("e1 = %+v", e1)
	}
	e3, _ := a.Edge("e3")
	if e3.Kind != tsg.EdgeSplice || e3.Breakpoints != nil {
		t.Errorf("e3 = %+v", e3)
	}
	u1, _ := a.Set("u1")
	if !u1.Contains("n3") {
		t.Error("u1 should contain n3")
	}

	l, ok := doc.Link("fusion1")
	if !ok || l.Source != (tsg.NodeRef{Graph: "gene_a", Node: "n3"}) || l.Kind != "fusion" {
		t.Errorf("fusion1 = %+v", l)
	}
	if v, _ := tsg.Last(doc.LinkAttributes("fusion1"), "reads"); v.Int() != 12 {
		t.Errorf("fusion1 reads = %v", v)
	}

	// Ids are scoped per graph.
	b, _ := doc.Graph("gene_b")
	if _, ok := b.Path("p1"); !ok {
		t.Error("gene_b should have its own p1")
	}
}

const header = "H\tversion\t1.0\nG\tg\n" +
	"N\tn1\tchr1:+:1-10\t.\n" +
	"N\tn2\tchr1:+:20-30\t.\n" +
	"E\te1\tn1\tn2\tsplice\n"

func TestReadTSGErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
		line  int
		elem  string
	}{
		{"path missing orientation", header + "P\tp1\tn1\te1\tn2\n", errors.ErrCodeMissingOrientation, 6, "p1"},
		{"path partially oriented", header + "P\tp1\tn1+\te1\tn2+\n", errors.ErrCodeMissingOrientation, 6, "p1"},
		{"chain even length", header + "C\tc1\tn1\te1\n", errors.ErrCodeInvalidChainWalk, 6, "c1"},
		{"path even length", header + "P\tp1\tn1+\te1+\n", errors.ErrCodeInvalidChainWalk, 6, "p1"},
		{"chain with orientation", header + "C\tc1\tn1+\te1\tn2\n", errors.ErrCodeUnexpectedOrientation, 6, "c1"},
		{"duplicate graph", header + "G\tg\n", errors.ErrCodeDuplicateGraphID, 6, "g"},
		{"duplicate node", header + "N\tn1\tchr1:+:1-2\t.\n", errors.ErrCodeDuplicateNodeID, 6, "g:n1"},
		{"duplicate edge", header + "E\te1\tn1\tn2\n", errors.ErrCodeDuplicateEdgeID, 6, "g:e1"},
		{"edge to unknown node", header + "E\te2\tn1\tn9\n", errors.ErrCodeUnresolvedEdgeEndpoint, 6, "g:n9"},
		{"forward attribute reference", header + "A\tN\tn3\tptc:i:1\nN\tn3\tchr1:+:40-50\t.\n", errors.ErrCodeUnresolvedAttributeTarget, 6, "g:n3"},
		{"attribute on unknown graph", header + "A\tG\tother\tx:i:1\n", errors.ErrCodeUnresolvedAttributeTarget, 6, "other"},
		{"bad attribute value", header + "A\tN\tn1\tptc:i:abc\n", errors.ErrCodeInvalidAttributeValue, 6, ""},
		{"bad attribute type", header + "A\tN\tn1\tptc:q:1\n", errors.ErrCodeInvalidAttributeType, 6, ""},
		{"bad interval", header + "N\tn3\tchr1:+:50-40\t.\n", errors.ErrCodeInvalidInterval, 6, "n3"},
		{"bad strand", header + "N\tn3\tchr1:*:40-50\t.\n", errors.ErrCodeMalformedLine, 6, ""},
		{"bad evidence", header + "N\tn3\tchr1:+:40-50\tread1\n", errors.ErrCodeMalformedLine, 6, ""},
		{"node outside graph", "N\tn1\tchr1:+:1-10\t.\n", errors.ErrCodeMalformedLine, 1, ""},
		{"late header", header + "H\tx\ty\n", errors.ErrCodeMalformedLine, 6, ""},
		{"unknown tag", header + "Q\tx\n", errors.ErrCodeUnknownTag, 6, ""},
		{"link bad ref", header + "L\tf1\tg-n1\tg:n2\tfusion\n", errors.ErrCodeMalformedLine, 6, ""},
		{"link unknown node", header + "L\tf1\tg:n1\tg:n9\tfusion\n", errors.ErrCodeUnresolvedLinkEndpoint, 6, "g:n9"},
		{"link unknown graph", header + "L\tf1\th:n1\tg:n2\tfusion\n", errors.ErrCodeUnresolvedLinkEndpoint, 6, "h:n1"},
		{"duplicate link", header + "L\tf1\tg:n1\tg:n2\tx\nL\tf1\tg:n1\tg:n2\tx\n", errors.ErrCodeDuplicateLinkID, 7, "f1"},
		{"link attribute before link", header + "A\tL\tf1\tx:i:1\nL\tf1\tg:n1\tg:n2\tx\n", errors.ErrCodeUnresolvedAttributeTarget, 6, "f1"},
		{"graph id with colon", "G\tg:x\n", errors.ErrCodeInvalidID, 1, "g:x"},
		{"node id with orientation", header + "N\tn3+\tchr1:+:40-50\t.\n", errors.ErrCodeInvalidID, 6, "n3+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTSG(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Fatalf("ReadTSG() error = %v, want code %s", err, tt.code)
			}
			var e *errors.Error
			if !asError(err, &e) {
				t.Fatalf("error %T is not *errors.Error", err)
			}
			if e.Line != tt.line {
				t.Errorf("Line = %d, want %d", e.Line, tt.line)
			}
			if e.Raw == "" {
				t.Error("Raw should carry the offending line")
			}
			if tt.elem != "" && e.Element != tt.elem {
				t.Errorf("Element = %q, want %q", e.Element, tt.elem)
			}
		})
	}
}

func TestReadTSGFusionScenario(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "two_genes.tsg"))
	if err != nil {
		t.Fatal(err)
	}
	broken := strings.Replace(string(data), "gene_b:n1\tfusion", "gene_b:n9\tfusion", 1)

	_, err = ReadTSG(strings.NewReader(broken))
	if !errors.Is(err, errors.ErrCodeUnresolvedLinkEndpoint) {
		t.Fatalf("error = %v, want UNRESOLVED_LINK_ENDPOINT", err)
	}
	var e *errors.Error
	if !asError(err, &e) || e.Element != "gene_b:n9" {
		t.Errorf("error = %v, want element gene_b:n9", err)
	}
}

func TestReadTSGLinkBetweenGraphs(t *testing.T) {
	input := "G\ta\nN\tn1\tchr1:+:1-5\t.\n" +
		"L\tf1\ta:n1\tb:n1\tfusion\n" +
		"G\tb\nN\tn1\tchr2:-:1-5\t.\n"

	doc, err := ReadTSG(strings.NewReader(input))
	if err != nil {
		t.Fatalf("a link placed before its target graph should resolve: %v", err)
	}
	if len(doc.Links()) != 1 {
		t.Errorf("Links() = %d, want 1", len(doc.Links()))
	}
}

func TestReadTSGAnnotateOtherGraph(t *testing.T) {
	input := "G\ta\nG\tb\nA\tG\ta\tname:Z:KRAS\n"
	doc, err := ReadTSG(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	a, _ := doc.Graph("a")
	if v, ok := tsg.Last(a.Attributes(tsg.KindGraph, "a"), "name"); !ok || v.Str() != "KRAS" {
		t.Errorf("graph a name = %v, %v", v, ok)
	}
}

func TestImportTSGMissingFile(t *testing.T) {
	if _, err := ImportTSG(filepath.Join(t.TempDir(), "missing.tsg")); err == nil {
		t.Error("ImportTSG on a missing file should fail")
	}
}
