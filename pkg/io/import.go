package io

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/tsg/pkg/errors"
	"github.com/matzehuels/tsg/pkg/tsg"
)

// ReadTSG parses TSG text from r into a Document.
//
// Parsing is single-pass and fail-fast: the first structural problem aborts
// with an [errors.Error] carrying the line number and raw text. The checks
// made while reading are:
//   - H records only before the first non-H record
//   - N, E, C, P and U records only inside a G section
//   - unique ids per kind within a graph, unique graph and link ids
//   - E endpoints declared earlier in the same graph
//   - C steps carry no orientation, P steps all carry one, both odd length
//   - A targets declared earlier (A G may target any declared graph)
//
// L and A L records are buffered and resolved after the last line, so a
// link placed between graph sections still resolves. An unknown endpoint
// fails with UNRESOLVED_LINK_ENDPOINT naming the graph:node reference.
//
// Walk consistency against the edge table and set membership are left to
// the validate package. ReadTSG does not close r.
func ReadTSG(r io.Reader) (*tsg.Document, error) {
	b := newBuilder()
	s := NewScanner(r)
	for s.Next() {
		rec := s.Record()
		if err := b.add(rec); err != nil {
			return nil, locate(err, rec)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if err := b.finish(); err != nil {
		return nil, err
	}
	return b.doc, nil
}

// ImportTSG reads a TSG file at path and returns the parsed Document.
// Compressed input must be decompressed by the caller.
func ImportTSG(path string) (*tsg.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTSG(f)
}

type builder struct {
	doc        *tsg.Document
	cur        *tsg.Graph
	headerDone bool
	pending    []Record // L and A L records, resolved by finish
}

func newBuilder() *builder {
	return &builder{doc: tsg.NewDocument()}
}

func (b *builder) add(rec Record) error {
	if rec.Tag == "H" {
		if b.headerDone {
			return malformed("H record after the header block")
		}
		return b.header(rec.Fields)
	}
	b.headerDone = true

	switch rec.Tag {
	case "G":
		return b.graph(rec.Fields)
	case "L":
		if len(rec.Fields) < 3 || len(rec.Fields) > 4 {
			return malformed("L record needs id, source, target and kind")
		}
		if _, err := parseLink(rec.Fields); err != nil {
			return err
		}
		b.pending = append(b.pending, rec)
		return nil
	case "A":
		return b.annotate(rec)
	}

	if b.cur == nil {
		return malformed("%s record outside a graph section", rec.Tag)
	}
	switch rec.Tag {
	case "N":
		return b.node(rec.Fields)
	case "E":
		return b.edge(rec.Fields)
	case "C":
		return b.chain(rec.Fields)
	case "P":
		return b.path(rec.Fields)
	case "U":
		return b.set(rec.Fields)
	}
	return errors.New(errors.ErrCodeUnknownTag, "unknown record tag %q", rec.Tag)
}

func (b *builder) header(f []string) error {
	if len(f) == 0 {
		return malformed("H record needs a key")
	}
	b.doc.AddHeader(f[0], strings.Join(f[1:], " "))
	return nil
}

func (b *builder) graph(f []string) error {
	if len(f) == 0 {
		return malformed("G record needs an id")
	}
	attrs, err := parseAttributes(f[1:])
	if err != nil {
		return err
	}
	g, err := b.doc.AddGraph(f[0], attrs...)
	if err != nil {
		return err
	}
	b.cur = g
	return nil
}

func (b *builder) node(f []string) error {
	if len(f) < 2 || len(f) > 4 {
		return malformed("N record needs id, location, reads and optional sequence")
	}
	n := tsg.Node{ID: f[0]}
	if err := n.ParseLocation(f[1]); err != nil {
		return errors.Wrap(errors.ErrCodeMalformedLine, err, "node %s", f[0])
	}
	for _, iv := range n.Exons {
		if !iv.Valid() {
			return errors.New(errors.ErrCodeInvalidInterval, "interval %s must satisfy 1 <= start <= end", iv).For(f[0])
		}
	}
	if len(f) > 2 && f[2] != "." {
		for _, part := range strings.Split(f[2], ",") {
			ev, err := tsg.ParseEvidence(part)
			if err != nil {
				return errors.Wrap(errors.ErrCodeMalformedLine, err, "node %s", f[0])
			}
			n.Evidence = append(n.Evidence, ev)
		}
	}
	if len(f) > 3 {
		n.Sequence = f[3]
	}
	return b.cur.AddNode(n)
}

func (b *builder) edge(f []string) error {
	if len(f) < 3 || len(f) > 4 {
		return malformed("E record needs id, source, target and optional payload")
	}
	e := tsg.Edge{ID: f[0], Source: f[1], Target: f[2]}
	if len(f) == 4 {
		if err := e.ParsePayload(f[3]); err != nil {
			return errors.Wrap(errors.ErrCodeMalformedLine, err, "edge %s", f[0])
		}
	}
	for _, end := range []string{e.Source, e.Target} {
		if _, ok := b.cur.Node(end); !ok {
			return errors.New(errors.ErrCodeUnresolvedEdgeEndpoint, "edge %s references undeclared node", e.ID).
				For(b.cur.ID + ":" + end)
		}
	}
	return b.cur.AddEdge(e)
}

func (b *builder) chain(f []string) error {
	if len(f) == 0 {
		return malformed("C record needs an id")
	}
	steps := make(tsg.Walk, len(f)-1)
	for i, field := range f[1:] {
		steps[i] = tsg.ParseStep(field)
		if steps[i].Orient != tsg.Unoriented {
			return errors.New(errors.ErrCodeUnexpectedOrientation, "chain step %q carries an orientation", field).For(f[0])
		}
	}
	if err := checkWalkLength(f[0], steps); err != nil {
		return err
	}
	return b.cur.AddChain(tsg.Chain{ID: f[0], Steps: steps})
}

func (b *builder) path(f []string) error {
	if len(f) == 0 {
		return malformed("P record needs an id")
	}
	steps := make(tsg.Walk, len(f)-1)
	for i, field := range f[1:] {
		steps[i] = tsg.ParseStep(field)
		if steps[i].Orient == tsg.Unoriented {
			return errors.New(errors.ErrCodeMissingOrientation, "path step %q has no orientation", field).For(f[0])
		}
	}
	if err := checkWalkLength(f[0], steps); err != nil {
		return err
	}
	return b.cur.AddPath(tsg.Path{ID: f[0], Steps: steps})
}

func (b *builder) set(f []string) error {
	if len(f) < 2 {
		return malformed("U record needs an id and at least one member")
	}
	return b.cur.AddSet(tsg.NewSet(f[0], f[1:]...))
}

func (b *builder) annotate(rec Record) error {
	f := rec.Fields
	if len(f) < 3 {
		return malformed("A record needs kind, id and attributes")
	}
	kind, ok := tsg.ParseKind(f[0])
	if !ok {
		return malformed("A record has unknown target kind %q", f[0])
	}
	attrs, err := parseAttributes(f[2:])
	if err != nil {
		return err
	}

	switch kind {
	case tsg.KindLink:
		b.pending = append(b.pending, rec)
		return nil
	case tsg.KindGraph:
		g, ok := b.doc.Graph(f[1])
		if !ok {
			return unresolvedTarget(kind, f[1])
		}
		g.Annotate(kind, f[1], attrs...)
		return nil
	}

	if b.cur == nil {
		return malformed("A %s record outside a graph section", f[0])
	}
	if !b.cur.Has(kind, f[1]) {
		return unresolvedTarget(kind, b.cur.ID+":"+f[1])
	}
	b.cur.Annotate(kind, f[1], attrs...)
	return nil
}

// finish resolves buffered link records in their original order.
func (b *builder) finish() error {
	for _, rec := range b.pending {
		if err := b.resolve(rec); err != nil {
			return locate(err, rec)
		}
	}
	return nil
}

func (b *builder) resolve(rec Record) error {
	if rec.Tag == "A" {
		id := rec.Fields[1]
		if _, ok := b.doc.Link(id); !ok {
			return unresolvedTarget(tsg.KindLink, id)
		}
		// Attributes were checked when the record was read.
		attrs, _ := parseAttributes(rec.Fields[2:])
		b.doc.AnnotateLink(id, attrs...)
		return nil
	}

	l, _ := parseLink(rec.Fields)
	for _, ref := range []tsg.NodeRef{l.Source, l.Target} {
		if _, ok := b.doc.ResolveNode(ref); !ok {
			return errors.New(errors.ErrCodeUnresolvedLinkEndpoint, "link %s references unknown node", l.ID).For(ref.String())
		}
	}
	return b.doc.AddLink(l)
}

func parseLink(f []string) (tsg.Link, error) {
	src, err := tsg.ParseNodeRef(f[1])
	if err != nil {
		return tsg.Link{}, err
	}
	tgt, err := tsg.ParseNodeRef(f[2])
	if err != nil {
		return tsg.Link{}, err
	}
	l := tsg.Link{ID: f[0], Source: src, Target: tgt}
	if len(f) > 3 {
		l.Kind = f[3]
	}
	return l, nil
}

func parseAttributes(fields []string) ([]tsg.Attribute, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	attrs := make([]tsg.Attribute, len(fields))
	for i, field := range fields {
		a, err := tsg.ParseAttribute(field)
		if err != nil {
			return nil, err
		}
		attrs[i] = a
	}
	return attrs, nil
}

func checkWalkLength(id string, steps tsg.Walk) error {
	if len(steps)%2 == 0 {
		return errors.New(errors.ErrCodeInvalidChainWalk, "walk has %d steps, want an odd number", len(steps)).For(id)
	}
	return nil
}

func malformed(format string, args ...any) error {
	return errors.New(errors.ErrCodeMalformedLine, format, args...)
}

func unresolvedTarget(kind tsg.Kind, ref string) error {
	return errors.New(errors.ErrCodeUnresolvedAttributeTarget, "A record targets undeclared %s", kind).For(ref)
}

// locate attaches the record position to a coded error, or wraps a plain
// error as MALFORMED_LINE.
func locate(err error, rec Record) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		if e.Line == 0 {
			e.At(rec.Line, rec.Raw)
		}
		return e
	}
	return errors.Wrap(errors.ErrCodeMalformedLine, err, "%s record", rec.Tag).At(rec.Line, rec.Raw)
}
