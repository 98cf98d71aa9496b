package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/tsg/pkg/tsg"
)

// WriteTSG writes doc to w as canonical TSG text.
//
// Output order is deterministic: headers, then for each graph its G record
// followed by N, E, C, P, U and overlay A records in declaration order, then
// every L record and finally the link A records. Fields are tab-separated.
// Re-reading the output with [ReadTSG] yields a document equal to doc under
// [tsg.Equal].
func WriteTSG(doc *tsg.Document, w io.Writer) error {
	bw := bufio.NewWriter(w)
	tw := &recordWriter{w: bw}

	writeHeaders(tw, doc)
	for _, g := range doc.Graphs() {
		writeGraph(tw, g)
	}
	writeLinks(tw, doc)

	if tw.err != nil {
		return fmt.Errorf("write: %w", tw.err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// ExportTSG writes doc to a TSG file at path.
// This is a convenience wrapper around [WriteTSG] for file-based output.
func ExportTSG(doc *tsg.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteTSG(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteGraph writes a single graph section: its G record and everything
// declared inside it.
func WriteGraph(g *tsg.Graph, w io.Writer) error {
	tw := &recordWriter{w: w}
	writeGraph(tw, g)
	return tw.err
}

// WriteHeaders writes only the H records of doc.
func WriteHeaders(doc *tsg.Document, w io.Writer) error {
	tw := &recordWriter{w: w}
	writeHeaders(tw, doc)
	return tw.err
}

// WriteLinks writes only the L records of doc and their annotations.
func WriteLinks(doc *tsg.Document, w io.Writer) error {
	tw := &recordWriter{w: w}
	writeLinks(tw, doc)
	return tw.err
}

func writeHeaders(tw *recordWriter, doc *tsg.Document) {
	for _, h := range doc.Headers() {
		tw.record("H", h.Key, h.Value)
	}
}

func writeLinks(tw *recordWriter, doc *tsg.Document) {
	for _, l := range doc.Links() {
		tw.record("L", l.ID, l.Source.String(), l.Target.String(), l.Kind)
	}
	for _, a := range doc.LinkAnnotations() {
		tw.annotation(a)
	}
}

func writeGraph(tw *recordWriter, g *tsg.Graph) {
	tw.record("G", append([]string{g.ID}, attrFields(g.Attrs)...)...)

	for _, n := range g.Nodes() {
		tw.record("N", n.ID, n.Location(), evidenceField(n.Evidence), n.Sequence)
	}
	for _, e := range g.Edges() {
		tw.record("E", e.ID, e.Source, e.Target, e.Payload())
	}
	for _, c := range g.Chains() {
		tw.record("C", append([]string{c.ID}, stepFields(c.Steps)...)...)
	}
	for _, p := range g.Paths() {
		tw.record("P", append([]string{p.ID}, stepFields(p.Steps)...)...)
	}
	for _, s := range g.Sets() {
		tw.record("U", append([]string{s.ID}, s.Members()...)...)
	}
	for _, a := range g.Annotations() {
		tw.annotation(a)
	}
}

// recordWriter keeps the first write error so callers check once.
type recordWriter struct {
	w   io.Writer
	err error
}

// record writes a tag and its fields. Trailing empty fields are dropped.
func (tw *recordWriter) record(tag string, fields ...string) {
	if tw.err != nil {
		return
	}
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	var b strings.Builder
	b.WriteString(tag)
	for _, f := range fields {
		b.WriteByte('\t')
		b.WriteString(f)
	}
	b.WriteByte('\n')
	_, tw.err = io.WriteString(tw.w, b.String())
}

func (tw *recordWriter) annotation(a tsg.Annotation) {
	tw.record("A", append([]string{a.Kind.Tag(), a.ID}, attrFields(a.Attrs)...)...)
}

func attrFields(attrs []tsg.Attribute) []string {
	out := make([]string, len(attrs))
	for i, a := range attrs {
		out[i] = a.String()
	}
	return out
}

func stepFields(w tsg.Walk) []string {
	out := make([]string, len(w))
	for i, s := range w {
		out[i] = s.String()
	}
	return out
}

func evidenceField(ev []tsg.Evidence) string {
	if len(ev) == 0 {
		return "."
	}
	parts := make([]string, len(ev))
	for i, e := range ev {
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}
