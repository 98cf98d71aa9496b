package tsg

import (
	"github.com/matzehuels/tsg/pkg/errors"
)

// Header is one H record.
type Header struct {
	Key   string
	Value string
}

// Document is a parsed TSG file: headers, gene graphs in declaration order,
// and the cross-graph links with their attribute overlay.
//
// A Document is built once and then treated as read-only; concurrent readers
// are safe, concurrent writers are not.
type Document struct {
	headers []Header

	graphs     map[string]*Graph
	graphOrder []*Graph

	links       map[string]*Link
	linkOrder   []*Link
	linkAttrs   map[string][]Attribute
	annotations []Annotation
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		graphs:    make(map[string]*Graph),
		links:     make(map[string]*Link),
		linkAttrs: make(map[string][]Attribute),
	}
}

// AddHeader appends a header. Duplicate keys are kept.
func (d *Document) AddHeader(key, value string) {
	d.headers = append(d.headers, Header{Key: key, Value: value})
}

// Headers returns all headers in order.
func (d *Document) Headers() []Header { return d.headers }

// Header returns the first header value for key.
func (d *Document) Header(key string) (string, bool) {
	for _, h := range d.headers {
		if h.Key == key {
			return h.Value, true
		}
	}
	return "", false
}

// AddGraph creates and registers a new graph. It returns DUPLICATE_GRAPH_ID
// if the id was already used and INVALID_ID if it cannot serve as the
// graph part of a graph:node reference.
func (d *Document) AddGraph(id string, attrs ...Attribute) (*Graph, error) {
	if err := errors.ValidateGraphID(id); err != nil {
		return nil, err
	}
	if _, ok := d.graphs[id]; ok {
		return nil, errors.New(errors.ErrCodeDuplicateGraphID, "graph already declared").For(id)
	}
	g := NewGraph(id, attrs...)
	d.graphs[id] = g
	d.graphOrder = append(d.graphOrder, g)
	return g, nil
}

// Graph returns the graph with the given id.
func (d *Document) Graph(id string) (*Graph, bool) {
	g, ok := d.graphs[id]
	return g, ok
}

// Graphs returns all graphs in declaration order.
func (d *Document) Graphs() []*Graph { return d.graphOrder }

// ResolveNode looks up a node across graphs.
func (d *Document) ResolveNode(ref NodeRef) (*Node, bool) {
	g, ok := d.graphs[ref.Graph]
	if !ok {
		return nil, false
	}
	return g.Node(ref.Node)
}

// AddLink registers a link. It returns DUPLICATE_LINK_ID when the id is
// taken; endpoints are not resolved here.
func (d *Document) AddLink(l Link) error {
	if err := errors.ValidateID(l.ID); err != nil {
		return err
	}
	if _, ok := d.links[l.ID]; ok {
		return errors.New(errors.ErrCodeDuplicateLinkID, "link already declared").For(l.ID)
	}
	link := &l
	d.links[l.ID] = link
	d.linkOrder = append(d.linkOrder, link)
	return nil
}

// Link returns the link with the given id.
func (d *Document) Link(id string) (*Link, bool) {
	l, ok := d.links[id]
	return l, ok
}

// Links returns all links in declaration order.
func (d *Document) Links() []*Link { return d.linkOrder }

// AnnotateLink appends a link overlay record. The link is not checked here.
func (d *Document) AnnotateLink(id string, attrs ...Attribute) {
	d.linkAttrs[id] = append(d.linkAttrs[id], attrs...)
	d.annotations = append(d.annotations, Annotation{Kind: KindLink, ID: id, Attrs: attrs})
}

// LinkAttributes returns the overlay attributes of a link in declaration
// order.
func (d *Document) LinkAttributes(id string) []Attribute { return d.linkAttrs[id] }

// LinkAnnotations returns every link overlay record in declaration order.
func (d *Document) LinkAnnotations() []Annotation { return d.annotations }

// Stats summarizes a document's size.
type Stats struct {
	Graphs int
	Nodes  int
	Edges  int
	Paths  int
	Links  int
}

// Stats counts the document's elements.
func (d *Document) Stats() Stats {
	s := Stats{Graphs: len(d.graphOrder), Links: len(d.linkOrder)}
	for _, g := range d.graphOrder {
		s.Nodes += len(g.nodeOrder)
		s.Edges += len(g.edgeOrder)
		s.Paths += len(g.pathList)
	}
	return s
}
