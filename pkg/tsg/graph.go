package tsg

import (
	"github.com/matzehuels/tsg/pkg/errors"
)

// Annotation is one overlay record: attributes attached to an element.
type Annotation struct {
	Kind  Kind
	ID    string
	Attrs []Attribute
}

type target struct {
	kind Kind
	id   string
}

// Graph is one gene's segment graph. Node, edge, chain, path and set ids are
// scoped to the graph: the same id may appear in another graph.
//
// Graph is a data container. It enforces id uniqueness but does not check
// references; the parser and the validate package do that. The zero value
// is not usable, create graphs with [Document.AddGraph] or [NewGraph].
type Graph struct {
	ID    string
	Attrs []Attribute // attributes from the G record

	nodes     map[string]*Node
	nodeOrder []*Node
	edges     map[string]*Edge
	edgeOrder []*Edge
	chains    map[string]*Chain
	chainList []*Chain
	paths     map[string]*Path
	pathList  []*Path
	sets      map[string]*Set
	setList   []*Set

	overlay     map[target][]Attribute
	annotations []Annotation
}

// NewGraph creates an empty graph that does not belong to a document.
func NewGraph(id string, attrs ...Attribute) *Graph {
	return &Graph{
		ID:      id,
		Attrs:   attrs,
		nodes:   make(map[string]*Node),
		edges:   make(map[string]*Edge),
		chains:  make(map[string]*Chain),
		paths:   make(map[string]*Path),
		sets:    make(map[string]*Set),
		overlay: make(map[target][]Attribute),
	}
}

// AddNode adds a node. It returns INVALID_ID for ids that cannot be written
// as TSG text and DUPLICATE_NODE_ID when the id is taken.
func (g *Graph) AddNode(n Node) error {
	if err := errors.ValidateStepID(n.ID); err != nil {
		return err
	}
	if _, ok := g.nodes[n.ID]; ok {
		return errors.New(errors.ErrCodeDuplicateNodeID, "node already declared").For(g.ref(n.ID))
	}
	node := &n
	g.nodes[n.ID] = node
	g.nodeOrder = append(g.nodeOrder, node)
	return nil
}

// AddEdge adds an edge. Endpoints are not checked here.
func (g *Graph) AddEdge(e Edge) error {
	if err := errors.ValidateStepID(e.ID); err != nil {
		return err
	}
	if _, ok := g.edges[e.ID]; ok {
		return errors.New(errors.ErrCodeDuplicateEdgeID, "edge already declared").For(g.ref(e.ID))
	}
	edge := &e
	g.edges[e.ID] = edge
	g.edgeOrder = append(g.edgeOrder, edge)
	return nil
}

// AddChain adds a chain. The walk is not checked here.
func (g *Graph) AddChain(c Chain) error {
	if err := errors.ValidateID(c.ID); err != nil {
		return err
	}
	if _, ok := g.chains[c.ID]; ok {
		return errors.New(errors.ErrCodeDuplicateChainID, "chain already declared").For(g.ref(c.ID))
	}
	chain := &c
	g.chains[c.ID] = chain
	g.chainList = append(g.chainList, chain)
	return nil
}

// AddPath adds a path. The walk is not checked here.
func (g *Graph) AddPath(p Path) error {
	if err := errors.ValidateID(p.ID); err != nil {
		return err
	}
	if _, ok := g.paths[p.ID]; ok {
		return errors.New(errors.ErrCodeDuplicatePathID, "path already declared").For(g.ref(p.ID))
	}
	path := &p
	g.paths[p.ID] = path
	g.pathList = append(g.pathList, path)
	return nil
}

// AddSet adds a set. Members are not checked here.
func (g *Graph) AddSet(s *Set) error {
	if err := errors.ValidateID(s.ID); err != nil {
		return err
	}
	if _, ok := g.sets[s.ID]; ok {
		return errors.New(errors.ErrCodeDuplicateSetID, "set already declared").For(g.ref(s.ID))
	}
	g.sets[s.ID] = s
	g.setList = append(g.setList, s)
	return nil
}

// Annotate appends an overlay record. The target is not checked here; use
// [Graph.Has] first when the target must exist.
func (g *Graph) Annotate(kind Kind, id string, attrs ...Attribute) {
	t := target{kind, id}
	g.overlay[t] = append(g.overlay[t], attrs...)
	g.annotations = append(g.annotations, Annotation{Kind: kind, ID: id, Attrs: attrs})
}

// Has reports whether an element of the given kind exists in the graph.
// For KindGraph, id must be the graph's own id.
func (g *Graph) Has(kind Kind, id string) bool {
	var ok bool
	switch kind {
	case KindGraph:
		ok = id == g.ID
	case KindNode:
		_, ok = g.nodes[id]
	case KindEdge:
		_, ok = g.edges[id]
	case KindChain:
		_, ok = g.chains[id]
	case KindPath:
		_, ok = g.paths[id]
	case KindSet:
		_, ok = g.sets[id]
	}
	return ok
}

// Attributes returns the overlay attributes of an element in declaration
// order, or nil if there are none. For the graph itself the G record
// attributes come first. Repeated keys are all returned.
func (g *Graph) Attributes(kind Kind, id string) []Attribute {
	over := g.overlay[target{kind, id}]
	if kind == KindGraph && id == g.ID && len(g.Attrs) > 0 {
		out := make([]Attribute, 0, len(g.Attrs)+len(over))
		return append(append(out, g.Attrs...), over...)
	}
	return over
}

// Annotations returns every overlay record in declaration order.
func (g *Graph) Annotations() []Annotation { return g.annotations }

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Edge returns the edge with the given id.
func (g *Graph) Edge(id string) (*Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// Chain returns the chain with the given id.
func (g *Graph) Chain(id string) (*Chain, bool) {
	c, ok := g.chains[id]
	return c, ok
}

// Path returns the path with the given id.
func (g *Graph) Path(id string) (*Path, bool) {
	p, ok := g.paths[id]
	return p, ok
}

// Set returns the set with the given id.
func (g *Graph) Set(id string) (*Set, bool) {
	s, ok := g.sets[id]
	return s, ok
}

// Nodes returns all nodes in declaration order.
func (g *Graph) Nodes() []*Node { return g.nodeOrder }

// Edges returns all edges in declaration order.
func (g *Graph) Edges() []*Edge { return g.edgeOrder }

// Chains returns all chains in declaration order.
func (g *Graph) Chains() []*Chain { return g.chainList }

// Paths returns all paths in declaration order.
func (g *Graph) Paths() []*Path { return g.pathList }

// Sets returns all sets in declaration order.
func (g *Graph) Sets() []*Set { return g.setList }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodeOrder) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edgeOrder) }

func (g *Graph) ref(id string) string { return g.ID + ":" + id }
