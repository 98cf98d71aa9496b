package tsg

import "slices"

// Equal reports whether two documents are structurally identical: same
// headers, graphs, elements, overlay records and links, all in the same
// order and with the same typed attribute values.
func Equal(a, b *Document) bool {
	if !slices.Equal(a.headers, b.headers) {
		return false
	}
	if !slices.EqualFunc(a.graphOrder, b.graphOrder, equalGraph) {
		return false
	}
	if !slices.EqualFunc(a.linkOrder, b.linkOrder, func(x, y *Link) bool { return *x == *y }) {
		return false
	}
	return slices.EqualFunc(a.annotations, b.annotations, equalAnnotation)
}

func equalGraph(a, b *Graph) bool {
	return a.ID == b.ID &&
		slices.EqualFunc(a.Attrs, b.Attrs, Attribute.Equal) &&
		slices.EqualFunc(a.nodeOrder, b.nodeOrder, equalNode) &&
		slices.EqualFunc(a.edgeOrder, b.edgeOrder, equalEdge) &&
		slices.EqualFunc(a.chainList, b.chainList, func(x, y *Chain) bool {
			return x.ID == y.ID && slices.Equal(x.Steps, y.Steps)
		}) &&
		slices.EqualFunc(a.pathList, b.pathList, func(x, y *Path) bool {
			return x.ID == y.ID && slices.Equal(x.Steps, y.Steps)
		}) &&
		slices.EqualFunc(a.setList, b.setList, func(x, y *Set) bool {
			return x.ID == y.ID && slices.Equal(x.members, y.members)
		}) &&
		slices.EqualFunc(a.annotations, b.annotations, equalAnnotation)
}

func equalNode(a, b *Node) bool {
	return a.ID == b.ID && a.Chrom == b.Chrom && a.Strand == b.Strand &&
		slices.Equal(a.Exons, b.Exons) &&
		slices.Equal(a.Evidence, b.Evidence) &&
		a.Sequence == b.Sequence
}

func equalEdge(a, b *Edge) bool {
	if a.ID != b.ID || a.Source != b.Source || a.Target != b.Target || a.Kind != b.Kind {
		return false
	}
	if a.Breakpoints == nil || b.Breakpoints == nil {
		return a.Breakpoints == nil && b.Breakpoints == nil
	}
	return *a.Breakpoints == *b.Breakpoints
}

func equalAnnotation(a, b Annotation) bool {
	return a.Kind == b.Kind && a.ID == b.ID && slices.EqualFunc(a.Attrs, b.Attrs, Attribute.Equal)
}
