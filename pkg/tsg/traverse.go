package tsg

import (
	"strconv"

	"github.com/matzehuels/tsg/pkg/errors"
)

// WalkPrefix prefixes the ids of paths built by [Graph.Traverse].
const WalkPrefix = "walk"

// Traverse enumerates every walk from a source node (no incoming edges) to
// a sink node (no outgoing edges). Sources are visited in declaration order
// and outgoing edges are followed in declaration order, so the result is
// deterministic. A walk never visits a node twice; a cycle ends the walk at
// the node that would repeat. Edges whose endpoints are not declared are
// ignored, and an unconnected node yields a single-node walk. A graph in
// which every node has an incoming edge has no sources and no walks.
//
// The walks are returned as forward paths named walk1, walk2, ... and are
// not added to the graph. When limit is positive and more walks exist,
// Traverse returns TOO_MANY_WALKS.
func (g *Graph) Traverse(limit int) ([]*Path, error) {
	out := make(map[string][]*Edge)
	in := make(map[string]int)
	for _, e := range g.edgeOrder {
		if _, ok := g.nodes[e.Source]; !ok {
			continue
		}
		if _, ok := g.nodes[e.Target]; !ok {
			continue
		}
		out[e.Source] = append(out[e.Source], e)
		if e.Source != e.Target {
			in[e.Target]++
		}
	}

	t := traversal{g: g, out: out, limit: limit, onWalk: make(map[string]bool)}
	for _, n := range g.nodeOrder {
		if in[n.ID] > 0 {
			continue
		}
		if err := t.visit(n.ID, nil); err != nil {
			return nil, err
		}
	}
	return t.paths, nil
}

type traversal struct {
	g      *Graph
	out    map[string][]*Edge
	limit  int
	onWalk map[string]bool
	paths  []*Path
}

// visit extends walk with node id and follows every edge that leads to a
// node not already on the walk. A node with no such edge ends the walk.
func (t *traversal) visit(id string, walk Walk) error {
	walk = append(walk, Step{ID: id, Orient: Forward})
	t.onWalk[id] = true
	defer delete(t.onWalk, id)

	extended := false
	for _, e := range t.out[id] {
		if t.onWalk[e.Target] {
			continue
		}
		extended = true
		if err := t.visit(e.Target, append(walk, Step{ID: e.ID, Orient: Forward})); err != nil {
			return err
		}
	}
	if extended {
		return nil
	}

	if t.limit > 0 && len(t.paths) == t.limit {
		return errors.New(errors.ErrCodeTooManyWalks, "more than %d walks", t.limit).For(t.g.ID)
	}
	steps := make(Walk, len(walk))
	copy(steps, walk)
	t.paths = append(t.paths, &Path{ID: WalkPrefix + strconv.Itoa(len(t.paths)+1), Steps: steps})
	return nil
}
