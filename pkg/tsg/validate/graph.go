package validate

import (
	"github.com/matzehuels/tsg/pkg/errors"
	"github.com/matzehuels/tsg/pkg/tsg"
)

// checker collects violations for one graph. A positive limit stops the
// checks once that many violations were found.
type checker struct {
	g     *tsg.Graph
	limit int
	out   errors.List
}

func (c *checker) full() bool { return c.limit > 0 && len(c.out) >= c.limit }

func (c *checker) add(code errors.Code, id, format string, args ...any) {
	if c.full() {
		return
	}
	c.out = append(c.out, errors.New(code, format, args...).For(c.g.ID+":"+id))
}

func (c *checker) run() {
	c.nodes()
	c.edges()
	for _, ch := range c.g.Chains() {
		c.walk(ch.ID, ch.Steps, false)
	}
	for _, p := range c.g.Paths() {
		c.walk(p.ID, p.Steps, true)
	}
	c.sets()
	c.annotations()
}

func (c *checker) nodes() {
	for _, n := range c.g.Nodes() {
		if len(n.Exons) == 0 {
			c.add(errors.ErrCodeInvalidInterval, n.ID, "node has no exons")
		}
		for _, iv := range n.Exons {
			if !iv.Valid() {
				c.add(errors.ErrCodeInvalidInterval, n.ID, "interval %s must satisfy 1 <= start <= end", iv)
			}
		}
		if _, ok := tsg.ParseStrand(n.Strand.String()); !ok {
			c.add(errors.ErrCodeMalformedLine, n.ID, "invalid strand %q", n.Strand.String())
		}
	}
}

func (c *checker) edges() {
	for _, e := range c.g.Edges() {
		for _, end := range []string{e.Source, e.Target} {
			if _, ok := c.g.Node(end); !ok {
				c.add(errors.ErrCodeUnresolvedEdgeEndpoint, end, "edge %s references unknown node", e.ID)
			}
		}
	}
}

// walk checks that steps alternate node/edge, start and end on a node, and
// that every edge joins its neighbours. Chain edges may join in either
// direction; a path '+' edge runs source to target and '-' the reverse.
func (c *checker) walk(id string, steps tsg.Walk, oriented bool) {
	if len(steps)%2 == 0 {
		c.add(errors.ErrCodeInvalidChainWalk, id, "walk has %d steps, want an odd number", len(steps))
		return
	}
	for i, s := range steps {
		switch {
		case oriented && s.Orient == tsg.Unoriented:
			c.add(errors.ErrCodeMissingOrientation, id, "path step %s has no orientation", s.ID)
		case !oriented && s.Orient != tsg.Unoriented:
			c.add(errors.ErrCodeUnexpectedOrientation, id, "chain step %s carries an orientation", s)
		}
		if i%2 == 0 {
			if _, ok := c.g.Node(s.ID); !ok {
				c.add(errors.ErrCodeInvalidChainWalk, id, "step %d: unknown node %s", i+1, s.ID)
			}
			continue
		}

		e, ok := c.g.Edge(s.ID)
		if !ok {
			c.add(errors.ErrCodeInvalidChainWalk, id, "step %d: unknown edge %s", i+1, s.ID)
			continue
		}
		a, b := steps[i-1].ID, steps[i+1].ID
		var joined bool
		switch {
		case !oriented:
			joined = e.Connects(a, b)
		case s.Orient == tsg.Reverse:
			joined = e.Source == b && e.Target == a
		default:
			joined = e.Source == a && e.Target == b
		}
		if !joined {
			c.add(errors.ErrCodeInvalidChainWalk, id, "step %d: edge %s (%s->%s) does not join %s and %s",
				i+1, e.ID, e.Source, e.Target, a, b)
		}
	}
}

func (c *checker) sets() {
	for _, s := range c.g.Sets() {
		for _, m := range s.Members() {
			if _, ok := c.g.Node(m); !ok {
				c.add(errors.ErrCodeUnresolvedSetMember, s.ID, "member %s is not a node", m)
			}
		}
	}
}

func (c *checker) annotations() {
	for _, a := range c.g.Annotations() {
		if !c.g.Has(a.Kind, a.ID) {
			c.add(errors.ErrCodeUnresolvedAttributeTarget, a.ID, "attributes target undeclared %s", a.Kind)
		}
	}
}
