package tsg

import "strings"

// Orientation is the traversal direction of a path step.
type Orientation byte

const (
	// Unoriented marks chain steps.
	Unoriented Orientation = 0
	Forward    Orientation = '+'
	Reverse    Orientation = '-'
)

// Step references a node or edge from a chain or path. Steps alternate:
// even indices are nodes, odd indices are edges.
type Step struct {
	ID     string
	Orient Orientation
}

func (s Step) String() string {
	if s.Orient == Unoriented {
		return s.ID
	}
	return s.ID + string(s.Orient)
}

// ParseStep splits an optional trailing '+' or '-' from a walk element.
func ParseStep(field string) Step {
	if n := len(field); n > 1 {
		switch field[n-1] {
		case '+':
			return Step{ID: field[:n-1], Orient: Forward}
		case '-':
			return Step{ID: field[:n-1], Orient: Reverse}
		}
	}
	return Step{ID: field}
}

// Walk is an alternating node/edge step list.
type Walk []Step

// Nodes returns the node steps (even indices).
func (w Walk) Nodes() []Step {
	out := make([]Step, 0, (len(w)+1)/2)
	for i := 0; i < len(w); i += 2 {
		out = append(out, w[i])
	}
	return out
}

// Edges returns the edge steps (odd indices).
func (w Walk) Edges() []Step {
	out := make([]Step, 0, len(w)/2)
	for i := 1; i < len(w); i += 2 {
		out = append(out, w[i])
	}
	return out
}

func (w Walk) String() string {
	parts := make([]string, len(w))
	for i, s := range w {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// Chain is an unoriented walk.
type Chain struct {
	ID    string
	Steps Walk
}

// Path is an oriented walk, a candidate transcript isoform.
type Path struct {
	ID    string
	Steps Walk
}

// Set is a named, unordered group of nodes. Duplicate members collapse;
// first-seen order is kept so output is deterministic.
type Set struct {
	ID      string
	members []string
	index   map[string]struct{}
}

// NewSet creates a set from the given members.
func NewSet(id string, members ...string) *Set {
	s := &Set{ID: id, index: make(map[string]struct{}, len(members))}
	for _, m := range members {
		s.Add(m)
	}
	return s
}

// Add inserts a member. It reports whether the member was new.
func (s *Set) Add(member string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[member]; ok {
		return false
	}
	s.index[member] = struct{}{}
	s.members = append(s.members, member)
	return true
}

// Members returns the members in first-seen order. The slice must not be
// modified.
func (s *Set) Members() []string { return s.members }

// Contains reports whether member belongs to the set.
func (s *Set) Contains(member string) bool {
	_, ok := s.index[member]
	return ok
}

// Len returns the number of distinct members.
func (s *Set) Len() int { return len(s.members) }
