package tsg

import (
	"fmt"
	"strconv"
	"strings"
)

// Well-known edge kinds.
const (
	EdgeSplice        = "splice"
	EdgeDeletion      = "deletion"
	EdgeDuplication   = "duplication"
	EdgeInversion     = "inversion"
	EdgeInsertion     = "insertion"
	EdgeTranslocation = "translocation"
	EdgeFusion        = "fusion"
)

// Breakpoints is the junction payload of an edge: the two joined positions.
type Breakpoints struct {
	Chrom1 string
	Chrom2 string
	Pos1   int
	Pos2   int
}

// Edge is a directed connection between two nodes of the same graph.
// Self loops are allowed when declared.
type Edge struct {
	ID     string
	Source string
	Target string
	Kind   string

	// Breakpoints is nil when the record carries only a kind.
	Breakpoints *Breakpoints
}

// Payload renders the optional trailing E field: the bare kind, or
// chrom1,chrom2,pos1,pos2,kind when breakpoints are known. It is empty for
// an edge with neither.
func (e *Edge) Payload() string {
	if e.Breakpoints == nil {
		return e.Kind
	}
	bp := e.Breakpoints
	return strings.Join([]string{
		bp.Chrom1, bp.Chrom2, strconv.Itoa(bp.Pos1), strconv.Itoa(bp.Pos2), e.Kind,
	}, ",")
}

// ParsePayload fills the edge kind and breakpoints from the trailing E field.
func (e *Edge) ParsePayload(s string) error {
	if !strings.Contains(s, ",") {
		e.Kind = s
		return nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 5 {
		return fmt.Errorf("edge payload %q is not chrom1,chrom2,pos1,pos2,kind", s)
	}
	pos1, err := strconv.Atoi(parts[2])
	if err != nil {
		return fmt.Errorf("edge pos1: %w", err)
	}
	pos2, err := strconv.Atoi(parts[3])
	if err != nil {
		return fmt.Errorf("edge pos2: %w", err)
	}
	e.Kind = parts[4]
	e.Breakpoints = &Breakpoints{Chrom1: parts[0], Chrom2: parts[1], Pos1: pos1, Pos2: pos2}
	return nil
}

// Connects reports whether the edge joins a and b in either direction.
func (e *Edge) Connects(a, b string) bool {
	return (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a)
}
