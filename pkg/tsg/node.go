package tsg

import (
	"fmt"
	"strconv"
	"strings"
)

// Strand is the genomic strand of a node.
type Strand byte

const (
	StrandForward Strand = '+'
	StrandReverse Strand = '-'
	StrandUnknown Strand = '.'
)

// ParseStrand parses "+", "-" or ".".
func ParseStrand(s string) (Strand, bool) {
	switch s {
	case "+":
		return StrandForward, true
	case "-":
		return StrandReverse, true
	case ".":
		return StrandUnknown, true
	}
	return 0, false
}

func (s Strand) String() string { return string(s) }

// Interval is a genomic interval. Coordinates are kept exactly as written:
// 1-based with an exclusive end.
type Interval struct {
	Start int
	End   int
}

// Valid reports whether the interval is well-formed (1 <= Start <= End).
func (iv Interval) Valid() bool { return iv.Start >= 1 && iv.Start <= iv.End }

// Len returns End - Start.
func (iv Interval) Len() int { return iv.End - iv.Start }

func (iv Interval) String() string {
	return strconv.Itoa(iv.Start) + "-" + strconv.Itoa(iv.End)
}

// ParseInterval parses "start-end".
func ParseInterval(s string) (Interval, error) {
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return Interval{}, fmt.Errorf("interval %q is not start-end", s)
	}
	start, err := strconv.Atoi(a)
	if err != nil {
		return Interval{}, fmt.Errorf("interval start: %w", err)
	}
	end, err := strconv.Atoi(b)
	if err != nil {
		return Interval{}, fmt.Errorf("interval end: %w", err)
	}
	return Interval{Start: start, End: end}, nil
}

// Known evidence codes. Codes are an open vocabulary: unknown codes are
// preserved verbatim.
const (
	EvidenceSource       = "SO"
	EvidenceIntermediate = "IN"
	EvidenceSink         = "SI"
)

// Evidence ties a supporting read to a node.
type Evidence struct {
	ReadID string
	Code   string
}

func (e Evidence) String() string { return e.ReadID + ":" + e.Code }

// ParseEvidence parses "read-id:code". Read ids may contain ':'; the code is
// everything after the last one.
func ParseEvidence(s string) (Evidence, error) {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 || i == len(s)-1 {
		return Evidence{}, fmt.Errorf("evidence %q is not read:code", s)
	}
	return Evidence{ReadID: s[:i], Code: s[i+1:]}, nil
}

// Node is a genomic segment: one or more exon intervals on a chromosome
// strand, with supporting reads and an optional nucleotide sequence.
type Node struct {
	ID       string
	Chrom    string
	Strand   Strand
	Exons    []Interval
	Evidence []Evidence
	Sequence string
}

// Start returns the start of the first exon, or 0 for a node without exons.
func (n *Node) Start() int {
	if len(n.Exons) == 0 {
		return 0
	}
	return n.Exons[0].Start
}

// End returns the end of the last exon, or 0 for a node without exons.
func (n *Node) End() int {
	if len(n.Exons) == 0 {
		return 0
	}
	return n.Exons[len(n.Exons)-1].End
}

// Span returns the number of bases covered by all exons.
func (n *Node) Span() int {
	total := 0
	for _, iv := range n.Exons {
		total += iv.Len()
	}
	return total
}

// Location renders chrom:strand:exons as used in N records.
func (n *Node) Location() string {
	parts := make([]string, len(n.Exons))
	for i, iv := range n.Exons {
		parts[i] = iv.String()
	}
	return n.Chrom + ":" + n.Strand.String() + ":" + strings.Join(parts, ",")
}

// ParseLocation parses chrom:strand:s-e[,s-e...] into a node's chromosome,
// strand and exons. The chromosome is everything before the last two ':'.
func (n *Node) ParseLocation(s string) error {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return fmt.Errorf("location %q is not chrom:strand:exons", s)
	}
	head, exons := s[:i], s[i+1:]
	j := strings.LastIndexByte(head, ':')
	if j <= 0 {
		return fmt.Errorf("location %q is not chrom:strand:exons", s)
	}
	strand, ok := ParseStrand(head[j+1:])
	if !ok {
		return fmt.Errorf("invalid strand %q", head[j+1:])
	}
	if exons == "" {
		return fmt.Errorf("location %q has no exons", s)
	}
	var ivs []Interval
	for _, part := range strings.Split(exons, ",") {
		iv, err := ParseInterval(part)
		if err != nil {
			return err
		}
		ivs = append(ivs, iv)
	}
	n.Chrom, n.Strand, n.Exons = head[:j], strand, ivs
	return nil
}
