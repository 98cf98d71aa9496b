package convert

import (
	"fmt"

	"github.com/matzehuels/tsg/pkg/tsg"
)

// bedEncoder writes BED6, one line per node spanning all of its exons.
// TSG coordinates are 1-based with an exclusive end, so both ends shift
// down by one for BED's 0-based half-open intervals.
type bedEncoder struct {
	noHeader
	noLinks
}

func (bedEncoder) graph(g *tsg.Graph, s *sink) error {
	for _, n := range g.Nodes() {
		if len(n.Exons) == 0 {
			continue
		}
		fmt.Fprintf(s, "%s\t%d\t%d\t%s:%s\t0\t%s\n",
			n.Chrom, n.Start()-1, n.End()-1, g.ID, n.ID, n.Strand)
		s.records++
	}
	return nil
}
