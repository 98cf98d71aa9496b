package convert

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/matzehuels/tsg/pkg/errors"
	"github.com/matzehuels/tsg/pkg/tsg"
)

// Backfill reads FASTA records from r and stores each sequence on the node
// its ID names. IDs are graph:node; a bare node id is accepted when doc has
// exactly one graph. Existing sequences are replaced.
//
// A record that names no node is an UNRESOLVED_NODE error, or a skipped
// entry in the report with [Options.BestEffort].
func Backfill(doc *tsg.Document, r io.Reader, opts Options) (*Report, error) {
	rep := &Report{Format: FormatFASTA, Graphs: len(doc.Graphs())}
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant)))
	for sc.Next() {
		rec, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "unexpected sequence type %T", sc.Seq())
		}
		n, ok := backfillTarget(doc, rec.Name())
		if !ok {
			e := errors.New(errors.ErrCodeUnresolvedNode, "FASTA record does not name a node").For(rec.Name())
			if !opts.BestEffort {
				return nil, e
			}
			rep.Skipped = append(rep.Skipped, e)
			continue
		}
		n.Sequence = string(alphabet.LettersToBytes(rec.Seq))
		rep.Records++
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("read fasta: %w", err)
	}
	return rep, nil
}

func backfillTarget(doc *tsg.Document, id string) (*tsg.Node, bool) {
	if ref, err := tsg.ParseNodeRef(id); err == nil {
		if n, ok := doc.ResolveNode(ref); ok {
			return n, true
		}
	}
	if graphs := doc.Graphs(); len(graphs) == 1 {
		return graphs[0].Node(id)
	}
	return nil, false
}
