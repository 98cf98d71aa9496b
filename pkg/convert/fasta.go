package convert

import (
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/matzehuels/tsg/pkg/errors"
	"github.com/matzehuels/tsg/pkg/tsg"
)

// fastaEncoder writes one record per node that carries a sequence. The
// record ID is graph:node and the description is the node location.
type fastaEncoder struct {
	noHeader
	noLinks
	width int
}

func (e *fastaEncoder) graph(g *tsg.Graph, s *sink) error {
	w := fasta.NewWriter(s, e.width)
	for _, n := range g.Nodes() {
		if n.Sequence == "" {
			continue
		}
		rec := linear.NewSeq(g.ID+":"+n.ID, alphabet.BytesToLetters([]byte(n.Sequence)), alphabet.DNAredundant)
		rec.Desc = n.Location()
		if _, err := w.Write(rec); err != nil {
			return err
		}
		s.records++
	}
	return nil
}

// pathFASTAEncoder writes one record per path: the node sequences joined in
// traversal order, reverse-complemented on '-' steps. With traverse set the
// paths are the graph's source-to-sink walks.
type pathFASTAEncoder struct {
	noHeader
	noLinks
	width    int
	traverse bool
	limit    int
}

func (e *pathFASTAEncoder) graph(g *tsg.Graph, s *sink) error {
	paths := g.Paths()
	if e.traverse {
		walks, err := g.Traverse(e.limit)
		if err != nil {
			return err
		}
		paths = walks
	}

	w := fasta.NewWriter(s, e.width)
	for _, p := range paths {
		rec, err := pathSeq(g, p)
		if err != nil {
			if err := s.fail(err); err != nil {
				return err
			}
			continue
		}
		if _, err := w.Write(rec); err != nil {
			return err
		}
		s.records++
	}
	return nil
}

func pathSeq(g *tsg.Graph, p *tsg.Path) (*linear.Seq, *errors.Error) {
	ref := g.ID + ":" + p.ID
	var letters alphabet.Letters
	for _, step := range p.Steps.Nodes() {
		n, ok := g.Node(step.ID)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnconvertiblePath, "unknown node %s", step.ID).For(ref)
		}
		if n.Sequence == "" {
			return nil, errors.New(errors.ErrCodeUnconvertiblePath, "node %s has no sequence", step.ID).For(ref)
		}
		part := linear.NewSeq("", alphabet.BytesToLetters([]byte(n.Sequence)), alphabet.DNAredundant)
		if step.Orient == tsg.Reverse {
			part.RevComp()
		}
		letters = append(letters, part.Seq...)
	}
	rec := linear.NewSeq(ref, letters, alphabet.DNAredundant)
	rec.Desc = p.Steps.String()
	return rec, nil
}

// PathFASTA writes one FASTA record per path of every graph. It is
// shorthand for [Convert] with FormatFASTA and [Options.Paths] set.
func PathFASTA(doc *tsg.Document, w io.Writer, opts Options) (*Report, error) {
	opts.Paths = true
	return Convert(doc, FormatFASTA, w, opts)
}
