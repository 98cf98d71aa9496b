package convert

import (
	"io"

	tsgio "github.com/matzehuels/tsg/pkg/io"
	"github.com/matzehuels/tsg/pkg/render/nodelink"
	"github.com/matzehuels/tsg/pkg/tsg"
)

// dotEncoder writes one digraph per graph. Graphviz accepts several graphs
// in one file and lays each out separately.
type dotEncoder struct {
	noHeader
	noLinks
}

func (dotEncoder) graph(g *tsg.Graph, s *sink) error {
	if _, err := io.WriteString(s, nodelink.ToDOT(g, nodelink.Options{Detailed: true})); err != nil {
		return err
	}
	s.records++
	return nil
}

// tsgEncoder re-serializes the document as canonical TSG.
type tsgEncoder struct{}

func (tsgEncoder) header(doc *tsg.Document, s *sink) error {
	return tsgio.WriteHeaders(doc, s)
}

func (tsgEncoder) graph(g *tsg.Graph, s *sink) error {
	s.records++
	return tsgio.WriteGraph(g, s)
}

func (tsgEncoder) links(doc *tsg.Document, s *sink) error {
	s.records += len(doc.Links())
	return tsgio.WriteLinks(doc, s)
}
