package tsg

import (
	"strings"

	"github.com/matzehuels/tsg/pkg/errors"
)

// NodeRef addresses a node across graphs. It is the only composite
// identifier in the model; everything inside a graph uses local ids.
type NodeRef struct {
	Graph string
	Node  string
}

// String renders graph:node.
func (r NodeRef) String() string { return r.Graph + ":" + r.Node }

// ParseNodeRef splits graph:node on the first ':'. Graph ids never contain
// ':', so node ids may.
func ParseNodeRef(s string) (NodeRef, error) {
	g, n, ok := strings.Cut(s, ":")
	if !ok || g == "" || n == "" {
		return NodeRef{}, errors.New(errors.ErrCodeMalformedLine, "node reference %q is not graph:node", s)
	}
	return NodeRef{Graph: g, Node: n}, nil
}

// Link is a document-scoped connection between nodes of two graphs, such
// as a gene fusion.
type Link struct {
	ID     string
	Source NodeRef
	Target NodeRef
	Kind   string
}
