// Package validate checks referential integrity of a TSG document.
//
// Checks run per graph in parallel, then a document pass resolves links
// against every graph's node table. The parser already rejects most broken
// input; these checks also cover documents built programmatically.
//
//	if err := validate.Validate(doc, validate.Options{}); err != nil {
//	    return err // first violation in declaration order
//	}
//
//	for _, v := range validate.ValidateAll(doc, validate.Options{Workers: 4}) {
//	    fmt.Println(v)
//	}
package validate

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/tsg/pkg/errors"
	"github.com/matzehuels/tsg/pkg/tsg"
)

// Options configures validation.
type Options struct {
	// Workers bounds how many graphs are checked concurrently.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Validate returns the first violation in declaration order, or nil.
// Graphs are checked in declaration order first, then links.
func Validate(doc *tsg.Document, opts Options) error {
	l := run(doc, opts, 1)
	if len(l) == 0 {
		return nil
	}
	return l[0]
}

// ValidateAll returns every violation. The list is ordered by graph, then by
// declaration order within the graph, with link violations last.
func ValidateAll(doc *tsg.Document, opts Options) errors.List {
	return run(doc, opts, 0)
}

// Graph checks a single graph and returns every violation.
func Graph(g *tsg.Graph) errors.List {
	c := &checker{g: g}
	c.run()
	return c.out
}

func run(doc *tsg.Document, opts Options, limit int) errors.List {
	graphs := doc.Graphs()
	results := make([]errors.List, len(graphs))

	var eg errgroup.Group
	eg.SetLimit(opts.workers())
	for i, g := range graphs {
		eg.Go(func() error {
			c := &checker{g: g, limit: limit}
			c.run()
			results[i] = c.out
			return nil
		})
	}
	_ = eg.Wait()

	var out errors.List
	for _, r := range results {
		out = append(out, r...)
		if limit > 0 && len(out) >= limit {
			return out[:limit]
		}
	}
	out = append(out, links(doc)...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// links is the document pass. It runs after every graph has been checked.
func links(doc *tsg.Document) errors.List {
	var out errors.List
	seen := make(map[string]bool, len(doc.Links()))
	for _, l := range doc.Links() {
		if seen[l.ID] {
			out = append(out, errors.New(errors.ErrCodeDuplicateLinkID, "link declared twice").For(l.ID))
		}
		seen[l.ID] = true
		for _, ref := range []tsg.NodeRef{l.Source, l.Target} {
			if _, ok := doc.ResolveNode(ref); !ok {
				out = append(out, errors.New(errors.ErrCodeUnresolvedLinkEndpoint,
					"link %s references unknown node", l.ID).For(ref.String()))
			}
		}
	}
	for _, a := range doc.LinkAnnotations() {
		if _, ok := doc.Link(a.ID); !ok {
			out = append(out, errors.New(errors.ErrCodeUnresolvedAttributeTarget,
				"attributes target undeclared link").For(a.ID))
		}
	}
	return out
}
