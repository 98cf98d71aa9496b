// Package tsg is the in-memory model of a Transcript Segment Graph document.
//
// # Overview
//
// A TSG document holds one or more gene graphs. Each [Graph] owns nodes
// (genomic segments), directed edges (splice junctions and structural
// joins), chains and paths (alternating node/edge walks), node sets, and an
// attribute overlay. Document-scoped [Link] records join nodes of two
// different graphs, for example a gene fusion.
//
// # Identity
//
// Element ids are local to their graph: two graphs may both declare a node
// "n1". Cross-graph references use the composite [NodeRef] (graph:node),
// which is resolved through [Document.ResolveNode].
//
// # Attributes
//
// Attributes are typed key/value pairs written as key:type:value, where type
// is Z (string), i (int64) or f (float64). [Value] is a tagged union;
// consumers switch on [Value.Type]. Overlays are append-only and keep
// repeated keys in order; [Last] gives the last-wins view.
//
//	a, err := tsg.ParseAttribute("ptf:f:8.2")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(a) // ptf:f:8.2
//
// # Construction
//
// The model enforces id uniqueness only. Reference checks belong to the
// parser (pkg/io, fail-fast while reading) and to pkg/tsg/validate (after
// the document is complete). This keeps programmatically built documents
// representable even when they are not yet valid.
package tsg
