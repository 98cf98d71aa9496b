// Package pkg provides the core libraries for reading, checking and converting
// transcript segment graph (TSG) documents.
//
// # Overview
//
// A TSG document holds one splice graph per gene: nodes are exon groups with
// genomic coordinates and read evidence, edges are junctions, and paths and
// chains walk the graph. Links connect nodes across graphs (fusions). The pkg
// directory is organized as:
//
//  1. [tsg] - Document model (graphs, nodes, edges, walks, attributes) and walk enumeration
//  2. [tsg/validate] - Reference and walk-shape checks
//  3. [io] - TSG text parsing and serialization
//  4. [convert] - FASTA, BED, GTF, VCF, JSON and DOT encoders, FASTA backfill
//  5. [render/nodelink] - Per-graph node-link diagrams via Graphviz
//  6. [pipeline] - Orchestration (parse → validate → convert) with caching
//  7. [cache], [config], [observability], [errors] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	TSG text
//	   ↓
//	[io] package (parse into a tsg.Document)
//	   ↓
//	[tsg/validate] package (first violation or all of them)
//	   ↓
//	[convert] package (one encoder per format, graphs in parallel)
//	   ↓
//	GTF/VCF/FASTA/BED/JSON/DOT output
//
// # Quick Start
//
//	import (
//	    "os"
//
//	    "github.com/matzehuels/tsg/pkg/convert"
//	    tsgio "github.com/matzehuels/tsg/pkg/io"
//	    "github.com/matzehuels/tsg/pkg/tsg/validate"
//	)
//
//	doc, err := tsgio.ImportTSG("sample.tsg")
//	if err != nil {
//	    return err
//	}
//	if err := validate.Validate(doc, validate.Options{}); err != nil {
//	    return err
//	}
//	_, err = convert.Convert(doc, convert.FormatGTF, os.Stdout, convert.Options{})
//
// [tsg]: github.com/matzehuels/tsg/pkg/tsg
// [tsg/validate]: github.com/matzehuels/tsg/pkg/tsg/validate
// [io]: github.com/matzehuels/tsg/pkg/io
// [convert]: github.com/matzehuels/tsg/pkg/convert
// [render/nodelink]: github.com/matzehuels/tsg/pkg/render/nodelink
// [pipeline]: github.com/matzehuels/tsg/pkg/pipeline
// [cache]: github.com/matzehuels/tsg/pkg/cache
// [config]: github.com/matzehuels/tsg/pkg/config
// [observability]: github.com/matzehuels/tsg/pkg/observability
// [errors]: github.com/matzehuels/tsg/pkg/errors
package pkg
