// Package io reads and writes Transcript Segment Graph (TSG) text.
//
// # Overview
//
// TSG is a line-oriented, tab-delimited format. Each record starts with a
// one-letter tag:
//
//	H  <key> <value...>                         header
//	G  <graph-id> [key:type:value ...]          opens a gene graph
//	N  <id> <chrom>:<strand>:<s-e[,s-e...]> [<reads>|.] [<sequence>]
//	E  <id> <source> <target> [<chrom1>,<chrom2>,<pos1>,<pos2>,<kind>]
//	C  <id> <node> <edge> <node> ...            unoriented chain
//	P  <id> <node>± <edge>± <node>± ...         oriented path
//	U  <id> <node> [<node> ...]                 node set
//	A  <kind> <id> key:type:value ...           attribute overlay
//	L  <id> <graph>:<node> <graph>:<node> <kind> cross-graph link
//
// Blank lines and lines starting with '#' are ignored. Fields may be
// separated by any run of tabs and spaces.
//
// # Import
//
// Use [ImportTSG] to read from a file path, or [ReadTSG] to read from any
// io.Reader. [Scanner] exposes the record stream directly for tools that
// want to process records without building a document.
//
//	doc, err := io.ImportTSG("sample.tsg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Parsing is fail-fast. Errors are [errors.Error] values with the line
// number and raw text of the offending record.
//
// # Export
//
// Use [ExportTSG] to write a document to a file, or [WriteTSG] to write to
// any io.Writer. Output is canonical: tab-separated, comments dropped,
// records grouped per graph in declaration order. Attribute values are
// re-rendered from their typed form, so "len:i:010" is written "len:i:10".
//
// # Compression
//
// This package reads plain text only. Gzip-framed input is decompressed by
// the caller before it reaches [ReadTSG].
//
// [errors.Error]: github.com/matzehuels/tsg/pkg/errors.Error
package io
