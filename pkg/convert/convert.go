package convert

import (
	"bytes"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/tsg/pkg/errors"
	"github.com/matzehuels/tsg/pkg/tsg"
)

// Format names a conversion target.
type Format string

const (
	FormatFASTA Format = "fasta"
	FormatBED   Format = "bed"
	FormatGTF   Format = "gtf"
	FormatVCF   Format = "vcf"
	FormatJSON  Format = "json"
	FormatDOT   Format = "dot"
	FormatTSG   Format = "tsg"
)

var formatAliases = map[string]Format{
	"fa":  FormatFASTA,
	"gff": FormatGTF,
}

// Formats returns every supported format in display order.
func Formats() []Format {
	return []Format{FormatFASTA, FormatBED, FormatGTF, FormatVCF, FormatJSON, FormatDOT, FormatTSG}
}

// ParseFormat maps a user-supplied name to a Format. It accepts the aliases
// "fa" and "gff" and is case-insensitive.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeUnsupportedFormat, "unsupported format %q", s)
}

// Options configures a conversion.
type Options struct {
	// BestEffort skips elements that cannot be converted and records them
	// in [Report.Skipped] instead of failing the run.
	BestEffort bool

	// Workers bounds how many graphs are encoded concurrently.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int

	// Source is the GTF source column. Defaults to "tsg".
	Source string

	// LineWidth wraps FASTA sequence lines. Defaults to 60; negative
	// writes each sequence on one line.
	LineWidth int

	// Paths switches FASTA output from one record per node to one record
	// per path (see [PathFASTA]).
	Paths bool

	// Traverse makes path FASTA output use the source-to-sink walks of
	// [tsg.Graph.Traverse] instead of the declared paths. WalkLimit caps
	// the walks per graph; zero means no cap.
	Traverse  bool
	WalkLimit int
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) source() string {
	if o.Source != "" {
		return o.Source
	}
	return "tsg"
}

const unwrapped = 1 << 30

func (o Options) lineWidth() int {
	switch {
	case o.LineWidth == 0:
		return 60
	case o.LineWidth < 0:
		return unwrapped
	}
	return o.LineWidth
}

// Report summarizes a conversion run.
type Report struct {
	Format  Format
	Graphs  int         // graphs encoded
	Records int         // records written
	Skipped errors.List // elements skipped in best-effort mode
}

// Convert encodes doc in the given format and writes it to w.
//
// Graphs are encoded concurrently into separate buffers and written in
// declaration order; cross-graph links are encoded after every graph. By
// default the first UNCONVERTIBLE_PATH or UNCONVERTIBLE_EDGE error aborts
// the run before anything is written. With [Options.BestEffort] the
// offending element is skipped and reported instead.
//
// Loss is format-specific and limited to optional fields:
//   - fasta: nodes without a sequence are omitted
//   - bed: evidence and attributes are dropped
//   - gtf: chains, sets and edges are dropped
//   - vcf: edges whose kind is not a junction kind are omitted
func Convert(doc *tsg.Document, format Format, w io.Writer, opts Options) (*Report, error) {
	enc, err := encoderFor(format, opts)
	if err != nil {
		return nil, err
	}
	rep, err := run(doc, enc, w, opts)
	if err != nil {
		return nil, err
	}
	rep.Format = format
	return rep, nil
}

// encoder turns a document into one output stream. header and links may
// be no-ops.
type encoder interface {
	header(doc *tsg.Document, s *sink) error
	graph(g *tsg.Graph, s *sink) error
	links(doc *tsg.Document, s *sink) error
}

// streamer is implemented by whole-document encoders that need to see every
// graph's output before writing (JSON).
type streamer interface {
	finish(parts []*sink, w io.Writer) error
}

func encoderFor(format Format, opts Options) (encoder, error) {
	switch format {
	case FormatFASTA:
		if opts.Paths || opts.Traverse {
			return &pathFASTAEncoder{width: opts.lineWidth(), traverse: opts.Traverse, limit: opts.WalkLimit}, nil
		}
		return &fastaEncoder{width: opts.lineWidth()}, nil
	case FormatBED:
		return bedEncoder{}, nil
	case FormatGTF:
		return &gtfEncoder{source: opts.source()}, nil
	case FormatVCF:
		return vcfEncoder{}, nil
	case FormatJSON:
		return &jsonEncoder{}, nil
	case FormatDOT:
		return dotEncoder{}, nil
	case FormatTSG:
		return tsgEncoder{}, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupportedFormat, "unsupported format %q", format)
}

// sink collects the output and skipped elements of one unit of work.
type sink struct {
	bytes.Buffer
	bestEffort bool
	records    int
	skipped    errors.List
	items      []any // structured output for streamer encoders
}

// fail reports an unconvertible element. It returns nil when the element
// may be skipped.
func (s *sink) fail(e *errors.Error) error {
	if s.bestEffort {
		s.skipped = append(s.skipped, e)
		return nil
	}
	return e
}

func run(doc *tsg.Document, enc encoder, w io.Writer, opts Options) (*Report, error) {
	graphs := doc.Graphs()
	parts := make([]*sink, len(graphs)+2)
	for i := range parts {
		parts[i] = &sink{bestEffort: opts.BestEffort}
	}
	head, tail := parts[0], parts[len(parts)-1]

	if err := enc.header(doc, head); err != nil {
		return nil, err
	}

	errs := make([]error, len(graphs))
	var eg errgroup.Group
	eg.SetLimit(opts.workers())
	for i, g := range graphs {
		eg.Go(func() error {
			errs[i] = enc.graph(g, parts[i+1])
			return nil
		})
	}
	_ = eg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	if err := enc.links(doc, tail); err != nil {
		return nil, err
	}

	rep := &Report{Graphs: len(graphs)}
	for _, p := range parts {
		rep.Records += p.records
		rep.Skipped = append(rep.Skipped, p.skipped...)
	}

	if st, ok := enc.(streamer); ok {
		if err := st.finish(parts, w); err != nil {
			return nil, err
		}
		return rep, nil
	}
	for _, p := range parts {
		if _, err := p.WriteTo(w); err != nil {
			return nil, fmt.Errorf("write: %w", err)
		}
	}
	return rep, nil
}

// noHeader and noLinks are embedded by encoders without a document-level
// preamble or link output.
type noHeader struct{}

func (noHeader) header(*tsg.Document, *sink) error { return nil }

type noLinks struct{}

func (noLinks) links(*tsg.Document, *sink) error { return nil }
