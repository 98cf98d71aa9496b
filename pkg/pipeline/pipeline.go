// Package pipeline provides the parse → validate → convert pipeline for TSG
// documents.
//
// This package is the single entry point used by the CLI. It owns stage
// ordering, artifact caching and observability hooks, so that every command
// reports and caches the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read TSG text into a [tsg.Document] (fail-fast, line-located errors)
//  2. Validate: Check references and walk shape, first violation or all of them
//  3. Convert: Encode the document in a target format (GTF, VCF, FASTA, ...)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{Format: "gtf"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
//
// Run individual stages:
//
//	doc, err := runner.Parse(ctx, input)
//	violations, err := runner.Validate(ctx, doc, opts)
//	rendered, err := runner.Render(ctx, input, pipeline.RenderOptions{Format: "svg"})
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/tsg/pkg/cache"
	"github.com/matzehuels/tsg/pkg/convert"
	"github.com/matzehuels/tsg/pkg/errors"
	"github.com/matzehuels/tsg/pkg/tsg"
	"github.com/matzehuels/tsg/pkg/tsg/validate"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and config
// =============================================================================

const (
	// DefaultFormat is the conversion target when none is given.
	DefaultFormat = convert.FormatTSG

	// DefaultRenderFormat is the image format for per-graph rendering.
	DefaultRenderFormat = RenderDOT

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultWalkLimit caps the source-to-sink walks enumerated per graph.
	DefaultWalkLimit = 10000
)

// Render format constants for per-graph output.
const (
	RenderDOT = "dot"
	RenderSVG = "svg"
	RenderPNG = "png"
	RenderPDF = "pdf"
)

// ValidRenderFormats is the set of supported per-graph render formats.
var ValidRenderFormats = map[string]bool{
	RenderDOT: true,
	RenderSVG: true,
	RenderPNG: true,
	RenderPDF: true,
}

// ValidateRenderFormat checks that a render format is valid.
func ValidateRenderFormat(format string) error {
	if !ValidRenderFormats[format] {
		return errors.New(errors.ErrCodeUnsupportedFormat,
			"invalid render format: %q (must be one of: dot, svg, png, pdf)", format)
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a parse → validate → convert run.
type Options struct {
	// Conversion target; any name accepted by [convert.ParseFormat].
	Format string

	// Validation
	All            bool // report every violation instead of the first
	SkipValidation bool
	Workers        int

	// Conversion
	BestEffort bool
	Paths      bool
	Traverse   bool // FASTA from source-to-sink walks
	WalkLimit  int
	Source     string
	LineWidth  int

	// Caching
	Refresh bool // skip cache reads, still write

	format    convert.Format
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the parsed document. It is nil when the artifact came
	// from the cache.
	Document *tsg.Document

	// InputHash is the SHA-256 of the input bytes.
	InputHash string

	// Artifact is the converted output.
	Artifact []byte

	// Report summarizes the conversion.
	Report *convert.Report

	// Violations holds validation failures (one, or all with Options.All).
	Violations errors.List

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit is set when Artifact was served from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	tsg.Stats
	InputBytes   int
	ParseTime    time.Duration
	ValidateTime time.Duration
	ConvertTime  time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the format and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = string(DefaultFormat)
	}
	f, err := convert.ParseFormat(o.Format)
	if err != nil {
		return err
	}
	o.format = f
	o.Format = string(f)
	o.validated = true
	return nil
}

// ValidateOptions returns validator options.
func (o *Options) ValidateOptions() validate.Options {
	return validate.Options{Workers: o.Workers}
}

// ConvertOptions returns converter options.
func (o *Options) ConvertOptions() convert.Options {
	return convert.Options{
		BestEffort: o.BestEffort,
		Workers:    o.Workers,
		Source:     o.Source,
		LineWidth:  o.LineWidth,
		Paths:      o.Paths,
		Traverse:   o.Traverse,
		WalkLimit:  o.WalkLimit,
	}
}

// ArtifactKeyOpts returns cache key options for the converted artifact.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:         o.Format,
		SkipValidation: o.SkipValidation,
		BestEffort:     o.BestEffort,
		Paths:          o.Paths,
		Traverse:       o.Traverse,
		WalkLimit:      o.WalkLimit,
		Source:         o.Source,
		LineWidth:      o.LineWidth,
	}
}

// RenderOptions configures per-graph rendering.
type RenderOptions struct {
	Format   string  // dot, svg, png or pdf
	Graph    string  // render only this graph; empty renders all
	Path     string  // highlight this path in every graph that has it
	Detailed bool    // locations and attributes in node labels
	Scale    float64 // PNG scale factor
	Workers  int
	Refresh  bool
}

// SetDefaults applies defaults and checks the format.
func (o *RenderOptions) SetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultRenderFormat
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	return ValidateRenderFormat(o.Format)
}

// RenderKeyOpts returns cache key options for one rendered graph.
func (o *RenderOptions) RenderKeyOpts(graph string) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Graph:    graph,
		Format:   fmt.Sprintf("%s@%g", o.Format, o.Scale),
		Path:     o.Path,
		Detailed: o.Detailed,
	}
}
