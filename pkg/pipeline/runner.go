package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tsg/pkg/cache"
	"github.com/matzehuels/tsg/pkg/convert"
	"github.com/matzehuels/tsg/pkg/errors"
	tsgio "github.com/matzehuels/tsg/pkg/io"
	"github.com/matzehuels/tsg/pkg/observability"
	"github.com/matzehuels/tsg/pkg/tsg"
	"github.com/matzehuels/tsg/pkg/tsg/validate"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// ArtifactTTL is how long converted artifacts stay cached.
	ArtifactTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		ArtifactTTL: cache.TTLArtifact,
	}
}

// Execute runs the complete parse → validate → convert pipeline with caching.
//
// The artifact is cached under the input hash and the conversion options.
// Best-effort runs that skipped elements are not cached so the skips are
// reported every time.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{InputHash: cache.Hash(input)}
	result.Stats.InputBytes = len(input)
	cacheKey := r.Keyer.ArtifactKey(result.InputHash, opts.ArtifactKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			r.Logger.Debug("artifact cache hit", "format", opts.Format, "bytes", len(data))
			result.Artifact = data
			result.Report = &convert.Report{Format: opts.format}
			result.CacheHit = true
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Stage 1: Parse
	doc, err := r.parse(ctx, input, result)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	// Stage 2: Validate
	if !opts.SkipValidation {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := r.validate(ctx, doc, opts, result); err != nil {
			return result, fmt.Errorf("validate: %w", err)
		}
	}

	// Stage 3: Convert
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.convert(ctx, doc, &buf, opts, result); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	result.Artifact = buf.Bytes()

	// Cache the result
	if len(result.Report.Skipped) == 0 {
		if err := r.Cache.Set(ctx, cacheKey, result.Artifact, r.ArtifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(result.Artifact))
		}
	}

	return result, nil
}

// Check parses and validates input. The returned error is the first
// violation, or an [errors.List] of all of them with Options.All; the
// Result is returned either way once parsing succeeded.
func (r *Runner) Check(ctx context.Context, input []byte, opts Options) (*Result, error) {
	result := &Result{InputHash: cache.Hash(input)}
	result.Stats.InputBytes = len(input)

	doc, err := r.parse(ctx, input, result)
	if err != nil {
		return nil, err
	}
	if _, err := r.validate(ctx, doc, opts, result); err != nil {
		return result, err
	}
	return result, nil
}

// Parse reads a document from TSG text.
func (r *Runner) Parse(ctx context.Context, input []byte) (*tsg.Document, error) {
	return r.parse(ctx, input, &Result{})
}

// Validate checks doc and returns its violations. The error is nil when
// the list is empty.
func (r *Runner) Validate(ctx context.Context, doc *tsg.Document, opts Options) (errors.List, error) {
	return r.validate(ctx, doc, opts, &Result{})
}

// Backfill fills node sequences of the document in input from FASTA and
// returns the updated document serialized as TSG.
func (r *Runner) Backfill(ctx context.Context, input []byte, fasta io.Reader, opts Options) (*Result, error) {
	result := &Result{InputHash: cache.Hash(input)}
	result.Stats.InputBytes = len(input)

	doc, err := r.parse(ctx, input, result)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	start := time.Now()
	rep, err := convert.Backfill(doc, fasta, opts.ConvertOptions())
	if err != nil {
		return nil, fmt.Errorf("backfill: %w", err)
	}
	r.Logger.Info("backfilled sequences",
		"nodes", rep.Records,
		"skipped", len(rep.Skipped),
		"duration", time.Since(start))

	var buf bytes.Buffer
	if err := tsgio.WriteTSG(doc, &buf); err != nil {
		return nil, err
	}
	result.Artifact = buf.Bytes()
	result.Report = rep
	result.Stats.ConvertTime = time.Since(start)
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) parse(ctx context.Context, input []byte, result *Result) (*tsg.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, len(input))

	start := time.Now()
	doc, err := tsgio.ReadTSG(bytes.NewReader(input))
	result.Stats.ParseTime = time.Since(start)
	if err != nil {
		hooks.OnParseComplete(ctx, 0, 0, result.Stats.ParseTime, err)
		return nil, err
	}

	result.Document = doc
	result.Stats.Stats = doc.Stats()
	hooks.OnParseComplete(ctx, result.Stats.Graphs, result.Stats.Nodes, result.Stats.ParseTime, nil)
	r.Logger.Info("parsed document",
		"graphs", result.Stats.Graphs,
		"nodes", result.Stats.Nodes,
		"links", result.Stats.Links,
		"duration", result.Stats.ParseTime)
	return doc, nil
}

func (r *Runner) validate(ctx context.Context, doc *tsg.Document, opts Options, result *Result) (errors.List, error) {
	hooks := observability.Pipeline()
	hooks.OnValidateStart(ctx, len(doc.Graphs()))

	start := time.Now()
	var list errors.List
	if opts.All {
		list = validate.ValidateAll(doc, opts.ValidateOptions())
	} else if err := validate.Validate(doc, opts.ValidateOptions()); err != nil {
		var e *errors.Error
		if !stderrors.As(err, &e) {
			return nil, err
		}
		list = errors.List{e}
	}
	result.Stats.ValidateTime = time.Since(start)
	result.Violations = list

	hooks.OnValidateComplete(ctx, len(list), result.Stats.ValidateTime, list.Err())
	r.Logger.Info("validated document",
		"violations", len(list),
		"duration", result.Stats.ValidateTime)

	if len(list) == 0 {
		return nil, nil
	}
	if !opts.All {
		return list, list[0]
	}
	return list, list
}

func (r *Runner) convert(ctx context.Context, doc *tsg.Document, w io.Writer, opts Options, result *Result) error {
	hooks := observability.Pipeline()
	hooks.OnConvertStart(ctx, opts.Format)

	start := time.Now()
	rep, err := convert.Convert(doc, opts.format, w, opts.ConvertOptions())
	result.Stats.ConvertTime = time.Since(start)
	if err != nil {
		hooks.OnConvertComplete(ctx, opts.Format, 0, 0, result.Stats.ConvertTime, err)
		return err
	}
	result.Report = rep

	hooks.OnConvertComplete(ctx, opts.Format, rep.Records, len(rep.Skipped), result.Stats.ConvertTime, nil)
	r.Logger.Info("converted document",
		"format", rep.Format,
		"records", rep.Records,
		"skipped", len(rep.Skipped),
		"duration", result.Stats.ConvertTime)
	for _, s := range rep.Skipped {
		r.Logger.Warn("skipped element", "code", s.Code, "element", s.Element, "reason", s.Message)
	}
	return nil
}
