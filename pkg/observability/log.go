package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks logs every pipeline event at debug level.
type LogPipelineHooks struct {
	logger *log.Logger
}

// NewLogPipelineHooks returns pipeline hooks that write to logger.
func NewLogPipelineHooks(logger *log.Logger) *LogPipelineHooks {
	return &LogPipelineHooks{logger: logger.WithPrefix("pipeline")}
}

func (h *LogPipelineHooks) OnParseStart(_ context.Context, size int) {
	h.logger.Debug("parse start", "bytes", size)
}

func (h *LogPipelineHooks) OnParseComplete(_ context.Context, graphs, nodes int, d time.Duration, err error) {
	h.done("parse", err, "graphs", graphs, "nodes", nodes, "duration", d)
}

func (h *LogPipelineHooks) OnValidateStart(_ context.Context, graphs int) {
	h.logger.Debug("validate start", "graphs", graphs)
}

func (h *LogPipelineHooks) OnValidateComplete(_ context.Context, violations int, d time.Duration, err error) {
	h.done("validate", err, "violations", violations, "duration", d)
}

func (h *LogPipelineHooks) OnConvertStart(_ context.Context, format string) {
	h.logger.Debug("convert start", "format", format)
}

func (h *LogPipelineHooks) OnConvertComplete(_ context.Context, format string, records, skipped int, d time.Duration, err error) {
	h.done("convert", err, "format", format, "records", records, "skipped", skipped, "duration", d)
}

func (h *LogPipelineHooks) done(stage string, err error, kv ...any) {
	if err != nil {
		h.logger.Debug(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage+" complete", kv...)
}

// LogCacheHooks logs cache traffic at debug level.
type LogCacheHooks struct {
	logger *log.Logger
}

// NewLogCacheHooks returns cache hooks that write to logger.
func NewLogCacheHooks(logger *log.Logger) *LogCacheHooks {
	return &LogCacheHooks{logger: logger.WithPrefix("cache")}
}

func (h *LogCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("hit", "type", keyType)
}

func (h *LogCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("miss", "type", keyType)
}

func (h *LogCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("set", "type", keyType, "bytes", size)
}

var (
	_ PipelineHooks = (*LogPipelineHooks)(nil)
	_ CacheHooks    = (*LogCacheHooks)(nil)
)
