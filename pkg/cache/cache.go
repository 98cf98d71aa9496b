// Package cache provides a small key/value cache for pipeline artifacts.
//
// The pipeline stores each converted artifact under a key derived from the
// input bytes and the conversion options; an unchanged input is then served
// from disk.
//
// Two implementations are provided:
//   - [FileCache]: zstd-compressed entries in a directory (CLI default)
//   - [NullCache]: stores nothing (caching disabled)
//
// Keys are built by a [Keyer]. [ScopedKeyer] prefixes every key, which the
// CLI uses to keep entries of different tool versions apart.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface used by the pipeline.
type Cache interface {
	// Get returns the value stored under key. The bool reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default time-to-live values per entry type.
const (
	TTLArtifact = 24 * time.Hour
	TTLRender   = 7 * 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey keys a converted document.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string

	// RenderKey keys a rendered graph image.
	RenderKey(inputHash string, opts RenderKeyOpts) string
}

// ArtifactKeyOpts are the options that decide what an artifact holds.
// SkipValidation is part of the key: an unvalidated artifact must never
// answer a run that validates.
type ArtifactKeyOpts struct {
	Format         string `json:"format"`
	SkipValidation bool   `json:"skip_validation,omitempty"`
	BestEffort     bool   `json:"best_effort,omitempty"`
	Paths          bool   `json:"paths,omitempty"`
	Traverse       bool   `json:"traverse,omitempty"`
	WalkLimit      int    `json:"walk_limit,omitempty"`
	Source         string `json:"source,omitempty"`
	LineWidth      int    `json:"line_width,omitempty"`
}

// RenderKeyOpts are the options that change a rendered image.
type RenderKeyOpts struct {
	Graph    string `json:"graph"`
	Format   string `json:"format"`
	Path     string `json:"path,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

// DefaultKeyer hashes the key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// RenderKey returns "render:<sha256>".
func (DefaultKeyer) RenderKey(inputHash string, opts RenderKeyOpts) string {
	return hashKey("render", inputHash, opts)
}
