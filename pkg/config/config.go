// Package config loads user settings for the tsg command from TOML.
//
// Settings live in $XDG_CONFIG_HOME/tsg/config.toml (or
// ~/.config/tsg/config.toml). A missing file yields [Default]; command-line
// flags override whatever the file sets.
//
//	[validate]
//	exhaustive = false
//	workers = 0          # 0 = GOMAXPROCS
//
//	[convert]
//	best_effort = false
//	gtf_source = "tsg"
//	fasta_width = 60
//
//	[cache]
//	enabled = true
//	ttl = "24h"
//	dir = ""             # default: user cache dir
//
// The environment variables TSG_CACHE_DIR and TSG_WORKERS override the
// file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full settings file.
type Config struct {
	Validate Validate `toml:"validate"`
	Convert  Convert  `toml:"convert"`
	Cache    Cache    `toml:"cache"`
}

// Validate holds validation settings.
type Validate struct {
	Exhaustive bool `toml:"exhaustive"`
	Workers    int  `toml:"workers"`
}

// Convert holds conversion settings.
type Convert struct {
	BestEffort bool   `toml:"best_effort"`
	GTFSource  string `toml:"gtf_source"`
	FASTAWidth int    `toml:"fasta_width"`
}

// Cache holds artifact cache settings.
type Cache struct {
	Enabled bool     `toml:"enabled"`
	TTL     Duration `toml:"ttl"`
	Dir     string   `toml:"dir"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Convert: Convert{GTFSource: "tsg", FASTAWidth: 60},
		Cache:   Cache{Enabled: true, TTL: Duration{24 * time.Hour}},
	}
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tsg", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tsg", "config.toml"), nil
}

// DefaultCacheDir returns the cache directory used when Cache.Dir is empty.
func DefaultCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tsg"), nil
}

// Load reads the file at path on top of [Default]. An empty path means
// [DefaultPath]. A missing file is not an error; unknown keys are.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults
	case err != nil:
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if dir := os.Getenv("TSG_CACHE_DIR"); dir != "" {
		c.Cache.Dir = dir
	}
	if v := os.Getenv("TSG_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("TSG_WORKERS: invalid worker count %q", v)
		}
		c.Validate.Workers = n
	}
	return nil
}

// CacheDir resolves the cache directory.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}
