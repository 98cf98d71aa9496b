// Package cli implements the tsg command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tsg/pkg/buildinfo"
	"github.com/matzehuels/tsg/pkg/cache"
	"github.com/matzehuels/tsg/pkg/config"
	"github.com/matzehuels/tsg/pkg/observability"
	"github.com/matzehuels/tsg/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tsg"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives artifacts written to "-". Status lines go to stderr.
	Out io.Writer

	// Config is loaded before every command runs.
	Config config.Config

	configPath string
	noCache    bool
	verbose    bool
	workers    int
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level. At debug level the pipeline and
// cache hooks log every stage.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.SetPipelineHooks(observability.NewLogPipelineHooks(c.Logger))
		observability.SetCacheHooks(observability.NewLogCacheHooks(c.Logger))
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "tsg parses, validates and converts transcript segment graphs",
		Long:          `tsg reads TSG documents (splice graphs of one or more genes with paths, chains and cross-graph links), checks them for consistency, enumerates their walks and converts them to FASTA, BED, GTF, VCF, JSON or DOT.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tsg/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")
	flags.IntVar(&c.workers, "workers", 0, "graphs processed concurrently (0 = number of CPUs)")

	// Register all subcommands
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.traverseCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.backfillCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.workers > 0 {
		cfg.Validate.Workers = c.workers
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	cache, err := c.newCache()
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cache, newKeyer(), c.Logger)
	if ttl := c.Config.Cache.TTL.Duration; ttl > 0 {
		runner.ArtifactTTL = ttl
	}
	return runner, nil
}

func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache || !c.Config.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return fc, nil
}

// newKeyer scopes cache keys by version so upgrades never serve stale artifacts.
func newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions seeds pipeline options from the loaded config.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		All:        c.Config.Validate.Exhaustive,
		Workers:    c.Config.Validate.Workers,
		BestEffort: c.Config.Convert.BestEffort,
		Source:     c.Config.Convert.GTFSource,
		LineWidth:  c.Config.Convert.FASTAWidth,
	}
}
