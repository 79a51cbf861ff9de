package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netvalue/pkg/analysis"
	"github.com/matzehuels/netvalue/pkg/buildinfo"
	"github.com/matzehuels/netvalue/pkg/cache"
	"github.com/matzehuels/netvalue/pkg/config"
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

	configPath string
	noCache    bool
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "netvalue",
		Short: "netvalue measures what nodes are worth to a network",
		Long: `netvalue computes the Metcalfe value of undirected networks and the
Shapley value of each node, using a depth/branch labelling of the graph.`,
		Version:           buildinfo.Get().Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/netvalue/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the result cache")

	root.AddCommand(c.labelCommand())
	root.AddCommand(c.metcalfeCommand())
	root.AddCommand(c.shapleyCommand())
	root.AddCommand(c.exactCommand())
	root.AddCommand(c.rankCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := cfg.Level()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates an analysis runner backed by the configured cache.
// A cache that cannot be opened degrades to no caching.
func (c *CLI) newRunner(ctx context.Context) *analysis.Runner {
	runner := analysis.NewRunner(c.openCache(ctx), nil, c.Logger)
	runner.TTL = c.cfg.Cache.TTL
	return runner
}

func (c *CLI) openCache(ctx context.Context) cache.Cache {
	if c.noCache {
		return cache.NewNullCache()
	}
	cc, err := c.cfg.OpenCache(ctx)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", c.cfg.Cache.Backend, "error", err)
		return cache.NewNullCache()
	}
	return cc
}

// options returns analysis options seeded from the config file.
func (c *CLI) options(uniform bool) analysis.Options {
	opts := c.cfg.AnalysisOptions()
	opts.Uniform = uniform
	opts.Logger = c.Logger
	return opts
}
