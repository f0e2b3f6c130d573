// Package cli implements the familytree command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/familytree/internal/config"
	"github.com/matzehuels/familytree/internal/events"
	"github.com/matzehuels/familytree/internal/store"
	"github.com/matzehuels/familytree/internal/store/memory"
	"github.com/matzehuels/familytree/internal/store/mongo"
	"github.com/matzehuels/familytree/internal/store/postgres"
	"github.com/matzehuels/familytree/pkg/buildinfo"
	"github.com/matzehuels/familytree/pkg/cache"
	"github.com/matzehuels/familytree/pkg/layout/ordering"
	"github.com/matzehuels/familytree/pkg/observability"
	"github.com/matzehuels/familytree/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "familytree"

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

	configPath string // --config
	storeName  string // --store, overrides the configured backend
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Familytree records a family and draws it as a generation chart",
		Long: `Familytree keeps people and their parent, child and spouse relationships
in a local file, PostgreSQL or MongoDB, and lays them out as a chart with one
row per generation, couples side by side and children centred below them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := observability.LogPipelineHooks{Logger: c.Logger}
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&c.storeName, "store", "", "store backend: file, memory, postgres, mongo")

	root.AddCommand(c.personCommand())
	root.AddCommand(c.relateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.seedCommand())
	root.AddCommand(c.resetCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.migrateCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// =============================================================================
// Configuration & Backends
// =============================================================================

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.storeName != "" {
		cfg.Store = c.storeName
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	c.Logger.Debug("config loaded", "store", cfg.Store)
	c.cfg = cfg
	return cfg, nil
}

// openStore connects to the configured backend. Callers must Close it; for
// the file store that is when changes are written.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	switch cfg.Store {
	case config.StoreMemory:
		return memory.New(), nil
	case config.StoreFile:
		c.Logger.Debug("opening file store", "path", cfg.DataFile)
		return memory.Open(cfg.DataFile)
	case config.StorePostgres:
		return postgres.New(ctx, cfg.DatabaseURL)
	case config.StoreMongo:
		return mongo.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// newPublisher returns a NATS publisher when a URL is configured.
func (c *CLI) newPublisher() (events.Publisher, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	if cfg.NATSURL == "" {
		return &events.NoopPublisher{}, nil
	}
	return events.NewNATSPublisher(cfg.NATSURL)
}

// publish sends an event, logging failures: the change is already stored.
func (c *CLI) publish(ctx context.Context, topic string, event any) {
	pub, err := c.newPublisher()
	if err != nil {
		c.Logger.Warn("events disabled", "err", err)
		return
	}
	defer pub.Close()
	if err := pub.Publish(ctx, topic, event); err != nil {
		c.Logger.Warn("failed to publish event", "topic", topic, "err", err)
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner reading from src. The returned cache
// must be closed by the caller.
func (c *CLI) newRunner(ctx context.Context, src pipeline.Source, noCache bool) (*pipeline.Runner, cache.Cache, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, nil, err
	}
	ch, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, nil, err
	}
	keyer := cache.NewScopedKeyer(nil, cfg.Store+":")
	return pipeline.NewRunner(src, ch, keyer, c.Logger), ch, nil
}

func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	switch {
	case noCache:
		return cache.NewNullCache(), nil
	case cfg.RedisURL != "":
		return cache.NewRedisCache(ctx, cfg.RedisURL)
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if cfg, err := c.config(); err == nil && cfg.CacheDir != "" {
		return cfg.CacheDir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/familytree/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// chartOptions returns the pipeline options from the configured layout.
func (c *CLI) chartOptions() (pipeline.Options, error) {
	cfg, err := c.config()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		NodeWidth:  cfg.Layout.NodeWidth,
		NodeHeight: cfg.Layout.NodeHeight,
		RankSep:    cfg.Layout.RankSep,
		NodeSep:    cfg.Layout.NodeSep,
		SpouseGap:  cfg.Layout.SpouseGap,
		Logger:     c.Logger,
	}, nil
}

// addLayoutFlags registers the layout overrides shared by layout and render.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options, orderer *string) {
	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", 0, "person box width (default 180)")
	cmd.Flags().Float64Var(&opts.NodeHeight, "node-height", 0, "person box height (default 60)")
	cmd.Flags().Float64Var(&opts.RankSep, "rank-sep", 0, "vertical gap between generations")
	cmd.Flags().Float64Var(&opts.NodeSep, "node-sep", 0, "horizontal gap between siblings")
	cmd.Flags().Float64Var(&opts.SpouseGap, "spouse-gap", 0, "horizontal gap between spouses")
	cmd.Flags().StringVar(orderer, "ordering", "barycentric", "within-generation ordering: barycentric, identity")
}

// mergeLayoutFlags overlays flags the user set on the configured options.
func mergeLayoutFlags(cmd *cobra.Command, base, flags pipeline.Options, orderer string) (pipeline.Options, error) {
	set := func(name string, dst *float64, v float64) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("node-width", &base.NodeWidth, flags.NodeWidth)
	set("node-height", &base.NodeHeight, flags.NodeHeight)
	set("rank-sep", &base.RankSep, flags.RankSep)
	set("node-sep", &base.NodeSep, flags.NodeSep)
	set("spouse-gap", &base.SpouseGap, flags.SpouseGap)

	o, err := parseOrderer(orderer)
	if err != nil {
		return base, err
	}
	base.Orderer = o
	return base, nil
}

// parseOrderer maps an --ordering value to an orderer; nil selects the
// layout default.
func parseOrderer(name string) (ordering.Orderer, error) {
	switch name {
	case "", "barycentric":
		return nil, nil
	case "identity":
		return ordering.Identity{}, nil
	}
	return nil, fmt.Errorf("invalid ordering %q (must be 'barycentric' or 'identity')", name)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
