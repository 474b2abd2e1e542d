// Package cli implements the hypergraph command-line interface.
//
// # Commands
//
//   - layout: grid-pack and settle a document, writing the settled JSON
//   - render: produce svg, dot, png or json artifacts from a document
//   - drag: replay a drag of one vertex and save the result
//   - edit: interactive terminal editor over a stored document
//   - serve: HTTP host with drag endpoints and a live event stream
//   - docs: list, show, import and delete stored documents
//   - cache, config, prefs, completion: housekeeping
//
// All commands read the TOML config (see internal/config) and support
// --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hypergraph/internal/config"
	"github.com/matzehuels/hypergraph/pkg/cache"
	"github.com/matzehuels/hypergraph/pkg/engine"
	"github.com/matzehuels/hypergraph/pkg/layout"
	"github.com/matzehuels/hypergraph/pkg/pipeline"
	"github.com/matzehuels/hypergraph/pkg/prefs"
	"github.com/matzehuels/hypergraph/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "hypergraph"

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

	// ConfigPath overrides the default config location.
	ConfigPath string

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Factories
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	ch, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(ch, nil, c.Logger)
	runner.TTL = cfg.Cache.TTL.Duration
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.None(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.None(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Cache.RedisAddr})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "addr", cfg.Cache.RedisAddr, "error", err)
			return cache.None(), nil
		}
		return rc, nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.None(), nil
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// newStore opens the configured document store. A non-empty dir selects a
// file store in that directory regardless of the configured backend.
func (c *CLI) newStore(ctx context.Context, dir string) (storage.Store, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	if dir != "" {
		return c.fileStore(dir)
	}
	switch cfg.Storage.Backend {
	case config.BackendMongo:
		ms, err := storage.NewMongoStore(ctx, storage.MongoConfig{
			URI:      cfg.Storage.MongoURI,
			Database: cfg.Storage.MongoDatabase,
		})
		if err != nil {
			return nil, err
		}
		return ms, nil
	case config.BackendBadger:
		bs, err := storage.NewBadgerStore(storage.BadgerConfig{Dir: cfg.Storage.Dir, Logger: c.Logger})
		if err != nil {
			return nil, err
		}
		return bs, nil
	}
	return c.fileStore(cfg.Storage.Dir)
}

func (c *CLI) fileStore(dir string) (storage.Store, error) {
	fs, err := storage.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

func (c *CLI) newPrefs() (*prefs.FileStore, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return prefs.NewFileStore(cfg.Prefs.Dir)
}

// engineOptions builds engine options from the config.
func (c *CLI) engineOptions() (engine.Options, error) {
	cfg, err := c.config()
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		Layout:       layout.Options{PaddingW: cfg.Layout.PaddingW, PaddingH: cfg.Layout.PaddingH},
		CheckBuffer:  cfg.Overlap.CheckBuffer,
		AdjustBuffer: cfg.Overlap.AdjustBuffer,
		LabelBuffer:  cfg.Labels.Buffer,
		Segments:     cfg.Curves.Segments,
		Logger:       c.Logger,
	}, nil
}

// pipelineOptions builds pipeline options from the config. Flags override
// individual fields afterwards.
func (c *CLI) pipelineOptions() (pipeline.Options, error) {
	cfg, err := c.config()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		PaddingW:     cfg.Layout.PaddingW,
		PaddingH:     cfg.Layout.PaddingH,
		CheckBuffer:  cfg.Overlap.CheckBuffer,
		AdjustBuffer: cfg.Overlap.AdjustBuffer,
		LabelBuffer:  cfg.Labels.Buffer,
		Segments:     cfg.Curves.Segments,
		Logger:       c.Logger,
	}, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/hypergraph/).
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

// readDocument reads a document file.
func readDocument(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	return raw, nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
