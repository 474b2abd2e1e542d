// Package config loads the hypergraph TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hypergraph/pkg/curve"
	"github.com/matzehuels/hypergraph/pkg/label"
	"github.com/matzehuels/hypergraph/pkg/layout"
	"github.com/matzehuels/hypergraph/pkg/overlap"
)

const appName = "hypergraph"

// Config holds hypergraph configuration.
type Config struct {
	Layout  LayoutConfig  `toml:"layout"`
	Overlap OverlapConfig `toml:"overlap"`
	Labels  LabelsConfig  `toml:"labels"`
	Curves  CurvesConfig  `toml:"curves"`
	Server  ServerConfig  `toml:"server"`
	Cache   CacheConfig   `toml:"cache"`
	Storage StorageConfig `toml:"storage"`
	Prefs   PrefsConfig   `toml:"prefs"`
}

// LayoutConfig controls grid packing.
type LayoutConfig struct {
	PaddingW float64 `toml:"padding_w"`
	PaddingH float64 `toml:"padding_h"`
}

// OverlapConfig controls the overlap passes.
type OverlapConfig struct {
	CheckBuffer  float64 `toml:"check_buffer"`
	AdjustBuffer float64 `toml:"adjust_buffer"`
}

// LabelsConfig controls label placement.
type LabelsConfig struct {
	Buffer float64 `toml:"buffer"`
}

// CurvesConfig controls edge sampling.
type CurvesConfig struct {
	Segments int `toml:"segments"`
}

// ServerConfig controls the HTTP host.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
	PreviewCacheMB int      `toml:"preview_cache_mb"`
	LogFile        string   `toml:"log_file"`
	MaxLogSize     int      `toml:"max_log_size"` // megabytes
	MaxLogAge      int      `toml:"max_log_age"`  // days
}

// CacheConfig selects the pipeline cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"` // "file", "redis", "none"
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

// StorageConfig selects the document store backend.
type StorageConfig struct {
	Backend       string `toml:"backend"` // "file", "badger", "mongo"
	Dir           string `toml:"dir"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// PrefsConfig locates the preferences file.
type PrefsConfig struct {
	Dir string `toml:"dir"`
}

// Duration is a time.Duration written as a string ("168h") in TOML.
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendBadger = "badger"
	BackendNone   = "none"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Layout:  LayoutConfig{PaddingW: layout.DefaultPaddingW, PaddingH: layout.DefaultPaddingH},
		Overlap: OverlapConfig{CheckBuffer: overlap.CheckBuffer, AdjustBuffer: overlap.AdjustBuffer},
		Labels:  LabelsConfig{Buffer: label.DefaultBuffer},
		Curves:  CurvesConfig{Segments: curve.DefaultSegments},
		Server:  ServerConfig{Addr: ":8443", PreviewCacheMB: 32, MaxLogSize: 100, MaxLogAge: 30},
		Cache:   CacheConfig{Backend: BackendFile, RedisAddr: "localhost:6379", TTL: Duration{7 * 24 * time.Hour}},
		Storage: StorageConfig{Backend: BackendFile, Dir: "models", MongoDatabase: "hypergraph"},
	}
}

// Dir returns the hypergraph config directory
// ($XDG_CONFIG_HOME/hypergraph or ~/.config/hypergraph).
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config at path, or the default path when path is empty.
// A missing file yields the defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks backend names and numeric ranges.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return fmt.Errorf("cache.backend: unknown backend %q", c.Cache.Backend)
	}
	switch c.Storage.Backend {
	case BackendFile, BackendBadger, BackendMongo:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendMongo && c.Storage.MongoURI == "" {
		return fmt.Errorf("storage.mongo_uri is required for the mongo backend")
	}
	if c.Layout.PaddingW < 0 || c.Layout.PaddingH < 0 {
		return fmt.Errorf("layout paddings must not be negative")
	}
	if c.Server.PreviewCacheMB < 0 {
		return fmt.Errorf("server.preview_cache_mb must not be negative")
	}
	if c.Curves.Segments < 0 {
		return fmt.Errorf("curves.segments must not be negative")
	}
	return nil
}
