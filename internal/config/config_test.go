package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Layout.PaddingW != 0.2 || cfg.Layout.PaddingH != 0.6 {
		t.Errorf("Layout = %+v, want 0.2/0.6", cfg.Layout)
	}
	if cfg.Overlap.CheckBuffer != 1.0 || cfg.Overlap.AdjustBuffer != 0.05 {
		t.Errorf("Overlap = %+v", cfg.Overlap)
	}
	if cfg.Cache.TTL.Duration != 7*24*time.Hour {
		t.Errorf("Cache.TTL = %v", cfg.Cache.TTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[layout]
padding_w = 0.5

[server]
addr = ":9000"
log_file = "/tmp/hypergraph.log"
allowed_origins = ["http://localhost:3000"]

[cache]
backend = "redis"
ttl = "1h"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Layout.PaddingW != 0.5 {
		t.Errorf("PaddingW = %v, want 0.5", cfg.Layout.PaddingW)
	}
	if cfg.Layout.PaddingH != 0.6 {
		t.Errorf("PaddingH = %v, want default 0.6", cfg.Layout.PaddingH)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.LogFile != "/tmp/hypergraph.log" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.PreviewCacheMB != 32 {
		t.Errorf("Server origins/preview = %v / %d, want one origin and default 32", cfg.Server.AllowedOrigins, cfg.Server.PreviewCacheMB)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"syntax", "[layout\n", "parse config"},
		{"cache backend", "[cache]\nbackend = \"memcached\"\n", "cache.backend"},
		{"mongo without uri", "[storage]\nbackend = \"mongo\"\n", "mongo_uri"},
		{"preview cache", "[server]\npreview_cache_mb = -1\n", "preview_cache_mb"},
		{"bad duration", "[cache]\nttl = \"soon\"\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Curves.Segments = 10
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Curves.Segments != 10 || got.Cache.TTL != cfg.Cache.TTL {
		t.Errorf("Load(Save()) = %+v", got)
	}
}

func TestDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultPath(); got != filepath.Join("/xdg", "hypergraph", "config.toml") {
		t.Errorf("DefaultPath() = %s", got)
	}
}
