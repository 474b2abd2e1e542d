package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hypergraph/pkg/cache"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
	"github.com/matzehuels/hypergraph/pkg/observability"
	"github.com/matzehuels/hypergraph/pkg/render"
)

var errEmptyEntry = errors.New("empty cache entry")

// Runner executes the pipeline against a cache. It holds no per-run
// state and may be shared between goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL applies to every cache write. Zero means [cache.DefaultTTL].
	TTL time.Duration
}

// NewRunner creates a runner. A nil keyer selects [cache.DefaultKeyer];
// a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.None()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, raw []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{DocHash: cache.Hash(raw)}

	layoutStart := time.Now()
	d, warnings, layoutHit, err := r.LayoutWithCacheInfo(ctx, raw, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Document = d
	result.Warnings = warnings
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.VertexCount = d.Len()
	result.Stats.EdgeCount = len(d.Edges)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("settled document",
		"name", d.Name,
		"vertices", d.Len(),
		"edges", len(d.Edges),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo settles raw with caching and reports whether the
// result came from cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, raw []byte, opts Options) (*hypergraph.Document, []string, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	cacheKey := r.Keyer.LayoutKey(cache.Hash(raw), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if d, warnings, err := decodeLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return d, warnings, true, nil
			}
			r.Logger.Debug("discarding unreadable layout entry", "key", cacheKey)
		} else if err != nil {
			r.Logger.Warn("layout cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	d, warnings, err := Layout(ctx, raw, opts)
	if err != nil {
		return nil, nil, false, err
	}

	if data, err := encodeLayout(d, warnings); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl()); err != nil {
			r.Logger.Warn("layout cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return d, warnings, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, raw []byte, opts Options) (*hypergraph.Document, []string, error) {
	d, warnings, _, err := r.LayoutWithCacheInfo(ctx, raw, opts)
	return d, warnings, err
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// every artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *hypergraph.Document, opts Options) (map[render.Format][]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	// Documents that cannot be encoded (non-finite coordinates) are
	// rendered without caching.
	state, err := json.Marshal(d)
	if err != nil {
		r.Logger.Debug("rendering uncached", "reason", err)
		rendered, err := Render(ctx, d, opts)
		return rendered, false, err
	}
	stateHash := cache.Hash(state)

	if !opts.Refresh {
		artifacts := make(map[render.Format][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(stateHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, d, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(stateHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d *hypergraph.Document, opts Options) (map[render.Format][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, d, opts)
	return artifacts, err
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.DefaultTTL
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
