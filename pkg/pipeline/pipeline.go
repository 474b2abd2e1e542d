// Package pipeline runs the load → layout → render flow shared by the CLI
// and the server.
//
// # Stages
//
//  1. Load: parse and validate a document, collecting warnings for skipped
//     entities
//  2. Layout: grid-pack every parent and settle the scene (overlap passes,
//     edge endpoints, labels) exactly as the engine does on load
//  3. Render: produce artifacts (json, svg, dot, png) from the settled
//     document
//
// Layout and render results are cached by content hash, so re-rendering an
// unchanged document with unchanged options skips both stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, raw, pipeline.Options{
//	    Formats: []render.Format{render.FormatSVG, render.FormatJSON},
//	})
//	svg := result.Artifacts[render.FormatSVG]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hypergraph/pkg/cache"
	"github.com/matzehuels/hypergraph/pkg/engine"
	"github.com/matzehuels/hypergraph/pkg/errors"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
	"github.com/matzehuels/hypergraph/pkg/layout"
	"github.com/matzehuels/hypergraph/pkg/render"
)

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. Zero values select the engine and
// renderer defaults.
type Options struct {
	// Layout options
	PaddingW     float64 `json:"padding_w,omitempty"`
	PaddingH     float64 `json:"padding_h,omitempty"`
	CheckBuffer  float64 `json:"check_buffer,omitempty"`
	AdjustBuffer float64 `json:"adjust_buffer,omitempty"`
	LabelBuffer  float64 `json:"label_buffer,omitempty"`
	Segments     int     `json:"segments,omitempty"`

	// Render options
	Formats []render.Format `json:"formats,omitempty"`
	Scale   float64         `json:"scale,omitempty"`
	Margin  int             `json:"margin,omitempty"` // svg border in pixels; 0 selects the default
	Anchors bool            `json:"anchors,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// SetDefaults fills unset options from the engine and renderer defaults.
func (o *Options) SetDefaults() {
	eo := o.EngineOptions()
	eo.SetDefaults()
	o.PaddingW, o.PaddingH = eo.Layout.PaddingW, eo.Layout.PaddingH
	o.CheckBuffer, o.AdjustBuffer = eo.CheckBuffer, eo.AdjustBuffer
	o.LabelBuffer, o.Segments = eo.LabelBuffer, eo.Segments
	if len(o.Formats) == 0 {
		o.Formats = []render.Format{render.FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = render.DefaultScale
	}
	if o.Margin == 0 {
		o.Margin = render.DefaultMargin
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option ranges. Call after SetDefaults.
func (o *Options) Validate() error {
	if o.PaddingW < 0 || o.PaddingH < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "paddings must not be negative")
	}
	if o.CheckBuffer < 0 || o.AdjustBuffer < 0 || o.LabelBuffer < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "buffers must not be negative")
	}
	if o.Segments < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "segments must be positive")
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive")
	}
	if o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "margin must not be negative")
	}
	for _, f := range o.Formats {
		if !f.Valid() {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q", f)
		}
	}
	return nil
}

// EngineOptions returns the engine configuration for o.
func (o *Options) EngineOptions() engine.Options {
	return engine.Options{
		Layout:       layout.Options{PaddingW: o.PaddingW, PaddingH: o.PaddingH},
		CheckBuffer:  o.CheckBuffer,
		AdjustBuffer: o.AdjustBuffer,
		LabelBuffer:  o.LabelBuffer,
		Segments:     o.Segments,
		Logger:       o.Logger,
	}
}

// SVGOptions returns the SVG renderer options for o.
func (o *Options) SVGOptions(title string) []render.SVGOption {
	opts := []render.SVGOption{render.WithScale(o.Scale), render.WithMargin(o.Margin), render.WithSegments(o.Segments)}
	if o.Anchors {
		opts = append(opts, render.WithAnchors())
	}
	if title != "" {
		opts = append(opts, render.WithTitle(title))
	}
	return opts
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		PaddingW:     o.PaddingW,
		PaddingH:     o.PaddingH,
		CheckBuffer:  o.CheckBuffer,
		AdjustBuffer: o.AdjustBuffer,
		LabelBuffer:  o.LabelBuffer,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(f render.Format) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: string(f)}
	if f == render.FormatSVG {
		k.Scale, k.Margin, k.Anchors, k.Segments = o.Scale, o.Margin, o.Anchors, o.Segments
	}
	return k
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the settled document.
	Document *hypergraph.Document

	// DocHash is the content hash of the input bytes.
	DocHash string

	// Warnings describe entities skipped while loading.
	Warnings []string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[render.Format][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the settled document came from cache
	RenderHit bool // Whether all artifacts came from cache
}
