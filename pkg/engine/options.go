package engine

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hypergraph/pkg/curve"
	"github.com/matzehuels/hypergraph/pkg/label"
	"github.com/matzehuels/hypergraph/pkg/layout"
	"github.com/matzehuels/hypergraph/pkg/overlap"
)

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	Layout       layout.Options
	CheckBuffer  float64 // coarse overlap pass
	AdjustBuffer float64 // fine overlap pass
	LabelBuffer  float64
	Segments     int // curve sampling
	Logger       *log.Logger
}

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	o.Layout.SetDefaults()
	if o.CheckBuffer == 0 {
		o.CheckBuffer = overlap.CheckBuffer
	}
	if o.AdjustBuffer == 0 {
		o.AdjustBuffer = overlap.AdjustBuffer
	}
	if o.LabelBuffer == 0 {
		o.LabelBuffer = label.DefaultBuffer
	}
	if o.Segments == 0 {
		o.Segments = curve.DefaultSegments
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}
