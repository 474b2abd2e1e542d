package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/hypergraph/pkg/hypergraph"
	"github.com/matzehuels/hypergraph/pkg/observability"
	"github.com/matzehuels/hypergraph/pkg/render"
)

// Render generates artifacts for a settled document in the requested
// formats. PNG is the Graphviz rendering of the DOT view.
func Render(ctx context.Context, d *hypergraph.Document, opts Options) (map[render.Format][]byte, error) {
	opts.SetDefaults()
	start := time.Now()

	artifacts := make(map[render.Format][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		var data []byte
		data, err = renderFormat(ctx, d, format, opts)
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			break
		}
		artifacts[format] = data
	}

	names := make([]string, len(opts.Formats))
	for i, f := range opts.Formats {
		names[i] = string(f)
	}
	observability.Pipeline().OnRenderComplete(ctx, names, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, d *hypergraph.Document, format render.Format, opts Options) ([]byte, error) {
	switch format {
	case render.FormatJSON:
		return hypergraph.Marshal(d)
	case render.FormatSVG:
		return render.RenderSVG(d, opts.SVGOptions(d.Name)...), nil
	case render.FormatDOT:
		return []byte(render.ToDOT(d)), nil
	case render.FormatPNG:
		return render.RenderGraphviz(ctx, render.ToDOT(d), render.FormatPNG)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}
