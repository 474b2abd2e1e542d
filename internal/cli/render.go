package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hypergraph/pkg/pipeline"
	"github.com/matzehuels/hypergraph/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file (single format) or base path (multiple)
	formats string // comma-separated: svg, dot, png, json
	noCache bool
	refresh bool
	scale   float64
	margin  int
	anchors bool
}

// renderCommand creates the render command for producing artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "render [document.json]",
		Short: "Render a hypergraph document to svg, dot, png or json",
		Long: `Render a hypergraph document.

The document is settled first (see 'layout'), then written in each requested
format:

  svg   flat projection of the scene with shared materials and geometries
  dot   Graphviz source where parents become clusters
  png   the dot view rendered by Graphviz
  json  the settled document`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := render.ParseFormats(ro.formats)
			if err != nil {
				return err
			}
			opts, err := c.pipelineOptions()
			if err != nil {
				return err
			}
			opts.Formats = formats
			opts.Scale = ro.scale
			opts.Margin = ro.margin
			opts.Anchors = ro.anchors
			opts.Refresh = ro.refresh
			return c.runRender(cmd.Context(), args[0], opts, ro)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&ro.refresh, "refresh", false, "ignore cached results but store fresh ones")
	cmd.Flags().Float64Var(&ro.scale, "scale", render.DefaultScale, "svg pixels per world unit")
	cmd.Flags().IntVar(&ro.margin, "margin", render.DefaultMargin, "svg border in pixels")
	cmd.Flags().BoolVar(&ro.anchors, "anchors", false, "draw vertex anchors (svg)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, ro renderOpts) error {
	raw, err := readDocument(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, raw, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	base := ro.output
	if base == "" {
		base = input
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	printSuccess("Render complete")
	for _, f := range opts.Formats {
		path := outputPath(base, ro.output, f, len(opts.Formats))
		if err := writeOutput(path, result.Artifacts[f]); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printArtifact(path, len(result.Artifacts[f]))
	}
	printStats(result.Stats.VertexCount, result.Stats.EdgeCount, len(result.Warnings),
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	printWarnings(result.Warnings)
	return nil
}

// outputPath picks the file for format f. A single format with an explicit
// output is written there verbatim; otherwise the format extension is
// appended to base.
func outputPath(base, output string, f render.Format, count int) string {
	if output != "" && count == 1 {
		return output
	}
	return base + f.Ext()
}
