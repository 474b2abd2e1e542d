package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hypergraph/pkg/hypergraph"
	"github.com/matzehuels/hypergraph/pkg/pipeline"
)

// layoutCommand creates the layout command for settling a document.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output   string
		noCache  bool
		paddingW float64
		paddingH float64
	)

	cmd := &cobra.Command{
		Use:   "layout [document.json]",
		Short: "Grid-pack and settle a hypergraph document",
		Long: `Grid-pack and settle a hypergraph document.

Every parent is sized around its children, overlapping top-level vertices are
pushed apart, edge endpoints snap to the closest anchors and labels are placed.
The settled document is written as JSON and can be loaded by any host.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("padding-w") {
				opts.PaddingW = paddingW
			}
			if cmd.Flags().Changed("padding-h") {
				opts.PaddingH = paddingH
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&paddingW, "padding-w", 0, "horizontal padding around children")
	cmd.Flags().Float64Var(&paddingH, "padding-h", 0, "vertical padding around children")

	return cmd
}

// runLayout settles the document and writes the result.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	raw, err := readDocument(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Settling layout...")
	spinner.Start()

	doc, warnings, cacheHit, err := runner.LayoutWithCacheInfo(ctx, raw, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("layout %s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := hypergraph.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := writeOutput(outputPath, data); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printArtifact(outputPath, len(data))
	printStats(doc.Len(), len(doc.Edges), len(warnings), cacheHit)
	printWarnings(warnings)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}
