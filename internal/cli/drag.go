package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hypergraph/pkg/engine"
	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/render"
)

const defaultDragSteps = 10

// dragCommand creates the drag command, which replays a drag from the
// command line.
func (c *CLI) dragCommand() *cobra.Command {
	var (
		vertex  string
		to      string
		steps   int
		output  string
		inPlace bool
	)

	cmd := &cobra.Command{
		Use:   "drag [document.json]",
		Short: "Drag a vertex to a new position and save the result",
		Long: `Drag a vertex to a new position and save the result.

The vertex is moved in --steps evenly spaced ticks, exactly as an interactive
host would move it: every tick reconnects edges and pushes overlapping
vertices aside, and the final release settles the whole document.

The target is given in the vertex's parent frame as X,Y.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parsePoint(to)
			if err != nil {
				return err
			}
			out := output
			if inPlace {
				out = args[0]
			} else if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".dragged.json"
			}
			return c.runDrag(cmd.Context(), args[0], vertex, target, steps, out)
		},
	}

	cmd.Flags().StringVar(&vertex, "vertex", "", "id of the vertex to drag (required)")
	cmd.Flags().StringVar(&to, "to", "", "target position as X,Y (required)")
	cmd.Flags().IntVar(&steps, "steps", defaultDragSteps, "number of drag ticks")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.dragged.json)")
	cmd.Flags().BoolVar(&inPlace, "in-place", false, "overwrite the input document")
	_ = cmd.MarkFlagRequired("vertex")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (c *CLI) runDrag(ctx context.Context, input, vertex string, to geom.Point, steps int, output string) error {
	raw, err := readDocument(input)
	if err != nil {
		return err
	}
	opts, err := c.engineOptions()
	if err != nil {
		return err
	}

	scene := render.NewScene()
	eng := engine.New(scene, opts)
	warnings, err := eng.Load(raw)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	loaded := scene.Updates()
	if err := eng.DragTo(vertex, to, steps); err != nil {
		return fmt.Errorf("drag %s: %w", vertex, err)
	}

	data, err := eng.Serialize()
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := writeOutput(output, data); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Dragged %s", StyleHighlight.Render(vertex))
	printArtifact(output, len(data))
	if v, ok := scene.Vertex(vertex); ok {
		printDetail("position %.2f, %.2f", v.Position.X, v.Position.Y)
	}
	printDetail("%d ticks, %d visual updates", steps, scene.Updates()-loaded)
	for _, w := range warnings {
		printWarning("%s", w.String())
	}
	return nil
}

// parsePoint parses "X,Y" into a point on the z=0 plane.
func parsePoint(s string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point{}, fmt.Errorf("invalid point %q: want X,Y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return geom.Point{X: x, Y: y}, nil
}
