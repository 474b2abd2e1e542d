// Package overlap separates overlapping top-level vertices.
//
// A pass visits every unordered pair of top-level vertices in document
// order. A pair overlaps when its center distance is below the first
// vertex's size plus a buffer on both axes; the two vertices are then pushed
// apart along the line joining their centers by equal and opposite amounts.
//
// One pass is a single relaxation step, not a solver. Callers run it
// repeatedly (once per drag tick, with a coarse and a fine buffer) so
// separation converges over successive frames.
package overlap

import (
	"math"

	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
)

// Buffers used by the two passes run on every drag tick.
const (
	CheckBuffer  = 1.0
	AdjustBuffer = 0.05
)

// Correction records one pair separation. A moved by Delta and B by -Delta.
type Correction struct {
	A, B  string
	Delta geom.Point
}

// Overlapping reports whether a and b overlap under the resolver's rule,
// using a's size for both thresholds.
func Overlapping(a, b *hypergraph.Vertex, buffer float64) bool {
	dx := math.Abs(a.Position.X - b.Position.X)
	dy := math.Abs(a.Position.Y - b.Position.Y)
	return dx < a.Size.Width+buffer && dy < a.Size.Height+buffer
}

// Resolve runs one pass over vertices and returns the corrections applied.
// Nested and synthetic vertices are ignored. Positions are updated in
// place as the pass proceeds, so later pairs see earlier corrections.
func Resolve(vertices []*hypergraph.Vertex, buffer float64) []Correction {
	top := make([]*hypergraph.Vertex, 0, len(vertices))
	for _, v := range vertices {
		if v.IsTopLevel() && !v.Synthetic {
			top = append(top, v)
		}
	}

	var out []Correction
	for i := 0; i < len(top); i++ {
		for j := i + 1; j < len(top); j++ {
			if d, ok := separate(top[i], top[j], buffer); ok {
				out = append(out, Correction{A: top[i].ID, B: top[j].ID, Delta: d})
			}
		}
	}
	return out
}

// Residual returns the summed XY intersection area of every pair of
// top-level vertices, ignoring buffers. Zero means no boxes intersect.
func Residual(vertices []*hypergraph.Vertex) float64 {
	var boxes []geom.Box
	for _, v := range vertices {
		if v.IsTopLevel() && !v.Synthetic {
			boxes = append(boxes, geom.Box{Center: v.Position, Size: v.Size})
		}
	}
	area := 0.0
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			area += boxes[i].OverlapArea(boxes[j])
		}
	}
	return area
}

// separate pushes a and b apart if they overlap and returns the delta
// applied to a.
func separate(a, b *hypergraph.Vertex, buffer float64) (geom.Point, bool) {
	if !Overlapping(a, b, buffer) {
		return geom.Point{}, false
	}
	diff := a.Position.Sub(b.Position)
	adx, ady := math.Abs(diff.X), math.Abs(diff.Y)
	minX := a.Size.Width + buffer
	minY := a.Size.Height + buffer

	dir, ok := diff.UnitXY()
	if !ok {
		// Coincident centers: push along +x.
		dir = geom.Point{X: 1}
	}
	delta := geom.Point{
		X: dir.X * 0.5 * (minX - adx),
		Y: dir.Y * 0.5 * (minY - ady),
	}
	a.Position = a.Position.Add(delta)
	b.Position = b.Position.Sub(delta)
	return delta, true
}
