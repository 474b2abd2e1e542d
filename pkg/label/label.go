// Package label places edge labels at the midpoint of their curves.
//
// A label sits at the curve midpoint (t=0.5) at a fixed depth. Vertices are
// then visited in document order: when the label lies within a buffer of a
// vertex's position on all three axes, it is lifted to the vertex's depth
// plus its height plus the buffer. Later vertices are tested against the
// lifted depth, so a lift can cascade.
package label

import (
	"math"

	"github.com/matzehuels/hypergraph/pkg/curve"
	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
)

const (
	// DefaultBuffer is the collision distance between a label and a vertex.
	DefaultBuffer = 0.5
	// BaseZ is the depth of a label that collides with nothing.
	BaseZ = 2.0
)

// Position computes the label position of e from its current endpoints.
func Position(d *hypergraph.Document, e *hypergraph.Edge, buffer float64) geom.Point {
	mid := curve.Midpoint(curve.ForEdge(e, e.Start, e.End))
	p := geom.Point{X: mid.X, Y: mid.Y, Z: BaseZ}
	for _, v := range d.AllVertices() {
		w := d.WorldPosition(v)
		if math.Abs(p.X-w.X) < buffer && math.Abs(p.Y-w.Y) < buffer && math.Abs(p.Z-w.Z) < buffer {
			p.Z = w.Z + v.Size.Height + buffer
		}
	}
	return p
}

// Update recomputes the label of every edge in d and returns the edges
// that carry label text, in document order.
func Update(d *hypergraph.Document, buffer float64) []*hypergraph.Edge {
	var labeled []*hypergraph.Edge
	for _, e := range d.Edges {
		e.Label = Position(d, e, buffer)
		if e.Text != "" {
			labeled = append(labeled, e)
		}
	}
	return labeled
}
