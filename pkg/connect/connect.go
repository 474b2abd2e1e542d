// Package connect resolves where an edge attaches to its two vertices.
//
// Each vertex exposes four boundary anchors (north, south, east, west).
// The resolver finds the closest anchor pair over all 16 combinations, then
// enforces directional symmetry from the reference vertex: a north anchor
// pairs with the partner's south, east with west, and vice versa. The
// reference is the dragged vertex when it is the edge's first endpoint and
// the second endpoint otherwise.
//
// When anchors cannot be computed the edge falls back to the vertices'
// centers so it always has drawable geometry.
package connect

import (
	"github.com/matzehuels/hypergraph/pkg/curve"
	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
)

// Side selects one endpoint of an edge.
type Side int

// Edge endpoints.
const (
	SideA Side = iota
	SideB
)

// Resolution is the outcome of endpoint resolution.
type Resolution struct {
	A, B       geom.Point
	DirA, DirB geom.Direction
	// Fallback is set when centers were used instead of anchors.
	Fallback bool
}

// Closest returns the anchor pair of a and b with the smallest Euclidean
// distance. Ties keep the first pair found in north, south, east, west
// order.
func Closest(a, b geom.Anchors) (geom.Direction, geom.Direction) {
	bestA, bestB := geom.None, geom.None
	best := 0.0
	for _, da := range geom.Directions {
		pa, _ := a.Get(da)
		for _, db := range geom.Directions {
			pb, _ := b.Get(db)
			dist := pa.Distance(pb)
			if bestA == geom.None || dist < best {
				bestA, bestB, best = da, db, dist
			}
		}
	}
	return bestA, bestB
}

// Enforce resolves anchors for a and b with ref as the reference side.
// The reference keeps its closest anchor and the partner takes the
// opposite one.
func Enforce(a, b geom.Anchors, ref Side) Resolution {
	da, db := Closest(a, b)
	switch ref {
	case SideA:
		if opp := da.Opposite(); opp != geom.None {
			db = opp
		}
	case SideB:
		if opp := db.Opposite(); opp != geom.None {
			da = opp
		}
	}
	pa, okA := a.Get(da)
	pb, okB := b.Get(db)
	if !okA || !okB {
		return Resolution{Fallback: true}
	}
	return Resolution{A: pa, B: pb, DirA: da, DirB: db}
}

// ReferenceSide returns the reference side of e for a drag of moved.
func ReferenceSide(e *hypergraph.Edge, moved string) Side {
	if moved != "" && e.IDs[0] == moved {
		return SideA
	}
	return SideB
}

// ResolveEndpoints computes the attachment points of e in world space.
// moved names the vertex being dragged; it may be empty.
func ResolveEndpoints(d *hypergraph.Document, e *hypergraph.Edge, moved string) Resolution {
	va, okA := d.Vertex(e.IDs[0])
	vb, okB := d.Vertex(e.IDs[1])
	if !okA || !okB {
		// Unknown endpoint: keep whatever geometry the edge had.
		r := Resolution{A: e.Start, B: e.End, Fallback: true}
		if okA {
			r.A = d.WorldPosition(va)
		}
		if okB {
			r.B = d.WorldPosition(vb)
		}
		return r
	}

	aa, ab := d.Anchors(va), d.Anchors(vb)
	if aa.IsFinite() && ab.IsFinite() {
		if r := Enforce(aa, ab, ReferenceSide(e, moved)); !r.Fallback {
			return r
		}
	}
	return Resolution{A: d.WorldPosition(va), B: d.WorldPosition(vb), Fallback: true}
}

// Rebuild resolves the endpoints of e, stores them on the edge and returns
// the edge's curve sampled into segments. Interior control points are kept.
func Rebuild(d *hypergraph.Document, e *hypergraph.Edge, moved string, segments int) (Resolution, []geom.Point) {
	r := ResolveEndpoints(d, e, moved)
	e.Start, e.End = r.A, r.B
	return r, curve.Points(curve.ForEdge(e, r.A, r.B), segments)
}
