// Package curve evaluates the parametric curves used to draw edges.
//
// Every curve runs from Start (t=0) to End (t=1). Quadratic and cubic
// Bézier curves take one and two interior control points; Catmull-Rom
// curves interpolate through their points using a uniform parameterization
// with mirrored end tangents.
package curve

import (
	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
)

// DefaultSegments is the number of segments a curve is sampled into.
const DefaultSegments = 50

// Curve is a parametric curve over t ∈ [0, 1].
type Curve interface {
	Point(t float64) geom.Point
}

// Line is a straight segment.
type Line struct{ Start, End geom.Point }

// Point implements Curve.
func (c Line) Point(t float64) geom.Point { return c.Start.Lerp(c.End, t) }

// Quadratic is a quadratic Bézier curve.
type Quadratic struct{ Start, Control, End geom.Point }

// Point implements Curve.
func (c Quadratic) Point(t float64) geom.Point {
	u := 1 - t
	return c.Start.Scale(u * u).
		Add(c.Control.Scale(2 * u * t)).
		Add(c.End.Scale(t * t))
}

// Cubic is a cubic Bézier curve.
type Cubic struct{ Start, Control1, Control2, End geom.Point }

// Point implements Curve.
func (c Cubic) Point(t float64) geom.Point {
	u := 1 - t
	return c.Start.Scale(u * u * u).
		Add(c.Control1.Scale(3 * u * u * t)).
		Add(c.Control2.Scale(3 * u * t * t)).
		Add(c.End.Scale(t * t * t))
}

// CatmullRom is a uniform Catmull-Rom spline through Points.
type CatmullRom struct{ Points []geom.Point }

// Point implements Curve.
func (c CatmullRom) Point(t float64) geom.Point {
	n := len(c.Points)
	switch n {
	case 0:
		return geom.Point{}
	case 1:
		return c.Points[0]
	}
	t = clamp01(t)
	span := t * float64(n-1)
	i := int(span)
	if i >= n-1 {
		i = n - 2
	}
	local := span - float64(i)

	p1, p2 := c.Points[i], c.Points[i+1]
	p0 := p1.Scale(2).Sub(p2) // mirrored ghost point
	if i > 0 {
		p0 = c.Points[i-1]
	}
	p3 := p2.Scale(2).Sub(p1)
	if i+2 < n {
		p3 = c.Points[i+2]
	}
	return catmullRom(p0, p1, p2, p3, local)
}

func catmullRom(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	t2, t3 := t*t, t*t*t
	// 0.5 * (2p1 + (-p0+p2)t + (2p0-5p1+4p2-p3)t² + (-p0+3p1-3p2+p3)t³)
	a := p1.Scale(2)
	b := p2.Sub(p0).Scale(t)
	c := p0.Scale(2).Sub(p1.Scale(5)).Add(p2.Scale(4)).Sub(p3).Scale(t2)
	d := p1.Scale(3).Sub(p0).Sub(p2.Scale(3)).Add(p3).Scale(t3)
	return a.Add(b).Add(c).Add(d).Scale(0.5)
}

// Points samples c into segments equal parameter steps, returning
// segments+1 points from t=0 to t=1. segments < 1 is treated as 1.
func Points(c Curve, segments int) []geom.Point {
	if segments < 1 {
		segments = 1
	}
	out := make([]geom.Point, segments+1)
	for i := range out {
		out[i] = c.Point(float64(i) / float64(segments))
	}
	return out
}

// Midpoint returns the point at t=0.5.
func Midpoint(c Curve) geom.Point { return c.Point(0.5) }

// ForEdge builds the curve of e between start and end. Interior control
// points are taken from the edge unchanged. Edges whose control points do
// not match their type fall back to a straight line.
func ForEdge(e *hypergraph.Edge, start, end geom.Point) Curve {
	cps := e.ControlPoints
	switch e.Type {
	case hypergraph.QuadraticBezierCurve:
		if len(cps) == 1 {
			return Quadratic{Start: start, Control: cps[0], End: end}
		}
	case hypergraph.CubicBezierCurve:
		if len(cps) == 2 {
			return Cubic{Start: start, Control1: cps[0], Control2: cps[1], End: end}
		}
	case hypergraph.CatmullRomCurve:
		return CatmullRom{Points: []geom.Point{start, end}}
	}
	return Line{Start: start, End: end}
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
