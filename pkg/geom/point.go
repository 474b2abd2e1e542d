package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a position in 3D space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
}

// Pt is shorthand for Point{X: x, Y: y, Z: z}.
func Pt(x, y, z float64) Point { return Point{X: x, Y: y, Z: z} }

// FromVec converts a gonum vector to a Point.
func FromVec(v r3.Vec) Point { return Point{X: v.X, Y: v.Y, Z: v.Z} }

// Vec converts p to a gonum vector.
func (p Point) Vec() r3.Vec { return r3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return FromVec(r3.Add(p.Vec(), q.Vec())) }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return FromVec(r3.Sub(p.Vec(), q.Vec())) }

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point { return FromVec(r3.Scale(f, p.Vec())) }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 { return r3.Norm(r3.Sub(p.Vec(), q.Vec())) }

// Lerp returns the point at parameter t on the segment p→q.
func (p Point) Lerp(q Point, t float64) Point {
	return p.Add(q.Sub(p).Scale(t))
}

// XY returns p projected onto the layout plane (Z = 0).
func (p Point) XY() Point { return Point{X: p.X, Y: p.Y} }

// IsFinite reports whether every coordinate is a finite number.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

// UnitXY returns the unit vector of p in the XY plane. The second result is
// false when p has no XY extent, in which case the zero Point is returned.
func (p Point) UnitXY() (Point, bool) {
	v := r3.Vec{X: p.X, Y: p.Y}
	n := r3.Norm(v)
	if n == 0 || !isFinite(n) {
		return Point{}, false
	}
	return FromVec(r3.Scale(1/n, v)), true
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
