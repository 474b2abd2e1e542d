package curve

import (
	"math"
	"testing"

	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
)

func nearPt(a, b geom.Point) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestEndpoints(t *testing.T) {
	s, e := geom.Pt(0, 0, 0), geom.Pt(4, 2, 0)
	tests := []struct {
		name string
		c    Curve
	}{
		{"line", Line{Start: s, End: e}},
		{"quadratic", Quadratic{Start: s, Control: geom.Pt(2, 5, 0), End: e}},
		{"cubic", Cubic{Start: s, Control1: geom.Pt(1, 3, 0), Control2: geom.Pt(3, -3, 0), End: e}},
		{"catmull-rom", CatmullRom{Points: []geom.Point{s, geom.Pt(2, 3, 0), e}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Point(0); !nearPt(got, s) {
				t.Errorf("Point(0) = %v, want %v", got, s)
			}
			if got := tt.c.Point(1); !nearPt(got, e) {
				t.Errorf("Point(1) = %v, want %v", got, e)
			}
		})
	}
}

func TestMidpoint(t *testing.T) {
	tests := []struct {
		name string
		c    Curve
		want geom.Point
	}{
		{"line", Line{Start: geom.Pt(0, 0, 0), End: geom.Pt(4, 2, 0)}, geom.Pt(2, 1, 0)},
		{"quadratic", Quadratic{Start: geom.Pt(0, 0, 0), Control: geom.Pt(2, 4, 0), End: geom.Pt(4, 0, 0)}, geom.Pt(2, 2, 0)},
		{"cubic", Cubic{Start: geom.Pt(0, 0, 0), Control1: geom.Pt(0, 4, 0), Control2: geom.Pt(4, 4, 0), End: geom.Pt(4, 0, 0)}, geom.Pt(2, 3, 0)},
		{"two-point catmull-rom is a line", CatmullRom{Points: []geom.Point{geom.Pt(0, 0, 0), geom.Pt(4, 2, 0)}}, geom.Pt(2, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Midpoint(tt.c); !nearPt(got, tt.want) {
				t.Errorf("Midpoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCatmullRomPassesThroughPoints(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0, 0), geom.Pt(1, 2, 0), geom.Pt(3, 2, 0), geom.Pt(4, 0, 0)}
	c := CatmullRom{Points: pts}
	for i, p := range pts {
		tt := float64(i) / float64(len(pts)-1)
		if got := c.Point(tt); !nearPt(got, p) {
			t.Errorf("Point(%v) = %v, want %v", tt, got, p)
		}
	}
}

func TestPoints(t *testing.T) {
	c := Line{Start: geom.Pt(0, 0, 0), End: geom.Pt(10, 0, 0)}
	pts := Points(c, DefaultSegments)
	if len(pts) != DefaultSegments+1 {
		t.Fatalf("len(Points()) = %d, want %d", len(pts), DefaultSegments+1)
	}
	if !nearPt(pts[25], geom.Pt(5, 0, 0)) {
		t.Errorf("Points()[25] = %v, want (5,0,0)", pts[25])
	}
	if got := len(Points(c, 0)); got != 2 {
		t.Errorf("len(Points(c, 0)) = %d, want 2", got)
	}
}

func TestForEdge(t *testing.T) {
	s, e := geom.Pt(0, 0, 0), geom.Pt(2, 0, 0)
	cp := geom.Pt(1, 1, 0)
	tests := []struct {
		name string
		edge hypergraph.Edge
		want any
	}{
		{"line", hypergraph.Edge{Type: hypergraph.Line}, Line{}},
		{"quadratic", hypergraph.Edge{Type: hypergraph.QuadraticBezierCurve, ControlPoints: []geom.Point{cp}}, Quadratic{}},
		{"cubic", hypergraph.Edge{Type: hypergraph.CubicBezierCurve, ControlPoints: []geom.Point{cp, cp}}, Cubic{}},
		{"catmull-rom", hypergraph.Edge{Type: hypergraph.CatmullRomCurve}, CatmullRom{}},
		{"quadratic without control point", hypergraph.Edge{Type: hypergraph.QuadraticBezierCurve}, Line{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ForEdge(&tt.edge, s, e)
			switch tt.want.(type) {
			case Line:
				_, ok := c.(Line)
				if !ok {
					t.Errorf("ForEdge() = %T, want Line", c)
				}
			case Quadratic:
				q, ok := c.(Quadratic)
				if !ok || q.Control != cp {
					t.Errorf("ForEdge() = %#v, want Quadratic keeping control point", c)
				}
			case Cubic:
				if _, ok := c.(Cubic); !ok {
					t.Errorf("ForEdge() = %T, want Cubic", c)
				}
			case CatmullRom:
				if _, ok := c.(CatmullRom); !ok {
					t.Errorf("ForEdge() = %T, want CatmullRom", c)
				}
			}
		})
	}
}
