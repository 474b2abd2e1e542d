package connect

import (
	"math"
	"testing"

	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
)

func rect(id string, x, y float64) *hypergraph.Vertex {
	return &hypergraph.Vertex{ID: id, Type: hypergraph.Rectangle, Position: geom.Pt(x, y, 0), Size: geom.Size{Width: 2, Height: 2}}
}

func pair(ax, ay, bx, by float64) *hypergraph.Document {
	return hypergraph.New("t", []*hypergraph.Vertex{rect("a", ax, ay), rect("b", bx, by)},
		[]*hypergraph.Edge{{IDs: [2]string{"a", "b"}, Type: hypergraph.Line}})
}

func TestResolveEndpointsScenario(t *testing.T) {
	d := pair(0, 0, 0, 5)
	r := ResolveEndpoints(d, d.Edges[0], "a")
	if r.DirA != geom.North || r.DirB != geom.South {
		t.Errorf("dirs = %v/%v, want north/south", r.DirA, r.DirB)
	}
	if r.A != geom.Pt(0, 1, 0) || r.B != geom.Pt(0, 4, 0) {
		t.Errorf("points = %v/%v, want (0,1,0)/(0,4,0)", r.A, r.B)
	}
	if r.Fallback {
		t.Error("Fallback = true")
	}
}

func TestClosestTieBreak(t *testing.T) {
	// Coincident boxes: every same-named pair has distance 0; north wins.
	a := geom.AnchorsOf(geom.Box{Size: geom.Size{Width: 2, Height: 2}})
	da, db := Closest(a, a)
	if da != geom.North || db != geom.North {
		t.Errorf("Closest() = %v/%v, want north/north", da, db)
	}
}

func TestEnforcePairing(t *testing.T) {
	// Sweep partner positions around the dragged vertex and check that the
	// partner always takes the anchor opposite the reference's.
	for angle := 0.0; angle < 2*math.Pi; angle += math.Pi / 16 {
		for _, dist := range []float64{0.5, 3, 10} {
			bx, by := dist*math.Cos(angle), dist*math.Sin(angle)
			d := pair(0, 0, bx, by)

			r := ResolveEndpoints(d, d.Edges[0], "a")
			if r.DirB != r.DirA.Opposite() {
				t.Errorf("moved a, b at (%.2f,%.2f): %v/%v not paired", bx, by, r.DirA, r.DirB)
			}
			if r.DirA == geom.North && r.DirB != geom.South {
				t.Errorf("north reference paired with %v", r.DirB)
			}

			r = ResolveEndpoints(d, d.Edges[0], "b")
			if r.DirA != r.DirB.Opposite() {
				t.Errorf("moved b, b at (%.2f,%.2f): %v/%v not paired", bx, by, r.DirA, r.DirB)
			}
		}
	}
}

func TestReferenceSide(t *testing.T) {
	e := &hypergraph.Edge{IDs: [2]string{"a", "b"}}
	tests := []struct {
		moved string
		want  Side
	}{
		{"a", SideA},
		{"b", SideB},
		{"c", SideB},
		{"", SideB},
	}
	for _, tt := range tests {
		if got := ReferenceSide(e, tt.moved); got != tt.want {
			t.Errorf("ReferenceSide(%q) = %v, want %v", tt.moved, got, tt.want)
		}
	}
}

func TestResolveEndpointsFallback(t *testing.T) {
	d := pair(0, 0, 0, 5)
	b, _ := d.Vertex("b")
	b.Size.Width = math.NaN()

	r := ResolveEndpoints(d, d.Edges[0], "a")
	if !r.Fallback {
		t.Fatal("Fallback = false, want true")
	}
	if r.A != geom.Pt(0, 0, 0) || r.B != geom.Pt(0, 5, 0) {
		t.Errorf("fallback points = %v/%v, want centers", r.A, r.B)
	}
}

func TestResolveEndpointsMissingVertex(t *testing.T) {
	d := pair(0, 0, 0, 5)
	e := &hypergraph.Edge{IDs: [2]string{"a", "ghost"}, End: geom.Pt(7, 7, 0)}
	r := ResolveEndpoints(d, e, "a")
	if !r.Fallback || r.A != geom.Pt(0, 0, 0) || r.B != geom.Pt(7, 7, 0) {
		t.Errorf("ResolveEndpoints() = %+v", r)
	}
}

func TestResolveEndpointsNested(t *testing.T) {
	child := rect("c", 1, 0)
	parent := &hypergraph.Vertex{ID: "p", Type: hypergraph.Rectangle, Position: geom.Pt(10, 0, 0),
		Size: geom.Size{Width: 6, Height: 6}, Children: []*hypergraph.Vertex{child}}
	d := hypergraph.New("t", []*hypergraph.Vertex{parent, rect("b", 11, 10)},
		[]*hypergraph.Edge{{IDs: [2]string{"c", "b"}, Type: hypergraph.Line}})

	r := ResolveEndpoints(d, d.Edges[0], "c")
	if r.A != geom.Pt(11, 1, 0) || r.DirA != geom.North {
		t.Errorf("nested anchor = %v %v, want (11,1,0) north", r.A, r.DirA)
	}
}

func TestRebuildKeepsControlPoints(t *testing.T) {
	d := pair(0, 0, 0, 5)
	cp := geom.Pt(3, 2.5, 0)
	e := d.Edges[0]
	e.Type = hypergraph.QuadraticBezierCurve
	e.ControlPoints = []geom.Point{cp}

	_, pts := Rebuild(d, e, "a", 10)
	if len(pts) != 11 {
		t.Fatalf("len(points) = %d, want 11", len(pts))
	}
	if pts[0] != e.Start || pts[10] != e.End {
		t.Errorf("polyline ends %v..%v, want %v..%v", pts[0], pts[10], e.Start, e.End)
	}
	if e.ControlPoints[0] != cp {
		t.Errorf("control point moved to %v", e.ControlPoints[0])
	}
}
