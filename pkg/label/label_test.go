package label

import (
	"math"
	"testing"

	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
)

func vertexAt(id string, p geom.Point, h float64) *hypergraph.Vertex {
	return &hypergraph.Vertex{ID: id, Type: hypergraph.Rectangle, Position: p, Size: geom.Size{Width: 1, Height: h}}
}

func TestPositionMidpoint(t *testing.T) {
	d := hypergraph.New("t",
		[]*hypergraph.Vertex{vertexAt("a", geom.Pt(0, 0, 0), 1), vertexAt("b", geom.Pt(10, 0, 0), 1)},
		[]*hypergraph.Edge{{IDs: [2]string{"a", "b"}, Type: hypergraph.Line, Start: geom.Pt(0.5, 0, 0), End: geom.Pt(9.5, 0, 0)}})

	got := Position(d, d.Edges[0], DefaultBuffer)
	if want := geom.Pt(5, 0, BaseZ); got != want {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestPositionLiftsAboveVertex(t *testing.T) {
	d := hypergraph.New("t",
		[]*hypergraph.Vertex{
			vertexAt("a", geom.Pt(0, 0, 0), 1),
			vertexAt("b", geom.Pt(10, 0, 0), 1),
			vertexAt("mid1", geom.Pt(5.1, 0.2, 1.8), 2),
			vertexAt("mid2", geom.Pt(4.9, -0.1, 2.2), 3),
			vertexAt("far", geom.Pt(5, 0, 9), 4),
		},
		[]*hypergraph.Edge{{IDs: [2]string{"a", "b"}, Type: hypergraph.Line, Start: geom.Pt(0, 0, 0), End: geom.Pt(10, 0, 0)}})

	got := Position(d, d.Edges[0], DefaultBuffer)
	// mid1 lifts the label to 1.8 + 2 + 0.5; mid2 is then too far below.
	if math.Abs(got.Z-4.3) > 1e-9 || got.X != 5 || got.Y != 0 {
		t.Errorf("Position() = %v, want (5,0,4.3)", got)
	}
}

func TestPositionCascades(t *testing.T) {
	tests := []struct {
		name  string
		order []string
		want  float64
	}{
		// low lifts to 1.8+0.5+0.5=2.8, which then collides with high.
		{"low first", []string{"low", "high"}, 3.0 + 1 + 0.5},
		// high is 1.0 from the base depth, so only low applies.
		{"high first", []string{"high", "low"}, 2.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			byID := map[string]*hypergraph.Vertex{
				"low":  vertexAt("low", geom.Pt(5, 0, 1.8), 0.5),
				"high": vertexAt("high", geom.Pt(5, 0, 3.0), 1),
			}
			vs := []*hypergraph.Vertex{vertexAt("a", geom.Pt(0, 0, 0), 1), vertexAt("b", geom.Pt(10, 0, 0), 1)}
			for _, id := range tt.order {
				vs = append(vs, byID[id])
			}
			d := hypergraph.New("t", vs,
				[]*hypergraph.Edge{{IDs: [2]string{"a", "b"}, Type: hypergraph.Line, End: geom.Pt(10, 0, 0)}})

			if got := Position(d, d.Edges[0], DefaultBuffer); math.Abs(got.Z-tt.want) > 1e-9 {
				t.Errorf("Position().Z = %v, want %v", got.Z, tt.want)
			}
		})
	}
}

func TestUpdateReturnsLabeledEdges(t *testing.T) {
	d := hypergraph.New("t",
		[]*hypergraph.Vertex{vertexAt("a", geom.Pt(0, 0, 0), 1), vertexAt("b", geom.Pt(4, 0, 0), 1), vertexAt("c", geom.Pt(0, 4, 0), 1)},
		[]*hypergraph.Edge{
			{IDs: [2]string{"a", "b"}, Type: hypergraph.Line, Text: "ab", End: geom.Pt(4, 0, 0)},
			{IDs: [2]string{"a", "c"}, Type: hypergraph.Line, End: geom.Pt(0, 4, 0)},
		})

	got := Update(d, DefaultBuffer)
	if len(got) != 1 || got[0].Text != "ab" {
		t.Fatalf("Update() = %v, want only the labeled edge", got)
	}
	if d.Edges[1].Label != geom.Pt(0, 2, BaseZ) {
		t.Errorf("unlabeled edge label = %v, want (0,2,%v)", d.Edges[1].Label, BaseZ)
	}
}
