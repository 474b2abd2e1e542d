package hypergraph

import (
	"strings"
	"testing"

	"github.com/matzehuels/hypergraph/pkg/errors"
)

const sampleDoc = `{
  "hypergraph": {
    "name": "demo",
    "vertices": [
      {"id": "a", "name": "A", "type": "rectangle",
       "position": {"x": 0, "y": 0, "z": 0},
       "size": {"width": 2, "height": 2},
       "attributes": [{"name": "id: int", "textColor": "#101010"}],
       "rendering": {"color": "#ff0000", "transparent": false, "opacity": 0.5}},
      {"id": "b", "name": "B", "type": "circle", "radius": 1, "segments": 32,
       "position": {"x": 0, "y": 5, "z": 0}},
      {"id": "p", "name": "P", "type": "rectangle",
       "position": {"x": 10, "y": 0, "z": 0},
       "rendering": {"texture": "img/bg.png"},
       "vertices": [
         {"id": "c1", "type": "rectangle", "size": {"width": 1, "height": 1}},
         {"id": "c2", "type": "ring", "innerRadius": 0.2, "outerRadius": 0.5, "thetaSegments": 16}
       ]}
    ],
    "edges": [
      {"ids": ["a", "b"], "type": "Line", "text": "uses", "rendering": {"color": "#000000", "textColor": "#111111"}},
      {"ids": ["a", "c1"], "type": "QuadraticBezierCurve", "controlPoint": {"x": 1, "y": 1, "z": 0}},
      {"ids": ["b", "c2"], "type": "CubicBezierCurve", "controlPoints": [{"x": 1, "y": 1, "z": 0}, {"x": 2, "y": 2, "z": 0}]}
    ]
  }
}`

func TestParse(t *testing.T) {
	d, warnings, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("Parse() warnings = %v, want none", warnings)
	}
	if d.Name != "demo" {
		t.Errorf("Name = %q, want %q", d.Name, "demo")
	}
	if len(d.Vertices) != 3 {
		t.Errorf("top-level vertices = %d, want 3", len(d.Vertices))
	}
	if d.Len() != 5 {
		t.Errorf("Len() = %d, want 5", d.Len())
	}
	if len(d.Edges) != 3 {
		t.Fatalf("edges = %d, want 3", len(d.Edges))
	}

	c1, ok := d.Vertex("c1")
	if !ok {
		t.Fatal("Vertex(c1) not found")
	}
	if c1.ParentID != "p" {
		t.Errorf("c1.ParentID = %q, want %q", c1.ParentID, "p")
	}

	b, _ := d.Vertex("b")
	if b.Size.Width != 2 || b.Size.Height != 2 {
		t.Errorf("circle size = %v, want 2x2 from radius", b.Size)
	}

	q := d.Edges[1]
	if q.Type != QuadraticBezierCurve || len(q.ControlPoints) != 1 {
		t.Errorf("legacy controlPoint not normalized: %+v", q)
	}
	if d.Edges[0].ID != "e0" || d.Edges[0].LabelID() != "e0:label" {
		t.Errorf("edge ids = %q/%q", d.Edges[0].ID, d.Edges[0].LabelID())
	}
}

func TestParseRejectsBadShape(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"missing hypergraph", `{"vertices": []}`},
		{"vertices not array", `{"hypergraph": {"vertices": {}}}`},
		{"missing vertices", `{"hypergraph": {"name": "x"}}`},
		{"edge not object", `{"hypergraph": {"vertices": [], "edges": [1]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.raw))
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("Parse() error = %v, want %s", err, errors.ErrCodeInvalidDocument)
			}
		})
	}
}

func TestParseSkipsBadEntities(t *testing.T) {
	raw := `{"hypergraph": {"name": "partial", "vertices": [
	  {"id": "ok", "type": "rectangle", "size": {"width": 1, "height": 1}},
	  {"id": "tri", "type": "triangle", "size": {"width": 1, "height": 1}},
	  {"id": "nosize", "type": "rectangle"},
	  {"id": "round", "type": "circle", "radius": 1},
	  {"id": "ok", "type": "rectangle", "size": {"width": 1, "height": 1}},
	  {"id": "texture", "type": "rectangle", "size": {"width": 1, "height": 1}},
	  {"id": "bad", "type": "rectangle", "size": {"width": "wide", "height": 1}},
	  {"id": "ok2", "type": "rectangle", "size": {"width": 1, "height": 1}}
	], "edges": [
	  {"ids": ["ok", "ok2"], "type": "Line"},
	  {"ids": ["ok", "tri"], "type": "Line"},
	  {"ids": ["ok", "ok"], "type": "Line"},
	  {"ids": ["ok"], "type": "Line"},
	  {"ids": ["ok", "ok2"], "type": "Spline"},
	  {"ids": ["ok", "ok2"], "type": "CubicBezierCurve", "controlPoints": [{"x": 0, "y": 0, "z": 0}]}
	]}}`

	d, warnings, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := len(d.Vertices); got != 2 {
		t.Errorf("vertices = %d, want 2", got)
	}
	if got := len(d.Edges); got != 1 {
		t.Errorf("edges = %d, want 1", got)
	}
	if d.Edges[0].ID != "e0" {
		t.Errorf("edge id = %q, want e0", d.Edges[0].ID)
	}

	var vertexWarnings, edgeWarnings int
	for _, w := range warnings {
		switch w.Entity {
		case "vertex":
			vertexWarnings++
			if !errors.Is(w.Err, errors.ErrCodeInvalidVertex) {
				t.Errorf("vertex warning code = %v", errors.CodeOf(w.Err))
			}
		case "edge":
			edgeWarnings++
			if !errors.Is(w.Err, errors.ErrCodeInvalidEdge) {
				t.Errorf("edge warning code = %v", errors.CodeOf(w.Err))
			}
		}
		if !strings.HasPrefix(w.String(), "skipped ") {
			t.Errorf("String() = %q", w.String())
		}
	}
	if vertexWarnings != 6 {
		t.Errorf("vertex warnings = %d, want 6", vertexWarnings)
	}
	if edgeWarnings != 5 {
		t.Errorf("edge warnings = %d, want 5", edgeWarnings)
	}
}

func TestParseSkipsSubtreeOfBadVertex(t *testing.T) {
	raw := `{"hypergraph": {"vertices": [
	  {"id": "p", "type": "hexagon", "vertices": [
	    {"id": "c", "type": "rectangle", "size": {"width": 1, "height": 1}}
	  ]},
	  {"id": "q", "type": "rectangle", "size": {"width": 1, "height": 1}}
	], "edges": [{"ids": ["c", "q"], "type": "Line"}]}}`

	d, warnings, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := d.Vertex("c"); ok {
		t.Error("child of skipped vertex was loaded")
	}
	if len(d.Edges) != 0 {
		t.Errorf("edges = %d, want 0", len(d.Edges))
	}
	if len(warnings) != 2 {
		t.Errorf("warnings = %v, want 2", warnings)
	}
}

func TestParseChildrenAlias(t *testing.T) {
	raw := `{"hypergraph": {"vertices": [
	  {"id": "p", "type": "rectangle", "children": [
	    {"id": "c", "type": "rectangle", "size": {"width": 1, "height": 1}}
	  ]}
	]}}`
	d, _, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	c, ok := d.Vertex("c")
	if !ok || c.ParentID != "p" {
		t.Errorf("children alias not loaded: %v %v", c, ok)
	}
}
