package hypergraph

import (
	"github.com/matzehuels/hypergraph/pkg/geom"
)

// =============================================================================
// Constants
// =============================================================================

// TextureID is the reserved id of the synthetic texture-row entry that grid
// layout inserts into a textured parent. Authored vertices may not use it.
const TextureID = "texture"

// VertexType determines which shape parameters a vertex requires.
type VertexType string

// Vertex types.
const (
	Rectangle VertexType = "rectangle"
	Circle    VertexType = "circle"
	Ring      VertexType = "ring"
)

// Valid reports whether t is a known vertex type.
func (t VertexType) Valid() bool {
	switch t {
	case Rectangle, Circle, Ring:
		return true
	}
	return false
}

// EdgeType determines the curve used to draw an edge.
type EdgeType string

// Edge types.
const (
	Line                 EdgeType = "Line"
	QuadraticBezierCurve EdgeType = "QuadraticBezierCurve"
	CubicBezierCurve     EdgeType = "CubicBezierCurve"
	CatmullRomCurve      EdgeType = "CatmullRomCurve"
)

// Valid reports whether t is a known edge type.
func (t EdgeType) Valid() bool {
	return t.ControlPointCount() >= 0
}

// ControlPointCount returns the number of interior control points required
// by t, or -1 for unknown types.
func (t EdgeType) ControlPointCount() int {
	switch t {
	case Line, CatmullRomCurve:
		return 0
	case QuadraticBezierCurve:
		return 1
	case CubicBezierCurve:
		return 2
	}
	return -1
}

// =============================================================================
// Rendering
// =============================================================================

// Rendering defaults applied by hosts when a field is absent.
const (
	DefaultVertexColor     = "#e7d770"
	DefaultTextColor       = "#050505"
	DefaultEdgeColor       = "#070707"
	DefaultOpacity         = 1.0
	DefaultReflectivity    = 0.5
	DefaultRefractionRatio = 0.98
)

// Attribute is one text row drawn inside a vertex.
type Attribute struct {
	Name      string `json:"name" bson:"name"`
	TextColor string `json:"textColor,omitempty" bson:"textColor,omitempty"`
}

// VertexRendering holds the authored appearance of a vertex. Pointer fields
// distinguish "absent" from a zero value so documents round-trip exactly.
type VertexRendering struct {
	Color           string   `json:"color,omitempty" bson:"color,omitempty"`
	Texture         string   `json:"texture,omitempty" bson:"texture,omitempty"`
	Transparent     *bool    `json:"transparent,omitempty" bson:"transparent,omitempty"`
	Opacity         *float64 `json:"opacity,omitempty" bson:"opacity,omitempty"`
	TextColor       string   `json:"textColor,omitempty" bson:"textColor,omitempty"`
	EnvMap          string   `json:"envMap,omitempty" bson:"envMap,omitempty"`
	Reflectivity    *float64 `json:"reflectivity,omitempty" bson:"reflectivity,omitempty"`
	RefractionRatio *float64 `json:"refractionRatio,omitempty" bson:"refractionRatio,omitempty"`
	Wireframe       *bool    `json:"wireframe,omitempty" bson:"wireframe,omitempty"`
}

// Material is a fully resolved vertex appearance with defaults applied.
type Material struct {
	Color           string  `json:"color"`
	Texture         string  `json:"texture,omitempty"`
	Transparent     bool    `json:"transparent"`
	Opacity         float64 `json:"opacity"`
	TextColor       string  `json:"textColor"`
	EnvMap          string  `json:"envMap,omitempty"`
	Reflectivity    float64 `json:"reflectivity"`
	RefractionRatio float64 `json:"refractionRatio"`
	Wireframe       bool    `json:"wireframe"`
}

// Resolve returns r with rendering defaults filled in.
func (r VertexRendering) Resolve() Material {
	m := Material{
		Color:           r.Color,
		Texture:         r.Texture,
		Transparent:     true,
		Opacity:         DefaultOpacity,
		TextColor:       r.TextColor,
		EnvMap:          r.EnvMap,
		Reflectivity:    DefaultReflectivity,
		RefractionRatio: DefaultRefractionRatio,
	}
	if m.Color == "" {
		m.Color = DefaultVertexColor
	}
	if m.TextColor == "" {
		m.TextColor = DefaultTextColor
	}
	if r.Transparent != nil {
		m.Transparent = *r.Transparent
	}
	if r.Opacity != nil {
		m.Opacity = *r.Opacity
	}
	if r.Reflectivity != nil {
		m.Reflectivity = *r.Reflectivity
	}
	if r.RefractionRatio != nil {
		m.RefractionRatio = *r.RefractionRatio
	}
	if r.Wireframe != nil {
		m.Wireframe = *r.Wireframe
	}
	return m
}

// EdgeRendering holds the authored appearance of an edge.
type EdgeRendering struct {
	Color     string `json:"color,omitempty" bson:"color,omitempty"`
	TextColor string `json:"textColor,omitempty" bson:"textColor,omitempty"`
}

// Resolve returns the edge line and label colors with defaults applied.
func (r EdgeRendering) Resolve() (color, textColor string) {
	color, textColor = r.Color, r.TextColor
	if color == "" {
		color = DefaultEdgeColor
	}
	if textColor == "" {
		textColor = DefaultTextColor
	}
	return color, textColor
}

// =============================================================================
// Vertex
// =============================================================================

// Vertex is a hypergraph node. Nested vertices live in Children; their
// Position is relative to the parent's center.
type Vertex struct {
	ID         string
	Name       string
	Type       VertexType
	Position   geom.Point
	Size       geom.Size
	Attributes []Attribute
	Children   []*Vertex
	Rendering  VertexRendering

	// Shape parameters for circle and ring vertices.
	Radius        float64
	Segments      int
	InnerRadius   float64
	OuterRadius   float64
	ThetaSegments int

	// NumChildren is set by grid layout and counts the texture slot.
	NumChildren int
	// ParentID is empty for top-level vertices.
	ParentID string
	// Synthetic marks the texture-row entry inserted by grid layout.
	Synthetic bool
}

// IsTopLevel reports whether v has no parent.
func (v *Vertex) IsTopLevel() bool { return v.ParentID == "" }

// HasChildren reports whether v has at least one authored child.
func (v *Vertex) HasChildren() bool {
	for _, c := range v.Children {
		if !c.Synthetic {
			return true
		}
	}
	return false
}

// RealChildren returns the authored children of v, skipping the synthetic
// texture row.
func (v *Vertex) RealChildren() []*Vertex {
	out := make([]*Vertex, 0, len(v.Children))
	for _, c := range v.Children {
		if !c.Synthetic {
			out = append(out, c)
		}
	}
	return out
}

// TextureChild returns the synthetic texture-row child, if present.
func (v *Vertex) TextureChild() *Vertex {
	for _, c := range v.Children {
		if c.Synthetic {
			return c
		}
	}
	return nil
}

// shapeSize derives a bounding size from the shape parameters of circle
// and ring vertices.
func (v *Vertex) shapeSize() geom.Size {
	switch v.Type {
	case Circle:
		return geom.Size{Width: 2 * v.Radius, Height: 2 * v.Radius}
	case Ring:
		return geom.Size{Width: 2 * v.OuterRadius, Height: 2 * v.OuterRadius}
	}
	return geom.Size{}
}

// =============================================================================
// Edge
// =============================================================================

// Edge joins two vertices. Start, End and Label are live state maintained
// by the connection engine and are not persisted.
type Edge struct {
	// ID identifies the edge to hosts. Assigned at load as "e<index>".
	ID            string
	IDs           [2]string
	Type          EdgeType
	ControlPoints []geom.Point
	Text          string
	Rendering     EdgeRendering

	Start geom.Point
	End   geom.Point
	Label geom.Point
}

// LabelID returns the host-facing id of the edge's label.
func (e *Edge) LabelID() string { return e.ID + ":label" }

// Touches reports whether the edge has id as one of its endpoints.
func (e *Edge) Touches(id string) bool { return e.IDs[0] == id || e.IDs[1] == id }
