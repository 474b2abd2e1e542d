package hypergraph

import (
	"encoding/json"

	"github.com/matzehuels/hypergraph/pkg/geom"
)

// =============================================================================
// Persisted Format
// =============================================================================

// File is the persisted form of a document. It is the JSON shape read by
// [Parse] and written by [Marshal], and the BSON shape kept by document
// stores.
type File struct {
	Hypergraph FileDocument `json:"hypergraph" bson:"hypergraph"`
}

// FileDocument is the body of a persisted document.
type FileDocument struct {
	Name     string       `json:"name" bson:"name"`
	Vertices []FileVertex `json:"vertices" bson:"vertices"`
	Edges    []FileEdge   `json:"edges" bson:"edges"`
}

// FileVertex is the persisted form of a vertex. Children are nested under
// Vertices.
type FileVertex struct {
	ID            string           `json:"id" bson:"id"`
	Name          string           `json:"name,omitempty" bson:"name,omitempty"`
	Type          string           `json:"type" bson:"type"`
	Attributes    []Attribute      `json:"attributes,omitempty" bson:"attributes,omitempty"`
	Position      *geom.Point      `json:"position,omitempty" bson:"position,omitempty"`
	Size          *geom.Size       `json:"size,omitempty" bson:"size,omitempty"`
	Radius        *float64         `json:"radius,omitempty" bson:"radius,omitempty"`
	Segments      *int             `json:"segments,omitempty" bson:"segments,omitempty"`
	InnerRadius   *float64         `json:"innerRadius,omitempty" bson:"innerRadius,omitempty"`
	OuterRadius   *float64         `json:"outerRadius,omitempty" bson:"outerRadius,omitempty"`
	ThetaSegments *int             `json:"thetaSegments,omitempty" bson:"thetaSegments,omitempty"`
	Rendering     *VertexRendering `json:"rendering,omitempty" bson:"rendering,omitempty"`
	Vertices      []FileVertex     `json:"vertices,omitempty" bson:"vertices,omitempty"`
}

// FileEdge is the persisted form of an edge.
type FileEdge struct {
	IDs           []string       `json:"ids" bson:"ids"`
	Text          string         `json:"text,omitempty" bson:"text,omitempty"`
	Type          string         `json:"type" bson:"type"`
	ControlPoints []geom.Point   `json:"controlPoints,omitempty" bson:"controlPoints,omitempty"`
	Rendering     *EdgeRendering `json:"rendering,omitempty" bson:"rendering,omitempty"`
}

// rawDocument mirrors FileDocument but defers entity decoding so one
// malformed entity cannot abort the whole load.
type rawDocument struct {
	Hypergraph struct {
		Name     string            `json:"name"`
		Vertices []json.RawMessage `json:"vertices"`
		Edges    []json.RawMessage `json:"edges"`
	} `json:"hypergraph"`
}

type rawVertex struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	Attributes    []Attribute       `json:"attributes"`
	Position      *geom.Point       `json:"position"`
	Size          *geom.Size        `json:"size"`
	Radius        *float64          `json:"radius"`
	Segments      *int              `json:"segments"`
	InnerRadius   *float64          `json:"innerRadius"`
	OuterRadius   *float64          `json:"outerRadius"`
	ThetaSegments *int              `json:"thetaSegments"`
	Rendering     *VertexRendering  `json:"rendering"`
	Vertices      []json.RawMessage `json:"vertices"`
	Children      []json.RawMessage `json:"children"`
}

type rawEdge struct {
	IDs           []string       `json:"ids"`
	Text          string         `json:"text"`
	Type          string         `json:"type"`
	ControlPoints []geom.Point   `json:"controlPoints"`
	ControlPoint  *geom.Point    `json:"controlPoint"`
	Rendering     *EdgeRendering `json:"rendering"`
}
