package hypergraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/hypergraph/pkg/errors"
	"github.com/matzehuels/hypergraph/pkg/geom"
)

// Warning reports an entity that was skipped while loading a document.
type Warning struct {
	Entity string // "vertex" or "edge"
	Ref    string // vertex id or edge position, e.g. "edges[2]"
	Err    error
}

// String formats the warning for logs.
func (w Warning) String() string {
	return fmt.Sprintf("skipped %s %s: %s", w.Entity, w.Ref, errors.UserMessage(w.Err))
}

// =============================================================================
// Loading API
// =============================================================================

// ReadFile reads and parses the document at path.
func ReadFile(path string) (*Document, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Read parses a document from r.
func Read(r io.Reader) (*Document, []Warning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read document: %w", err)
	}
	return Parse(data)
}

// Parse builds a document from its persisted JSON form.
//
// A document whose overall shape is wrong is rejected with an
// INVALID_DOCUMENT error. Malformed vertices and edges are skipped and
// reported as warnings; a skipped vertex takes its subtree with it, and
// edges that reference it are skipped in turn.
func Parse(raw []byte) (*Document, []Warning, error) {
	if err := ValidateShape(raw); err != nil {
		return nil, nil, err
	}
	var rd rawDocument
	if err := json.Unmarshal(raw, &rd); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}

	l := &loader{seen: make(map[string]bool)}
	vertices := l.vertices(rd.Hypergraph.Vertices, "")
	edges := l.edges(rd.Hypergraph.Edges)
	return New(rd.Hypergraph.Name, vertices, edges), l.warnings, nil
}

// =============================================================================
// Entity Decoding
// =============================================================================

type loader struct {
	seen     map[string]bool
	warnings []Warning
}

func (l *loader) warn(entity, ref string, err error) {
	l.warnings = append(l.warnings, Warning{Entity: entity, Ref: ref, Err: err})
}

func (l *loader) vertices(raws []json.RawMessage, parentID string) []*Vertex {
	var out []*Vertex
	for i, raw := range raws {
		ref := vertexRef(parentID, i)
		var rv rawVertex
		if err := json.Unmarshal(raw, &rv); err != nil {
			l.warn("vertex", ref, errors.Wrap(errors.ErrCodeInvalidVertex, err, "decode vertex"))
			continue
		}
		if rv.ID != "" {
			ref = strconv.Quote(rv.ID)
		}
		v, err := l.vertex(&rv)
		if err != nil {
			l.warn("vertex", ref, err)
			continue
		}
		l.seen[v.ID] = true
		v.ParentID = parentID
		children := append(rv.Vertices, rv.Children...)
		v.Children = l.vertices(children, v.ID)
		out = append(out, v)
	}
	return out
}

func (l *loader) vertex(rv *rawVertex) (*Vertex, error) {
	switch {
	case rv.ID == "":
		return nil, errors.New(errors.ErrCodeInvalidVertex, "vertex id is required")
	case rv.ID == TextureID:
		return nil, errors.New(errors.ErrCodeInvalidVertex, "vertex id %q is reserved", TextureID)
	case l.seen[rv.ID]:
		return nil, errors.New(errors.ErrCodeInvalidVertex, "duplicate vertex id %q", rv.ID)
	}

	v := &Vertex{
		ID:         rv.ID,
		Name:       rv.Name,
		Type:       VertexType(rv.Type),
		Attributes: rv.Attributes,
	}
	if !v.Type.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidVertex, "unknown vertex type %q", rv.Type)
	}
	if rv.Position != nil {
		v.Position = *rv.Position
	}
	if rv.Rendering != nil {
		v.Rendering = *rv.Rendering
	}
	if rv.Size != nil {
		if !rv.Size.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidVertex, "size must be non-negative")
		}
		v.Size = *rv.Size
	}
	hasChildren := len(rv.Vertices)+len(rv.Children) > 0

	switch v.Type {
	case Rectangle:
		if rv.Size == nil && !hasChildren {
			return nil, errors.New(errors.ErrCodeInvalidVertex, "rectangle requires size")
		}
	case Circle:
		if rv.Radius == nil || rv.Segments == nil {
			return nil, errors.New(errors.ErrCodeInvalidVertex, "circle requires radius and segments")
		}
		if *rv.Radius <= 0 || *rv.Segments <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidVertex, "circle radius and segments must be positive")
		}
		v.Radius, v.Segments = *rv.Radius, *rv.Segments
	case Ring:
		if rv.InnerRadius == nil || rv.OuterRadius == nil || rv.ThetaSegments == nil {
			return nil, errors.New(errors.ErrCodeInvalidVertex, "ring requires innerRadius, outerRadius and thetaSegments")
		}
		if *rv.InnerRadius < 0 || *rv.OuterRadius <= *rv.InnerRadius || *rv.ThetaSegments <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidVertex, "ring requires 0 <= innerRadius < outerRadius and positive thetaSegments")
		}
		v.InnerRadius, v.OuterRadius, v.ThetaSegments = *rv.InnerRadius, *rv.OuterRadius, *rv.ThetaSegments
	}
	if rv.Size == nil {
		v.Size = v.shapeSize()
	}
	return v, nil
}

func (l *loader) edges(raws []json.RawMessage) []*Edge {
	var out []*Edge
	for i, raw := range raws {
		ref := fmt.Sprintf("edges[%d]", i)
		var re rawEdge
		if err := json.Unmarshal(raw, &re); err != nil {
			l.warn("edge", ref, errors.Wrap(errors.ErrCodeInvalidEdge, err, "decode edge"))
			continue
		}
		e, err := l.edge(&re)
		if err != nil {
			l.warn("edge", ref, err)
			continue
		}
		e.ID = edgeID(i)
		out = append(out, e)
	}
	return out
}

func (l *loader) edge(re *rawEdge) (*Edge, error) {
	if len(re.IDs) != 2 {
		return nil, errors.New(errors.ErrCodeInvalidEdge, "edge must join exactly two vertices, got %d", len(re.IDs))
	}
	if re.IDs[0] == re.IDs[1] {
		return nil, errors.New(errors.ErrCodeInvalidEdge, "edge joins %q to itself", re.IDs[0])
	}
	for _, id := range re.IDs {
		if !l.seen[id] {
			return nil, errors.New(errors.ErrCodeInvalidEdge, "edge references unknown vertex %q", id)
		}
	}
	t := EdgeType(re.Type)
	if !t.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidEdge, "unknown edge type %q", re.Type)
	}

	cps := re.ControlPoints
	if t == QuadraticBezierCurve && len(cps) == 0 && re.ControlPoint != nil {
		cps = []geom.Point{*re.ControlPoint}
	}
	if want := t.ControlPointCount(); len(cps) != want {
		return nil, errors.New(errors.ErrCodeInvalidEdge, "%s requires %d control points, got %d", t, want, len(cps))
	}

	e := &Edge{
		IDs:           [2]string{re.IDs[0], re.IDs[1]},
		Type:          t,
		ControlPoints: cps,
		Text:          re.Text,
	}
	if re.Rendering != nil {
		e.Rendering = *re.Rendering
	}
	return e, nil
}

func vertexRef(parentID string, i int) string {
	if parentID == "" {
		return fmt.Sprintf("vertices[%d]", i)
	}
	return fmt.Sprintf("%s.vertices[%d]", strconv.Quote(parentID), i)
}

func edgeID(i int) string { return "e" + strconv.Itoa(i) }
