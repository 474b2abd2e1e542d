package hypergraph

import (
	"slices"

	"github.com/matzehuels/hypergraph/pkg/geom"
)

// Document is a loaded hypergraph. It exclusively owns its vertices and
// edges; hosts refer to them by id only.
type Document struct {
	Name     string
	Vertices []*Vertex // top-level only
	Edges    []*Edge

	index map[string]*Vertex
}

// New builds a document from already constructed vertices and edges and
// indexes it. Parent ids of nested vertices are set from the tree shape.
// Edge ids that are empty are assigned as "e<index>".
func New(name string, vertices []*Vertex, edges []*Edge) *Document {
	d := &Document{Name: name, Vertices: vertices, Edges: edges}
	for i, e := range d.Edges {
		if e.ID == "" {
			e.ID = edgeID(i)
		}
	}
	d.Reindex()
	return d
}

// Reindex rebuilds the id index and the parent ids of nested vertices.
// Call it after changing the vertex tree shape.
func (d *Document) Reindex() {
	d.index = make(map[string]*Vertex)
	var walk func(vs []*Vertex, parent string)
	walk = func(vs []*Vertex, parent string) {
		for _, v := range vs {
			v.ParentID = parent
			if !v.Synthetic {
				d.index[v.ID] = v
			}
			walk(v.Children, v.ID)
		}
	}
	walk(d.Vertices, "")
}

// Vertex returns the vertex with the given id.
func (d *Document) Vertex(id string) (*Vertex, bool) {
	v, ok := d.index[id]
	return v, ok
}

// Len returns the number of authored vertices, nested ones included.
func (d *Document) Len() int { return len(d.index) }

// Walk visits every vertex in document order (pre-order, parents before
// children). Synthetic texture entries are visited too.
func (d *Document) Walk(fn func(v *Vertex)) {
	var walk func(vs []*Vertex)
	walk = func(vs []*Vertex) {
		for _, v := range vs {
			fn(v)
			walk(v.Children)
		}
	}
	walk(d.Vertices)
}

// AllVertices returns every authored vertex in document order.
func (d *Document) AllVertices() []*Vertex {
	out := make([]*Vertex, 0, len(d.index))
	d.Walk(func(v *Vertex) {
		if !v.Synthetic {
			out = append(out, v)
		}
	})
	return out
}

// Parent returns the parent of v, or nil for top-level vertices.
func (d *Document) Parent(v *Vertex) *Vertex {
	if v.ParentID == "" {
		return nil
	}
	return d.index[v.ParentID]
}

// WorldPosition returns the layout-plane position of v: its own position
// plus those of all its ancestors.
func (d *Document) WorldPosition(v *Vertex) geom.Point {
	p := v.Position
	seen := map[string]bool{v.ID: true}
	for parent := d.Parent(v); parent != nil; parent = d.Parent(parent) {
		if seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		p = p.Add(parent.Position)
	}
	return p
}

// Box returns the world-space bounding box of v.
func (d *Document) Box(v *Vertex) geom.Box {
	return geom.Box{Center: d.WorldPosition(v), Size: v.Size}
}

// Anchors returns the four world-space boundary anchors of v.
func (d *Document) Anchors(v *Vertex) geom.Anchors {
	return geom.AnchorsOf(d.Box(v))
}

// EdgesTouching returns the edges with id as an endpoint, in document order.
func (d *Document) EdgesTouching(id string) []*Edge {
	var out []*Edge
	for _, e := range d.Edges {
		if e.Touches(id) {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	c := &Document{Name: d.Name}
	c.Vertices = cloneVertices(d.Vertices)
	c.Edges = make([]*Edge, len(d.Edges))
	for i, e := range d.Edges {
		ce := *e
		ce.ControlPoints = slices.Clone(e.ControlPoints)
		c.Edges[i] = &ce
	}
	c.Reindex()
	return c
}

func cloneVertices(vs []*Vertex) []*Vertex {
	if vs == nil {
		return nil
	}
	out := make([]*Vertex, len(vs))
	for i, v := range vs {
		cv := *v
		cv.Attributes = slices.Clone(v.Attributes)
		cv.Rendering = cloneRendering(v.Rendering)
		cv.Children = cloneVertices(v.Children)
		out[i] = &cv
	}
	return out
}

func cloneRendering(r VertexRendering) VertexRendering {
	r.Transparent = clonePtr(r.Transparent)
	r.Opacity = clonePtr(r.Opacity)
	r.Reflectivity = clonePtr(r.Reflectivity)
	r.RefractionRatio = clonePtr(r.RefractionRatio)
	r.Wireframe = clonePtr(r.Wireframe)
	return r
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
