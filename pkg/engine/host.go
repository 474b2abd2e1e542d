package engine

import (
	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
)

// Host receives visual updates from the engine.
//
// Vertex positions are relative to the parent vertex (world positions for
// top-level vertices). Edge polylines and label positions are in world
// coordinates.
type Host interface {
	UpdateVertexVisual(id string, position geom.Point, size geom.Size)
	UpdateEdgeVisual(id string, points []geom.Point)
	UpdateLabelVisual(id string, position geom.Point)
}

// Resetter is implemented by hosts that hold published state. Reset is
// called when a new document replaces the current one, before its scene is
// published, and never concurrently with other host calls.
type Resetter interface {
	Reset()
}

// NopHost discards all updates.
type NopHost struct{}

func (NopHost) UpdateVertexVisual(string, geom.Point, geom.Size) {}
func (NopHost) UpdateEdgeVisual(string, []geom.Point)           {}
func (NopHost) UpdateLabelVisual(string, geom.Point)            {}

// Hosts returns a host that forwards every update to each of hs in order.
func Hosts(hs ...Host) Host { return multiHost(hs) }

type multiHost []Host

// Reset forwards to every host that implements Resetter.
func (m multiHost) Reset() {
	for _, h := range m {
		if r, ok := h.(Resetter); ok {
			r.Reset()
		}
	}
}

func (m multiHost) UpdateVertexVisual(id string, position geom.Point, size geom.Size) {
	for _, h := range m {
		h.UpdateVertexVisual(id, position, size)
	}
}

func (m multiHost) UpdateEdgeVisual(id string, points []geom.Point) {
	for _, h := range m {
		h.UpdateEdgeVisual(id, points)
	}
}

func (m multiHost) UpdateLabelVisual(id string, position geom.Point) {
	for _, h := range m {
		h.UpdateLabelVisual(id, position)
	}
}

// VisualID returns the host-facing id of v. Synthetic texture rows share
// the reserved id, so they are qualified with their parent's id.
func VisualID(v *hypergraph.Vertex) string {
	if v.Synthetic {
		return v.ParentID + "/" + v.ID
	}
	return v.ID
}

// UpdateKind identifies the target of an Update.
type UpdateKind int

// Update kinds.
const (
	VertexUpdate UpdateKind = iota
	EdgeUpdate
	LabelUpdate
)

// String returns the kind name used in event streams.
func (k UpdateKind) String() string {
	switch k {
	case VertexUpdate:
		return "vertex"
	case EdgeUpdate:
		return "edge"
	case LabelUpdate:
		return "label"
	}
	return "unknown"
}

// Update is one pending host call.
type Update struct {
	Kind     UpdateKind
	ID       string
	Position geom.Point
	Size     geom.Size
	Points   []geom.Point
}

// Apply delivers u to h.
func (u Update) Apply(h Host) {
	switch u.Kind {
	case VertexUpdate:
		h.UpdateVertexVisual(u.ID, u.Position, u.Size)
	case EdgeUpdate:
		h.UpdateEdgeVisual(u.ID, u.Points)
	case LabelUpdate:
		h.UpdateLabelVisual(u.ID, u.Position)
	}
}

// batch collects updates during a pass, keeping the latest vertex update
// per id in first-seen order.
type batch struct {
	updates []Update
	vertex  map[string]int
}

func newBatch() *batch { return &batch{vertex: make(map[string]int)} }

func (b *batch) vertexUpdate(v *hypergraph.Vertex) {
	u := Update{Kind: VertexUpdate, ID: VisualID(v), Position: v.Position, Size: v.Size}
	if i, ok := b.vertex[u.ID]; ok {
		b.updates[i] = u
		return
	}
	b.vertex[u.ID] = len(b.updates)
	b.updates = append(b.updates, u)
}

func (b *batch) edgeUpdate(e *hypergraph.Edge, points []geom.Point) {
	b.updates = append(b.updates, Update{Kind: EdgeUpdate, ID: e.ID, Points: points})
}

func (b *batch) labelUpdate(e *hypergraph.Edge) {
	b.updates = append(b.updates, Update{Kind: LabelUpdate, ID: e.LabelID(), Position: e.Label})
}
