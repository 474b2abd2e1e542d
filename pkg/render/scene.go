package render

import (
	"slices"
	"sync"

	"github.com/matzehuels/hypergraph/pkg/engine"
	"github.com/matzehuels/hypergraph/pkg/geom"
)

// VertexVisual is the last reported state of a vertex.
type VertexVisual struct {
	Position geom.Point `json:"position"`
	Size     geom.Size  `json:"size"`
}

// Scene records host updates. It is safe for concurrent use.
type Scene struct {
	mu       sync.RWMutex
	vertices map[string]VertexVisual
	edges    map[string][]geom.Point
	labels   map[string]geom.Point
	order    []string
	updates  int
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	s := &Scene{}
	s.Reset()
	return s
}

var _ engine.Host = (*Scene)(nil)

// Reset drops all recorded visuals.
func (s *Scene) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vertices = make(map[string]VertexVisual)
	s.edges = make(map[string][]geom.Point)
	s.labels = make(map[string]geom.Point)
	s.order = nil
	s.updates = 0
}

// UpdateVertexVisual implements engine.Host.
func (s *Scene) UpdateVertexVisual(id string, position geom.Point, size geom.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vertices[id]; !ok {
		s.order = append(s.order, id)
	}
	s.vertices[id] = VertexVisual{Position: position, Size: size}
	s.updates++
}

// UpdateEdgeVisual implements engine.Host.
func (s *Scene) UpdateEdgeVisual(id string, points []geom.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges[id] = slices.Clone(points)
	s.updates++
}

// UpdateLabelVisual implements engine.Host.
func (s *Scene) UpdateLabelVisual(id string, position geom.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels[id] = position
	s.updates++
}

// Vertex returns the recorded visual of vertex id.
func (s *Scene) Vertex(id string) (VertexVisual, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vertices[id]
	return v, ok
}

// Edge returns the recorded polyline of edge id.
func (s *Scene) Edge(id string) ([]geom.Point, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pts, ok := s.edges[id]
	return slices.Clone(pts), ok
}

// Label returns the recorded position of label id.
func (s *Scene) Label(id string) (geom.Point, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.labels[id]
	return p, ok
}

// VertexIDs returns vertex ids in first-reported order.
func (s *Scene) VertexIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Updates returns the number of host calls recorded since the last reset.
func (s *Scene) Updates() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updates
}

// Snapshot is a serializable copy of a scene.
type Snapshot struct {
	Vertices map[string]VertexVisual `json:"vertices"`
	Edges    map[string][]geom.Point `json:"edges"`
	Labels   map[string]geom.Point   `json:"labels"`
}

// Snapshot returns a copy of the recorded visuals.
func (s *Scene) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := Snapshot{
		Vertices: make(map[string]VertexVisual, len(s.vertices)),
		Edges:    make(map[string][]geom.Point, len(s.edges)),
		Labels:   make(map[string]geom.Point, len(s.labels)),
	}
	for k, v := range s.vertices {
		out.Vertices[k] = v
	}
	for k, v := range s.edges {
		out.Edges[k] = slices.Clone(v)
	}
	for k, v := range s.labels {
		out.Labels[k] = v
	}
	return out
}
