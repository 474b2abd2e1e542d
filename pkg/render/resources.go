package render

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/matzehuels/hypergraph/pkg/hypergraph"
)

// Geometry is the shape-defining subset of a vertex.
type Geometry struct {
	Type          hypergraph.VertexType `json:"type"`
	Width         float64               `json:"width"`
	Height        float64               `json:"height"`
	Radius        float64               `json:"radius,omitempty"`
	Segments      int                   `json:"segments,omitempty"`
	InnerRadius   float64               `json:"innerRadius,omitempty"`
	OuterRadius   float64               `json:"outerRadius,omitempty"`
	ThetaSegments int                   `json:"thetaSegments,omitempty"`
}

// GeometryOf returns the geometry of v at its current size.
func GeometryOf(v *hypergraph.Vertex) Geometry {
	return Geometry{
		Type:          v.Type,
		Width:         v.Size.Width,
		Height:        v.Size.Height,
		Radius:        v.Radius,
		Segments:      v.Segments,
		InnerRadius:   v.InnerRadius,
		OuterRadius:   v.OuterRadius,
		ThetaSegments: v.ThetaSegments,
	}
}

// Key returns the canonical key of any attribute tuple. Struct fields are
// encoded in declaration order, so equal tuples yield equal keys.
func Key(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(data)
}

// Resources deduplicates materials and geometries. Each distinct tuple gets
// a short stable name ("m0", "g0", ...) in first-seen order.
type Resources struct {
	mu         sync.Mutex
	materials  map[string]string
	geometries map[string]string
	matList    []hypergraph.Material
	geoList    []Geometry
}

// NewResources returns an empty resource cache.
func NewResources() *Resources {
	return &Resources{
		materials:  make(map[string]string),
		geometries: make(map[string]string),
	}
}

// Material returns the name of the material for r, creating it on first use.
func (c *Resources) Material(r hypergraph.VertexRendering) string {
	m := r.Resolve()
	key := Key(m)
	c.mu.Lock()
	defer c.mu.Unlock()
	if name, ok := c.materials[key]; ok {
		return name
	}
	name := fmt.Sprintf("m%d", len(c.matList))
	c.materials[key] = name
	c.matList = append(c.matList, m)
	return name
}

// Geometry returns the name of the geometry g, creating it on first use.
func (c *Resources) Geometry(g Geometry) string {
	key := Key(g)
	c.mu.Lock()
	defer c.mu.Unlock()
	if name, ok := c.geometries[key]; ok {
		return name
	}
	name := fmt.Sprintf("g%d", len(c.geoList))
	c.geometries[key] = name
	c.geoList = append(c.geoList, g)
	return name
}

// Materials returns every material in creation order.
func (c *Resources) Materials() []hypergraph.Material {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]hypergraph.Material(nil), c.matList...)
}

// Geometries returns every geometry in creation order.
func (c *Resources) Geometries() []Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Geometry(nil), c.geoList...)
}
