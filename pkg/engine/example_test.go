package engine_test

import (
	"fmt"

	"github.com/matzehuels/hypergraph/pkg/engine"
)

func Example() {
	raw := []byte(`{"hypergraph": {"name": "demo", "vertices": [
	  {"id": "a", "type": "rectangle", "position": {"x": 0, "y": 0, "z": 0}, "size": {"width": 2, "height": 2}},
	  {"id": "b", "type": "rectangle", "position": {"x": 0, "y": 5, "z": 0}, "size": {"width": 2, "height": 2}}
	], "edges": [{"ids": ["a", "b"], "type": "Line"}]}}`)

	e := engine.New(nil, engine.Options{})
	if _, err := e.Load(raw); err != nil {
		panic(err)
	}
	d, _ := e.Document()
	edge := d.Edges[0]
	fmt.Printf("%s: (%.1f, %.1f) -> (%.1f, %.1f)\n", edge.ID, edge.Start.X, edge.Start.Y, edge.End.X, edge.End.Y)
	// Output: e0: (0.0, 1.0) -> (0.0, 4.0)
}
