// Package pkg provides the core libraries for hypergraph layout and editing.
//
// # Overview
//
// A hypergraph document is a forest of vertices (rectangles, circles and
// rings) joined by edges. Vertices may nest: a parent is sized and packed
// around its children on a grid. While a vertex is dragged, overlapping
// top-level vertices are pushed apart, edges snap to the closest pair of
// anchors and labels avoid the vertices they would otherwise cover.
//
// # Architecture
//
//	document JSON
//	     ↓
//	[hypergraph] parse, validate, index
//	     ↓
//	[layout] grid-pack parents
//	     ↓
//	[overlap] + [connect] + [curve] + [label] settle the scene
//	     ↓
//	[engine] drag state machine, publishes visuals to a Host
//	     ↓
//	[render] scene recorder, svg / dot / png output
//
// [pipeline] runs load → layout → render with a [cache] in front of it;
// [storage] persists documents in a directory or MongoDB; [prefs] remembers
// per-user settings between sessions.
//
// # Quick Start
//
//	scene := render.NewScene()
//	eng := engine.New(scene, engine.Options{})
//	warnings, err := eng.Load(raw)
//	if err != nil {
//	    return err
//	}
//	_ = eng.DragTo("db", geom.Point{X: 4, Y: -2}, 10)
//	out, _ := eng.Serialize()
//
// # Main Packages
//
//   - [geom]: points, sizes, boxes and anchors
//   - [hypergraph]: document model and JSON format
//   - [layout], [overlap], [connect], [curve], [label]: scene algorithms
//   - [engine]: layout/drag orchestration
//   - [render]: host-side scene, svg, dot and png
//   - [pipeline], [cache]: cached batch rendering
//   - [storage], [prefs]: persistence
//   - [errors], [observability], [buildinfo]: shared infrastructure
//
// [geom]: github.com/matzehuels/hypergraph/pkg/geom
// [hypergraph]: github.com/matzehuels/hypergraph/pkg/hypergraph
// [layout]: github.com/matzehuels/hypergraph/pkg/layout
// [overlap]: github.com/matzehuels/hypergraph/pkg/overlap
// [connect]: github.com/matzehuels/hypergraph/pkg/connect
// [curve]: github.com/matzehuels/hypergraph/pkg/curve
// [label]: github.com/matzehuels/hypergraph/pkg/label
// [engine]: github.com/matzehuels/hypergraph/pkg/engine
// [render]: github.com/matzehuels/hypergraph/pkg/render
// [pipeline]: github.com/matzehuels/hypergraph/pkg/pipeline
// [cache]: github.com/matzehuels/hypergraph/pkg/cache
// [storage]: github.com/matzehuels/hypergraph/pkg/storage
// [prefs]: github.com/matzehuels/hypergraph/pkg/prefs
// [errors]: github.com/matzehuels/hypergraph/pkg/errors
// [observability]: github.com/matzehuels/hypergraph/pkg/observability
// [buildinfo]: github.com/matzehuels/hypergraph/pkg/buildinfo
package pkg
