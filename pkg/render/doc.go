// Package render provides the host-side collaborators of the hypergraph
// engine: a scene recorder, a resource cache for materials and geometries,
// and output formats.
//
// # Scene
//
// [Scene] implements [engine.Host] and keeps the latest visual state of
// every vertex, edge and label keyed by id. Interactive hosts (the terminal
// editor and the HTTP server) read from it.
//
// # Resources
//
// [Resources] deduplicates materials and geometries by a canonical key
// built from their attributes, so documents with many identical vertices
// share one definition each.
//
// # Formats
//
//   - SVG ([RenderSVG]): a flat projection of the laid-out scene drawn with
//     svgo. Geometries are emitted once as definitions and instanced.
//   - DOT ([ToDOT]): a node-link view where parents become clusters.
//   - Graphviz output ([RenderGraphviz]): DOT rendered to SVG or PNG.
//
//	svg := render.RenderSVG(doc, render.WithScale(40), render.WithAnchors())
//	dot := render.ToDOT(doc)
//	png, err := render.RenderGraphviz(ctx, dot, render.FormatPNG)
//
// [engine.Host]: github.com/matzehuels/hypergraph/pkg/engine.Host
package render
