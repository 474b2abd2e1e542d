// Package geom provides the geometry primitives shared by the hypergraph
// layout and connection engines.
//
// # Types
//
//   - [Point]: a 3D point. Z is a stacking hint; layout works in the XY plane.
//   - [Size]: width and height of an axis-aligned bounding box.
//   - [Box]: an axis-aligned box described by its center and size.
//   - [Direction] and [Anchors]: the four cardinal boundary points (N/S/E/W)
//     used to attach edges to vertices.
//
// Vector arithmetic is delegated to gonum's spatial/r3 package. Point only
// adds JSON-friendly field names and a few helpers used by the engines.
package geom
