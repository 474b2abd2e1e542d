// Package engine implements the drag/update orchestrator of the hypergraph
// editor.
//
// An [Engine] owns the loaded document and sequences the layout, overlap,
// connection and label engines in response to three host events:
//
//   - Load: parse, grid-pack, settle, and publish the full scene.
//   - DragTick: move the dragged vertex, rebuild every edge, run a coarse
//     and a fine overlap pass, and refresh labels.
//   - DragEnd: settle the whole document and rebuild every edge.
//
// Results flow back to the host through the [Host] interface as vertex,
// edge and label updates.
//
// # State Machine
//
// The engine is Idle or Dragging. DragStart moves Idle→Dragging, DragEnd
// moves back. Only one drag is active at a time.
//
// # Concurrency
//
// Mutating passes are serialized. Each pass works on a copy of the document
// and commits it only if the document was not replaced in the meantime;
// otherwise the pass is discarded with a STALE_DOCUMENT error and nothing is
// published. Host callbacks run synchronously after a commit and must not
// call mutating engine methods.
package engine
