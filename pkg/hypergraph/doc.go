// Package hypergraph provides the in-memory model of a hypergraph document
// and its persisted JSON format.
//
// # Model
//
// A [Document] owns a tree of [Vertex] values (top-level vertices, each of
// which may nest children) and a flat list of [Edge] values joining two
// vertices by id. Vertices keep a parent id rather than a parent pointer; the
// document maintains the id index used to resolve both edge endpoints and
// parent chains.
//
// Positions of nested vertices are relative to their parent. Use
// [Document.WorldPosition] and [Document.Box] to obtain layout-plane
// coordinates.
//
// # Persisted Format
//
// The JSON format wraps the document under a "hypergraph" key:
//
//	{
//	  "hypergraph": {
//	    "name": "demo",
//	    "vertices": [
//	      {"id": "a", "name": "A", "type": "rectangle",
//	       "position": {"x": 0, "y": 0, "z": 0},
//	       "size": {"width": 2, "height": 1},
//	       "rendering": {"color": "#e7d770"},
//	       "vertices": [ ...children... ]}
//	    ],
//	    "edges": [
//	      {"ids": ["a", "b"], "type": "Line", "text": "uses",
//	       "rendering": {"color": "#070707"}}
//	    ]
//	  }
//	}
//
// Children are stored under "vertices" ("children" is accepted on input).
//
// # Loading
//
// [Parse] checks the overall shape against an embedded JSON schema; a
// document that fails it is rejected with an INVALID_DOCUMENT error.
// Individual entities that are malformed (unknown vertex type, missing
// shape parameters, duplicate ids, edges referencing missing vertices,
// wrong control-point counts) are skipped and reported as [Warning] values
// so a partial document still loads.
//
// # Saving
//
// [Marshal] and friends serialize the live state: current positions and
// sizes, not the authored ones. Synthetic texture-row entries created by
// grid layout are never written.
package hypergraph
