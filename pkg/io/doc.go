// Package io exports decoded block graphs as JSON for external tooling.
//
// The format is a flat projection of the graph: one entry per block with its
// stream index, type name, display name, and structural hash, plus an edge
// list that distinguishes owning from weak references:
//
//	{
//	  "version": "20.0.0.5",
//	  "nodes": [
//	    {"id": 0, "type": "NiNode", "name": "Scene Root", "root": true},
//	    {"id": 1, "type": "NiNode", "name": "new block"}
//	  ],
//	  "edges": [
//	    {"from": 0, "to": 1}
//	  ]
//	}
//
// Weak edges carry "kind": "weak"; owning edges omit the field. The export
// covers structure only, not block bodies, so it cannot be re-imported; the
// binary stream itself is the round-trip format.
package io
