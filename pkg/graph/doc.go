// Package graph defines the canonical diagram model and its wire format.
//
// A diagram is a set of lanes (horizontal zones), nodes (components owned by
// exactly one lane), directed edges between nodes, and two kinds of lane
// decorations: bands (background rectangles) and busses (shared routing
// trunks that edges may reference through their via field).
//
// # Wire Format
//
// The canonical JSON document is version tagged:
//
//	{
//	  "version": 1,
//	  "metadata": {"title": "Plant", "theme": "dark"},
//	  "lanes":  [{"id": "dmz", "title": "Perimeter"}],
//	  "nodes":  [{"id": "gw", "lane": "dmz", "kind": "edge", "title": "Gateway"}],
//	  "edges":  [{"from": "gw", "to": "hist", "style": "dashed", "via": "bus1"}],
//	  "bands":  [{"id": "b1", "lane": "dmz", "y": 8, "h": 120, "color": "#FFE6E6"}],
//	  "busses": [{"id": "bus1", "lane": "dmz", "y": 80, "h": 8, "color": "#FF4444"}],
//	  "notes":  [{"lane": "dmz", "x": 40, "y": 16, "text": "read only"}]
//	}
//
// Node geometry (x, y, w, h) is optional on input. The layout engine in
// pkg/layout fills whatever is missing.
//
// Other input shapes (lane-grouped, zone-grouped, fenced LLM output, YAML)
// are handled by pkg/io, which converts them into this model.
//
// # Concurrency
//
// Graph values are plain data. Clone returns a deep copy that can be handed
// to another goroutine.
package graph
