package layout

import "github.com/jbass698-121/aveva-diagram-style/pkg/graph"

// Normalize returns a copy of g in which every node references a declared
// lane and has a grid-aligned size.
//
// Nodes on unknown lanes are dropped and reported. Missing w/h default to
// c.NodeWidth and c.NodeHeight. Sizes and any supplied x/y are snapped but
// not otherwise moved. Lanes, edges, bands, busses and notes pass through
// untouched. g itself is never modified.
func Normalize(g graph.Graph, c Constants) (graph.Graph, Diagnostics) {
	c = c.withDefaults()
	out := g.Clone()
	lanes := g.LaneIndex()

	var diag Diagnostics
	nodes := out.Nodes[:0]
	for _, n := range out.Nodes {
		if _, ok := lanes[n.Lane]; !ok {
			diag.DroppedNodes = append(diag.DroppedNodes, Dropped{ID: n.ID, Reason: ReasonUnknownLane})
			continue
		}
		n.W = graph.Coord(snapSize(valueOr(n.W, c.NodeWidth)))
		n.H = graph.Coord(snapSize(valueOr(n.H, c.NodeHeight)))
		if n.X != nil {
			*n.X = Snap(*n.X)
		}
		if n.Y != nil {
			*n.Y = Snap(*n.Y)
		}
		nodes = append(nodes, n)
	}
	out.Nodes = nodes
	return out, diag
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
