package layout

import "github.com/jbass698-121/aveva-diagram-style/pkg/graph"

// RouteEdges computes an orthogonal path for every edge whose endpoints
// exist in nodes.
//
// Paths leave the source's right edge, run standOff units right, turn
// vertically and enter the target's left edge at its center. When Via names
// a bus, the vertical leg stops at the bus centerline, runs along it, and
// drops to the target standOff units before its left edge.
//
// Edges with missing endpoints are returned in dropped. Edges with an
// unknown Via are routed directly and returned in unknownVias.
func RouteEdges(nodes []Node, edges []graph.Edge, busses []Bus, standOff float64) (routed []Edge, dropped, unknownVias []Dropped) {
	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		if _, ok := byID[n.ID]; !ok {
			byID[n.ID] = n
		}
	}
	busY := make(map[string]float64, len(busses))
	for _, b := range busses {
		if _, ok := busY[b.ID]; !ok {
			busY[b.ID] = b.CenterY
		}
	}

	routed = make([]Edge, 0, len(edges))
	for _, e := range edges {
		from, okFrom := byID[e.From]
		to, okTo := byID[e.To]
		if !okFrom || !okTo {
			dropped = append(dropped, Dropped{ID: edgeID(e.From, e.To), Reason: ReasonUnknownEndpoint})
			continue
		}

		a := Point{X: from.Right(), Y: from.CenterY()}
		b := Point{X: to.X, Y: to.CenterY()}

		var pts []Point
		if y, ok := busY[e.Via]; ok && e.Via != "" {
			pts = []Point{
				a,
				{a.X + standOff, a.Y},
				{a.X + standOff, y},
				{b.X - standOff, y},
				{b.X - standOff, b.Y},
				b,
			}
		} else {
			if e.Via != "" {
				unknownVias = append(unknownVias, Dropped{ID: edgeID(e.From, e.To), Reason: ReasonUnknownBus})
			}
			pts = []Point{
				a,
				{a.X + standOff, a.Y},
				{a.X + standOff, b.Y},
				b,
			}
		}

		routed = append(routed, Edge{
			From:   e.From,
			To:     e.To,
			Style:  e.Style.OrSolid(),
			Label:  e.Label,
			Via:    e.Via,
			Points: simplify(pts),
		})
	}
	return routed, dropped, unknownVias
}

// simplify removes repeated points and points lying strictly inside a
// straight run. Turn-backs are kept so stubs stay visible.
func simplify(pts []Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		if len(out) >= 2 && between(out[len(out)-2], out[len(out)-1], p) {
			out[len(out)-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

// between reports whether m lies on the straight axis-aligned run from a to b.
func between(a, m, b Point) bool {
	switch {
	case a.X == m.X && m.X == b.X:
		return (a.Y < m.Y && m.Y < b.Y) || (a.Y > m.Y && m.Y > b.Y)
	case a.Y == m.Y && m.Y == b.Y:
		return (a.X < m.X && m.X < b.X) || (a.X > m.X && m.X > b.X)
	}
	return false
}
