package layout

import "math"

// PlaceLabels sets LabelPos on every labelled edge.
//
// The natural anchor is the arc-length midpoint of the route, lifted by
// LabelLift. Anchors are bucketed into LabelCell-sized cells. A label tries
// vertical shifts of 0, +step, -step, +2*step, -2*step, ... from its anchor
// and takes the first point no earlier label in the same cell occupies.
// Placement is greedy in edge order, so it separates labels sharing a cell
// but does not guarantee that large labels never overlap.
func PlaceLabels(edges []Edge, c Constants) {
	c = c.withDefaults()
	type cell struct{ x, y int }
	taken := make(map[cell]map[Point]bool)

	for i := range edges {
		e := &edges[i]
		if e.Label == "" || len(e.Points) == 0 {
			continue
		}
		anchor := midpoint(e.Points)
		anchor.Y -= c.LabelLift

		key := cell{
			x: int(math.Floor(anchor.X / c.LabelCell)),
			y: int(math.Floor(anchor.Y / c.LabelCell)),
		}
		if taken[key] == nil {
			taken[key] = make(map[Point]bool)
		}

		pos := anchor
		for k := 1; taken[key][pos]; k++ {
			pos = Point{X: anchor.X, Y: anchor.Y + labelOffset(k, c.LabelStep)}
		}
		taken[key][pos] = true
		e.LabelPos = &pos
	}
}

// labelOffset returns the k-th term of 0, +step, -step, +2step, -2step, ...
func labelOffset(k int, step float64) float64 {
	if k == 0 {
		return 0
	}
	mag := float64((k + 1) / 2)
	if k%2 == 0 {
		return -mag * step
	}
	return mag * step
}

// midpoint returns the point halfway along the polyline by length.
func midpoint(pts []Point) Point {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += dist(pts[i-1], pts[i])
	}
	half := total / 2
	for i := 1; i < len(pts); i++ {
		d := dist(pts[i-1], pts[i])
		if d > 0 && half <= d {
			t := half / d
			return Point{
				X: pts[i-1].X + (pts[i].X-pts[i-1].X)*t,
				Y: pts[i-1].Y + (pts[i].Y-pts[i-1].Y)*t,
			}
		}
		half -= d
	}
	return pts[0]
}

func dist(a, b Point) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }
