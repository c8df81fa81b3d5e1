package layout

// ClampToLanes moves every node into its lane's padded interior and sets
// both LocalY and the absolute Y.
//
// A LocalY larger than the lane height is taken to be absolute and is
// converted by subtracting the lane top. The result is clamped into
// [padding, laneHeight-h-padding]; when that interval is empty the node sits
// at padding. Nodes whose lane is not in lanes are left unchanged.
func ClampToLanes(nodes []Node, lanes []Lane, padding float64) {
	byID := make(map[string]Lane, len(lanes))
	for _, l := range lanes {
		if _, ok := byID[l.ID]; !ok {
			byID[l.ID] = l
		}
	}

	for i := range nodes {
		n := &nodes[i]
		l, ok := byID[n.Lane]
		if !ok {
			continue
		}
		y := n.LocalY
		if y > l.Height {
			y -= l.Top
		}
		y = min(y, l.Height-n.H-padding)
		y = max(y, padding)
		n.LocalY = Snap(y)
		n.Y = l.Top + n.LocalY
	}
}
