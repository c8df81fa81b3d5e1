package layout

import (
	"cmp"
	"math"
	"slices"
)

// slot is an engine-computed position. y is lane-local.
type slot struct{ x, y float64 }

// layoutLanes computes the engine slot of every node.
//
// Within a lane, nodes are ordered by (rank, title, id). Rank picks the
// column; nodes sharing a lane and a rank stack downward, each step being
// the tallest node of the group plus RowGap, so stacked intervals never
// overlap. top is the lane-local y of the first stacked node.
func layoutLanes(nodes []Node, laneIndex map[string]int, c Constants, top float64) []slot {
	byLane := make(map[int][]int, len(laneIndex))
	for i, n := range nodes {
		li := laneIndex[n.Lane]
		byLane[li] = append(byLane[li], i)
	}

	slots := make([]slot, len(nodes))
	for _, members := range byLane {
		slices.SortStableFunc(members, func(a, b int) int {
			na, nb := nodes[a], nodes[b]
			return cmp.Or(
				cmp.Compare(na.Rank, nb.Rank),
				cmp.Compare(na.Title, nb.Title),
				cmp.Compare(na.ID, nb.ID),
			)
		})

		for start := 0; start < len(members); {
			end := start
			var tallest float64
			for end < len(members) && nodes[members[end]].Rank == nodes[members[start]].Rank {
				tallest = max(tallest, nodes[members[end]].H)
				end++
			}
			for i, idx := range members[start:end] {
				n := nodes[idx]
				slots[idx] = slot{
					x: c.LeftMargin + float64(n.Rank)*(c.ColumnWidth+c.ColumnGap),
					y: top + float64(i)*(tallest+c.RowGap),
				}
			}
			start = end
		}
	}
	return slots
}

// compensateOverflow pulls nodes left so that no right edge passes
// width-Margin. Positions are scaled about LeftMargin and snapped down;
// sizes and vertical positions are untouched and left-to-right order is
// kept. It returns the factor applied, 1 when nothing moved.
func compensateOverflow(nodes []Node, width float64, c Constants) float64 {
	limit := width - c.Margin
	x0 := c.LeftMargin

	var maxX float64
	for _, n := range nodes {
		maxX = max(maxX, n.Right())
	}
	if maxX <= limit {
		return 1
	}

	scale := 1.0
	if maxX > x0 {
		scale = (limit - x0) / (maxX - x0)
	}
	// Widths are not scaled, so the overall factor alone can still leave a
	// wide node past the limit. Take the tightest per-node bound; nodes too
	// wide to fit at all are pinned against the limit below.
	for _, n := range nodes {
		if n.X > x0 && x0+n.W <= limit {
			scale = min(scale, (limit-x0-n.W)/(n.X-x0))
		}
	}
	scale = math.Max(0, math.Min(1, scale))

	for i := range nodes {
		n := &nodes[i]
		n.X = snapDown(x0 + (n.X-x0)*scale)
		if n.Right() > limit {
			n.X = snapDown(limit - n.W)
		}
	}
	return scale
}

// crampedNodes lists nodes too wide to fit between LeftMargin and
// width-Margin. compensateOverflow pins them against the right limit, so
// they start left of LeftMargin, possibly at negative x, and may share an x
// with nodes of other ranks.
func crampedNodes(nodes []Node, width float64, c Constants) []string {
	var ids []string
	for _, n := range nodes {
		if c.LeftMargin+n.W > width-c.Margin {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// laneGeometry resolves the uniform lane height and the top offset of each
// lane. The height is the share of the canvas each lane gets, raised to what
// its stacked nodes need. It returns the lane height, the tops and the
// resolved canvas height.
func laneGeometry(n int, o Options, need float64) (float64, []float64, float64) {
	if n == 0 {
		return 0, nil, o.Height
	}
	c := o.Constants
	share := math.Floor((o.Height - c.HeaderHeight - o.LaneGap*float64(n+1)) / float64(n))
	laneH := max(snapDown(share), snapUp(need))

	tops := make([]float64, n)
	for i := range tops {
		tops[i] = c.HeaderHeight + o.LaneGap + float64(i)*(laneH+o.LaneGap)
	}
	height := max(o.Height, tops[n-1]+laneH+o.LaneGap)
	return laneH, tops, height
}
