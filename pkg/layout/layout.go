package layout

import "github.com/jbass698-121/aveva-diagram-style/pkg/graph"

// Build lays out g and returns the resolved model.
//
// Build never fails. Entities that cannot be placed are omitted and listed
// in the model's Diagnostics. The input graph is not modified and no state
// is kept between calls.
func Build(g graph.Graph, opts ...Option) *Model {
	o := resolveOptions(opts)
	c := o.Constants

	ng, diag := Normalize(g, c)
	laneIndex := ng.LaneIndex()

	rr := rankGraph(ng.Nodes, ng.Edges, o.BreakCycles)
	diag.Unranked = rr.unranked
	diag.Cycles = rr.cycles
	diag.BackEdges = rr.backEdges

	nodes := make([]Node, len(ng.Nodes))
	for i, n := range ng.Nodes {
		nodes[i] = Node{
			ID:    n.ID,
			Lane:  n.Lane,
			Kind:  n.Kind,
			Title: n.Title,
			Sub:   n.Sub,
			Rank:  rr.ranks[n.ID],
			W:     *n.W,
			H:     *n.H,
		}
	}

	// Stacking starts below the lane padding so clamping never has to pull
	// an engine-placed node onto its neighbour.
	top := max(c.RowStart, o.LanePadding)
	slots := layoutLanes(nodes, laneIndex, c, top)

	var need float64
	for i, n := range ng.Nodes {
		nd := &nodes[i]
		nd.X = slots[i].x
		if !o.Autolayout && n.X != nil {
			nd.X = *n.X
		}
		if !o.Autolayout && n.Y != nil {
			nd.LocalY = *n.Y
		} else {
			nd.LocalY = slots[i].y
			need = max(need, nd.LocalY+nd.H+o.LanePadding)
		}
		need = max(need, nd.H+2*o.LanePadding)
	}

	diag.Scale = compensateOverflow(nodes, o.Width, c)
	diag.Cramped = crampedNodes(nodes, o.Width, c)

	laneH, tops, height := laneGeometry(len(ng.Lanes), o, need)
	lanes := make([]Lane, len(ng.Lanes))
	inset := c.Margin / 2
	for i, l := range ng.Lanes {
		lanes[i] = Lane{
			ID:     l.ID,
			Title:  l.Title,
			Index:  i,
			X:      inset,
			Top:    tops[i],
			Width:  o.Width - 2*inset,
			Height: laneH,
		}
	}
	ClampToLanes(nodes, lanes, o.LanePadding)

	m := &Model{
		Width:    o.Width,
		Height:   height,
		Metadata: ng.Metadata,
		Lanes:    lanes,
		Nodes:    nodes,
	}
	m.Bands, diag.DroppedBands = resolveBands(ng.Bands, lanes, laneIndex, o.LanePadding)
	m.Busses, diag.DroppedBusses = resolveBusses(ng.Busses, lanes, laneIndex, o.LanePadding)
	m.Notes = resolveNotes(ng.Notes, lanes, laneIndex)

	m.Edges, diag.DroppedEdges, diag.UnknownVias = RouteEdges(nodes, ng.Edges, m.Busses, c.StandOff)
	PlaceLabels(m.Edges, c)

	m.Diagnostics = diag
	return m
}

func resolveBands(in []graph.Band, lanes []Lane, laneIndex map[string]int, pad float64) ([]Band, []Dropped) {
	var (
		out     []Band
		dropped []Dropped
	)
	for _, b := range in {
		li, ok := laneIndex[b.Lane]
		if !ok {
			dropped = append(dropped, Dropped{ID: b.ID, Reason: ReasonUnknownLane})
			continue
		}
		l := lanes[li]
		out = append(out, Band{
			ID:    b.ID,
			Lane:  b.Lane,
			X:     l.X + pad,
			Y:     l.Top + b.Y,
			W:     l.Width - 2*pad,
			H:     b.H,
			Color: b.Color,
			Label: b.Label,
		})
	}
	return out, dropped
}

func resolveBusses(in []graph.Bus, lanes []Lane, laneIndex map[string]int, pad float64) ([]Bus, []Dropped) {
	bands := make([]graph.Band, len(in))
	for i, b := range in {
		bands[i] = graph.Band(b)
	}
	resolved, dropped := resolveBands(bands, lanes, laneIndex, pad)

	out := make([]Bus, len(resolved))
	for i, b := range resolved {
		out[i] = Bus{Band: b, CenterY: b.Y + b.H/2}
	}
	return out, dropped
}

func resolveNotes(in []graph.Note, lanes []Lane, laneIndex map[string]int) []Note {
	out := make([]Note, 0, len(in))
	for _, n := range in {
		note := Note{Lane: n.Lane, X: n.X, Y: n.Y, Text: n.Text}
		if li, ok := laneIndex[n.Lane]; ok {
			note.Y += lanes[li].Top
		}
		out = append(out, note)
	}
	return out
}
