// Package layout turns a canonical [graph.Graph] into a fully positioned,
// routed [Model].
//
// # Overview
//
// The engine is a fixed pipeline of small passes:
//
//  1. [Normalize] drops nodes on undeclared lanes and snaps sizes to the grid.
//  2. [AssignRanks] layers nodes by longest path; rank becomes the column.
//  3. The lane engine stacks co-ranked nodes of a lane vertically and
//     rescales x positions when the widest column would overflow the canvas.
//  4. [ClampToLanes] forces every node into its lane's padded interior.
//  5. [RouteEdges] computes orthogonal paths, optionally through a bus.
//  6. [PlaceLabels] spreads colliding edge labels apart.
//
// [Build] runs all of them and is the normal entry point:
//
//	m := layout.Build(g, layout.WithSize(1400, 720))
//	for _, n := range m.Nodes {
//	    fmt.Println(n.ID, n.X, n.Y)
//	}
//
// # Coordinates
//
// Every resolved x, y, w and h is a multiple of [Grid]. Node Y in the model is
// absolute (canvas) while LocalY is relative to the lane top. Edge points and
// label positions are absolute.
//
// # Failure Semantics
//
// Nothing in this package returns an error. Bad references are dropped and
// reported in [Diagnostics]; missing geometry is defaulted; cyclic nodes get
// the fallback rank. A Build call is a pure function of its input and options
// and is safe to run concurrently on independent graphs.
package layout
