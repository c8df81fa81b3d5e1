// Package transform ranks a [dag.DAG] for column layout.
//
// # Layer Assignment
//
// [AssignLayers] computes the row (rank) of each node using a longest-path
// topological traversal. Rows become columns in the lane layout: a node is
// always placed at least one column to the right of every ranked parent.
//
// # Cycles
//
// Architecture graphs are not guaranteed to be acyclic. Request/response
// pairs ("A talks to B, B answers A") are common. Nodes caught in a cycle
// never reach zero in-degree, so [AssignLayers] gives them [DefaultRank] and
// reports them as unranked instead of failing.
//
// Callers that prefer true layering can run [BreakCycles] first, which
// removes DFS back edges. [Cycles] lists the strongly connected components
// responsible for the fallback, for diagnostics.
//
// # Usage
//
//	transform.BreakCycles(g) // optional
//	unranked := transform.AssignLayers(g)
//	for _, c := range transform.Cycles(g) { ... }
package transform
