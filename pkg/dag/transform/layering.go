package transform

import (
	"slices"

	"github.com/jbass698-121/aveva-diagram-style/pkg/dag"
)

// DefaultRank is the row given to nodes that the topological traversal never
// reaches, which happens exactly for nodes in or downstream of a cycle.
const DefaultRank = 1

// AssignLayers assigns nodes to rows based on their depth in the graph and
// returns the IDs of nodes that could not be ranked, sorted.
//
// AssignLayers uses a longest-path algorithm via topological sort (Kahn's
// algorithm). Each node is placed at one plus the maximum row of any of its
// parents, so:
//   - Source nodes (no incoming edges) are at row 0
//   - Every edge between ranked nodes points strictly to a higher row
//   - A node fed by two paths of different length takes the deeper row
//
// Existing row assignments in the DAG are overwritten.
//
// # Algorithm
//
//  1. Seed the queue with every zero in-degree node, in declaration order
//  2. Pop a node; each child gets max(row so far, current row + 1)
//  3. Decrement the child's in-degree; enqueue it when it reaches zero
//  4. Repeat until the queue is empty
//
// # Cycles
//
// Nodes never dequeued keep no row from the traversal. They are assigned
// [DefaultRank] regardless of any partial depth they accumulated, and are
// returned to the caller. The assignment is therefore always total.
//
// Time complexity is O(V + E).
func AssignLayers(g *dag.DAG) []string {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	rows := make(map[string]int, len(nodes))
	done := make(map[string]bool, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		done[curr] = true

		for _, child := range g.Children(curr) {
			if row := rows[curr] + 1; row > rows[child] {
				rows[child] = row
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	var unranked []string
	for _, n := range nodes {
		if !done[n.ID] {
			rows[n.ID] = DefaultRank
			unranked = append(unranked, n.ID)
		}
	}
	slices.Sort(unranked)

	g.SetRows(rows)
	return unranked
}
