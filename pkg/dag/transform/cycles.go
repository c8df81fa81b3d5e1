package transform

import "github.com/jbass698-121/aveva-diagram-style/pkg/dag"

type visit uint8

const (
	unseen visit = iota
	onPath
	finished
)

// BreakCycles deletes every edge that closes a cycle and returns the number
// deleted. Roots are tried sources first, then the remaining nodes, both in
// declaration order, so repeated calls on equal graphs agree. A self-loop
// always counts as a cycle.
func BreakCycles(g *dag.DAG) int {
	state := make(map[string]visit, g.NodeCount())
	var closing []dag.Edge

	var walk func(id string)
	walk = func(id string) {
		state[id] = onPath
		for _, next := range g.Children(id) {
			if state[next] == onPath {
				closing = append(closing, dag.Edge{From: id, To: next})
			} else if state[next] == unseen {
				walk(next)
			}
		}
		state[id] = finished
	}

	roots := append(g.Sources(), g.Nodes()...)
	for _, n := range roots {
		if state[n.ID] == unseen {
			walk(n.ID)
		}
	}

	for _, e := range closing {
		g.RemoveEdge(e.From, e.To)
	}
	return len(closing)
}
