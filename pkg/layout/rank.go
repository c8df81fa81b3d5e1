package layout

import (
	"github.com/jbass698-121/aveva-diagram-style/pkg/dag"
	"github.com/jbass698-121/aveva-diagram-style/pkg/dag/transform"
	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

// DefaultRank is the rank given to nodes the topological pass cannot reach.
const DefaultRank = transform.DefaultRank

// AssignRanks computes the longest-path rank of every node and returns the
// IDs that fell back to DefaultRank because of a cycle.
//
// Edges with a missing endpoint are ignored. For duplicate node IDs the
// first declaration is ranked and later ones share its rank. The result
// always has an entry for every node.
func AssignRanks(nodes []graph.Node, edges []graph.Edge) (map[string]int, []string) {
	r := rankGraph(nodes, edges, false)
	return r.ranks, r.unranked
}

type rankResult struct {
	ranks     map[string]int
	unranked  []string
	cycles    [][]string
	backEdges int
}

func rankGraph(nodes []graph.Node, edges []graph.Edge, breakCycles bool) rankResult {
	g := dag.New()
	for _, n := range nodes {
		_ = g.AddNode(dag.Node{ID: n.ID, Lane: n.Lane})
	}
	for _, e := range edges {
		_ = g.AddEdge(dag.Edge{From: e.From, To: e.To})
	}

	var r rankResult
	r.cycles = transform.Cycles(g)
	if breakCycles && len(r.cycles) > 0 {
		r.backEdges = transform.BreakCycles(g)
	}
	r.unranked = transform.AssignLayers(g)

	r.ranks = make(map[string]int, g.NodeCount())
	for _, n := range g.Nodes() {
		r.ranks[n.ID] = n.Row
	}
	return r
}
