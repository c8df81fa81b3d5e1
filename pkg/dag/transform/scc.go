package transform

import (
	"slices"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/jbass698-121/aveva-diagram-style/pkg/dag"
)

// Cycles returns the cyclic strongly connected components of g: every
// component with more than one node, plus single nodes with a self-loop.
//
// Each component is sorted by ID and the list is sorted by its first ID, so
// the output does not depend on traversal order.
func Cycles(g *dag.DAG) [][]string {
	nodes := g.Nodes()
	ids := make(map[string]int64, len(nodes))
	names := make([]string, len(nodes))

	dg := simple.NewDirectedGraph()
	for i, n := range nodes {
		ids[n.ID] = int64(i)
		names[i] = n.ID
		dg.AddNode(simple.Node(i))
	}

	selfLoop := make(map[string]bool)
	for _, e := range g.Edges() {
		if e.From == e.To {
			selfLoop[e.From] = true
			continue
		}
		dg.SetEdge(dg.NewEdge(simple.Node(ids[e.From]), simple.Node(ids[e.To])))
	}

	var out [][]string
	for _, comp := range topo.TarjanSCC(dg) {
		if len(comp) == 1 && !selfLoop[names[comp[0].ID()]] {
			continue
		}
		members := make([]string, len(comp))
		for i, n := range comp {
			members[i] = names[n.ID()]
		}
		slices.Sort(members)
		out = append(out, members)
	}
	slices.SortFunc(out, func(a, b []string) int {
		return strings.Compare(a[0], b[0])
	})
	return out
}
