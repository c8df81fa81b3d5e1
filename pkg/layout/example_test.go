package layout_test

import (
	"fmt"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
	"github.com/jbass698-121/aveva-diagram-style/pkg/layout"
)

func ExampleBuild() {
	g := graph.Graph{
		Lanes: []graph.Lane{{ID: "dmz", Title: "DMZ"}, {ID: "plant", Title: "Plant"}},
		Nodes: []graph.Node{
			{ID: "gw", Lane: "dmz", Kind: graph.KindEdge, Title: "Gateway"},
			{ID: "hist", Lane: "plant", Kind: graph.KindDatabase, Title: "Historian"},
		},
		Edges: []graph.Edge{{From: "gw", To: "hist", Label: "opc ua"}},
	}

	m := layout.Build(g)
	for _, n := range m.Nodes {
		fmt.Printf("%s rank=%d x=%v y=%v\n", n.ID, n.Rank, n.X, n.Y)
	}
	fmt.Println("route:", m.Edges[0].Points)
	// Output:
	// gw rank=0 x=80 y=136
	// hist rank=1 x=480 y=448
	// route: [{320 176} {340 176} {340 488} {480 488}]
}

func ExampleBuild_diagnostics() {
	g := graph.Graph{
		Lanes: []graph.Lane{{ID: "l"}},
		Nodes: []graph.Node{
			{ID: "a", Lane: "l"},
			{ID: "b", Lane: "l"},
			{ID: "lost", Lane: "unknown"},
		},
		Edges: []graph.Edge{{From: "a", To: "b"}, {From: "b", To: "a"}},
	}

	d := layout.Build(g).Diagnostics
	fmt.Println("dropped:", d.DroppedNodes)
	fmt.Println("unranked:", d.Unranked)
	// Output:
	// dropped: [{lost unknown lane}]
	// unranked: [a b]
}
