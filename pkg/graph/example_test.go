package graph_test

import (
	"fmt"
	"strings"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

func ExampleReadGraph() {
	input := `{
		"version": 1,
		"lanes": [{"id": "dmz", "title": "Perimeter"}],
		"nodes": [{"id": "gw", "lane": "dmz", "kind": "edge", "title": "Gateway"}]
	}`

	g, err := graph.ReadGraph(strings.NewReader(input))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Lanes:", len(g.Lanes))
	fmt.Println("First node:", g.Nodes[0].DisplayTitle(), g.Nodes[0].Kind)
	// Output:
	// Lanes: 1
	// First node: Gateway edge
}
