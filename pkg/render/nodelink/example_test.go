package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
	"github.com/jbass698-121/aveva-diagram-style/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := graph.Graph{
		Lanes: []graph.Lane{{ID: "ops", Title: "Operations"}},
		Nodes: []graph.Node{
			{ID: "hmi", Lane: "ops", Title: "HMI"},
			{ID: "hist", Lane: "ops", Kind: graph.KindDatabase, Title: "Historian"},
		},
		Edges: []graph.Edge{{From: "hmi", To: "hist"}},
	}

	dot := nodelink.ToDOT(g, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") || strings.Contains(line, "subgraph") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// subgraph "cluster_ops" {
	// "hmi" -> "hist";
}
