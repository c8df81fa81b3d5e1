package dag_test

import (
	"fmt"

	"github.com/jbass698-121/aveva-diagram-style/pkg/dag"
)

func ExampleDAG_traversal() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "gateway", Lane: "dmz"})
	_ = g.AddNode(dag.Node{ID: "historian", Lane: "plant"})
	_ = g.AddNode(dag.Node{ID: "scada", Lane: "plant"})
	_ = g.AddEdge(dag.Edge{From: "gateway", To: "historian"})
	_ = g.AddEdge(dag.Edge{From: "gateway", To: "scada"})

	fmt.Println("Children of gateway:", g.Children("gateway"))
	fmt.Println("Parents of scada:", g.Parents("scada"))
	// Output:
	// Children of gateway: [historian scada]
	// Parents of scada: [gateway]
}
