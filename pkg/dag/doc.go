// Package dag provides the directed graph used to rank diagram nodes.
//
// # Overview
//
// The layout engine stratifies nodes into columns ("rows" in this package)
// by topological depth. This package holds the adjacency structure that
// ranking walks: nodes in declaration order, edges in insertion order, and a
// row index rebuilt by [DAG.SetRows].
//
// Despite the name, a DAG may contain cycles while it is being built; the
// transform subpackage either tolerates them (ranking falls back to a default
// row) or removes back edges when asked to.
//
// # Basic Usage
//
//	g := dag.New()
//	_ = g.AddNode(dag.Node{ID: "gw", Lane: "dmz"})
//	_ = g.AddNode(dag.Node{ID: "hist", Lane: "plant"})
//	_ = g.AddEdge(dag.Edge{From: "gw", To: "hist"})
//
// # Determinism
//
// Every accessor that returns a collection returns it in a stable order:
// nodes by declaration, edges by insertion, children and parents by the
// order their edges were added. Two graphs built from the same input are
// traversed identically.
package dag
