package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode(a) error: %v", err)
	}
	if err := g.AddNode(Node{ID: ""}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(\"\") = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(a) again = %v, want ErrDuplicateNodeID", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
}

func TestAddEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})

	if err := g.AddEdge(Edge{From: "x", To: "b"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge(x->b) = %v, want ErrUnknownSourceNode", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge(a->x) = %v, want ErrUnknownTargetNode", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("AddEdge(a->b) error: %v", err)
	}
	if g.InDegree("b") != 1 || g.OutDegree("a") != 1 {
		t.Errorf("degrees: in(b)=%d out(a)=%d", g.InDegree("b"), g.OutDegree("a"))
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})

	g.RemoveEdge("a", "b")
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1 (only first parallel edge removed)", g.EdgeCount())
	}
	g.RemoveEdge("a", "b")
	g.RemoveEdge("a", "b")
	if g.EdgeCount() != 0 || g.InDegree("b") != 0 {
		t.Errorf("EdgeCount() = %d, InDegree(b) = %d", g.EdgeCount(), g.InDegree("b"))
	}
}

func TestNodesDeclarationOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"z", "m", "a", "q"} {
		_ = g.AddNode(Node{ID: id})
	}
	if got := NodeIDs(g.Nodes()); !slices.Equal(got, []string{"z", "m", "a", "q"}) {
		t.Errorf("Nodes() = %v", got)
	}
}

func TestSetRows(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddNode(Node{ID: "c"})

	g.SetRows(map[string]int{"b": 2, "c": 2})

	if got := NodeIDs(g.NodesInRow(2)); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("NodesInRow(2) = %v", got)
	}
	if got := g.RowIDs(); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("RowIDs() = %v", got)
	}
	if g.MaxRow() != 2 {
		t.Errorf("MaxRow() = %d, want 2", g.MaxRow())
	}
}

func TestSources(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "c"})
	_ = g.AddEdge(Edge{From: "a", To: "c"})

	if got := NodeIDs(g.Sources()); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Sources() = %v, want [b a]", got)
	}
}
