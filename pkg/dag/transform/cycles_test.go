package transform

import (
	"slices"
	"testing"
)

func TestBreakCycles(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		edges     [][2]string
		removed   int
		wantEdges int
	}{
		{"empty", nil, nil, 0, 0},
		{"single node", []string{"a"}, nil, 0, 0},
		{"no cycles", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}}, 0, 2},
		{"simple cycle", []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}}, 1, 1},
		{"triangle", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, 1, 2},
		{"self loop", []string{"a"}, [][2]string{{"a", "a"}}, 1, 0},
		{"diamond", []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}, 0, 4},
		{
			"two cycles",
			[]string{"a", "b", "c", "d"},
			[][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}},
			2, 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.ids, tt.edges)
			if got := BreakCycles(g); got != tt.removed {
				t.Errorf("BreakCycles() = %d, want %d", got, tt.removed)
			}
			if g.EdgeCount() != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), tt.wantEdges)
			}
			if len(Cycles(g)) != 0 {
				t.Errorf("Cycles() after BreakCycles = %v, want none", Cycles(g))
			}
		})
	}
}

func TestBreakCycles_AllowsFullRanking(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "b"}})
	BreakCycles(g)

	if unranked := AssignLayers(g); len(unranked) != 0 {
		t.Fatalf("unranked = %v, want none", unranked)
	}
	rows := rowsOf(g)
	if rows["a"] != 0 || rows["b"] != 1 || rows["c"] != 2 {
		t.Errorf("rows = %v, want a:0 b:1 c:2", rows)
	}
}

func TestCycles(t *testing.T) {
	g := build(t,
		[]string{"x", "b", "a", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "e"}, {"e", "c"}, {"x", "x"}, {"x", "a"}},
	)
	got := Cycles(g)
	want := [][]string{{"a", "b"}, {"c", "d", "e"}, {"x"}}

	if len(got) != len(want) {
		t.Fatalf("Cycles() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("Cycles()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCycles_Acyclic(t *testing.T) {
	g := build(t, []string{"a", "b"}, [][2]string{{"a", "b"}})
	if got := Cycles(g); got != nil {
		t.Errorf("Cycles() = %v, want nil", got)
	}
}
