package nodelink

import (
	"strings"
	"testing"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
	"github.com/jbass698-121/aveva-diagram-style/pkg/render"
)

func sample() graph.Graph {
	return graph.Graph{
		Metadata: graph.Metadata{Title: "Plant"},
		Lanes:    []graph.Lane{{ID: "dmz", Title: "DMZ"}, {ID: "plant"}},
		Nodes: []graph.Node{
			{ID: "gw", Lane: "dmz", Kind: graph.KindEdge, Title: "Gateway"},
			{ID: "db", Lane: "plant", Kind: graph.KindDatabase, Title: "Historian", Sub: "SQL"},
			{ID: "stray", Lane: "nowhere"},
		},
		Edges: []graph.Edge{
			{From: "gw", To: "db", Style: graph.StyleDashed, Label: "opc ua"},
			{From: "db", To: "stray"},
			{From: "gw", To: "ghost"},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		"digraph G",
		"rankdir=LR",
		`subgraph "cluster_dmz"`,
		`label="DMZ"`,
		`label="plant"`,
		`"gw" [label="Gateway", shape=hexagon]`,
		`"db" [label="Historian", shape=cylinder]`,
		`"stray" [label="stray"]`,
		`"gw" -> "db" [label="opc ua", style=dashed]`,
		`"db" -> "stray";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "ghost") {
		t.Error("edge to undeclared node should be skipped")
	}
}

func TestToDOT_ClusterMembership(t *testing.T) {
	dot := ToDOT(sample(), Options{})
	start := strings.Index(dot, `subgraph "cluster_dmz"`)
	end := start + strings.Index(dot[start:], "}")
	if !strings.Contains(dot[start:end], `"gw"`) {
		t.Error("gw should be inside its lane cluster")
	}
	if strings.Contains(dot[start:end], `"db"`) {
		t.Error("db should not be inside the dmz cluster")
	}
}

func TestToDOT_Options(t *testing.T) {
	dark := render.Dark()
	dot := ToDOT(sample(), Options{Theme: &dark, RankDir: "TB"})
	if !strings.Contains(dot, "rankdir=TB") {
		t.Error("rank direction ignored")
	}
	if !strings.Contains(dot, dark.Background) {
		t.Error("theme background ignored")
	}
}

func TestFmtLabel(t *testing.T) {
	n := graph.Node{ID: "db", Kind: graph.KindDatabase, Title: "Historian", Sub: "SQL"}
	if got := fmtLabel(n, false); got != "Historian" {
		t.Errorf("simple label = %q", got)
	}
	if got := fmtLabel(n, true); got != "Historian\ndatabase\nSQL" {
		t.Errorf("detailed label = %q", got)
	}
	if got := fmtLabel(graph.Node{ID: "x", Kind: "widget"}, true); got != "x\napp" {
		t.Errorf("unknown kind label = %q", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %q, want %q", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("input without a view box should be unchanged")
	}
}
