package extract

import (
	"reflect"
	"slices"
	"testing"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

func titles(nodes []graph.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Title
	}
	return out
}

func TestExtract(t *testing.T) {
	text := "Historian connects to gateway. Gateway -> cloud. The plant uses a firewall in the DMZ."
	g := Extract(text)

	if len(g.Lanes) != 1 || g.Lanes[0].ID != "perimeter_network" {
		t.Fatalf("lanes = %v", g.Lanes)
	}
	if got, want := titles(g.Nodes), []string{"Historian", "Gateway", "Cloud", "Firewall", "DMZ"}; !slices.Equal(got, want) {
		t.Errorf("titles = %v, want %v", got, want)
	}
	for _, n := range g.Nodes {
		if n.Lane != "perimeter_network" {
			t.Errorf("%s on lane %q", n.ID, n.Lane)
		}
	}
	if g.Nodes[0].Kind != graph.KindDatabase || g.Nodes[2].Kind != graph.KindCloud {
		t.Errorf("kinds = %s, %s", g.Nodes[0].Kind, g.Nodes[2].Kind)
	}

	want := []graph.Edge{
		{From: "database_historian_0", To: "edge_gateway_1", Style: graph.StyleSolid, Label: "connects"},
		{From: "edge_gateway_1", To: "cloud_cloud_2", Style: graph.StyleSolid, Label: "connects"},
	}
	if !reflect.DeepEqual(g.Edges, want) {
		t.Errorf("edges = %v, want %v", g.Edges, want)
	}
	if len(g.Bands) != 1 || len(g.Busses) != 1 || g.Busses[0].ID != "perimeter_bus" {
		t.Errorf("bands = %v, busses = %v", g.Bands, g.Busses)
	}
}

func TestExtract_Details(t *testing.T) {
	g := Extract(`Add an engineering workstation (Windows 11) to the DMZ.`)
	if len(g.Nodes) == 0 || g.Nodes[0].Sub != "Windows 11" {
		t.Errorf("nodes = %+v", g.Nodes)
	}
	g = Extract(`Add a historian.`)
	if len(g.Nodes) != 1 || g.Nodes[0].Sub != "database component" {
		t.Errorf("nodes = %+v", g.Nodes)
	}
}

func TestExtract_Defaults(t *testing.T) {
	g := Extract("")

	if len(g.Lanes) != 5 || len(g.Bands) != 5 || len(g.Busses) != 3 {
		t.Errorf("lanes %d bands %d busses %d", len(g.Lanes), len(g.Bands), len(g.Busses))
	}
	if len(g.Nodes) != len(defaultNodes) {
		t.Errorf("nodes = %d, want %d", len(g.Nodes), len(defaultNodes))
	}
	want := []graph.Edge{
		{From: "rds_clients", To: "historian_b", Style: graph.StyleSolid, Label: "data"},
		{From: "historian_b", To: "engineering_client", Style: graph.StyleDashed, Label: "network"},
		{From: "engineering_client", To: "io_server_b", Style: graph.StyleSolid, Label: "data"},
		{From: "io_server_c", To: "safety", Style: graph.StyleDashed, Label: "network"},
	}
	if !reflect.DeepEqual(g.Edges, want) {
		t.Errorf("edges = %v, want %v", g.Edges, want)
	}
}

func TestExtract_AddsLanesForDefaultNodes(t *testing.T) {
	g := Extract("Supervisory layer only")

	if len(g.Lanes) != 5 || g.Lanes[0].ID != "supervisory_network" {
		t.Errorf("lanes = %v", g.Lanes)
	}
	lanes := g.LaneIndex()
	for _, n := range g.Nodes {
		if _, ok := lanes[n.Lane]; !ok {
			t.Errorf("node %s references missing lane %s", n.ID, n.Lane)
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	text := "Our SCADA server sends to the historian. Clients talk to the API gateway in the DMZ."
	a, b := Extract(text), Extract(text)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Extract is not deterministic")
	}
}

func TestWithMetadata(t *testing.T) {
	x := New(WithMetadata(graph.Metadata{Title: "Plant", Theme: graph.ThemeDark}))
	if g := x.Extract("historian"); g.Metadata.Title != "Plant" || g.Metadata.Theme != graph.ThemeDark {
		t.Errorf("metadata = %+v", g.Metadata)
	}
}
