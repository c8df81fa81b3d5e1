package io

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

const canonicalJSON = `{
	"version": 1,
	"metadata": {"title": "Plant"},
	"lanes": [{"id": "dmz", "title": "DMZ"}, {"id": "ops", "title": "Ops"}],
	"nodes": [
		{"id": "gw", "lane": "dmz", "kind": "edge", "title": "Gateway"},
		{"id": "hist", "lane": "ops", "kind": "database", "title": "Historian", "w": 200}
	],
	"edges": [{"from": "gw", "to": "hist", "style": "dashed"}]
}`

const laneGroupedYAML = `
metadata:
  title: Plant
lanes:
  - id: dmz
    title: DMZ
    nodes:
      - {id: gw, kind: edge, title: Gateway}
  - id: ops
    title: Ops
    nodes:
      - {id: hist, kind: database, title: Historian}
edges:
  - {from: gw, to: hist}
`

const zoneGroupedJSON = `{
	"title": "Plant",
	"zones": [
		{"name": "Perimeter Network", "components": [{"name": "Web Gateway"}]},
		{"name": "Control", "components": [{"name": "Historian", "description": "PI"}, {"id": "plc", "name": "PLC", "kind": "server"}]}
	],
	"connections": [
		{"from": "Web Gateway", "to": "historian", "label": "https"},
		{"from": "historian", "to": "plc", "style": "dashed"}
	]
}`

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shape     Shape
		lanes     int
		nodes     int
		edges     int
		firstLane string
	}{
		{"canonical json", canonicalJSON, ShapeCanonical, 2, 2, 1, "dmz"},
		{"lane grouped yaml", laneGroupedYAML, ShapeLaneGrouped, 2, 2, 1, "dmz"},
		{"zone grouped json", zoneGroupedJSON, ShapeZoneGrouped, 2, 3, 2, "perimeter_network"},
		{"canonical yaml", "lanes: [{id: a, title: A}]\nnodes: [{id: n, lane: a, title: N}]\n", ShapeCanonical, 1, 1, 0, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, shape, err := Decode([]byte(tt.input))
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if shape != tt.shape {
				t.Errorf("shape = %s, want %s", shape, tt.shape)
			}
			if len(g.Lanes) != tt.lanes || len(g.Nodes) != tt.nodes || len(g.Edges) != tt.edges {
				t.Errorf("got %d lanes, %d nodes, %d edges", len(g.Lanes), len(g.Nodes), len(g.Edges))
			}
			if g.Lanes[0].ID != tt.firstLane {
				t.Errorf("first lane = %q, want %q", g.Lanes[0].ID, tt.firstLane)
			}
			if g.Version != graph.Version {
				t.Errorf("version = %d", g.Version)
			}
			for _, n := range g.Nodes {
				if n.Lane == "" {
					t.Errorf("node %s has no lane", n.ID)
				}
			}
		})
	}
}

func TestDecode_ZoneGrouped(t *testing.T) {
	g, _, err := Decode([]byte(zoneGroupedJSON))
	if err != nil {
		t.Fatal(err)
	}
	gw, _ := g.Node("web_gateway")
	if gw.Kind != graph.KindEdge || gw.Lane != "perimeter_network" {
		t.Errorf("gateway = %+v", gw)
	}
	hist, _ := g.Node("historian")
	if hist.Kind != graph.KindDatabase || hist.Sub != "PI" {
		t.Errorf("historian = %+v", hist)
	}
	if g.Edges[0].From != "web_gateway" || g.Edges[0].To != "historian" {
		t.Errorf("edge 0 = %+v", g.Edges[0])
	}
	if g.Edges[1].Style != graph.StyleDashed || g.Edges[0].Style != graph.StyleSolid {
		t.Errorf("styles = %q %q", g.Edges[0].Style, g.Edges[1].Style)
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, _, err := Decode([]byte(`{"foo": 1}`)); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("unknown shape err = %v", err)
	}
	if _, _, err := Decode([]byte(`{}`)); !errors.Is(err, ErrNoGraph) {
		t.Errorf("empty doc err = %v", err)
	}
	if _, _, err := Decode([]byte(`{"lanes": [`)); err == nil {
		t.Errorf("expected syntax error")
	}
}

func TestExtractBlock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"plain", "  {\"a\": 1}\n", `{"a": 1}`, nil},
		{"arch fence", "Here you go:\n```arch\n{\"a\": 1}\n```\nEnjoy.", `{"a": 1}`, nil},
		{"legacy fence", "```aveva-arch\n{\"b\": 2}\n```", `{"b": 2}`, nil},
		{"arch beats json", "```json\n{\"x\": 0}\n```\n```arch\n{\"a\": 1}\n```", `{"a": 1}`, nil},
		{"yaml fence", "```yaml\nlanes: []\n```", "lanes: []", nil},
		{"untagged", "```\n{\"u\": 1}\n```", `{"u": 1}`, nil},
		{"blank", "   ", "", ErrNoGraph},
		{"other language only", "```go\nfunc main() {}\n```", "", ErrNoGraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBlock(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	g, shape, err := Parse("Diagram:\n```arch\n" + canonicalJSON + "\n```")
	if err != nil || shape != ShapeCanonical || len(g.Nodes) != 2 {
		t.Errorf("Parse() = %d nodes, %s, %v", len(g.Nodes), shape, err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	g, _, err := Decode([]byte(canonicalJSON))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, name := range []string{"graph.json", "graph.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := ExportFile(g, path); err != nil {
				t.Fatalf("ExportFile() error: %v", err)
			}
			data, _ := os.ReadFile(path)
			if FormatForPath(path) == FormatYAML && strings.HasPrefix(string(data), "{") {
				t.Errorf("yaml file written as json")
			}

			back, shape, err := ImportFile(path)
			if err != nil {
				t.Fatalf("ImportFile() error: %v", err)
			}
			if shape != ShapeCanonical || len(back.Nodes) != 2 || *back.Nodes[1].W != 200 {
				t.Errorf("round trip lost data: %+v", back)
			}
			if back.Edges[0].Style != graph.StyleDashed {
				t.Errorf("edge style = %q", back.Edges[0].Style)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Perimeter Network (DMZ)": "perimeter_network_dmz",
		"  IO Server B ":          "io_server_b",
		"":                        "",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestImportFile_Missing(t *testing.T) {
	if _, _, err := ImportFile(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not exist", err)
	}
}
