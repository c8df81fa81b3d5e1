package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
	"github.com/jbass698-121/aveva-diagram-style/pkg/layout"
	"github.com/jbass698-121/aveva-diagram-style/pkg/render"
)

func testModel() *layout.Model {
	g := graph.Graph{
		Metadata: graph.Metadata{Title: "Plant <A&B>", Subtitle: "Level 3", Env: "prod"},
		Lanes:    []graph.Lane{{ID: "dmz", Title: "DMZ"}, {ID: "plant", Title: "Plant"}},
		Nodes: []graph.Node{
			{ID: "gw", Lane: "dmz", Kind: graph.KindEdge, Title: "Gateway", Sub: "opc"},
			{ID: "hist", Lane: "plant", Kind: graph.KindDatabase, Title: "Historian"},
		},
		Edges:  []graph.Edge{{From: "gw", To: "hist", Style: graph.StyleDashed, Label: "opc ua"}},
		Busses: []graph.Bus{{ID: "bus", Lane: "plant", Y: 200, H: 8, Label: "Process LAN"}},
		Notes:  []graph.Note{{X: 40, Y: 700, Text: "note"}},
	}
	return layout.Build(g)
}

func TestRenderSVG_WellFormed(t *testing.T) {
	svg := RenderSVG(testModel())
	dec := xml.NewDecoder(bytes.NewReader(svg))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("invalid XML: %v\n%s", err, svg)
		}
	}
}

func TestRenderSVG_Content(t *testing.T) {
	m := testModel()
	s := string(RenderSVG(m))

	for _, want := range []string{
		`viewBox="0 0 1400.0 720.0"`,
		`Plant &lt;A&amp;B&gt;`,
		`>Level 3<`,
		`>PROD<`,
		`>DMZ<`,
		`>Gateway<`,
		`>opc ua<`,
		`>Process LAN<`,
		`>note<`,
		`id="node-gw"`,
		`stroke-dasharray="6 4"`,
		`<polygon`,
		render.Light().Success,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if got := strings.Count(s, "<polyline"); got != len(m.Edges) {
		t.Errorf("polylines = %d, want %d", got, len(m.Edges))
	}
}

func TestRenderSVG_Options(t *testing.T) {
	m := testModel()
	plain := string(RenderSVG(m, WithoutIcons(), WithoutHeader(), WithTheme(render.Dark())))

	if strings.Contains(plain, "<g transform") {
		t.Error("icons should be omitted")
	}
	if strings.Contains(plain, ">PROD<") || strings.Contains(plain, "Level 3") {
		t.Error("header should be omitted")
	}
	if !strings.Contains(plain, render.Dark().Background) {
		t.Error("dark background not used")
	}
}

func TestRenderSVG_MetadataTheme(t *testing.T) {
	m := testModel()
	m.Metadata.Theme = "dark"
	if s := string(RenderSVG(m)); !strings.Contains(s, render.Dark().Background) {
		t.Error("metadata theme ignored")
	}
}

func TestArrowHead(t *testing.T) {
	got := arrowHead(layout.Point{X: 0, Y: 0}, layout.Point{X: 20, Y: 0}, 10)
	want := "20.0,0.0 10.0,3.5 10.0,-3.5"
	if got != want {
		t.Errorf("arrowHead = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width float64
		want  string
	}{
		{"short", 200, "short"},
		{"a very long component title", 60, "a very l.."},
		{"abcdef", 1, "a.."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width, 10); got != tt.want {
			t.Errorf("truncate(%q, %v) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	m := testModel()
	data, err := RenderPNG(m, WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != int(m.Width) || b.Dy() != int(m.Height) {
		t.Errorf("size = %dx%d, want %vx%v", b.Dx(), b.Dy(), m.Width, m.Height)
	}
}

func TestRenderJSON(t *testing.T) {
	m := testModel()
	data, err := RenderJSON(m, WithJSONTheme("light"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var head struct {
		Version int    `json:"version"`
		Theme   string `json:"theme"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		t.Fatal(err)
	}
	if head.Version != JSONVersion || head.Theme != "light" {
		t.Errorf("header = %+v", head)
	}

	back, err := layout.ReadModel(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadModel: %v", err)
	}
	if len(back.Nodes) != len(m.Nodes) || back.Width != m.Width {
		t.Errorf("round trip lost data: %+v", back)
	}

	compact, _ := RenderJSON(m, WithJSONCompact())
	if bytes.Contains(compact, []byte("\n  ")) {
		t.Error("compact output is indented")
	}
}
