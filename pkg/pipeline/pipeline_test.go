package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/jbass698-121/aveva-diagram-style/pkg/cache"
	"github.com/jbass698-121/aveva-diagram-style/pkg/errors"
	"github.com/jbass698-121/aveva-diagram-style/pkg/layout"
)

const twoLanes = `{
  "metadata": {"title": "Payments", "env": "prod"},
  "lanes": [{"id": "dmz", "title": "DMZ"}, {"id": "core", "title": "Core"}],
  "nodes": [
    {"id": "gw", "lane": "dmz", "kind": "network", "title": "Gateway"},
    {"id": "api", "lane": "core", "kind": "app", "title": "API"},
    {"id": "db", "lane": "core", "kind": "database", "title": "Ledger"}
  ],
  "edges": [
    {"from": "gw", "to": "api", "label": "https"},
    {"from": "api", "to": "db", "style": "dashed"}
  ]
}`

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender() = %v", err)
	}
	d := layout.DefaultOptions()
	if opts.Engine != EngineLanes {
		t.Errorf("Engine = %q, want %q", opts.Engine, EngineLanes)
	}
	if opts.Width != d.Width || opts.Height != d.Height {
		t.Errorf("size = %vx%v, want %vx%v", opts.Width, opts.Height, d.Width, d.Height)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestValidateForRender(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"defaults", Options{}, ""},
		{"all formats", Options{Formats: []string{"svg", "png", "json", "dot"}}, ""},
		{"nodelink", Options{Engine: EngineNodelink}, ""},
		{"dark theme", Options{Theme: "dark"}, ""},
		{"bad engine", Options{Engine: "tower"}, errors.ErrCodeInvalidEngine},
		{"bad format", Options{Formats: []string{"pdf"}}, errors.ErrCodeInvalidFormat},
		{"bad theme", Options{Theme: "neon"}, errors.ErrCodeInvalidTheme},
		{"bad scale", Options{Scale: 20}, errors.ErrCodeInvalidSize},
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidSize},
		{"negative gap", Options{LaneGap: -8}, errors.ErrCodeInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestFormatsNormalized(t *testing.T) {
	in := []string{" SVG", "png", "svg"}
	opts := Options{Formats: in}
	opts.SetRenderDefaults()
	if got := strings.Join(opts.Formats, ","); got != "svg,png" {
		t.Errorf("Formats = %q, want svg,png", got)
	}
	if in[0] != " SVG" {
		t.Error("caller slice was modified")
	}
}

func TestKeyOpts(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	k := opts.LayoutKeyOpts()
	if !k.Autolayout || k.Constants != "" {
		t.Errorf("default LayoutKeyOpts = %+v", k)
	}
	opts.Constants.NodeWidth = 200
	if opts.LayoutKeyOpts().Constants == "" {
		t.Error("custom constants should change the layout key")
	}

	if a := opts.ArtifactKeyOpts(FormatSVG); a.Scale != 0 || a.Format != "lanes/svg" {
		t.Errorf("svg ArtifactKeyOpts = %+v", a)
	}
	if a := opts.ArtifactKeyOpts(FormatPNG); a.Scale != DefaultScale {
		t.Errorf("png ArtifactKeyOpts = %+v", a)
	}
	if a := opts.ArtifactKeyOpts(FormatJSON); a.Format != FormatJSON {
		t.Errorf("json ArtifactKeyOpts = %+v", a)
	}
}

func TestExecute(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), []byte(twoLanes), Options{
		Formats: []string{FormatSVG, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() = %v", err)
	}

	if res.Shape != "canonical" {
		t.Errorf("Shape = %q", res.Shape)
	}
	if res.Stats.NodeCount != 3 || res.Stats.EdgeCount != 2 || res.Stats.LaneCount != 2 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.GraphHash == "" {
		t.Error("GraphHash should be set")
	}
	if len(res.Model.Nodes) != 3 || len(res.Model.Edges) != 2 {
		t.Errorf("model has %d nodes, %d edges", len(res.Model.Nodes), len(res.Model.Edges))
	}

	svg := string(res.Artifacts[FormatSVG])
	for _, want := range []string{"<svg", "Payments", `id="node-gw"`, "PROD"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	m, err := layout.ReadModel(bytes.NewReader(res.Artifacts[FormatJSON]))
	if err != nil {
		t.Fatalf("ReadModel() = %v", err)
	}
	if len(m.Lanes) != 2 {
		t.Errorf("json lanes = %d", len(m.Lanes))
	}
	if dot := string(res.Artifacts[FormatDOT]); !strings.Contains(dot, "cluster_dmz") {
		t.Errorf("dot missing lane cluster:\n%s", dot)
	}
}

func TestExecutePNG(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), []byte(twoLanes), Options{
		Formats: []string{FormatPNG},
		Scale:   1,
	})
	if err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact lacks PNG signature")
	}
}

func TestExecuteCaches(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(c)
	defer r.Close()

	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, []byte(twoLanes), opts)
	if err != nil {
		t.Fatalf("first Execute() = %v", err)
	}
	if first.CacheInfo != (CacheInfo{}) {
		t.Errorf("first run CacheInfo = %+v, want all misses", first.CacheInfo)
	}

	second, err := r.Execute(ctx, []byte(twoLanes), opts)
	if err != nil {
		t.Fatalf("second Execute() = %v", err)
	}
	if second.CacheInfo != (CacheInfo{DecodeHit: true, LayoutHit: true, RenderHit: true}) {
		t.Errorf("second run CacheInfo = %+v, want all hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, []byte(twoLanes), opts)
	if err != nil {
		t.Fatalf("refresh Execute() = %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh run CacheInfo = %+v", third.CacheInfo)
	}
}

func TestExecuteDecodeErrors(t *testing.T) {
	r := quietRunner(nil)
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"blank", "   ", errors.ErrCodeNoGraph},
		{"unknown shape", `{"foo": 1}`, errors.ErrCodeParseFailed},
		{"syntax", `{"lanes": [`, errors.ErrCodeParseFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), []byte(tt.input), Options{})
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(c)
	ctx := context.Background()

	text := "The API gateway connects to the Postgres database."
	g, hit, err := r.Extract(ctx, text, false)
	if err != nil {
		t.Fatalf("Extract() = %v", err)
	}
	if hit || len(g.Nodes) == 0 || len(g.Lanes) == 0 {
		t.Errorf("Extract() hit=%v nodes=%d lanes=%d", hit, len(g.Nodes), len(g.Lanes))
	}
	if _, hit, _ = r.Extract(ctx, text, false); !hit {
		t.Error("second Extract() should hit the cache")
	}
	if _, _, err := r.Extract(ctx, "", false); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("empty text err = %v", err)
	}
}
