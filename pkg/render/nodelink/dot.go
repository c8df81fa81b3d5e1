package nodelink

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
	"github.com/jbass698-121/aveva-diagram-style/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the kind and subtitle to node labels.
	Detailed bool
	// Theme supplies colors. The zero value selects render.Light.
	Theme *render.Theme
	// RankDir is the Graphviz rank direction. Defaults to "LR".
	RankDir string
}

var kindShapes = map[graph.Kind]string{
	graph.KindDatabase:   "cylinder",
	graph.KindStorage:    "folder",
	graph.KindCloud:      "ellipse",
	graph.KindEdge:       "hexagon",
	graph.KindNetwork:    "diamond",
	graph.KindSecurity:   "octagon",
	graph.KindMonitoring: "component",
	graph.KindServer:     "box3d",
}

// ToDOT converts a canonical graph to Graphviz DOT. Each lane becomes a
// cluster holding its nodes; nodes on undeclared lanes sit outside any
// cluster. Edges to undeclared nodes are skipped.
func ToDOT(g graph.Graph, opts Options) string {
	t := render.Light()
	if opts.Theme != nil {
		t = *opts.Theme
	}
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "LR"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", t.Background)
	if title := g.Metadata.Title; title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontcolor=%q;\n", title, t.Text)
	}
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=%q, color=%q, fontcolor=%q, fontsize=12];\n",
		t.Surface, t.Primary, t.Text)
	fmt.Fprintf(&buf, "  edge [color=%q, fontcolor=%q, fontsize=10];\n", t.Muted, t.Text)
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")

	byLane := make(map[string][]graph.Node)
	known := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		byLane[n.Lane] = append(byLane[n.Lane], n)
		known[n.ID] = true
	}

	laneIdx := g.LaneIndex()
	for i, l := range g.Lanes {
		if laneIdx[l.ID] != i {
			continue
		}
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph %q {\n", "cluster_"+l.ID)
		fmt.Fprintf(&buf, "    label=%q;\n", cmp.Or(l.Title, l.ID))
		fmt.Fprintf(&buf, "    style=\"rounded,filled\";\n    fillcolor=%q;\n    color=%q;\n", t.LaneFill(i), t.Grid)
		for _, n := range byLane[l.ID] {
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
		}
		buf.WriteString("  }\n")
		delete(byLane, l.ID)
	}

	for _, n := range g.Nodes {
		if _, orphan := byLane[n.Lane]; orphan {
			fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if !known[e.From] || !known[e.To] {
			continue
		}
		var attrs []string
		if e.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
		}
		if e.Style.OrSolid() == graph.StyleDashed {
			attrs = append(attrs, "style=dashed")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	title := n.DisplayTitle()
	if !detailed {
		return title
	}
	parts := []string{title, string(n.Kind.OrApp())}
	if n.Sub != "" {
		parts = append(parts, n.Sub)
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n graph.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if shape, ok := kindShapes[n.Kind]; ok {
		attrs = append(attrs, "shape="+shape)
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with one whose view box
// starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPNG renders a DOT graph as PNG via SVG rasterization.
// Graphviz text is not rasterized.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
