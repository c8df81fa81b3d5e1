package sink

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
	"github.com/jbass698-121/aveva-diagram-style/pkg/layout"
	"github.com/jbass698-121/aveva-diagram-style/pkg/render"
)

const (
	dashPattern  = "6 4"
	laneRadius   = 6.0
	laneTitleX   = 10.0
	laneTitleY   = 25.0
	nodeIconSize = 20.0
	nodePadX     = 12.0
	charWidth    = 0.6
	badgeHeight  = 20.0
	headerX      = 40.0
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme    render.Theme
	themeSet bool
	icons    bool
	header   bool
}

// WithTheme draws with t instead of the theme named in the model metadata.
func WithTheme(t render.Theme) SVGOption {
	return func(r *svgRenderer) { r.theme = t; r.themeSet = true }
}

// WithoutIcons omits the per-kind node icons.
func WithoutIcons() SVGOption { return func(r *svgRenderer) { r.icons = false } }

// WithoutHeader omits the title, subtitle and environment badge.
func WithoutHeader() SVGOption { return func(r *svgRenderer) { r.header = false } }

func newSVGRenderer(m *layout.Model, opts ...SVGOption) svgRenderer {
	r := svgRenderer{icons: true, header: true}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.themeSet {
		r.theme, _ = render.ResolveTheme("", m.Metadata)
	}
	return r
}

// RenderSVG draws the model as a standalone SVG document. All styling is
// inline so the output rasterizes without a CSS engine.
func RenderSVG(m *layout.Model, opts ...SVGOption) []byte {
	r := newSVGRenderer(m, opts...)
	t := r.theme

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		m.Width, m.Height, m.Width, m.Height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", m.Width, m.Height, t.Background)

	if r.header {
		renderBadge(&buf, m, t)
	}
	for i, l := range m.Lanes {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.0f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			l.X, l.Top, l.Width, l.Height, laneRadius, t.LaneFill(i), t.Grid)
	}
	for _, b := range m.Bands {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s" fill-opacity="0.35"/>`+"\n",
			b.X, b.Y, b.W, b.H, cmp.Or(b.Color, t.Secondary))
	}
	for _, b := range m.Busses {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s"/>`+"\n",
			b.X, b.Y, b.W, b.H, b.H/2, cmp.Or(b.Color, t.Muted))
	}
	for _, e := range m.Edges {
		renderEdge(&buf, e, t)
	}
	for _, n := range m.Nodes {
		fmt.Fprintf(&buf, `  <rect id="node-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.0f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			escape(n.ID), n.X, n.Y, n.W, n.H, t.NodeRadius, t.Surface, t.Primary, t.NodeStroke)
		if r.icons {
			writeIcon(&buf, n.Kind, n.Right()-nodeIconSize-8, n.Y+8, nodeIconSize, t.Primary, t.NodeStroke*0.75)
		}
	}
	for _, run := range textRuns(m, t, r.header, r.icons) {
		renderText(&buf, run, t)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderEdge(buf *bytes.Buffer, e layout.Edge, t render.Theme) {
	if len(e.Points) < 2 {
		return
	}
	pts := make([]string, len(e.Points))
	for i, p := range e.Points {
		pts[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	dash := ""
	if e.Style == graph.StyleDashed {
		dash = fmt.Sprintf(` stroke-dasharray="%s"`, dashPattern)
	}
	fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linejoin="round"%s/>`+"\n",
		strings.Join(pts, " "), t.Muted, t.EdgeStroke, dash)

	a, b := e.Points[len(e.Points)-2], e.Points[len(e.Points)-1]
	fmt.Fprintf(buf, `  <polygon points="%s" fill="%s"/>`+"\n", arrowHead(a, b, t.ArrowSize), t.Muted)
}

// arrowHead returns the polygon points of a head pointing from a to b with its
// tip on b.
func arrowHead(a, b layout.Point, size float64) string {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		dx, dy, l = 1, 0, 1
	}
	ux, uy := dx/l, dy/l
	bx, by := b.X-ux*size, b.Y-uy*size
	half := size * 0.35
	return fmt.Sprintf("%.1f,%.1f %.1f,%.1f %.1f,%.1f",
		b.X, b.Y, bx-uy*half, by+ux*half, bx+uy*half, by-ux*half)
}

func renderBadge(buf *bytes.Buffer, m *layout.Model, t render.Theme) {
	env := m.Metadata.Env
	if env == "" {
		return
	}
	w := badgeWidth(env)
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s"/>`+"\n",
		m.Width-headerX-w, 16.0, w, badgeHeight, badgeHeight/2, t.EnvColor(env))
}

func badgeWidth(env string) float64 { return float64(len(env))*10*charWidth + 20 }

// textRun is one line of text. Text is emitted after shapes so it stays on
// top, and the PNG sink draws the same runs over the raster.
type textRun struct {
	X, Y   float64
	Text   string
	Size   float64
	Bold   bool
	Fill   string
	Anchor string // "start" or "middle"
}

func textRuns(m *layout.Model, t render.Theme, header, icons bool) []textRun {
	var runs []textRun
	if header {
		runs = append(runs, textRun{X: headerX, Y: 30, Text: cmp.Or(m.Metadata.Title, "Architecture Diagram"), Size: 20, Bold: true, Fill: t.Text})
		if m.Metadata.Subtitle != "" {
			runs = append(runs, textRun{X: headerX, Y: 50, Text: m.Metadata.Subtitle, Size: 14, Fill: t.Muted})
		}
		if env := m.Metadata.Env; env != "" {
			w := badgeWidth(env)
			runs = append(runs, textRun{X: m.Width - headerX - w/2, Y: 30, Text: strings.ToUpper(env), Size: 10, Bold: true, Fill: "#FFFFFF", Anchor: "middle"})
		}
	}
	for _, l := range m.Lanes {
		runs = append(runs, textRun{X: l.X + laneTitleX, Y: l.Top + laneTitleY, Text: l.Title, Size: 14, Bold: true, Fill: t.Text})
	}
	for _, b := range m.Bands {
		if b.Label != "" {
			runs = append(runs, textRun{X: b.X + 8, Y: b.Y + 14, Text: b.Label, Size: 10, Fill: t.Muted})
		}
	}
	for _, b := range m.Busses {
		if b.Label != "" {
			runs = append(runs, textRun{X: b.X + b.W/2, Y: b.Y - 5, Text: b.Label, Size: 10, Fill: t.Text, Anchor: "middle"})
		}
	}
	for _, e := range m.Edges {
		if e.Label != "" && e.LabelPos != nil {
			runs = append(runs, textRun{X: e.LabelPos.X, Y: e.LabelPos.Y, Text: e.Label, Size: 10, Fill: t.Text, Anchor: "middle"})
		}
	}
	for _, n := range m.Nodes {
		avail := n.W - 2*nodePadX
		if icons {
			avail -= nodeIconSize + 4
		}
		runs = append(runs, textRun{X: n.X + nodePadX, Y: n.Y + 22, Text: truncate(n.Title, avail, 13), Size: 13, Bold: true, Fill: t.Text})
		if n.Sub != "" {
			runs = append(runs, textRun{X: n.X + nodePadX, Y: n.Y + 40, Text: truncate(n.Sub, n.W-2*nodePadX, 11), Size: 11, Fill: t.Muted})
		}
	}
	for _, note := range m.Notes {
		runs = append(runs, textRun{X: note.X, Y: note.Y, Text: note.Text, Size: 11, Fill: t.Muted})
	}
	return runs
}

func renderText(buf *bytes.Buffer, run textRun, t render.Theme) {
	weight := ""
	if run.Bold {
		weight = ` font-weight="bold"`
	}
	anchor := ""
	if run.Anchor != "" && run.Anchor != "start" {
		anchor = fmt.Sprintf(` text-anchor="%s"`, run.Anchor)
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f"%s fill="%s"%s>%s</text>`+"\n",
		run.X, run.Y, t.FontFamily, run.Size, weight, run.Fill, anchor, escape(run.Text))
}

// truncate shortens s to fit width at the given font size, marking the cut
// with "..".
func truncate(s string, width, size float64) string {
	maxChars := max(3, int(width/(size*charWidth)))
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	return string(r[:maxChars-2]) + ".."
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
