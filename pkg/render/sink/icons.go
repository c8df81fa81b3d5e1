package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

const iconSize = 24.0

// Icon bodies are drawn in a 24x24 box. {s} expands to the stroke attributes.
var kindIcons = map[graph.Kind]string{
	graph.KindDatabase: `<ellipse cx="12" cy="5" rx="8" ry="3" {s}/>` +
		`<path d="M4 5v6c0 1.7 3.6 3 8 3s8-1.3 8-3V5" {s}/>` +
		`<path d="M4 11v6c0 1.7 3.6 3 8 3s8-1.3 8-3v-6" {s}/>`,
	graph.KindCloud: `<path d="M7 17h10a4 4 0 0 0 0-8 5 5 0 0 0-9.8 1.5A3.5 3.5 0 0 0 7 17z" stroke-linejoin="round" {s}/>`,
	graph.KindEdge: `<rect x="4" y="4" width="16" height="16" rx="3" {s}/>` +
		`<path d="M8 8h8v8H8z" {s}/>`,
	graph.KindServer: `<rect x="4" y="4" width="16" height="7" rx="1.5" {s}/>` +
		`<rect x="4" y="13" width="16" height="7" rx="1.5" {s}/>` +
		`<path d="M7 7.5h2M7 16.5h2" {s}/>`,
	graph.KindNetwork: `<circle cx="12" cy="5" r="2.5" {s}/>` +
		`<circle cx="5" cy="19" r="2.5" {s}/>` +
		`<circle cx="19" cy="19" r="2.5" {s}/>` +
		`<path d="M12 7.5V12M12 12L6.5 17M12 12l5.5 5" {s}/>`,
	graph.KindStorage: `<rect x="3" y="6" width="18" height="12" rx="2" {s}/>` +
		`<path d="M3 12h18M16 9h2M16 15h2" {s}/>`,
	graph.KindSecurity: `<path d="M12 3l7 3v5c0 4.5-3 8-7 10-4-2-7-5.5-7-10V6z" stroke-linejoin="round" {s}/>` +
		`<path d="M9 12l2 2 4-4" {s}/>`,
	graph.KindMonitoring: `<rect x="3" y="4" width="18" height="13" rx="2" {s}/>` +
		`<path d="M6 13l3-3 3 2 5-5M9 21h6" {s}/>`,
	graph.KindApp: `<rect x="5" y="5" width="14" height="14" rx="2" {s}/>` +
		`<circle cx="12" cy="12" r="3" {s}/>`,
}

// writeIcon draws the kind's icon scaled to size with its top-left at (x, y).
func writeIcon(buf *bytes.Buffer, kind graph.Kind, x, y, size float64, stroke string, width float64) {
	body, ok := kindIcons[kind]
	if !ok {
		body = kindIcons[graph.KindApp]
	}
	s := size / iconSize
	attrs := fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%.2f"`, stroke, width/s)
	fmt.Fprintf(buf, `  <g transform="translate(%.1f %.1f) scale(%.3f)">%s</g>`+"\n",
		x, y, s, strings.ReplaceAll(body, "{s}", attrs))
}
