// Package render holds the presentation concerns shared by every drawing
// backend: color themes and SVG rasterization.
//
// # Themes
//
// A [Theme] is an explicit value threaded through render calls. Two themes
// ship: [Light] (the default) and [Dark]. [ResolveTheme] picks one from a
// caller override or the diagram's metadata:
//
//	theme, err := render.ResolveTheme(flagTheme, model.Metadata)
//
// # Rasterization
//
// [ToPNG] rasterizes SVG bytes in process using oksvg and rasterx. No external
// tools are required. Text elements are not rasterized by oksvg; the PNG sink
// overlays text itself.
//
//	svg := sink.RenderSVG(model)
//	png, err := render.ToPNG(svg, 2.0)
//
// Backends live in subpackages:
//   - [sink]: lane diagram output (SVG, PNG, JSON)
//   - [nodelink]: Graphviz node-link diagrams
//
// [sink]: github.com/jbass698-121/aveva-diagram-style/pkg/render/sink
// [nodelink]: github.com/jbass698-121/aveva-diagram-style/pkg/render/nodelink
package render
