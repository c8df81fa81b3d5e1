// Package sink writes a resolved [layout.Model] to output formats.
//
//   - [RenderSVG]: standalone SVG with lanes, bands, busses, nodes, routed
//     edges, labels and notes
//   - [RenderPNG]: the SVG rasterized in process, with text overlaid
//   - [RenderJSON]: the model plus the theme it was drawn with
//
// Sinks never modify the model and are safe to call concurrently.
//
// [layout.Model]: github.com/jbass698-121/aveva-diagram-style/pkg/layout.Model
package sink
