// Package nodelink renders architecture graphs as Graphviz node-link diagrams.
//
// It is an alternative to the lane layout engine for cases where Graphviz's
// own placement is preferred. Each lane becomes a cluster and node kinds map
// to Graphviz shapes.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// The DOT source from [ToDOT] can also be saved and processed with external
// Graphviz tools.
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering;
// no Graphviz installation is required.
package nodelink
