package pipeline

import (
	"context"
	"fmt"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
	"github.com/jbass698-121/aveva-diagram-style/pkg/layout"
	"github.com/jbass698-121/aveva-diagram-style/pkg/render"
	"github.com/jbass698-121/aveva-diagram-style/pkg/render/nodelink"
	"github.com/jbass698-121/aveva-diagram-style/pkg/render/sink"
)

// renderFormat draws one artifact. The lanes engine draws m; the nodelink
// engine hands g to Graphviz. JSON is always the lane model and DOT is
// always the Graphviz source.
func renderFormat(ctx context.Context, format string, m *layout.Model, g graph.Graph, opts Options) ([]byte, error) {
	theme, err := render.ResolveTheme(opts.Theme, m.Metadata)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSVG:
		if opts.Engine == EngineNodelink {
			return nodelink.RenderSVG(ctx, dotSource(g, theme))
		}
		return sink.RenderSVG(m, svgOptions(theme, opts)...), nil
	case FormatPNG:
		if opts.Engine == EngineNodelink {
			return nodelink.RenderPNG(ctx, dotSource(g, theme), opts.Scale)
		}
		return sink.RenderPNG(m,
			sink.WithPNGSVGOptions(svgOptions(theme, opts)...),
			sink.WithScale(opts.Scale))
	case FormatJSON:
		return sink.RenderJSON(m, sink.WithJSONTheme(theme.Name))
	case FormatDOT:
		return []byte(dotSource(g, theme)), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

func svgOptions(theme render.Theme, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithTheme(theme)}
	if opts.NoIcons {
		svgOpts = append(svgOpts, sink.WithoutIcons())
	}
	return svgOpts
}

func dotSource(g graph.Graph, theme render.Theme) string {
	return nodelink.ToDOT(g, nodelink.Options{Detailed: true, Theme: &theme})
}
