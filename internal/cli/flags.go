package cli

import (
	"github.com/spf13/cobra"

	"github.com/jbass698-121/aveva-diagram-style/pkg/pipeline"
)

// diagramFlags are the layout and render overrides shared by commands.
// Only flags set on the command line replace configured values.
type diagramFlags struct {
	engine  string
	formats string
	theme   string
	scale   float64
	noIcons bool

	width        float64
	height       float64
	laneGap      float64
	lanePadding  float64
	noAutolayout bool
	breakCycles  bool

	noCache bool
	refresh bool
}

func (f *diagramFlags) bindLayout(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64Var(&f.width, "width", 0, "canvas width (default 1400)")
	fl.Float64Var(&f.height, "height", 0, "minimum canvas height (default 720)")
	fl.Float64Var(&f.laneGap, "lane-gap", 0, "vertical gap between lanes")
	fl.Float64Var(&f.lanePadding, "lane-padding", 0, "keep-out band inside each lane")
	fl.BoolVar(&f.noAutolayout, "no-autolayout", false, "keep x/y coordinates given in the document")
	fl.BoolVar(&f.breakCycles, "break-cycles", false, "rank cyclic nodes by removing back edges")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

func (f *diagramFlags) bindRender(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.engine, "type", "t", "", "layout engine: lanes (default), nodelink")
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, json, dot (comma-separated)")
	fl.StringVar(&f.theme, "theme", "", "theme: light, dark (default from document metadata)")
	fl.Float64Var(&f.scale, "scale", 0, "PNG scale factor (default 2)")
	fl.BoolVar(&f.noIcons, "no-icons", false, "omit node kind icons")
}

// options merges the flags the user set over base.
func (f *diagramFlags) options(cmd *cobra.Command, base pipeline.Options) pipeline.Options {
	opts := base
	set := cmd.Flags().Changed

	if set("type") {
		opts.Engine = f.engine
	}
	if set("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if set("theme") {
		opts.Theme = f.theme
	}
	if set("scale") {
		opts.Scale = f.scale
	}
	if set("no-icons") {
		opts.NoIcons = f.noIcons
	}
	if set("width") {
		opts.Width = f.width
	}
	if set("height") {
		opts.Height = f.height
	}
	if set("lane-gap") {
		opts.LaneGap = f.laneGap
	}
	if set("lane-padding") {
		opts.LanePadding = f.lanePadding
	}
	if set("no-autolayout") {
		opts.NoAutolayout = f.noAutolayout
	}
	if set("break-cycles") {
		opts.BreakCycles = f.breakCycles
	}
	opts.Refresh = f.refresh
	return opts
}
