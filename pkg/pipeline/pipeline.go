// Package pipeline runs the decode → layout → render chain shared by the CLI
// and the HTTP server.
//
// Every stage is cached through a [cache.Cache] using content hashes, so
// re-rendering an unchanged diagram is a lookup. The layout core itself is
// pure; this package adds caching, logging and observability hooks around it.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, data, pipeline.Options{Formats: []string{"svg", "png"}})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("arch.svg", res.Artifacts["svg"], 0o644)
//
// Stages can also be run one at a time with [Runner.Decode], [Runner.Layout]
// and [Runner.Render].
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jbass698-121/aveva-diagram-style/pkg/cache"
	"github.com/jbass698-121/aveva-diagram-style/pkg/errors"
	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
	"github.com/jbass698-121/aveva-diagram-style/pkg/layout"
	"github.com/jbass698-121/aveva-diagram-style/pkg/render"
)

// =============================================================================
// Defaults
// =============================================================================

// Layout engines.
const (
	EngineLanes    = "lanes"
	EngineNodelink = "nodelink"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

const (
	DefaultEngine = EngineLanes
	DefaultScale  = 2.0
)

// Engines lists the accepted engine names.
var Engines = []string{EngineLanes, EngineNodelink}

// Formats lists the accepted output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatJSON, FormatDOT}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. Zero values select defaults, so the
// struct can be decoded straight from an API request body.
type Options struct {
	// Layout options
	Engine       string           `json:"engine,omitempty"`
	Width        float64          `json:"width,omitempty"`
	Height       float64          `json:"height,omitempty"`
	LaneGap      float64          `json:"lane_gap,omitempty"`
	LanePadding  float64          `json:"lane_padding,omitempty"`
	NoAutolayout bool             `json:"no_autolayout,omitempty"`
	BreakCycles  bool             `json:"break_cycles,omitempty"`
	Constants    layout.Constants `json:"constants,omitzero"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Theme   string   `json:"theme,omitempty"` // overrides metadata.theme
	Scale   float64  `json:"scale,omitempty"`
	NoIcons bool     `json:"no_icons,omitempty"`

	// Refresh skips cache reads. Results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result holds the outputs of a full run.
type Result struct {
	Graph     graph.Graph
	Shape     string
	GraphHash string
	Model     *layout.Model
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats are sizes and stage timings.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LaneCount  int
	Dropped    int
	DecodeTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from cache.
type CacheInfo struct {
	DecodeHit bool
	LayoutHit bool
	RenderHit bool // all requested artifacts were cached
}

// SetLayoutDefaults fills zero layout fields.
func (o *Options) SetLayoutDefaults() {
	d := layout.DefaultOptions()
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Height == 0 {
		o.Height = d.Height
	}
	if o.LaneGap == 0 {
		o.LaneGap = d.LaneGap
	}
	if o.LanePadding == 0 {
		o.LanePadding = d.LanePadding
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults fills zero render fields.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	o.Formats = formats
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout applies layout defaults and checks the layout fields.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateChoice(errors.ErrCodeInvalidEngine, "engine", o.Engine, Engines); err != nil {
		return err
	}
	if err := errors.ValidateSize(o.Width, o.Height); err != nil {
		return err
	}
	if o.LaneGap < 0 || o.LanePadding < 0 {
		return errors.New(errors.ErrCodeInvalidSize, "lane gap and padding cannot be negative")
	}
	return nil
}

// ValidateForRender applies all defaults and checks every field.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	for _, f := range o.Formats {
		if err := errors.ValidateChoice(errors.ErrCodeInvalidFormat, "format", f, Formats); err != nil {
			return err
		}
	}
	if o.Theme != "" {
		if _, err := render.ThemeByName(o.Theme); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTheme, err, "invalid theme: %q (must be one of: %s)",
				o.Theme, strings.Join(render.ThemeNames(), ", "))
		}
	}
	return errors.ValidateScale(o.Scale)
}

// LayoutOptions converts o into layout engine options.
func (o *Options) LayoutOptions() []layout.Option {
	return []layout.Option{layout.WithOptions(layout.Options{
		Width:       o.Width,
		Height:      o.Height,
		LaneGap:     o.LaneGap,
		LanePadding: o.LanePadding,
		Autolayout:  !o.NoAutolayout,
		BreakCycles: o.BreakCycles,
		Constants:   o.Constants,
	})}
}

// LayoutKeyOpts returns the cache key inputs of a layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Engine:      o.Engine,
		Width:       o.Width,
		Height:      o.Height,
		LaneGap:     o.LaneGap,
		LanePadding: o.LanePadding,
		Autolayout:  !o.NoAutolayout,
		BreakCycles: o.BreakCycles,
	}
	if o.Constants != (layout.Constants{}) {
		k.Constants, _ = cache.HashValue(o.Constants)
	}
	return k
}

// ArtifactKeyOpts returns the cache key inputs of one artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format: format,
		Theme:  o.Theme,
		Icons:  !o.NoIcons,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if format == FormatSVG || format == FormatPNG {
		k.Format = o.Engine + "/" + format
	}
	return k
}
