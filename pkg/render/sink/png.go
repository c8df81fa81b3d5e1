package sink

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jbass698-121/aveva-diagram-style/pkg/layout"
	"github.com/jbass698-121/aveva-diagram-style/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
	text    bool
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithoutText skips the text overlay.
func WithoutText() PNGOption { return func(r *pngRenderer) { r.text = false } }

// RenderPNG rasterizes the SVG rendering of m and overlays its text with a
// bitmap face.
func RenderPNG(m *layout.Model, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, text: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 2.0
	}

	sr := newSVGRenderer(m, r.svgOpts...)
	svg := RenderSVG(m, r.svgOpts...)

	bg, err := render.ParseHexColor(sr.theme.Background)
	if err != nil {
		bg = color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
	img, err := render.Rasterize(svg, r.scale, bg)
	if err != nil {
		return nil, err
	}
	if r.text {
		for _, run := range textRuns(m, sr.theme, sr.header, sr.icons) {
			drawText(img, run, r.scale)
		}
	}
	return render.EncodePNG(img)
}

// drawText draws run with its baseline at the scaled position. The bitmap
// face is not scaled.
func drawText(img *image.RGBA, run textRun, scale float64) {
	c, err := render.ParseHexColor(run.Fill)
	if err != nil {
		c = color.RGBA{0, 0, 0, 0xff}
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}
	x := run.X * scale
	if run.Anchor == "middle" {
		x -= float64(d.MeasureString(run.Text).Round()) / 2
	}
	d.Dot = fixed.P(int(x), int(run.Y*scale))
	d.DrawString(run.Text)
	if run.Bold {
		d.Dot = fixed.P(int(x)+1, int(run.Y*scale))
		d.DrawString(run.Text)
	}
}
