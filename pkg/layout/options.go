package layout

// Options control a Build call.
type Options struct {
	Width       float64
	Height      float64
	LaneGap     float64
	LanePadding float64
	Autolayout  bool
	BreakCycles bool
	Constants   Constants
}

// Option configures a Build call.
type Option func(*Options)

// DefaultOptions returns a 1400x720 canvas with autolayout enabled.
func DefaultOptions() Options {
	return Options{
		Width:       1400,
		Height:      720,
		LaneGap:     16,
		LanePadding: 16,
		Autolayout:  true,
		Constants:   DefaultConstants(),
	}
}

// WithSize sets the canvas size. The resolved height grows when lane
// content needs more room.
func WithSize(width, height float64) Option {
	return func(o *Options) { o.Width, o.Height = width, height }
}

// WithLaneGap sets the vertical gap between lanes.
func WithLaneGap(gap float64) Option { return func(o *Options) { o.LaneGap = gap } }

// WithLanePadding sets the keep-out band inside each lane's top and bottom.
func WithLanePadding(p float64) Option { return func(o *Options) { o.LanePadding = p } }

// WithAutolayout toggles engine placement. When false, caller-supplied x/y
// are kept and only missing coordinates are filled.
func WithAutolayout(on bool) Option { return func(o *Options) { o.Autolayout = on } }

// WithBreakCycles removes DFS back edges before ranking, so cyclic nodes get
// real ranks instead of the fallback.
func WithBreakCycles(on bool) Option { return func(o *Options) { o.BreakCycles = on } }

// WithConstants replaces the spacing rules. Zero fields keep their defaults.
func WithConstants(c Constants) Option { return func(o *Options) { o.Constants = c } }

// WithOptions replaces the whole option set, typically one loaded from config.
func WithOptions(opts Options) Option { return func(o *Options) { *o = opts } }

func resolveOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.LaneGap < 0 {
		o.LaneGap = d.LaneGap
	}
	if o.LanePadding < 0 {
		o.LanePadding = d.LanePadding
	}
	o.LaneGap = Snap(o.LaneGap)
	o.LanePadding = Snap(o.LanePadding)
	o.Constants = o.Constants.withDefaults()
	return o
}
