package layout

import "math"

// Grid is the snapping unit for resolved geometry.
const Grid = 8

// Constants are the spacing rules of the lane engine, router and label placer.
// All values are in canvas units.
type Constants struct {
	NodeWidth    float64 `json:"node_width" toml:"node_width"`
	NodeHeight   float64 `json:"node_height" toml:"node_height"`
	LeftMargin   float64 `json:"left_margin" toml:"left_margin"` // x of rank 0
	ColumnWidth  float64 `json:"column_width" toml:"column_width"`
	ColumnGap    float64 `json:"column_gap" toml:"column_gap"`
	RowStart     float64 `json:"row_start" toml:"row_start"` // lane-local y of the first stacked node
	RowGap       float64 `json:"row_gap" toml:"row_gap"`
	Margin       float64 `json:"margin" toml:"margin"` // right-hand keep-out
	HeaderHeight float64 `json:"header_height" toml:"header_height"`
	StandOff     float64 `json:"stand_off" toml:"stand_off"` // horizontal stub before an edge turns
	LabelLift    float64 `json:"label_lift" toml:"label_lift"`
	LabelCell    float64 `json:"label_cell" toml:"label_cell"`
	LabelStep    float64 `json:"label_step" toml:"label_step"`
}

// DefaultConstants returns the standard spacing.
func DefaultConstants() Constants {
	return Constants{
		NodeWidth:    240,
		NodeHeight:   80,
		LeftMargin:   80,
		ColumnWidth:  280,
		ColumnGap:    120,
		RowStart:     40,
		RowGap:       24,
		Margin:       40,
		HeaderHeight: 80,
		StandOff:     20,
		LabelLift:    6,
		LabelCell:    24,
		LabelStep:    14,
	}
}

// withDefaults fills zero fields from DefaultConstants and snaps the values
// that feed node coordinates.
func (c Constants) withDefaults() Constants {
	d := DefaultConstants()
	fill := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&c.NodeWidth, d.NodeWidth)
	fill(&c.NodeHeight, d.NodeHeight)
	fill(&c.LeftMargin, d.LeftMargin)
	fill(&c.ColumnWidth, d.ColumnWidth)
	fill(&c.ColumnGap, d.ColumnGap)
	fill(&c.RowStart, d.RowStart)
	fill(&c.RowGap, d.RowGap)
	fill(&c.Margin, d.Margin)
	fill(&c.HeaderHeight, d.HeaderHeight)
	fill(&c.StandOff, d.StandOff)
	fill(&c.LabelLift, d.LabelLift)
	fill(&c.LabelCell, d.LabelCell)
	fill(&c.LabelStep, d.LabelStep)
	for _, v := range []*float64{
		&c.NodeWidth, &c.NodeHeight, &c.LeftMargin, &c.ColumnWidth,
		&c.ColumnGap, &c.RowStart, &c.RowGap, &c.HeaderHeight,
	} {
		*v = Snap(*v)
	}
	return c
}

// Snap rounds v to the nearest multiple of Grid.
func Snap(v float64) float64 { return math.Round(v/Grid) * Grid }

// snapSize snaps a width or height, never returning less than one grid unit.
func snapSize(v float64) float64 { return max(Snap(v), Grid) }

func snapDown(v float64) float64 { return math.Floor(v/Grid) * Grid }

func snapUp(v float64) float64 { return math.Ceil(v/Grid) * Grid }
