package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

// ErrUnknownTheme is returned when a theme name is not recognised.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is the set of color and stroke tokens used by drawing backends.
type Theme struct {
	Name string `json:"name"`

	Background string `json:"background"`
	Surface    string `json:"surface"`
	Grid       string `json:"grid"`
	Text       string `json:"text"`
	Muted      string `json:"muted"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Warn       string `json:"warn"`
	Danger     string `json:"danger"`
	Success    string `json:"success"`

	// LaneFills cycles by lane index.
	LaneFills []string `json:"lane_fills"`

	FontFamily string  `json:"font_family"`
	NodeRadius float64 `json:"node_radius"`
	NodeStroke float64 `json:"node_stroke"`
	EdgeStroke float64 `json:"edge_stroke"`
	ArrowSize  float64 `json:"arrow_size"`
}

// Light returns the default theme.
func Light() Theme {
	return Theme{
		Name:       graph.ThemeLight,
		Background: "#FFFFFF",
		Surface:    "#FFFFFF",
		Grid:       "#D1D5DB",
		Text:       "#1F2937",
		Muted:      "#6B7280",
		Primary:    "#3B82F6",
		Secondary:  "#9DE2D5",
		Accent:     "#F59E0B",
		Warn:       "#EF4444",
		Danger:     "#B91C1C",
		Success:    "#10B981",
		LaneFills:  []string{"#EEF2FF", "#FEF2F2", "#FFFBEB", "#F0F9FF", "#F0FDF4"},
		FontFamily: "Inter, system-ui, sans-serif",
		NodeRadius: 8,
		NodeStroke: 2,
		EdgeStroke: 2,
		ArrowSize:  10,
	}
}

// Dark returns the light theme with dark surfaces.
func Dark() Theme {
	t := Light()
	t.Name = graph.ThemeDark
	t.Background = "#0E1220"
	t.Surface = "#141B2D"
	t.Grid = "#1E2A47"
	t.Text = "#E0E7FF"
	t.Muted = "#94A3B8"
	t.LaneFills = []string{"#161F38", "#25182A", "#262216", "#132338", "#14261E"}
	return t
}

// ThemeNames lists the recognised theme names.
func ThemeNames() []string { return []string{graph.ThemeLight, graph.ThemeDark} }

// ThemeByName returns the named theme. The empty name selects Light.
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", graph.ThemeLight:
		return Light(), nil
	case graph.ThemeDark:
		return Dark(), nil
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// ResolveTheme selects the override when set, otherwise the metadata theme.
// An unknown override is an error; an unknown metadata theme falls back to
// Light.
func ResolveTheme(override string, meta graph.Metadata) (Theme, error) {
	if override != "" {
		return ThemeByName(override)
	}
	if t, err := ThemeByName(meta.Theme); err == nil {
		return t, nil
	}
	return Light(), nil
}

// LaneFill returns the background color of the i-th lane.
func (t Theme) LaneFill(i int) string {
	if len(t.LaneFills) == 0 {
		return t.Surface
	}
	return t.LaneFills[i%len(t.LaneFills)]
}

// EnvColor returns the badge color for an environment name.
func (t Theme) EnvColor(env string) string {
	switch strings.ToLower(env) {
	case "prod":
		return t.Success
	case "nonprod":
		return t.Warn
	}
	return t.Danger
}
