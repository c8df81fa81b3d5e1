package sink

import (
	"encoding/json"

	"github.com/jbass698-121/aveva-diagram-style/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	theme   string
	compact bool
}

// WithJSONTheme records the theme name the model was drawn with.
func WithJSONTheme(name string) JSONOption { return func(r *jsonRenderer) { r.theme = name } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// JSONVersion is the schema version written by [RenderJSON].
const JSONVersion = 1

type jsonOutput struct {
	Version int    `json:"version"`
	Theme   string `json:"theme,omitempty"`
	*layout.Model
}

// RenderJSON exports the resolved model. The output decodes with
// [layout.ReadModel]; the extra version and theme fields are ignored there.
func RenderJSON(m *layout.Model, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{Version: JSONVersion, Theme: r.theme, Model: m}
	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
