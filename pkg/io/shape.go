package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

// Shape identifies a document layout.
type Shape int

// Supported shapes.
const (
	ShapeUnknown Shape = iota
	ShapeCanonical
	ShapeLaneGrouped
	ShapeZoneGrouped
)

var shapeNames = map[Shape]string{
	ShapeUnknown:     "unknown",
	ShapeCanonical:   "canonical",
	ShapeLaneGrouped: "lane-grouped",
	ShapeZoneGrouped: "zone-grouped",
}

func (s Shape) String() string { return shapeNames[s] }

var (
	// ErrNoGraph is returned when the input holds no document at all.
	ErrNoGraph = errors.New("no graph document found")

	// ErrUnknownShape is returned when the document matches no known shape.
	ErrUnknownShape = errors.New("unrecognised graph shape")
)

// DetectShape classifies a decoded document by structural probes.
//
//   - "zones" array present: zone-grouped
//   - "lanes" array whose entries carry a "nodes" array: lane-grouped
//   - "lanes" or "nodes" array present: canonical
func DetectShape(doc map[string]any) Shape {
	if _, ok := doc["zones"].([]any); ok {
		return ShapeZoneGrouped
	}
	lanes, hasLanes := doc["lanes"].([]any)
	for _, l := range lanes {
		if m, ok := l.(map[string]any); ok {
			if _, ok := m["nodes"].([]any); ok {
				return ShapeLaneGrouped
			}
		}
	}
	if _, hasNodes := doc["nodes"].([]any); hasLanes || hasNodes {
		return ShapeCanonical
	}
	return ShapeUnknown
}

// Decode parses a JSON or YAML document of any supported shape.
func Decode(data []byte) (graph.Graph, Shape, error) {
	var doc map[string]any
	if err := unmarshalDoc(data, &doc); err != nil {
		return graph.Graph{}, ShapeUnknown, fmt.Errorf("decode: %w", err)
	}
	if len(doc) == 0 {
		return graph.Graph{}, ShapeUnknown, ErrNoGraph
	}

	shape := DetectShape(doc)
	adapt, ok := adapters[shape]
	if !ok {
		return graph.Graph{}, shape, ErrUnknownShape
	}

	// Round-trip through JSON so each adapter decodes into its own typed
	// struct regardless of the source encoding.
	raw, err := json.Marshal(doc)
	if err != nil {
		return graph.Graph{}, shape, fmt.Errorf("re-encode: %w", err)
	}
	g, err := adapt(raw)
	if err != nil {
		return graph.Graph{}, shape, fmt.Errorf("%s: %w", shape, err)
	}
	if g.Version == 0 {
		g.Version = graph.Version
	}
	return g, shape, nil
}

// unmarshalDoc decodes JSON objects with encoding/json and everything else
// as YAML, which tolerates the tab indentation JSON producers often emit.
func unmarshalDoc(data []byte, v any) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return json.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}

// Parse unwraps any Markdown fence in text and decodes the document.
func Parse(text string) (graph.Graph, Shape, error) {
	block, err := ExtractBlock(text)
	if err != nil {
		return graph.Graph{}, ShapeUnknown, err
	}
	return Decode([]byte(block))
}
