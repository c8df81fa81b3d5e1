package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

// Model is the fully resolved diagram handed to a drawing backend.
type Model struct {
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	Metadata    graph.Metadata `json:"metadata"`
	Lanes       []Lane         `json:"lanes"`
	Nodes       []Node         `json:"nodes"`
	Edges       []Edge         `json:"edges"`
	Bands       []Band         `json:"bands,omitempty"`
	Busses      []Bus          `json:"busses,omitempty"`
	Notes       []Note         `json:"notes,omitempty"`
	Diagnostics Diagnostics    `json:"diagnostics"`
}

// Lane is a resolved lane region. X and Width span the drawable row.
type Lane struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Node is a positioned component. Y is absolute; LocalY is relative to the
// lane top.
type Node struct {
	ID     string     `json:"id"`
	Lane   string     `json:"lane"`
	Kind   graph.Kind `json:"kind,omitempty"`
	Title  string     `json:"title"`
	Sub    string     `json:"sub,omitempty"`
	Rank   int        `json:"rank"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	LocalY float64    `json:"local_y"`
	W      float64    `json:"w"`
	H      float64    `json:"h"`
}

// Right returns the x of the node's right edge.
func (n Node) Right() float64 { return n.X + n.W }

// CenterY returns the absolute y of the node's horizontal centerline.
func (n Node) CenterY() float64 { return n.Y + n.H/2 }

// Point is an absolute canvas position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge is a routed relation.
type Edge struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Style    graph.EdgeStyle `json:"style"`
	Label    string          `json:"label,omitempty"`
	Via      string          `json:"via,omitempty"`
	Points   []Point         `json:"points"`
	LabelPos *Point          `json:"label_pos,omitempty"`
}

// Band is a decorative lane rectangle in absolute coordinates.
type Band struct {
	ID    string  `json:"id"`
	Lane  string  `json:"lane"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Color string  `json:"color,omitempty"`
	Label string  `json:"label,omitempty"`
}

// Bus is a band whose centerline is a routing waypoint.
type Bus struct {
	Band
	CenterY float64 `json:"center_y"`
}

// Note is free text in absolute coordinates.
type Note struct {
	Lane string  `json:"lane,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

// Node returns the node with the given ID.
func (m *Model) Node(id string) (Node, bool) {
	for _, n := range m.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Lane returns the lane with the given ID.
func (m *Model) Lane(id string) (Lane, bool) {
	for _, l := range m.Lanes {
		if l.ID == id {
			return l, true
		}
	}
	return Lane{}, false
}

// MaxX returns the largest right edge of any node, or 0 for an empty model.
func (m *Model) MaxX() float64 {
	var maxX float64
	for _, n := range m.Nodes {
		maxX = max(maxX, n.Right())
	}
	return maxX
}

// WriteModel writes m as indented JSON.
func WriteModel(m *Model, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return nil
}

// WriteModelFile writes m to path as indented JSON.
func WriteModelFile(m *Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteModel(m, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadModel decodes a model previously written by WriteModel.
func ReadModel(r io.Reader) (*Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return &m, nil
}
