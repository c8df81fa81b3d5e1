package graph

import "slices"

// Version is the current canonical schema version.
const Version = 1

// Theme names recognised in Metadata.Theme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Kind classifies a node. The set is closed: anything else is treated as
// KindApp by consumers.
type Kind string

// Node kinds.
const (
	KindDatabase   Kind = "database"
	KindCloud      Kind = "cloud"
	KindEdge       Kind = "edge"
	KindServer     Kind = "server"
	KindApp        Kind = "app"
	KindNetwork    Kind = "network"
	KindStorage    Kind = "storage"
	KindSecurity   Kind = "security"
	KindMonitoring Kind = "monitoring"
)

var kinds = []Kind{
	KindDatabase, KindCloud, KindEdge, KindServer, KindApp,
	KindNetwork, KindStorage, KindSecurity, KindMonitoring,
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind { return slices.Clone(kinds) }

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return slices.Contains(kinds, k) }

// OrApp returns k when valid and KindApp otherwise.
func (k Kind) OrApp() Kind {
	if k.Valid() {
		return k
	}
	return KindApp
}

// EdgeStyle is the stroke style of an edge.
type EdgeStyle string

// Edge styles.
const (
	StyleSolid  EdgeStyle = "solid"
	StyleDashed EdgeStyle = "dashed"
)

// OrSolid returns s when it is dashed and StyleSolid otherwise.
func (s EdgeStyle) OrSolid() EdgeStyle {
	if s == StyleDashed {
		return StyleDashed
	}
	return StyleSolid
}

// Graph is the canonical diagram document.
type Graph struct {
	Version  int      `json:"version" yaml:"version"`
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Lanes    []Lane   `json:"lanes" yaml:"lanes"`
	Nodes    []Node   `json:"nodes" yaml:"nodes"`
	Edges    []Edge   `json:"edges" yaml:"edges"`
	Bands    []Band   `json:"bands,omitempty" yaml:"bands,omitempty"`
	Busses   []Bus    `json:"busses,omitempty" yaml:"busses,omitempty"`
	Notes    []Note   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Metadata carries document level presentation hints.
type Metadata struct {
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Theme    string `json:"theme,omitempty" yaml:"theme,omitempty"` // "light" or "dark"
	Env      string `json:"env,omitempty" yaml:"env,omitempty"`     // "prod", "nonprod", ...
}

// Lane is a horizontal zone. Lane order is declaration order.
type Lane struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Node is a component owned by exactly one lane. Geometry is optional.
type Node struct {
	ID    string   `json:"id" yaml:"id"`
	Lane  string   `json:"lane" yaml:"lane"`
	Kind  Kind     `json:"kind,omitempty" yaml:"kind,omitempty"`
	Title string   `json:"title" yaml:"title"`
	Sub   string   `json:"sub,omitempty" yaml:"sub,omitempty"`
	X     *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y     *float64 `json:"y,omitempty" yaml:"y,omitempty"`
	W     *float64 `json:"w,omitempty" yaml:"w,omitempty"`
	H     *float64 `json:"h,omitempty" yaml:"h,omitempty"`
}

// DisplayTitle returns the title if set, otherwise the ID.
func (n Node) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}

// Edge is a directed relation between two nodes.
type Edge struct {
	From  string    `json:"from" yaml:"from"`
	To    string    `json:"to" yaml:"to"`
	Style EdgeStyle `json:"style,omitempty" yaml:"style,omitempty"`
	Label string    `json:"label,omitempty" yaml:"label,omitempty"`
	Via   string    `json:"via,omitempty" yaml:"via,omitempty"` // bus ID
}

// Band is a decorative rectangle confined to one lane. Y is lane-local.
type Band struct {
	ID    string  `json:"id" yaml:"id"`
	Lane  string  `json:"lane" yaml:"lane"`
	Y     float64 `json:"y" yaml:"y"`
	H     float64 `json:"h" yaml:"h"`
	Color string  `json:"color,omitempty" yaml:"color,omitempty"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// Bus is a lane-anchored trunk. Its vertical centerline is a routing waypoint.
type Bus struct {
	ID    string  `json:"id" yaml:"id"`
	Lane  string  `json:"lane" yaml:"lane"`
	Y     float64 `json:"y" yaml:"y"`
	H     float64 `json:"h" yaml:"h"`
	Color string  `json:"color,omitempty" yaml:"color,omitempty"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// Note is free text. When Lane is set, Y is lane-local.
type Note struct {
	Lane string  `json:"lane,omitempty" yaml:"lane,omitempty"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Text string  `json:"text" yaml:"text"`
}

// Coord returns a pointer to v, for filling optional node geometry.
func Coord(v float64) *float64 { return &v }

// LaneIndex maps lane IDs to their declaration index.
// For duplicate IDs the first declaration wins.
func (g Graph) LaneIndex() map[string]int {
	m := make(map[string]int, len(g.Lanes))
	for i, l := range g.Lanes {
		if _, ok := m[l.ID]; !ok {
			m[l.ID] = i
		}
	}
	return m
}

// Node returns the first node with the given ID.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Clone returns a deep copy of g.
func (g Graph) Clone() Graph {
	out := g
	out.Lanes = slices.Clone(g.Lanes)
	out.Edges = slices.Clone(g.Edges)
	out.Bands = slices.Clone(g.Bands)
	out.Busses = slices.Clone(g.Busses)
	out.Notes = slices.Clone(g.Notes)
	if g.Nodes != nil {
		out.Nodes = make([]Node, len(g.Nodes))
		for i, n := range g.Nodes {
			out.Nodes[i] = n.clone()
		}
	}
	return out
}

func (n Node) clone() Node {
	n.X = clonePtr(n.X)
	n.Y = clonePtr(n.Y)
	n.W = clonePtr(n.W)
	n.H = clonePtr(n.H)
	return n
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
