package layout

// Reasons recorded in Dropped.
const (
	ReasonUnknownLane     = "unknown lane"
	ReasonUnknownEndpoint = "unknown endpoint"
	ReasonUnknownBus      = "unknown bus"
)

// Dropped names an input entity that was excluded or degraded.
type Dropped struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Diagnostics is the side channel for everything the engine silently
// repaired. It never affects the layout itself.
type Diagnostics struct {
	DroppedNodes  []Dropped  `json:"dropped_nodes,omitempty"`
	DroppedEdges  []Dropped  `json:"dropped_edges,omitempty"`
	DroppedBands  []Dropped  `json:"dropped_bands,omitempty"`
	DroppedBusses []Dropped  `json:"dropped_busses,omitempty"`
	UnknownVias   []Dropped  `json:"unknown_vias,omitempty"`
	Unranked      []string   `json:"unranked,omitempty"` // nodes given the fallback rank
	Cycles        [][]string `json:"cycles,omitempty"`
	BackEdges     int        `json:"back_edges,omitempty"` // removed by WithBreakCycles
	Scale         float64    `json:"scale"`                // horizontal overflow factor, 1 when none
	Cramped       []string   `json:"cramped,omitempty"`    // nodes wider than the usable canvas
}

// DroppedCount returns the number of excluded entities.
func (d Diagnostics) DroppedCount() int {
	return len(d.DroppedNodes) + len(d.DroppedEdges) + len(d.DroppedBands) + len(d.DroppedBusses)
}

// Clean reports whether nothing was dropped, rerouted, cramped, or ranked by
// fallback.
func (d Diagnostics) Clean() bool {
	return d.DroppedCount() == 0 && len(d.UnknownVias) == 0 && len(d.Unranked) == 0 && len(d.Cramped) == 0
}

func edgeID(from, to string) string { return from + "->" + to }
