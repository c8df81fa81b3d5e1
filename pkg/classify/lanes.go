package classify

import (
	"slices"
	"strings"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

// LaneRule sends nodes of the listed kinds to the first lane whose ID
// contains one of the hints.
type LaneRule struct {
	Kinds []graph.Kind
	Hints []string
}

// LaneRouter picks a lane for a node kind.
type LaneRouter struct {
	rules []LaneRule
}

// NewLaneRouter returns a router applying rules in order.
func NewLaneRouter(rules ...LaneRule) LaneRouter { return LaneRouter{rules: rules} }

// DefaultLaneRouter places data stores low in the plant hierarchy, edge
// and network gear in the perimeter, and servers in supervisory lanes.
func DefaultLaneRouter() LaneRouter {
	return NewLaneRouter(
		LaneRule{Kinds: []graph.Kind{graph.KindDatabase, graph.KindStorage}, Hints: []string{"device", "supervisory"}},
		LaneRule{Kinds: []graph.Kind{graph.KindEdge, graph.KindNetwork}, Hints: []string{"perimeter", "dmz"}},
		LaneRule{Kinds: []graph.Kind{graph.KindServer}, Hints: []string{"supervisory"}},
	)
}

// Route returns the lane ID for kind. Without a matching rule the first
// lane is used; with no lanes the result is empty.
func (r LaneRouter) Route(kind graph.Kind, lanes []graph.Lane) string {
	if len(lanes) == 0 {
		return ""
	}
	for _, rule := range r.rules {
		if !slices.Contains(rule.Kinds, kind) {
			continue
		}
		for _, hint := range rule.Hints {
			for _, l := range lanes {
				if strings.Contains(l.ID, hint) {
					return l.ID
				}
			}
		}
	}
	return lanes[0].ID
}
