package io

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jbass698-121/aveva-diagram-style/pkg/classify"
	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

type adapter func(raw []byte) (graph.Graph, error)

var adapters = map[Shape]adapter{
	ShapeCanonical:   adaptCanonical,
	ShapeLaneGrouped: adaptLaneGrouped,
	ShapeZoneGrouped: adaptZoneGrouped,
}

func adaptCanonical(raw []byte) (graph.Graph, error) {
	return graph.UnmarshalGraph(raw)
}

// laneGrouped nests nodes under their lane.
type laneGrouped struct {
	Version  int            `json:"version"`
	Metadata graph.Metadata `json:"metadata"`
	Lanes    []struct {
		ID    string       `json:"id"`
		Title string       `json:"title"`
		Nodes []graph.Node `json:"nodes"`
	} `json:"lanes"`
	Edges  []graph.Edge `json:"edges"`
	Bands  []graph.Band `json:"bands"`
	Busses []graph.Bus  `json:"busses"`
	Notes  []graph.Note `json:"notes"`
}

func adaptLaneGrouped(raw []byte) (graph.Graph, error) {
	var in laneGrouped
	if err := json.Unmarshal(raw, &in); err != nil {
		return graph.Graph{}, err
	}
	g := graph.Graph{
		Version:  in.Version,
		Metadata: in.Metadata,
		Edges:    in.Edges,
		Bands:    in.Bands,
		Busses:   in.Busses,
		Notes:    in.Notes,
	}
	for _, l := range in.Lanes {
		g.Lanes = append(g.Lanes, graph.Lane{ID: l.ID, Title: l.Title})
		for _, n := range l.Nodes {
			n.Lane = l.ID
			g.Nodes = append(g.Nodes, n)
		}
	}
	return g, nil
}

// zoneGrouped is the loose "zones/components/connections" summary shape.
type zoneGrouped struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Theme    string `json:"theme"`
	Zones    []struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Components []struct {
			ID          string     `json:"id"`
			Name        string     `json:"name"`
			Kind        graph.Kind `json:"kind"`
			Description string     `json:"description"`
		} `json:"components"`
	} `json:"zones"`
	Connections []struct {
		From  string `json:"from"`
		To    string `json:"to"`
		Label string `json:"label"`
		Style string `json:"style"`
	} `json:"connections"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and joins its alphanumeric runs with underscores.
func Slug(s string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(s), "_"), "_")
}

func adaptZoneGrouped(raw []byte) (graph.Graph, error) {
	var in zoneGrouped
	if err := json.Unmarshal(raw, &in); err != nil {
		return graph.Graph{}, err
	}
	classifier := classify.Default()

	g := graph.Graph{Metadata: graph.Metadata{Title: in.Title, Subtitle: in.Subtitle, Theme: in.Theme}}
	// Connections may reference components by ID or by name.
	ids := make(map[string]string)
	for i, z := range in.Zones {
		laneID := z.ID
		if laneID == "" {
			laneID = Slug(z.Name)
		}
		if laneID == "" {
			laneID = fmt.Sprintf("zone_%d", i)
		}
		g.Lanes = append(g.Lanes, graph.Lane{ID: laneID, Title: z.Name})

		for _, c := range z.Components {
			id := c.ID
			if id == "" {
				id = Slug(c.Name)
			}
			kind := c.Kind
			if !kind.Valid() {
				kind = classifier.Kind(c.Name, c.Description)
			}
			g.Nodes = append(g.Nodes, graph.Node{
				ID:    id,
				Lane:  laneID,
				Kind:  kind,
				Title: c.Name,
				Sub:   c.Description,
			})
			ids[id] = id
			if c.Name != "" {
				ids[c.Name] = id
				ids[Slug(c.Name)] = id
			}
		}
	}

	resolve := func(ref string) string {
		if id, ok := ids[ref]; ok {
			return id
		}
		return ref
	}
	for _, c := range in.Connections {
		g.Edges = append(g.Edges, graph.Edge{
			From:  resolve(c.From),
			To:    resolve(c.To),
			Label: c.Label,
			Style: graph.EdgeStyle(c.Style).OrSolid(),
		})
	}
	return g, nil
}
