package extract

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/jbass698-121/aveva-diagram-style/pkg/classify"
	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

// Band geometry for zone backgrounds, lane-local.
const (
	bandY = 8
	bandH = 88
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	detailPattern = regexp.MustCompile(`\(([^)]+)\)|"([^"]+)"|'([^']+)'`)
	nonWord       = regexp.MustCompile(`[^\w]`)

	connectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\w+)\s+connects?\s+to\s+(\w+)`),
		regexp.MustCompile(`(?i)(\w+)\s+talks?\s+to\s+(\w+)`),
		regexp.MustCompile(`(?i)(\w+)\s+sends?\s+to\s+(\w+)`),
		regexp.MustCompile(`(\w+)\s+→\s+(\w+)`),
		regexp.MustCompile(`(\w+)\s+->\s+(\w+)`),
	}
)

// Extractor turns text into a graph.
type Extractor struct {
	classifier *classify.Classifier
	router     classify.LaneRouter
	zones      []Zone
	metadata   graph.Metadata
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClassifier replaces the kind classifier.
func WithClassifier(c *classify.Classifier) Option { return func(x *Extractor) { x.classifier = c } }

// WithLaneRouter replaces the kind-to-lane rules.
func WithLaneRouter(r classify.LaneRouter) Option { return func(x *Extractor) { x.router = r } }

// WithZones replaces the recognised zones. The first zones are also the
// fallback lanes when none match.
func WithZones(z []Zone) Option { return func(x *Extractor) { x.zones = z } }

// WithMetadata sets the metadata of every extracted graph.
func WithMetadata(m graph.Metadata) Option { return func(x *Extractor) { x.metadata = m } }

// New returns an extractor with the default vocabulary.
func New(opts ...Option) *Extractor {
	x := &Extractor{
		classifier: classify.Default(),
		router:     classify.DefaultLaneRouter(),
		zones:      DefaultZones(),
		metadata:   graph.Metadata{Title: "Architecture", Theme: graph.ThemeLight},
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Extract converts text with the default extractor.
func Extract(text string) graph.Graph { return New().Extract(text) }

// Extract converts text into a canonical graph. It never fails.
func (x *Extractor) Extract(text string) graph.Graph {
	g := graph.Graph{Version: graph.Version, Metadata: x.metadata}

	zones := x.matchZones(text)
	for _, z := range zones {
		g.Lanes = append(g.Lanes, graph.Lane{ID: z.ID, Title: z.Title})
		g.Bands = append(g.Bands, graph.Band{ID: z.ID + "_bg", Lane: z.ID, Y: bandY, H: bandH, Color: z.Color})
	}

	g.Nodes = x.extractNodes(text, g.Lanes)
	if len(g.Nodes) == 0 {
		g.Nodes = slices.Clone(defaultNodes)
		g.Lanes, g.Bands = x.ensureLanes(g.Lanes, g.Bands, g.Nodes)
	}

	laneSet := g.LaneIndex()
	for _, b := range defaultBusses {
		if _, ok := laneSet[b.Lane]; ok {
			g.Busses = append(g.Busses, b)
		}
	}

	g.Edges = inferEdges(g.Nodes, text)
	return g
}

// matchZones returns the zones mentioned in text, or every zone when none is.
func (x *Extractor) matchZones(text string) []Zone {
	var out []Zone
	for _, z := range x.zones {
		if z.Pattern.MatchString(text) {
			out = append(out, z)
		}
	}
	if len(out) == 0 {
		return x.zones
	}
	return out
}

// ensureLanes adds any zone referenced by nodes but missing from lanes.
func (x *Extractor) ensureLanes(lanes []graph.Lane, bands []graph.Band, nodes []graph.Node) ([]graph.Lane, []graph.Band) {
	have := make(map[string]bool, len(lanes))
	for _, l := range lanes {
		have[l.ID] = true
	}
	for _, z := range x.zones {
		if have[z.ID] || !slices.ContainsFunc(nodes, func(n graph.Node) bool { return n.Lane == z.ID }) {
			continue
		}
		lanes = append(lanes, graph.Lane{ID: z.ID, Title: z.Title})
		bands = append(bands, graph.Band{ID: z.ID + "_bg", Lane: z.ID, Y: bandY, H: bandH, Color: z.Color})
		have[z.ID] = true
	}
	return lanes, bands
}

func (x *Extractor) extractNodes(text string, lanes []graph.Lane) []graph.Node {
	var nodes []graph.Node
	seen := make(map[string]bool)

	for _, sentence := range sentenceSplit.Split(text, -1) {
		words := strings.Fields(sentence)
		for _, m := range x.classifier.Matchers() {
			for _, word := range words {
				if !m.Pattern.MatchString(word) {
					continue
				}
				clean := nonWord.ReplaceAllString(word, "")
				key := strings.ToLower(clean)
				if clean == "" || seen[key] {
					continue
				}
				seen[key] = true

				sub := detail(sentence)
				if sub == "" {
					sub = string(m.Kind) + " component"
				}
				nodes = append(nodes, graph.Node{
					ID:    fmt.Sprintf("%s_%s_%d", m.Kind, key, len(nodes)),
					Lane:  x.router.Route(m.Kind, lanes),
					Kind:  m.Kind,
					Title: capitalize(clean),
					Sub:   sub,
				})
			}
		}
	}
	return nodes
}

// inferEdges links nodes named in connection phrases. Without any phrase,
// consecutive nodes in different lanes are chained so the diagram is not
// disconnected.
func inferEdges(nodes []graph.Node, text string) []graph.Edge {
	var edges []graph.Edge
	seen := make(map[[2]string]bool)
	for _, p := range connectionPatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			from, okFrom := findNode(nodes, m[1])
			to, okTo := findNode(nodes, m[2])
			if !okFrom || !okTo {
				continue
			}
			key := [2]string{from.ID, to.ID}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, graph.Edge{From: from.ID, To: to.ID, Style: graph.StyleSolid, Label: "connects"})
		}
	}
	if len(edges) > 0 {
		return edges
	}

	for i := 0; i+1 < len(nodes); i++ {
		from, to := nodes[i], nodes[i+1]
		if from.Lane == to.Lane {
			continue
		}
		style := graph.StyleSolid
		if len(edges)%2 == 1 {
			style = graph.StyleDashed
		}
		label := "data"
		if strings.Contains(from.Lane, "network") {
			label = "network"
		}
		edges = append(edges, graph.Edge{From: from.ID, To: to.ID, Style: style, Label: label})
	}
	return edges
}

func findNode(nodes []graph.Node, name string) (graph.Node, bool) {
	name = strings.ToLower(name)
	for _, n := range nodes {
		if strings.Contains(strings.ToLower(n.Title), name) || strings.Contains(strings.ToLower(n.ID), name) {
			return n, true
		}
	}
	return graph.Node{}, false
}

func detail(sentence string) string {
	m := detailPattern.FindStringSubmatch(sentence)
	if m == nil {
		return ""
	}
	for _, s := range m[1:] {
		if s != "" {
			return s
		}
	}
	return ""
}

func capitalize(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
