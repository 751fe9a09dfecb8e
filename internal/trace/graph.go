package trace

import (
	"sort"

	"tracelens/internal/identifier"
	"tracelens/internal/specindex"
)

// Graph holds the reference edges between identifiers.
// Forward maps a source to its target set; Backward is the transpose with
// sources in deterministic (lexicographic) order.
type Graph struct {
	Forward  map[string]map[string]struct{}
	Backward map[string][]string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Forward:  make(map[string]map[string]struct{}),
		Backward: make(map[string][]string),
	}
}

// AddEdge records a directed reference from source to target.
func (g *Graph) AddEdge(source, target string) {
	targets, ok := g.Forward[source]
	if !ok {
		targets = make(map[string]struct{})
		g.Forward[source] = targets
	}
	targets[target] = struct{}{}
}

// Targets returns the sorted forward targets of an identifier.
// Absence of an entry means zero references, not an error.
func (g *Graph) Targets(id string) []string {
	set := g.Forward[id]
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// HasLinks reports whether the identifier has at least one outbound edge.
func (g *Graph) HasLinks(id string) bool {
	return len(g.Forward[id]) > 0
}

// linkRelations rebuilds Backward as the transpose of Forward.
// Sources are visited in sorted order so the backward lists are
// reproducible regardless of map iteration or parallel accumulation.
func (g *Graph) linkRelations() {
	g.Backward = make(map[string][]string)
	sources := make([]string, 0, len(g.Forward))
	for src := range g.Forward {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	for _, src := range sources {
		for _, target := range g.Targets(src) {
			g.Backward[target] = append(g.Backward[target], src)
		}
	}
}

// FromIndex builds a graph from declared references, verbatim.
// No inference is applied: this is the explicit strategy, strictly more
// precise than the heuristic but dependent on upstream declaration
// discipline.
func FromIndex(items []specindex.Item) *Graph {
	g := NewGraph()
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		if _, ok := g.Forward[item.ID]; !ok {
			g.Forward[item.ID] = make(map[string]struct{})
		}
		for _, ref := range item.References {
			g.AddEdge(item.ID, ref)
		}
	}
	g.linkRelations()
	return g
}

// GroupIDs classifies item identifiers by kind. Identifiers matching no
// recognized prefix are dropped. Every kind is present in the result, empty
// groups included, so downstream metrics always cover all six groups.
func GroupIDs(items []specindex.Item) map[identifier.Kind][]string {
	groups := make(map[identifier.Kind][]string, 6)
	for _, k := range identifier.Kinds() {
		groups[k] = []string{}
	}
	for _, item := range items {
		if k, ok := identifier.KindOf(item.ID); ok {
			groups[k] = append(groups[k], item.ID)
		}
	}
	for k := range groups {
		sort.Strings(groups[k])
	}
	return groups
}
