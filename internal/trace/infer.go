package trace

import (
	"strings"

	"tracelens/internal/identifier"
)

// Kinds whose elements can be linked from a requirement by the heuristic.
// Test identifiers are deliberately excluded: naive substring matching
// cannot infer requirement-to-test linkage reliably, so the relation stays
// empty rather than guessed.
var heuristicTargets = []identifier.Kind{
	identifier.KindDecision,
	identifier.KindComponent,
	identifier.KindScenario,
}

// InferLinks applies the co-occurrence heuristic: an edge R→E exists iff
// the requirement's literal identifier appears somewhere in the text of the
// documents where element E occurs. The relation is evaluated per (R, E)
// pair against E's own text footprint, not the whole corpus.
//
// The heuristic is intentionally approximate: unrelated identifiers that
// happen to share a file produce false positives, and semantically linked
// elements in separate files produce false negatives.
func InferLinks(idx *identifier.Index, docs map[string]string) *Graph {
	g := NewGraph()
	requirements := idx.IDs(identifier.KindRequirement)

	for _, kind := range heuristicTargets {
		for _, element := range idx.IDs(kind) {
			footprint := footprintText(idx, docs, element)
			if footprint == "" {
				continue
			}
			for _, req := range requirements {
				if strings.Contains(footprint, req) {
					g.AddEdge(req, element)
				}
			}
		}
	}

	g.linkRelations()
	return g
}

// footprintText concatenates the text of every document the element
// occurs in.
func footprintText(idx *identifier.Index, docs map[string]string, element string) string {
	paths := idx.Paths(element)
	if len(paths) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range paths {
		sb.WriteString(docs[p])
		sb.WriteByte('\n')
	}
	return sb.String()
}
