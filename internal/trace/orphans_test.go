package trace

import (
	"testing"

	"tracelens/internal/identifier"

	"github.com/stretchr/testify/assert"
)

func TestDetectOrphans(t *testing.T) {
	groups := map[identifier.Kind][]string{
		identifier.KindRequirement: {"REQ-F-001", "REQ-F-002"},
		identifier.KindScenario:    {"QA-SC-001", "QA-SC-010"},
		identifier.KindComponent:   {"ARC-C-001", "ARC-C-002"},
		identifier.KindDecision:    {"ADR-001", "ADR-002"},
	}
	g := NewGraph()
	g.AddEdge("REQ-F-001", "ADR-001")
	g.AddEdge("REQ-F-001", "QA-SC-001")
	g.AddEdge("REQ-F-001", "ARC-C-001")

	o := DetectOrphans(groups, g)

	assert.Equal(t, []string{"REQ-F-002"}, o.RequirementsNoLinks)
	assert.Equal(t, []string{"QA-SC-010"}, o.ScenariosNoReq)
	assert.Equal(t, []string{"ARC-C-002"}, o.ComponentsNoReq)
	assert.Equal(t, []string{"ADR-002"}, o.ADRsNoReq)
}

func TestDetectOrphans_ScenarioWithNoRequirementAnywhere(t *testing.T) {
	// A scenario in a file with no requirement identifiers ends up orphaned.
	docs := map[string]string{
		"scenarios.md": "QA-SC-010 describes load under failover.",
	}
	idx := identifier.Scan(docs)
	g := InferLinks(idx, docs)

	o := DetectOrphans(idx.Grouped(), g)

	assert.Equal(t, []string{"QA-SC-010"}, o.ScenariosNoReq)
}

func TestDetectOrphans_ConsistencyWithForwardEdges(t *testing.T) {
	// A requirement is in requirements_no_links iff its forward set is empty.
	groups := map[identifier.Kind][]string{
		identifier.KindRequirement: {"REQ-F-001", "REQ-F-002", "REQ-NF-003"},
	}
	g := NewGraph()
	g.AddEdge("REQ-F-002", "ADR-001")

	o := DetectOrphans(groups, g)

	for _, req := range groups[identifier.KindRequirement] {
		if g.HasLinks(req) {
			assert.NotContains(t, o.RequirementsNoLinks, req)
		} else {
			assert.Contains(t, o.RequirementsNoLinks, req)
		}
	}
}

func TestDetectOrphans_EmptyInput(t *testing.T) {
	o := DetectOrphans(map[identifier.Kind][]string{}, NewGraph())

	assert.Empty(t, o.RequirementsNoLinks)
	assert.Empty(t, o.ScenariosNoReq)
	assert.Empty(t, o.ComponentsNoReq)
	assert.Empty(t, o.ADRsNoReq)
}

func TestDetectOrphans_OnlyRequirementSourcesCount(t *testing.T) {
	// A decision referencing a scenario does not rescue the scenario: the
	// category asks for a requirement referencing it.
	groups := map[identifier.Kind][]string{
		identifier.KindRequirement: {"REQ-F-001"},
		identifier.KindScenario:    {"QA-SC-001"},
	}
	g := NewGraph()
	g.AddEdge("ADR-001", "QA-SC-001")
	g.AddEdge("REQ-F-001", "ADR-001")

	o := DetectOrphans(groups, g)

	assert.Equal(t, []string{"QA-SC-001"}, o.ScenariosNoReq)
}

func TestDetectOrphans_SortedOutput(t *testing.T) {
	groups := map[identifier.Kind][]string{
		identifier.KindRequirement: {"REQ-NF-900", "REQ-F-100", "REQ-F-050"},
	}

	o := DetectOrphans(groups, NewGraph())

	assert.Equal(t, []string{"REQ-F-050", "REQ-F-100", "REQ-NF-900"}, o.RequirementsNoLinks)
}
