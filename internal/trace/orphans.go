package trace

import (
	"sort"

	"tracelens/internal/identifier"
)

// Orphans partitions identifiers lacking expected linkage into four
// independent categories. Each list is sorted for reproducible diffing.
// Orphans are findings, never failures: detection always succeeds and the
// threshold gate alone enforces policy.
type Orphans struct {
	RequirementsNoLinks []string `json:"requirements_no_links"`
	ScenariosNoReq      []string `json:"scenarios_no_req"`
	ComponentsNoReq     []string `json:"components_no_req"`
	ADRsNoReq           []string `json:"adrs_no_req"`
}

// DetectOrphans classifies unlinked identifiers from the group sets and the
// reference graph. Empty inputs yield four empty categories.
func DetectOrphans(groups map[identifier.Kind][]string, g *Graph) Orphans {
	requirements := groups[identifier.KindRequirement]

	// Union of everything any requirement points at.
	referenced := make(map[string]struct{})
	for _, req := range requirements {
		for target := range g.Forward[req] {
			referenced[target] = struct{}{}
		}
	}

	o := Orphans{
		RequirementsNoLinks: []string{},
		ScenariosNoReq:      []string{},
		ComponentsNoReq:     []string{},
		ADRsNoReq:           []string{},
	}

	for _, req := range requirements {
		if !g.HasLinks(req) {
			o.RequirementsNoLinks = append(o.RequirementsNoLinks, req)
		}
	}
	for _, s := range groups[identifier.KindScenario] {
		if _, ok := referenced[s]; !ok {
			o.ScenariosNoReq = append(o.ScenariosNoReq, s)
		}
	}
	for _, c := range groups[identifier.KindComponent] {
		if _, ok := referenced[c]; !ok {
			o.ComponentsNoReq = append(o.ComponentsNoReq, c)
		}
	}
	for _, a := range groups[identifier.KindDecision] {
		if _, ok := referenced[a]; !ok {
			o.ADRsNoReq = append(o.ADRsNoReq, a)
		}
	}

	sort.Strings(o.RequirementsNoLinks)
	sort.Strings(o.ScenariosNoReq)
	sort.Strings(o.ComponentsNoReq)
	sort.Strings(o.ADRsNoReq)
	return o
}
