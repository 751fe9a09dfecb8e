package trace

import (
	"strings"

	"tracelens/internal/identifier"
)

// KeyScheme selects how metric groups are keyed in the output.
type KeyScheme int

const (
	// Normalized keys groups by label: "stakeholder", "requirement", ...
	Normalized KeyScheme = iota
	// RawPrefix keys groups by identifier prefix: "StR", "REQ", ...
	RawPrefix
)

// Metric is the per-group coverage triple.
type Metric struct {
	Total       int     `json:"total"`
	WithLinks   int     `json:"with_links"`
	CoveragePct float64 `json:"coverage_pct"`
}

// DimensionMetric is the stricter per-relation requirement metric: coverage
// counting only edges whose target is of one specific kind.
type DimensionMetric struct {
	TotalRequirements    int     `json:"total_requirements"`
	RequirementsWithLink int     `json:"requirements_with_link"`
	CoveragePct          float64 `json:"coverage_pct"`
}

// Dimension metric keys in the persisted artifact.
const (
	DimRequirementToADR      = "requirement_to_ADR"
	DimRequirementToScenario = "requirement_to_scenario"
	DimRequirementToTest     = "requirement_to_test"
)

// GroupKey returns the metrics key for a kind under the scheme.
func GroupKey(k identifier.Kind, scheme KeyScheme) string {
	if scheme == RawPrefix {
		return k.Prefix()
	}
	return string(k)
}

// ComputeMetrics computes the coverage triple for every group.
// An empty group is fully covered by convention (100.0).
func ComputeMetrics(groups map[identifier.Kind][]string, g *Graph, scheme KeyScheme) map[string]Metric {
	metrics := make(map[string]Metric, len(identifier.Kinds()))
	for _, k := range identifier.Kinds() {
		ids := groups[k]
		linked := 0
		for _, id := range ids {
			if g.HasLinks(id) {
				linked++
			}
		}
		metrics[GroupKey(k, scheme)] = Metric{
			Total:       len(ids),
			WithLinks:   linked,
			CoveragePct: pct(linked, len(ids)),
		}
	}
	return metrics
}

// ComputeDimensions computes the per-relation requirement metrics for the
// decision, scenario, and test dimensions. Zero requirements yields 100% on
// every dimension.
func ComputeDimensions(requirements []string, g *Graph) map[string]DimensionMetric {
	dims := map[string]string{
		DimRequirementToADR:      identifier.KindDecision.Prefix(),
		DimRequirementToScenario: identifier.KindScenario.Prefix(),
		DimRequirementToTest:     identifier.KindTest.Prefix(),
	}

	out := make(map[string]DimensionMetric, len(dims))
	for key, prefix := range dims {
		withLink := 0
		for _, req := range requirements {
			if hasTargetWithPrefix(g, req, prefix) {
				withLink++
			}
		}
		out[key] = DimensionMetric{
			TotalRequirements:    len(requirements),
			RequirementsWithLink: withLink,
			CoveragePct:          pct(withLink, len(requirements)),
		}
	}
	return out
}

func hasTargetWithPrefix(g *Graph, id, prefix string) bool {
	for target := range g.Forward[id] {
		if strings.HasPrefix(target, prefix) {
			return true
		}
	}
	return false
}

func pct(with, total int) float64 {
	if total == 0 {
		return 100.0
	}
	return float64(with) / float64(total) * 100.0
}
