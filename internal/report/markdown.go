// Package report renders the markdown audit reports. Files are overwritten
// wholesale on every run.
package report

import (
	"os"
	"path/filepath"
	"strings"

	"tracelens/internal/trace"
)

// WriteMatrix renders the traceability matrix: one row per requirement with
// its linked elements, or an explicit (none) marker.
func WriteMatrix(path string, requirements []string, g *trace.Graph) error {
	var sb strings.Builder
	sb.WriteString("# Traceability Matrix (Heuristic Draft)\n\n")
	sb.WriteString("| Requirement | Linked Elements (ADR / Component / Scenario / Test) |\n")
	sb.WriteString("|-------------|----------------------------------------------------|\n")

	for _, req := range requirements {
		linked := strings.Join(g.Targets(req), ", ")
		if linked == "" {
			linked = "(none)"
		}
		sb.WriteString("| " + req + " | " + linked + " |\n")
	}

	return writeFile(path, sb.String())
}

// WriteOrphans renders the orphan report: one section per category with a
// "None" marker when the category is empty.
func WriteOrphans(path string, o trace.Orphans) error {
	var sb strings.Builder
	sb.WriteString("# Orphan Analysis\n\n")

	sections := []struct {
		title string
		ids   []string
	}{
		{"requirements_no_links", o.RequirementsNoLinks},
		{"scenarios_no_req", o.ScenariosNoReq},
		{"components_no_req", o.ComponentsNoReq},
		{"adrs_no_req", o.ADRsNoReq},
	}

	for _, sec := range sections {
		sb.WriteString("## " + sec.title + "\n")
		if len(sec.ids) == 0 {
			sb.WriteString("- None\n")
		} else {
			for _, id := range sec.ids {
				sb.WriteString("- " + id + "\n")
			}
		}
		sb.WriteString("\n")
	}

	return writeFile(path, sb.String())
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
