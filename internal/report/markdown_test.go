package report

import (
	"os"
	"path/filepath"
	"testing"

	"tracelens/internal/trace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMatrix(t *testing.T) {
	g := trace.NewGraph()
	g.AddEdge("REQ-F-001", "ADR-001")
	g.AddEdge("REQ-F-001", "QA-SC-002")

	path := filepath.Join(t.TempDir(), "reports", "traceability-matrix.md")
	err := WriteMatrix(path, []string{"REQ-F-001", "REQ-F-002"}, g)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(b)

	assert.Contains(t, content, "# Traceability Matrix (Heuristic Draft)")
	assert.Contains(t, content, "| REQ-F-001 | ADR-001, QA-SC-002 |")
	assert.Contains(t, content, "| REQ-F-002 | (none) |")
}

func TestWriteOrphans(t *testing.T) {
	o := trace.Orphans{
		RequirementsNoLinks: []string{"REQ-F-002"},
		ScenariosNoReq:      []string{},
		ComponentsNoReq:     []string{"ARC-C-001", "ARC-C-002"},
		ADRsNoReq:           []string{},
	}

	path := filepath.Join(t.TempDir(), "orphans.md")
	require.NoError(t, WriteOrphans(path, o))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(b)

	assert.Contains(t, content, "# Orphan Analysis")
	assert.Contains(t, content, "## requirements_no_links\n- REQ-F-002\n")
	assert.Contains(t, content, "## scenarios_no_req\n- None\n")
	assert.Contains(t, content, "## components_no_req\n- ARC-C-001\n- ARC-C-002\n")
	assert.Contains(t, content, "## adrs_no_req\n- None\n")
}

func TestWriteMatrix_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.md")
	g := trace.NewGraph()
	g.AddEdge("REQ-F-001", "ADR-001")

	require.NoError(t, WriteMatrix(path, []string{"REQ-F-001"}, g))
	require.NoError(t, WriteMatrix(path, []string{}, trace.NewGraph()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "REQ-F-001")
}
