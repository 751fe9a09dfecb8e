package structure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requirementsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["specType", "title"],
  "properties": {
    "specType": {"type": "string"},
    "title": {"type": "string"},
    "version": {"type": "integer"}
  }
}`

func setupSchemas(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "requirements-spec.schema.json"),
		[]byte(requirementsSchema), 0644))
	return dir
}

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spec.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseFrontMatter(t *testing.T) {
	t.Run("extracts block and body", func(t *testing.T) {
		meta, body, err := ParseFrontMatter("---\nspecType: requirements\ntitle: Reqs\n---\nBody here.")
		require.NoError(t, err)
		assert.Equal(t, "requirements", meta["specType"])
		assert.Equal(t, "Body here.", body)
	})

	t.Run("missing block", func(t *testing.T) {
		_, _, err := ParseFrontMatter("# Just markdown")
		assert.ErrorIs(t, err, ErrNoFrontMatter)
	})

	t.Run("unterminated block", func(t *testing.T) {
		_, _, err := ParseFrontMatter("---\nspecType: requirements\n")
		assert.ErrorIs(t, err, ErrNoFrontMatter)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, _, err := ParseFrontMatter("---\n: : :\n---\nbody")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoFrontMatter)
	})
}

func TestValidator_ValidSpec(t *testing.T) {
	v := NewValidator(setupSchemas(t))
	path := writeSpec(t, "---\nspecType: requirements\ntitle: Functional Requirements\n---\nREQ-F-001 shall parse input.")

	issues := v.ValidateFile(path)
	assert.Empty(t, issues)
}

func TestValidator_MissingFrontMatter(t *testing.T) {
	v := NewValidator(setupSchemas(t))
	path := writeSpec(t, "# No front matter\nREQ-F-001")

	issues := v.ValidateFile(path)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "Missing YAML front matter")
}

func TestValidator_MissingSpecType(t *testing.T) {
	v := NewValidator(setupSchemas(t))
	path := writeSpec(t, "---\ntitle: Untyped\n---\nbody")

	issues := v.ValidateFile(path)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "Missing specType")
}

func TestValidator_UnknownSpecType(t *testing.T) {
	v := NewValidator(setupSchemas(t))
	path := writeSpec(t, "---\nspecType: deployment\ntitle: X\n---\nbody")

	issues := v.ValidateFile(path)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "Schema load error")
	assert.Contains(t, issues[0].Message, "deployment")
}

func TestValidator_SchemaViolation(t *testing.T) {
	v := NewValidator(setupSchemas(t))
	// Missing required "title" and wrong type for "version".
	path := writeSpec(t, "---\nspecType: requirements\nversion: not-a-number\n---\nREQ-F-001")

	issues := v.ValidateFile(path)
	require.NotEmpty(t, issues)
	for _, issue := range issues {
		assert.Contains(t, issue.Message, "Schema violation")
	}
}

func TestValidator_CrossFieldChecks(t *testing.T) {
	v := NewValidator(setupSchemas(t))

	t.Run("requirements spec needs a REQ identifier in the body", func(t *testing.T) {
		path := writeSpec(t, "---\nspecType: requirements\ntitle: Reqs\n---\nNo identifiers here.")
		issues := v.ValidateFile(path)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "No REQ-* identifiers")
	})

	t.Run("identifier in front matter counts too", func(t *testing.T) {
		// The check scans the whole document, front matter included.
		path := writeSpec(t, "---\nspecType: requirements\ntitle: REQ-F-001 intake\n---\nbody")
		issues := v.ValidateFile(path)
		assert.Empty(t, issues)
	})
}

func TestValidator_UnreadableFile(t *testing.T) {
	v := NewValidator(setupSchemas(t))
	issues := v.ValidateFile(filepath.Join(t.TempDir(), "absent.md"))
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "unreadable")
}
