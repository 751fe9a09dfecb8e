package structure

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Issue is one validation finding for a file.
type Issue struct {
	File    string
	Message string
}

var (
	reqIDPattern = regexp.MustCompile(`REQ-(F|NF)-\d{3}`)
	adrIDPattern = regexp.MustCompile(`ADR-\d{3}`)
)

// Validator checks spec documents against JSON Schemas selected by the
// specType front-matter field. Compiled schemas are cached per path.
type Validator struct {
	schemaDir string

	mu    sync.Mutex
	cache map[string]*jsonschema.Schema
}

// NewValidator creates a validator reading schemas from schemaDir.
// Schema files are named <specType>-spec.schema.json.
func NewValidator(schemaDir string) *Validator {
	return &Validator{
		schemaDir: schemaDir,
		cache:     make(map[string]*jsonschema.Schema),
	}
}

// ValidateFile checks one document and returns its issues. A well-formed
// document yields an empty slice. Unreadable files yield a single issue
// rather than an error: structure validation is a reporting step.
func (v *Validator) ValidateFile(path string) []Issue {
	content, err := os.ReadFile(path)
	if err != nil {
		return []Issue{{File: path, Message: fmt.Sprintf("unreadable: %v", err)}}
	}
	return v.validate(path, string(content))
}

func (v *Validator) validate(path, content string) []Issue {
	meta, _, err := ParseFrontMatter(content)
	if err != nil {
		if errors.Is(err, ErrNoFrontMatter) {
			return []Issue{{File: path, Message: "Missing YAML front matter (--- block)"}}
		}
		return []Issue{{File: path, Message: "Invalid YAML front matter"}}
	}

	specType, _ := meta["specType"].(string)
	if specType == "" {
		return []Issue{{File: path, Message: "Missing specType in front matter"}}
	}

	schema, err := v.loadSchema(specType)
	if err != nil {
		return []Issue{{File: path, Message: fmt.Sprintf("Schema load error: %v", err)}}
	}

	var issues []Issue
	for _, violation := range validateAgainst(schema, meta) {
		issues = append(issues, Issue{File: path, Message: "Schema violation: " + violation})
	}

	// Cross-field checks on the document body.
	switch specType {
	case "requirements":
		if !reqIDPattern.MatchString(content) {
			issues = append(issues, Issue{File: path, Message: "No REQ-* identifiers found in body"})
		}
	case "architecture":
		if !adrIDPattern.MatchString(content) {
			issues = append(issues, Issue{File: path, Message: "No ADR-XXX references found in architecture spec"})
		}
	}

	return issues
}

func (v *Validator) loadSchema(specType string) (*jsonschema.Schema, error) {
	schemaPath := filepath.Join(v.schemaDir, specType+"-spec.schema.json")
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("no schema for specType=%s", specType)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if cached, ok := v.cache[abs]; ok {
		return cached, nil
	}

	compiler := jsonschema.NewCompiler()
	compiled, err := compiler.Compile("file://" + filepath.ToSlash(abs))
	if err != nil {
		return nil, err
	}
	v.cache[abs] = compiled
	return compiled, nil
}

// validateAgainst normalizes the front matter through a JSON round trip and
// returns one message per leaf violation.
func validateAgainst(schema *jsonschema.Schema, meta map[string]any) []string {
	raw, err := json.Marshal(meta)
	if err != nil {
		return []string{err.Error()}
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return []string{err.Error()}
	}

	err = schema.Validate(normalized)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	return leafMessages(ve)
}

func leafMessages(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "<root>"
		}
		return []string{loc + ": " + ve.Message}
	}
	var out []string
	for _, cause := range ve.Causes {
		out = append(out, leafMessages(cause)...)
	}
	return out
}
