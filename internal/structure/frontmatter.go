// Package structure validates spec documents: YAML front matter checked
// against per-type JSON Schemas, plus cross-field identifier checks.
package structure

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoFrontMatter marks a document without a leading --- block.
var ErrNoFrontMatter = errors.New("missing YAML front matter")

// ParseFrontMatter extracts the leading YAML block and the remaining body.
func ParseFrontMatter(content string) (map[string]any, string, error) {
	if !strings.HasPrefix(content, "---") {
		return nil, "", ErrNoFrontMatter
	}

	parts := strings.SplitN(content[3:], "---", 2)
	if len(parts) < 2 {
		return nil, "", ErrNoFrontMatter
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(parts[0]), &meta); err != nil {
		return nil, "", fmt.Errorf("invalid YAML front matter: %w", err)
	}

	return meta, strings.TrimSpace(parts[1]), nil
}
