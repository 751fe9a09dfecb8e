package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tracelens/internal/specindex"
)

// ErrArtifactMissing marks an absent traceability artifact, distinct from a
// present-but-failing metric so callers can tell "no data" from "data says
// no".
var ErrArtifactMissing = errors.New("traceability artifact missing")

// Metrics carries the per-group triples and the requirement dimension
// sub-metrics. Both live in one flat JSON object keyed distinctly, so the
// type marshals them merged and splits them back on load.
type Metrics struct {
	Groups     map[string]Metric
	Dimensions map[string]DimensionMetric
}

// Artifact is the persisted traceability record. It is overwritten wholesale
// on every run, never merged.
type Artifact struct {
	Items    []specindex.Item    `json:"items"`
	Forward  map[string][]string `json:"forward"`
	Backward map[string][]string `json:"backward"`
	Metrics  Metrics             `json:"metrics"`
}

// MarshalJSON merges group and dimension metrics into a single object.
func (m Metrics) MarshalJSON() ([]byte, error) {
	merged := make(map[string]any, len(m.Groups)+len(m.Dimensions))
	for k, v := range m.Groups {
		merged[k] = v
	}
	for k, v := range m.Dimensions {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON splits a flat metrics object back into group and dimension
// maps. A value carrying "total_requirements" is a dimension metric; the
// rest are group triples.
func (m *Metrics) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Groups = make(map[string]Metric)
	m.Dimensions = make(map[string]DimensionMetric)
	for key, val := range raw {
		var probe struct {
			TotalRequirements *int `json:"total_requirements"`
		}
		if err := json.Unmarshal(val, &probe); err != nil {
			return fmt.Errorf("metric %q: %w", key, err)
		}
		if probe.TotalRequirements != nil {
			var d DimensionMetric
			if err := json.Unmarshal(val, &d); err != nil {
				return fmt.Errorf("metric %q: %w", key, err)
			}
			m.Dimensions[key] = d
			continue
		}
		var g Metric
		if err := json.Unmarshal(val, &g); err != nil {
			return fmt.Errorf("metric %q: %w", key, err)
		}
		m.Groups[key] = g
	}
	return nil
}

// BuildArtifact assembles the persisted record from a graph and metrics.
// Forward entries are emitted for every graph source; backward lists keep
// their deterministic order.
func BuildArtifact(items []specindex.Item, g *Graph, metrics Metrics) *Artifact {
	forward := make(map[string][]string, len(g.Forward))
	for src := range g.Forward {
		forward[src] = g.Targets(src)
	}
	backward := make(map[string][]string, len(g.Backward))
	for target, sources := range g.Backward {
		backward[target] = append([]string(nil), sources...)
	}
	if items == nil {
		items = []specindex.Item{}
	}
	return &Artifact{
		Items:    items,
		Forward:  forward,
		Backward: backward,
		Metrics:  metrics,
	}
}

// SaveArtifact writes the artifact as an indented whole-file overwrite.
func SaveArtifact(path string, a *Artifact) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0644)
}

// LoadArtifact reads a previously persisted artifact. A missing file yields
// ErrArtifactMissing; malformed content names the file and root cause.
func LoadArtifact(path string) (*Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return nil, err
	}
	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	return &a, nil
}
