// Package gate enforces the minimum-coverage policy over a previously
// persisted metrics artifact. It computes nothing itself.
package gate

import (
	"errors"
	"fmt"

	"tracelens/internal/trace"
)

// Status is the tri-state gate outcome.
type Status int

const (
	Pass Status = iota
	// DataUnavailable means the artifact or the metric is absent: a missing
	// prerequisite, not a coverage regression.
	DataUnavailable
	// BelowThreshold means the metric exists and fails the minimum.
	BelowThreshold
)

// ExitCode maps a status to the process-level contract: 0 success,
// 1 precondition failure, 2 policy violation.
func (s Status) ExitCode() int {
	switch s {
	case Pass:
		return 0
	case DataUnavailable:
		return 1
	default:
		return 2
	}
}

// Result is the gate outcome with the message shown to the caller.
type Result struct {
	Status   Status
	Message  string
	Coverage float64
	Minimum  float64
}

// DefaultMinimum is the minimum acceptable requirement-linkage coverage.
const DefaultMinimum = 90.0

// DefaultMetricKey is the metrics group the gate inspects.
const DefaultMetricKey = "requirement"

// Check loads the artifact and compares the keyed coverage metric against
// the minimum percentage.
func Check(artifactPath, metricKey string, minimum float64) Result {
	if metricKey == "" {
		metricKey = DefaultMetricKey
	}

	artifact, err := trace.LoadArtifact(artifactPath)
	if err != nil {
		if errors.Is(err, trace.ErrArtifactMissing) {
			return Result{
				Status:  DataUnavailable,
				Minimum: minimum,
				Message: fmt.Sprintf("%s missing; ensure the trace step ran first", artifactPath),
			}
		}
		return Result{
			Status:  DataUnavailable,
			Minimum: minimum,
			Message: err.Error(),
		}
	}

	metric, ok := artifact.Metrics.Groups[metricKey]
	if !ok {
		return Result{
			Status:  DataUnavailable,
			Minimum: minimum,
			Message: fmt.Sprintf("no %q metrics found in %s", metricKey, artifactPath),
		}
	}

	if metric.CoveragePct < minimum {
		return Result{
			Status:   BelowThreshold,
			Coverage: metric.CoveragePct,
			Minimum:  minimum,
			Message: fmt.Sprintf("requirement linkage coverage %.2f%% < threshold %.2f%%",
				metric.CoveragePct, minimum),
		}
	}

	return Result{
		Status:   Pass,
		Coverage: metric.CoveragePct,
		Minimum:  minimum,
		Message: fmt.Sprintf("requirement linkage coverage %.2f%% >= threshold %.2f%%",
			metric.CoveragePct, minimum),
	}
}
