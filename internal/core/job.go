// Package core defines the essential data structures shared by the review
// pipeline: model specs, jobs, per-model results, and the final report shape.
// These components are plain values so that the orchestration, aggregation,
// and reporting layers stay decoupled from any particular backend.
package core

import (
	"fmt"
	"strings"
)

// ModelSpec identifies one backend instance as a provider/model pair.
// It is immutable and created from configuration at job start.
type ModelSpec struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// String renders the spec in "provider:model" form.
func (s ModelSpec) String() string {
	return s.Provider + ":" + s.Model
}

// ParseModelSpec parses a "provider:model" string into a ModelSpec.
func ParseModelSpec(spec string) (ModelSpec, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ModelSpec{}, fmt.Errorf("invalid model spec %q: expected provider:model", spec)
	}
	return ModelSpec{Provider: parts[0], Model: parts[1]}, nil
}

// PassThreshold is the configured policy that converts agreement tiers into
// a pass/fail decision for the whole job.
type PassThreshold string

const (
	// ThresholdStrict fails the job when any improvement finding was raised
	// by two or more models.
	ThresholdStrict PassThreshold = "strict"
	// ThresholdLenient fails the job only when every successful model agrees
	// on an improvement finding.
	ThresholdLenient PassThreshold = "lenient"
	// ThresholdNone never fails on agreement; only backend errors combined
	// with fail-on-error can fail the job.
	ThresholdNone PassThreshold = "none"
)

// ParsePassThreshold validates and normalizes a threshold name.
func ParsePassThreshold(s string) (PassThreshold, error) {
	switch PassThreshold(strings.ToLower(strings.TrimSpace(s))) {
	case ThresholdStrict:
		return ThresholdStrict, nil
	case ThresholdLenient:
		return ThresholdLenient, nil
	case ThresholdNone, "":
		return ThresholdNone, nil
	}
	return "", fmt.Errorf("unknown pass threshold %q: expected strict, lenient, or none", s)
}

// ReviewJob is the unit of work: one prompt fanned out to a set of backends.
// A job is created once per invocation and owns its concurrent sub-tasks.
type ReviewJob struct {
	Prompt        string
	ModelSpecs    []ModelSpec
	TokenLimit    int
	FailOnError   bool
	PassThreshold PassThreshold
}

// Status marks the outcome of a single backend run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// BaseUsage is the normalized token accounting shape. Every provider-specific
// usage payload collapses to this form.
type BaseUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// ModelReviewResult is the single outcome record for one ModelSpec. The
// orchestrator produces exactly one per configured backend, success or not,
// and never mutates it afterward.
type ModelReviewResult struct {
	Spec          ModelSpec     `json:"spec"`
	RawText       string        `json:"raw_text,omitempty"`
	Usage         BaseUsage     `json:"usage"`
	LatencyMs     int64         `json:"latency_ms"`
	Status        Status        `json:"status"`
	ErrorCategory ErrorCategory `json:"error_category,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`
}

// SuccessfulResults filters a result set down to the successful runs.
// Its length is the N_success denominator used for agreement tiering.
func SuccessfulResults(results []ModelReviewResult) []ModelReviewResult {
	out := make([]ModelReviewResult, 0, len(results))
	for _, r := range results {
		if r.Status == StatusSuccess {
			out = append(out, r)
		}
	}
	return out
}
