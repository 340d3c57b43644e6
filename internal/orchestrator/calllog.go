package orchestrator

import (
	"sync"
	"time"

	"github.com/quorumci/quorum/internal/core"
)

// CallRecord is one entry in the run's call log: a single backend call as
// seen by the orchestrator, after retries have settled.
type CallRecord struct {
	Spec       core.ModelSpec     `json:"spec"`
	StartedAt  time.Time          `json:"started_at"`
	LatencyMs  int64              `json:"latency_ms"`
	Status     core.Status        `json:"status"`
	Category   core.ErrorCategory `json:"category,omitempty"`
	ErrMessage string             `json:"error,omitempty"`
}

// RunLog collects call records for one job. It is the only write-shared
// resource of a run, so it serializes its own appends; the log is returned
// to the caller instead of being accumulated in package state, which keeps
// parallel runs from cross-contaminating.
type RunLog struct {
	mu      sync.Mutex
	records []CallRecord
}

// NewRunLog returns an empty call log for one job.
func NewRunLog() *RunLog {
	return &RunLog{}
}

// Append adds one record. Safe for concurrent use; append order is not
// significant.
func (l *RunLog) Append(record CallRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
}

// Records returns a copy of the collected records.
func (l *RunLog) Records() []CallRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]CallRecord, len(l.records))
	copy(out, l.records)
	return out
}
