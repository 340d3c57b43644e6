// Package orchestrator fans one review prompt out to every configured
// backend concurrently and collects exactly one result per backend,
// regardless of individual failures.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quorumci/quorum/internal/core"
	"github.com/quorumci/quorum/internal/llm"
)

// Orchestrator runs review jobs. Each backend gets its own goroutine and its
// own result slot, written exactly once at completion, so no locking is
// needed beyond the shared call log.
type Orchestrator struct {
	newProvider func(core.ModelSpec) (llm.Provider, error)
	newExecutor func() *llm.RetryExecutor
	logger      *slog.Logger
}

// New creates an orchestrator wired to the provider registry. A nil
// newExecutor selects the default retry policy.
func New(logger *slog.Logger, newExecutor func() *llm.RetryExecutor) *Orchestrator {
	if newExecutor == nil {
		newExecutor = func() *llm.RetryExecutor { return llm.NewRetryExecutor(logger) }
	}
	return &Orchestrator{
		newProvider: llm.New,
		newExecutor: newExecutor,
		logger:      logger,
	}
}

// RunAll executes the job against every configured ModelSpec in parallel and
// returns one ModelReviewResult per spec, in input order, plus the run's
// call log. All tasks run to completion independently; a failure in one
// never cancels the others, and even a fully failed run returns N error
// results rather than an error.
func (o *Orchestrator) RunAll(ctx context.Context, job core.ReviewJob) ([]core.ModelReviewResult, *RunLog) {
	results := make([]core.ModelReviewResult, len(job.ModelSpecs))
	runLog := NewRunLog()

	var g errgroup.Group
	for i, spec := range job.ModelSpecs {
		g.Go(func() error {
			results[i] = o.runOne(ctx, job, spec, runLog)
			return nil
		})
	}
	// Workers never return errors; Wait is a join point only.
	_ = g.Wait()

	return results, runLog
}

// runOne drives a single backend through the retry executor and converts
// any terminal failure into an error-status result.
func (o *Orchestrator) runOne(ctx context.Context, job core.ReviewJob, spec core.ModelSpec, runLog *RunLog) core.ModelReviewResult {
	started := time.Now()

	result := core.ModelReviewResult{
		Spec:   spec,
		Status: core.StatusSuccess,
	}

	var err error
	if job.TokenLimit > 0 && llm.EstimateTokens(job.Prompt) > job.TokenLimit {
		err = core.Categorize(core.ErrInputTooLarge,
			fmt.Errorf("prompt is ~%d tokens, limit is %d", llm.EstimateTokens(job.Prompt), job.TokenLimit))
	}

	var provider llm.Provider
	if err == nil {
		provider, err = o.newProvider(spec)
	}
	if err == nil {
		var completion llm.Completion
		completion, err = o.newExecutor().Execute(ctx, func(ctx context.Context) (llm.Completion, error) {
			return provider.RunCompletion(ctx, llm.CompletionRequest{
				UserPrompt: job.Prompt,
			})
		})
		if err == nil {
			result.RawText = completion.Text
			result.Usage = llm.NormalizeUsage(completion.Usage)
		}
	}

	result.LatencyMs = time.Since(started).Milliseconds()

	if err != nil {
		err = llm.Classify(err)
		result.Status = core.StatusError
		result.ErrorCategory = core.CategoryOf(err)
		result.ErrorMessage = err.Error()
		o.logger.Error("backend review failed",
			"model", spec.String(),
			"category", result.ErrorCategory,
			"error", err,
		)
	} else {
		o.logger.Info("backend review completed",
			"model", spec.String(),
			"latency_ms", result.LatencyMs,
			"total_tokens", result.Usage.TotalTokens,
		)
	}

	runLog.Append(CallRecord{
		Spec:       spec,
		StartedAt:  started,
		LatencyMs:  result.LatencyMs,
		Status:     result.Status,
		Category:   result.ErrorCategory,
		ErrMessage: result.ErrorMessage,
	})

	return result
}

// HasErrors reports whether any result carries an error status. Combined
// with the job's FailOnError flag this drives the nonzero exit condition;
// successful sibling results are never discarded because of it.
func HasErrors(results []core.ModelReviewResult) bool {
	for _, r := range results {
		if r.Status == core.StatusError {
			return true
		}
	}
	return false
}
