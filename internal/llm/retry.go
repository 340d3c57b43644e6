package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/quorumci/quorum/internal/core"
)

const (
	defaultMaxRetries     = 3
	defaultAttemptTimeout = 30 * time.Second
	defaultBaseBackoff    = time.Second
)

// RetryExecutor wraps one completion call with per-attempt deadlines,
// exponential backoff, and category-aware retry decisions. Each attempt runs
// under its own timeout-derived context so a stuck request is cancelled
// without affecting the parent.
type RetryExecutor struct {
	MaxRetries     int
	AttemptTimeout time.Duration
	BaseBackoff    time.Duration

	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRetryExecutor returns an executor with the default policy: 3 retries,
// 30s per attempt, backoff doubling from 1s.
func NewRetryExecutor(logger *slog.Logger) *RetryExecutor {
	return &RetryExecutor{
		MaxRetries:     defaultMaxRetries,
		AttemptTimeout: defaultAttemptTimeout,
		BaseBackoff:    defaultBaseBackoff,
		logger:         logger,
		sleep:          sleepCtx,
	}
}

// ExecutorFactory returns a constructor for executors sharing one policy.
// Non-positive values fall back to the defaults, so a zero config behaves
// like NewRetryExecutor.
func ExecutorFactory(maxRetries int, attemptTimeout time.Duration, logger *slog.Logger) func() *RetryExecutor {
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	if attemptTimeout <= 0 {
		attemptTimeout = defaultAttemptTimeout
	}
	return func() *RetryExecutor {
		e := NewRetryExecutor(logger)
		e.MaxRetries = maxRetries
		e.AttemptTimeout = attemptTimeout
		return e
	}
}

// Execute runs op until it succeeds, returns a non-retryable error, or the
// retry budget is exhausted. Every error leaving Execute carries an
// ErrorCategory.
func (e *RetryExecutor) Execute(ctx context.Context, op func(ctx context.Context) (Completion, error)) (Completion, error) {
	var lastErr error
	for attempt := 0; attempt <= e.MaxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, e.AttemptTimeout)
		result, err := op(attemptCtx)
		cancel()
		if err == nil {
			return result, nil
		}

		lastErr = Classify(err)
		category := core.CategoryOf(lastErr)
		if !category.Retryable() || attempt == e.MaxRetries {
			return Completion{}, lastErr
		}

		backoff := e.BaseBackoff << uint(attempt)
		if e.logger != nil {
			e.logger.Warn("retrying after backend error",
				"attempt", attempt+1,
				"category", category,
				"backoff", backoff,
				"error", err,
			)
		}
		if err := e.sleepFn()(ctx, backoff); err != nil {
			return Completion{}, Classify(err)
		}
	}
	return Completion{}, lastErr
}

func (e *RetryExecutor) sleepFn() func(ctx context.Context, d time.Duration) error {
	if e.sleep == nil {
		return sleepCtx
	}
	return e.sleep
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
