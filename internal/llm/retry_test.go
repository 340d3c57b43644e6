package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumci/quorum/internal/core"
)

func testExecutor(sleeps *[]time.Duration) *RetryExecutor {
	return &RetryExecutor{
		MaxRetries:     defaultMaxRetries,
		AttemptTimeout: defaultAttemptTimeout,
		BaseBackoff:    defaultBaseBackoff,
		sleep: func(_ context.Context, d time.Duration) error {
			*sleeps = append(*sleeps, d)
			return nil
		},
	}
}

func TestExecuteRetriesTransientFailures(t *testing.T) {
	var sleeps []time.Duration
	exec := testExecutor(&sleeps)

	calls := 0
	result, err := exec.Execute(context.Background(), func(ctx context.Context) (Completion, error) {
		calls++
		if calls < 3 {
			return Completion{}, core.Categorize(core.ErrNetwork, errors.New("connection reset"))
		}
		return Completion{Text: "ok"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result.Text)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, sleeps)
}

func TestExecuteExhaustsRetryBudget(t *testing.T) {
	var sleeps []time.Duration
	exec := testExecutor(&sleeps)

	calls := 0
	_, err := exec.Execute(context.Background(), func(ctx context.Context) (Completion, error) {
		calls++
		return Completion{}, core.Categorize(core.ErrRateLimit, errors.New("429"))
	})

	require.Error(t, err)
	assert.Equal(t, core.ErrRateLimit, core.CategoryOf(err))
	assert.Equal(t, 4, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, sleeps)
}

func TestExecuteStopsOnNonRetryable(t *testing.T) {
	var sleeps []time.Duration
	exec := testExecutor(&sleeps)

	calls := 0
	_, err := exec.Execute(context.Background(), func(ctx context.Context) (Completion, error) {
		calls++
		return Completion{}, core.Categorize(core.ErrAuthentication, errors.New("invalid api key"))
	})

	require.Error(t, err)
	assert.Equal(t, core.ErrAuthentication, core.CategoryOf(err))
	assert.Equal(t, 1, calls)
	assert.Empty(t, sleeps)
}

func TestExecuteClassifiesRawErrors(t *testing.T) {
	var sleeps []time.Duration
	exec := testExecutor(&sleeps)

	_, err := exec.Execute(context.Background(), func(ctx context.Context) (Completion, error) {
		return Completion{}, context.DeadlineExceeded
	})

	require.Error(t, err)
	assert.Equal(t, core.ErrTimeout, core.CategoryOf(err))
	// Timeouts are retryable, so the full budget is spent.
	assert.Len(t, sleeps, defaultMaxRetries)
}

func TestExecuteAppliesPerAttemptTimeout(t *testing.T) {
	exec := &RetryExecutor{
		MaxRetries:     0,
		AttemptTimeout: 10 * time.Millisecond,
		BaseBackoff:    time.Millisecond,
	}

	_, err := exec.Execute(context.Background(), func(ctx context.Context) (Completion, error) {
		<-ctx.Done()
		return Completion{}, ctx.Err()
	})

	require.Error(t, err)
	assert.Equal(t, core.ErrTimeout, core.CategoryOf(err))
}

func TestExecuteHonoursParentCancellationDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	exec := &RetryExecutor{
		MaxRetries:     3,
		AttemptTimeout: time.Second,
		BaseBackoff:    time.Second,
		sleep: func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}

	calls := 0
	_, err := exec.Execute(ctx, func(ctx context.Context) (Completion, error) {
		calls++
		return Completion{}, core.Categorize(core.ErrNetwork, errors.New("flaky"))
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
