package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumci/quorum/internal/core"
	"github.com/quorumci/quorum/internal/llm"
)

const extractionPayload = `{
	"categories": [
		{"name": "Security", "description": "Vulnerabilities and unsafe patterns"},
		{"name": "Performance", "description": "Inefficient code paths"}
	],
	"findings": [
		{
			"cluster_key": "sql-injection-login",
			"title": "SQL injection in login handler",
			"category": "Security",
			"is_strength": false,
			"models": ["anthropic:a", "openai:b"],
			"recommendation": "Use parameterized queries.",
			"file_path": "auth/login.go",
			"start_line": 42,
			"end_line": 48
		},
		{
			"title": "Clear package boundaries",
			"category": "Performance",
			"is_strength": true,
			"models": ["anthropic:a"]
		}
	]
}`

type scriptedProvider struct {
	prompt string
	text   string
	err    error
}

func (s *scriptedProvider) Name() string { return "scripted" }

func (s *scriptedProvider) RunCompletion(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error) {
	s.prompt = req.UserPrompt
	if s.err != nil {
		return llm.Completion{}, s.err
	}
	return llm.Completion{Text: s.text}, nil
}

func testExtractor(t *testing.T, provider *scriptedProvider) *Extractor {
	t.Helper()
	prompts, err := llm.NewPromptManager()
	require.NoError(t, err)

	return &Extractor{
		spec:    core.ModelSpec{Provider: "anthropic", Model: "claude-sonnet-4-5"},
		prompts: prompts,
		newProvider: func(core.ModelSpec) (llm.Provider, error) {
			return provider, nil
		},
		newExecutor: func() *llm.RetryExecutor {
			return &llm.RetryExecutor{MaxRetries: 0, AttemptTimeout: time.Second, BaseBackoff: time.Millisecond}
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func successResults() []core.ModelReviewResult {
	return []core.ModelReviewResult{
		{Spec: core.ModelSpec{Provider: "anthropic", Model: "a"}, Status: core.StatusSuccess, RawText: "review one"},
		{Spec: core.ModelSpec{Provider: "openai", Model: "b"}, Status: core.StatusSuccess, RawText: "review two"},
	}
}

func TestExtract(t *testing.T) {
	provider := &scriptedProvider{text: extractionPayload}
	e := testExtractor(t, provider)

	categories, findings, err := e.Extract(context.Background(), successResults())
	require.NoError(t, err)

	require.Len(t, categories, 2)
	assert.Equal(t, "Security", categories[0].Name)

	require.Len(t, findings, 2)
	assert.Equal(t, "sql-injection-login", findings[0].ClusterKey)
	assert.Equal(t, []string{"anthropic:a", "openai:b"}, findings[0].Models)
	assert.Equal(t, 42, findings[0].StartLine)
	// A missing cluster key falls back to the title.
	assert.Equal(t, "Clear package boundaries", findings[1].ClusterKey)
	assert.True(t, findings[1].IsStrength)

	assert.Contains(t, provider.prompt, "===== review from anthropic:a =====")
	assert.Contains(t, provider.prompt, "review two")
}

func TestExtractStripsMarkdownFence(t *testing.T) {
	provider := &scriptedProvider{text: "```json\n" + extractionPayload + "\n```"}
	e := testExtractor(t, provider)

	_, findings, err := e.Extract(context.Background(), successResults())
	require.NoError(t, err)
	assert.Len(t, findings, 2)
}

func TestExtractInvalidJSON(t *testing.T) {
	provider := &scriptedProvider{text: "I could not produce JSON, sorry."}
	e := testExtractor(t, provider)

	_, _, err := e.Extract(context.Background(), successResults())
	require.Error(t, err)
	assert.Equal(t, core.ErrInvalidResponse, core.CategoryOf(err))
}

func TestExtractBackendFailure(t *testing.T) {
	provider := &scriptedProvider{err: core.Categorize(core.ErrAuthentication, errors.New("bad key"))}
	e := testExtractor(t, provider)

	_, _, err := e.Extract(context.Background(), successResults())
	require.Error(t, err)
	assert.Equal(t, core.ErrAuthentication, core.CategoryOf(err))
}

func TestExtractNoSuccessfulResultsSkipsBackend(t *testing.T) {
	provider := &scriptedProvider{text: extractionPayload}
	e := testExtractor(t, provider)

	results := []core.ModelReviewResult{
		{Spec: core.ModelSpec{Provider: "anthropic", Model: "a"}, Status: core.StatusError, ErrorCategory: core.ErrTimeout},
	}

	categories, findings, err := e.Extract(context.Background(), results)
	require.NoError(t, err)
	assert.Empty(t, categories)
	assert.Empty(t, findings)
	assert.Empty(t, provider.prompt, "backend should not be called with nothing to extract")
}

func TestStripMarkdownFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\": 1}\n```\n ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripMarkdownFence(tt.in))
		})
	}
}
