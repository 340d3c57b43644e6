package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPromptManagerLoadsEmbeddedPrompts(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	for _, key := range []PromptKey{CodeReviewPrompt, FindingExtractionPrompt} {
		_, err := pm.Get(key, DefaultProvider)
		assert.NoError(t, err, "missing embedded prompt for key %q", key)
	}
}

func TestGetFallsBackToDefault(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	tmpl, err := pm.Get(CodeReviewPrompt, ModelProvider("anthropic"))
	require.NoError(t, err)
	assert.NotNil(t, tmpl)
}

func TestGetUnknownKey(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	_, err = pm.Get(PromptKey("no_such_task"), DefaultProvider)
	assert.Error(t, err)
}

func TestRenderCodeReviewPrompt(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	out, err := pm.Render(CodeReviewPrompt, DefaultProvider, map[string]any{
		"CustomInstructions": "Focus on error handling.",
		"DirectoryStructure": "cmd/\ninternal/",
		"Code":               "package main",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Focus on error handling.")
	assert.Contains(t, out, "package main")
}

func TestRenderFindingExtractionPrompt(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	out, err := pm.Render(FindingExtractionPrompt, DefaultProvider, map[string]any{
		"ModelCount": 3,
		"Reviews":    "===== review from anthropic:claude =====\nfine",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "===== review from anthropic:claude =====")
}
