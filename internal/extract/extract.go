// Package extract calls a language model to turn free-text reviews into
// structured findings with cluster keys. The step is non-deterministic by
// nature; the deterministic pipeline consumes only its structured output.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quorumci/quorum/internal/consensus"
	"github.com/quorumci/quorum/internal/core"
	"github.com/quorumci/quorum/internal/llm"
)

// Extractor batches the successful review texts into one extraction call
// against a designated backend.
type Extractor struct {
	spec        core.ModelSpec
	prompts     *llm.PromptManager
	newProvider func(core.ModelSpec) (llm.Provider, error)
	newExecutor func() *llm.RetryExecutor
	logger      *slog.Logger
}

// New creates an extractor that uses the given backend for extraction calls.
// A nil newExecutor selects the default retry policy.
func New(spec core.ModelSpec, prompts *llm.PromptManager, logger *slog.Logger, newExecutor func() *llm.RetryExecutor) *Extractor {
	if newExecutor == nil {
		newExecutor = func() *llm.RetryExecutor { return llm.NewRetryExecutor(logger) }
	}
	return &Extractor{
		spec:        spec,
		prompts:     prompts,
		newProvider: llm.New,
		newExecutor: newExecutor,
		logger:      logger,
	}
}

// Extract returns the category list and cluster-keyed findings for the
// successful results. With no successful results it returns empty lists
// without calling the backend.
func (e *Extractor) Extract(ctx context.Context, results []core.ModelReviewResult) ([]core.Category, []consensus.RawFinding, error) {
	successful := core.SuccessfulResults(results)
	if len(successful) == 0 {
		return []core.Category{}, []consensus.RawFinding{}, nil
	}

	var reviews strings.Builder
	for _, r := range successful {
		reviews.WriteString(fmt.Sprintf("===== review from %s =====\n", r.Spec))
		reviews.WriteString(r.RawText)
		reviews.WriteString("\n\n")
	}

	prompt, err := e.prompts.Render(llm.FindingExtractionPrompt, llm.ModelProvider(e.spec.Provider), map[string]any{
		"ModelCount": len(successful),
		"Reviews":    reviews.String(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("rendering extraction prompt: %w", err)
	}

	provider, err := e.newProvider(e.spec)
	if err != nil {
		return nil, nil, fmt.Errorf("creating extraction provider: %w", err)
	}

	completion, err := e.newExecutor().Execute(ctx, func(ctx context.Context) (llm.Completion, error) {
		return provider.RunCompletion(ctx, llm.CompletionRequest{UserPrompt: prompt})
	})
	if err != nil {
		return nil, nil, fmt.Errorf("extraction call: %w", err)
	}

	categories, findings, err := parsePayload(completion.Text)
	if err != nil {
		return nil, nil, err
	}

	e.logger.Info("extracted findings",
		"model", e.spec.String(),
		"categories", len(categories),
		"findings", len(findings),
	)
	return categories, findings, nil
}

type payloadJSON struct {
	Categories []categoryJSON `json:"categories"`
	Findings   []findingJSON  `json:"findings"`
}

type categoryJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type findingJSON struct {
	ClusterKey     string   `json:"cluster_key"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	IsStrength     bool     `json:"is_strength"`
	Models         []string `json:"models"`
	Recommendation string   `json:"recommendation"`
	FilePath       string   `json:"file_path"`
	StartLine      int      `json:"start_line"`
	EndLine        int      `json:"end_line"`
	CodeExample    string   `json:"code_example"`
}

func parsePayload(text string) ([]core.Category, []consensus.RawFinding, error) {
	text = stripMarkdownFence(text)

	var payload payloadJSON
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, nil, core.Categorize(core.ErrInvalidResponse,
			fmt.Errorf("parse extraction response as JSON: %w", err))
	}

	categories := make([]core.Category, 0, len(payload.Categories))
	for _, c := range payload.Categories {
		categories = append(categories, core.Category{Name: c.Name, Description: c.Description})
	}

	findings := make([]consensus.RawFinding, 0, len(payload.Findings))
	for _, f := range payload.Findings {
		if f.ClusterKey == "" {
			f.ClusterKey = f.Title
		}
		findings = append(findings, consensus.RawFinding{
			ClusterKey:     f.ClusterKey,
			Title:          f.Title,
			Description:    f.Description,
			Category:       f.Category,
			IsStrength:     f.IsStrength,
			Models:         f.Models,
			Recommendation: f.Recommendation,
			FilePath:       f.FilePath,
			StartLine:      f.StartLine,
			EndLine:        f.EndLine,
			CodeExample:    f.CodeExample,
		})
	}
	return categories, findings, nil
}

// stripMarkdownFence removes a wrapping ``` fence that models sometimes add
// despite instructions.
func stripMarkdownFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.SplitN(text, "\n", 2)
	if len(lines) > 1 {
		text = lines[1]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
