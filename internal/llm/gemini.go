package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/quorumci/quorum/internal/core"
)

func init() {
	factory := func(model string) (Provider, error) {
		return NewGemini(model)
	}
	Register("gemini", factory)
	Register("google", factory)
}

// Gemini implements Provider on top of the google.golang.org/genai SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini adapter for the given model. The API key comes
// from the GEMINI_API_KEY environment variable.
func NewGemini(model string) (*Gemini, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return nil, core.Categorize(core.ErrAuthentication,
			fmt.Errorf("GEMINI_API_KEY environment variable is not set"))
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

// RunCompletion generates content for the prompt and returns the response
// text plus the raw usage metadata.
func (g *Gemini) RunCompletion(ctx context.Context, req CompletionRequest) (Completion, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxOutputTokens
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.UserPrompt), config)
	if err != nil {
		return Completion{}, fmt.Errorf("gemini API call: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return Completion{}, core.Categorize(core.ErrInvalidResponse,
			fmt.Errorf("no text content in API response"))
	}

	usage := RawUsage{}
	if resp.UsageMetadata != nil {
		usage = RawUsageOf(resp.UsageMetadata)
	}

	return Completion{Text: text, Usage: usage}, nil
}
