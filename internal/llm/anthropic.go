package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/quorumci/quorum/internal/core"
)

func init() {
	Register("anthropic", func(model string) (Provider, error) {
		return NewAnthropic(model)
	})
}

// Anthropic implements Provider on top of the official Anthropic SDK.
type Anthropic struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewAnthropic creates an Anthropic adapter for the given model. The API key
// comes from the ANTHROPIC_API_KEY environment variable.
func NewAnthropic(model string) (*Anthropic, error) {
	key := os.Getenv("ANTHROPIC_API_KEY")
	if key == "" {
		return nil, core.Categorize(core.ErrAuthentication,
			fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set"))
	}
	client := anthropic.NewClient(option.WithAPIKey(key))
	return &Anthropic{
		api:   &client,
		model: anthropic.Model(model),
	}, nil
}

func (a *Anthropic) Name() string { return "anthropic" }

// RunCompletion sends one message exchange and returns the concatenated text
// blocks plus the raw usage payload.
func (a *Anthropic) RunCompletion(ctx context.Context, req CompletionRequest) (Completion, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxOutputTokens
	}

	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}

	msg, err := a.api.Messages.New(ctx, params)
	if err != nil {
		return Completion{}, fmt.Errorf("anthropic API call: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return Completion{}, core.Categorize(core.ErrInvalidResponse,
			fmt.Errorf("no text content in API response"))
	}

	return Completion{
		Text:  text,
		Usage: RawUsageOf(msg.Usage),
	}, nil
}
