package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/quorumci/quorum/internal/core"
)

const (
	defaultOpenAIURL       = "https://api.openai.com/v1/chat/completions"
	defaultMaxOutputTokens = 4096
)

func init() {
	Register("openai", func(model string) (Provider, error) {
		return NewOpenAI(model)
	})
}

// OpenAI implements Provider for OpenAI's chat completions API and
// compatible endpoints. The base URL can be overridden through
// QUORUM_OPENAI_BASE_URL for self-hosted gateways.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAI creates an OpenAI adapter for the given model. The API key comes
// from the OPENAI_API_KEY environment variable.
func NewOpenAI(model string) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, core.Categorize(core.ErrAuthentication,
			fmt.Errorf("OPENAI_API_KEY environment variable is not set"))
	}
	baseURL := os.Getenv("QUORUM_OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	return &OpenAI{
		apiKey:  key,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{},
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

// RunCompletion posts one chat completion request. Non-success statuses are
// surfaced as status errors for the retry executor to classify.
func (o *OpenAI) RunCompletion(ctx context.Context, req CompletionRequest) (Completion, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxOutputTokens
	}

	var messages []openaiMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openaiMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, openaiMessage{Role: "user", Content: req.UserPrompt})

	body := openaiRequest{
		Model:     o.model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Completion{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, bytes.NewReader(payload))
	if err != nil {
		return Completion{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	httpResp, err := o.client.Do(httpReq)
	if err != nil {
		return Completion{}, fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Completion{}, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return Completion{}, &apiStatusError{status: httpResp.StatusCode, body: string(respBody)}
	}

	var result openaiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Completion{}, core.Categorize(core.ErrInvalidResponse,
			fmt.Errorf("parsing response: %w", err))
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return Completion{}, core.Categorize(core.ErrInvalidResponse,
			fmt.Errorf("empty text content in API response"))
	}

	return Completion{
		Text:  result.Choices[0].Message.Content,
		Usage: result.Usage,
	}, nil
}

type openaiRequest struct {
	Model     string          `json:"model"`
	Messages  []openaiMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
	Usage   RawUsage       `json:"usage"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
}
