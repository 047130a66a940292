package ai

import (
	"context"
	"errors"
	"fmt"
	"math"

	openaiapi "github.com/sashabaranov/go-openai"

	"github.com/nodegrowth/dorm-chatbot/backend/internal/model/chat"
)

// OpenAIProvider calls the OpenAI chat completions API.
type OpenAIProvider struct {
	api *openaiapi.Client
}

// NewOpenAIProvider creates a provider for token. An empty baseURL keeps the
// SDK default endpoint.
func NewOpenAIProvider(token, baseURL string) *OpenAIProvider {
	cfg := openaiapi.DefaultConfig(token)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{api: openaiapi.NewClientWithConfig(cfg)}
}

// Complete sends the system and user prompts as one chat completion.
func (p *OpenAIProvider) Complete(ctx context.Context, req chat.CompletionRequest) (string, error) {
	// temperature is omitempty in the SDK; a literal zero would fall back to the server default.
	temperature := req.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := p.api.CreateChatCompletion(ctx, openaiapi.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openaiapi.ChatCompletionMessage{
			{Role: openaiapi.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openaiapi.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		Temperature: temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned empty response")
	}

	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAIError(err error) error {
	wrapped := fmt.Errorf("openai chat completion: %w", err)

	var apiErr *openaiapi.APIError
	if errors.As(err, &apiErr) {
		if retryableStatus(apiErr.HTTPStatusCode) {
			return MarkTransient(wrapped)
		}
		return wrapped
	}

	var reqErr *openaiapi.RequestError
	if errors.As(err, &reqErr) {
		if retryableStatus(reqErr.HTTPStatusCode) {
			return MarkTransient(wrapped)
		}
		return wrapped
	}

	return wrapped
}
