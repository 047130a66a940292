package ai

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/nodegrowth/dorm-chatbot/backend/internal/model/chat"
)

type arkChain = compose.Runnable[map[string]any, *schema.Message]

// ArkProvider runs completions through an eino chain backed by a Volcengine
// Ark chat model.
type ArkProvider struct {
	mu       sync.Mutex
	chain    arkChain
	newModel func(ctx context.Context) (model.ChatModel, error)
}

// NewArkProvider compiles the system/user prompt chain around chatModel.
func NewArkProvider(ctx context.Context, chatModel model.ChatModel) (*ArkProvider, error) {
	chain, err := compileArkChain(ctx, chatModel)
	if err != nil {
		return nil, err
	}
	return &ArkProvider{chain: chain}, nil
}

// NewDeferredArkProvider builds the chat model on the first Complete call, so
// missing credentials surface per request instead of at start-up. A failed
// build is attempted again on the next call.
func NewDeferredArkProvider(newModel func(ctx context.Context) (model.ChatModel, error)) *ArkProvider {
	return &ArkProvider{newModel: newModel}
}

func compileArkChain(ctx context.Context, chatModel model.ChatModel) (arkChain, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}
	return runnable, nil
}

func (p *ArkProvider) runnable(ctx context.Context) (arkChain, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.chain != nil {
		return p.chain, nil
	}
	if p.newModel == nil {
		return nil, errors.New("ark chat model not configured")
	}

	chatModel, err := p.newModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("init ark chat model: %w", err)
	}
	chain, err := compileArkChain(ctx, chatModel)
	if err != nil {
		return nil, err
	}
	p.chain = chain
	return chain, nil
}

// Complete invokes the chain once. The Ark SDK does not surface typed status
// errors through eino, so every upstream failure counts as a generic API error.
// Chat model construction errors are returned as is and never retried.
func (p *ArkProvider) Complete(ctx context.Context, req chat.CompletionRequest) (string, error) {
	chain, err := p.runnable(ctx)
	if err != nil {
		return "", err
	}

	input := map[string]any{
		"system": req.SystemPrompt,
		"query":  req.UserPrompt,
	}

	response, err := chain.Invoke(ctx, input, compose.WithChatModelOption(
		model.WithModel(req.Model),
		model.WithTemperature(req.Temperature),
		model.WithMaxTokens(req.MaxTokens),
	))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", MarkTransient(fmt.Errorf("failed to run AI chain: %w", err))
	}
	if response == nil {
		return "", errors.New("ark returned empty response")
	}

	return response.Content, nil
}
