package chat

import (
	"context"

	"github.com/nodegrowth/dorm-chatbot/backend/internal/model/chat"
	"github.com/nodegrowth/dorm-chatbot/backend/internal/model/rules"
	"github.com/nodegrowth/dorm-chatbot/backend/internal/service/ai"
)

// Completer is satisfied by ai.Caller.
type Completer interface {
	Complete(ctx context.Context, req chat.CompletionRequest) (string, error)
}

// Settings fixes the model parameters used for every question.
type Settings struct {
	Model        string
	SystemPrompt string
	Temperature  float32
	MaxTokens    int
}

// Service answers dormitory questions against a fixed rules document.
type Service struct {
	rules     rules.Document
	completer Completer
	settings  Settings
}

// NewService wires the rules document and completion caller together.
func NewService(doc rules.Document, completer Completer, settings Settings) *Service {
	return &Service{
		rules:     doc,
		completer: completer,
		settings:  settings,
	}
}

// Answer builds the prompt for question and returns the model's answer.
func (s *Service) Answer(ctx context.Context, question string) (string, error) {
	return s.completer.Complete(ctx, chat.CompletionRequest{
		Model:        s.settings.Model,
		SystemPrompt: s.settings.SystemPrompt,
		UserPrompt:   ai.BuildPrompt(question, s.rules.Text()),
		Temperature:  s.settings.Temperature,
		MaxTokens:    s.settings.MaxTokens,
	})
}

// Rules exposes the loaded document for UI metadata.
func (s *Service) Rules() rules.Document {
	return s.rules
}
