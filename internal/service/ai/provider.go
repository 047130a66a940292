package ai

import (
	"context"

	"github.com/nodegrowth/dorm-chatbot/backend/internal/model/chat"
)

// Provider performs a single completion call against an upstream model.
// Implementations mark retryable failures with MarkTransient.
type Provider interface {
	Complete(ctx context.Context, req chat.CompletionRequest) (string, error)
}
