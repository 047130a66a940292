package delivery

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoRecipient means the reply path failed and there is nobody to push to.
	ErrNoRecipient = errors.New("no push recipient for event")
	// ErrNoReplyToken is returned by messengers asked to reply without a token.
	ErrNoReplyToken = errors.New("reply token missing")
)

// Messenger sends text through a messaging platform.
type Messenger interface {
	// TryReply answers one event through its reply token.
	TryReply(ctx context.Context, replyToken, text string) error
	// Push sends to a persistent recipient independent of any event.
	Push(ctx context.Context, to, text string) error
}

// Deliver tries the reply path first and falls back to pushing to the
// target's recipient. The push is not retried.
func Deliver(ctx context.Context, m Messenger, target Target, text string) error {
	replyErr := m.TryReply(ctx, target.ReplyToken, text)
	if replyErr == nil {
		return nil
	}

	if target.RecipientID == "" {
		return fmt.Errorf("%w (reply failed: %v)", ErrNoRecipient, replyErr)
	}

	if err := m.Push(ctx, target.RecipientID, text); err != nil {
		return fmt.Errorf("push to %s after reply failure (%v): %w", target.Kind, replyErr, err)
	}
	return nil
}
