// Package messaging adapts the LINE Messaging API to the delivery package.
package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/nodegrowth/dorm-chatbot/backend/internal/service/delivery"
)

// ErrMissingChannelToken is returned by every send when no channel access
// token was configured.
var ErrMissingChannelToken = errors.New("missing channel access token")

// LINEMessenger implements delivery.Messenger on top of the Messaging API.
// A nil api means no token was configured.
type LINEMessenger struct {
	api *messaging_api.MessagingApiAPI
}

// NewLINEMessenger creates a messenger authenticated with channelToken. An
// empty token is accepted so the web chat can run without LINE; sends then
// fail with ErrMissingChannelToken.
func NewLINEMessenger(channelToken string, opts ...messaging_api.MessagingApiAPIOption) (*LINEMessenger, error) {
	if channelToken == "" {
		return &LINEMessenger{}, nil
	}

	api, err := messaging_api.NewMessagingApiAPI(channelToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("create line messaging client: %w", err)
	}
	return &LINEMessenger{api: api}, nil
}

// TryReply answers through a reply token. Tokens are single-use, so a second
// reply with the same token is rejected by the platform.
func (m *LINEMessenger) TryReply(ctx context.Context, replyToken, text string) error {
	if replyToken == "" {
		return delivery.ErrNoReplyToken
	}
	if m.api == nil {
		return fmt.Errorf("line reply: %w", ErrMissingChannelToken)
	}

	_, err := m.api.WithContext(ctx).ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   textMessages(text),
	})
	if err != nil {
		return fmt.Errorf("line reply: %w", err)
	}
	return nil
}

// Push sends text to a user, group or room id. Each call carries a fresh
// retry key so the platform can de-duplicate a resent request.
func (m *LINEMessenger) Push(ctx context.Context, to, text string) error {
	if m.api == nil {
		return fmt.Errorf("line push: %w", ErrMissingChannelToken)
	}

	_, err := m.api.WithContext(ctx).PushMessage(&messaging_api.PushMessageRequest{
		To:       to,
		Messages: textMessages(text),
	}, uuid.NewString())
	if err != nil {
		return fmt.Errorf("line push: %w", err)
	}
	return nil
}

func textMessages(text string) []messaging_api.MessageInterface {
	return []messaging_api.MessageInterface{
		messaging_api.TextMessage{Text: text},
	}
}

// TargetFor derives the delivery target of a webhook event source.
func TargetFor(replyToken string, source webhook.SourceInterface) delivery.Target {
	target := delivery.Target{Kind: delivery.SourceUnknown, ReplyToken: replyToken}

	switch src := source.(type) {
	case webhook.UserSource:
		target.Kind, target.RecipientID = delivery.SourceUser, src.UserId
	case *webhook.UserSource:
		target.Kind, target.RecipientID = delivery.SourceUser, src.UserId
	case webhook.GroupSource:
		target.Kind, target.RecipientID = delivery.SourceGroup, src.GroupId
	case *webhook.GroupSource:
		target.Kind, target.RecipientID = delivery.SourceGroup, src.GroupId
	case webhook.RoomSource:
		target.Kind, target.RecipientID = delivery.SourceRoom, src.RoomId
	case *webhook.RoomSource:
		target.Kind, target.RecipientID = delivery.SourceRoom, src.RoomId
	}

	return target
}
