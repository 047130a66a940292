// Package callback serves the LINE webhook.
package callback

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"go.uber.org/zap"

	"github.com/nodegrowth/dorm-chatbot/backend/internal/service/delivery"
	"github.com/nodegrowth/dorm-chatbot/backend/internal/service/messaging"
	"github.com/nodegrowth/dorm-chatbot/backend/pkg/utils"
)

// EventHandler takes over a text message once its signature has been checked.
// *delivery.Dispatcher implements it.
type EventHandler interface {
	HandleText(ctx context.Context, target delivery.Target, question string)
}

// Handler LINE webhook的HTTP处理器
type Handler struct {
	channelSecret string
	events        EventHandler
	logger        *zap.Logger
}

// New 创建webhook处理器
func New(channelSecret string, events EventHandler, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		channelSecret: channelSecret,
		events:        events,
		logger:        logger,
	}
}

// RegisterRoutes 注册webhook路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/callback", h.handleProbe)
	r.Post("/callback", h.handleCallback)
}

func (h *Handler) handleProbe(w http.ResponseWriter, r *http.Request) {
	utils.RespondOK(w)
}

func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	cb, err := webhook.ParseRequest(h.channelSecret, r)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.logger.Warn("rejected webhook with invalid signature")
			utils.RespondError(w, http.StatusBadRequest, "invalid signature")
			return
		}
		h.logger.Warn("malformed webhook payload", zap.Error(err))
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Dispatched work outlives the request.
	ctx := context.WithoutCancel(r.Context())
	for _, event := range cb.Events {
		h.handleEvent(ctx, event)
	}

	utils.RespondOK(w)
}

func (h *Handler) handleEvent(ctx context.Context, event webhook.EventInterface) {
	var msg webhook.MessageEvent
	switch e := event.(type) {
	case webhook.MessageEvent:
		msg = e
	case *webhook.MessageEvent:
		msg = *e
	default:
		h.logger.Debug("ignoring non-message event", zap.String("type", event.GetType()))
		return
	}

	var text string
	switch content := msg.Message.(type) {
	case webhook.TextMessageContent:
		text = content.Text
	case *webhook.TextMessageContent:
		text = content.Text
	default:
		h.logger.Debug("ignoring non-text message")
		return
	}

	h.events.HandleText(ctx, messaging.TargetFor(msg.ReplyToken, msg.Source), text)
}
