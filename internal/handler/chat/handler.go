package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/nodegrowth/dorm-chatbot/backend/internal/model/chat"
	"github.com/nodegrowth/dorm-chatbot/backend/pkg/utils"
)

// Answerer 回答宿舍规则问题
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Handler 网页聊天的HTTP处理器
type Handler struct {
	answerer    Answerer
	logger      *zap.Logger
	upgrader    websocket.Upgrader
	readTimeout time.Duration
}

// New 创建聊天处理器
func New(answerer Answerer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		answerer: answerer,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		readTimeout: wsReadTimeout,
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/ws/chat", h.handleWebSocket)
}

// handleChat answers one question synchronously, retries included.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var question chat.Question
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.answerer.Answer(r.Context(), question.Message)
	if err != nil {
		h.logger.Error("web chat answer failed", zap.Error(err))
		utils.RespondJSON(w, http.StatusInternalServerError, chat.Answer{Response: errorResponse(err)})
		return
	}

	utils.RespondJSON(w, http.StatusOK, chat.Answer{Response: answer})
}

func errorResponse(err error) string {
	return "Sorry, there was an error: " + err.Error()
}
