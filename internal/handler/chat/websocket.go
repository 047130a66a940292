package chat

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/nodegrowth/dorm-chatbot/backend/internal/model/chat"
)

const wsReadTimeout = 60 * time.Second

// handleWebSocket 处理WebSocket聊天连接，每个问题帧对应一个回答帧。
// The read window restarts once the answer is written, so slow answers do not
// eat into the wait for the next question.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	_ = conn.SetReadDeadline(time.Now().Add(h.readTimeout))

	for {
		var question chat.Question
		if err := conn.ReadJSON(&question); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}

		answer, err := h.answerer.Answer(ctx, question.Message)
		if err != nil {
			h.logger.Error("websocket answer failed", zap.Error(err))
			answer = errorResponse(err)
		}

		if err := conn.WriteJSON(chat.Answer{Response: answer}); err != nil {
			h.logger.Warn("websocket write error", zap.Error(err))
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	}
}
