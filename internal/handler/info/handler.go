package info

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nodegrowth/dorm-chatbot/backend/internal/model/rules"
	"github.com/nodegrowth/dorm-chatbot/backend/pkg/utils"
)

// Handler 网页界面元数据的HTTP处理器
type Handler struct {
	doc rules.Document
}

// New 创建info处理器
func New(doc rules.Document) *Handler {
	return &Handler{doc: doc}
}

// RegisterRoutes 注册info路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/info", h.handleInfo)
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"chatTitle":       h.doc.Title(),
		"initialQuestion": h.doc.InitialQuestion(),
	})
}
