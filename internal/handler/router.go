package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nodegrowth/dorm-chatbot/backend/internal/handler/callback"
	"github.com/nodegrowth/dorm-chatbot/backend/internal/handler/chat"
	"github.com/nodegrowth/dorm-chatbot/backend/internal/handler/info"
	middlewarePkg "github.com/nodegrowth/dorm-chatbot/backend/internal/middleware"
	"github.com/nodegrowth/dorm-chatbot/backend/internal/model/rules"
	"github.com/nodegrowth/dorm-chatbot/backend/pkg/utils"
)

// Deps carries the collaborators the HTTP layer needs.
type Deps struct {
	Rules         rules.Document
	Answerer      chat.Answerer
	Events        callback.EventHandler
	ChannelSecret string
	Logger        *zap.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	// Health checks
	r.Get("/", handleHealth)
	r.Post("/", handleHealth)

	chat.New(deps.Answerer, deps.Logger).RegisterRoutes(r)
	callback.New(deps.ChannelSecret, deps.Events, deps.Logger).RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		info.New(deps.Rules).RegisterRoutes(api)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondOK(w)
}
