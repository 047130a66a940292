package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nodegrowth/dorm-chatbot/backend/internal/config"
	"github.com/nodegrowth/dorm-chatbot/backend/internal/handler"
	"github.com/nodegrowth/dorm-chatbot/backend/internal/logging"
	"github.com/nodegrowth/dorm-chatbot/backend/internal/model/rules"
	"github.com/nodegrowth/dorm-chatbot/backend/internal/service/ai"
	"github.com/nodegrowth/dorm-chatbot/backend/internal/service/chat"
	"github.com/nodegrowth/dorm-chatbot/backend/internal/service/delivery"
	"github.com/nodegrowth/dorm-chatbot/backend/internal/service/messaging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	doc, err := rules.Load(cfg.Rules.Path,
		rules.WithTitle(cfg.Rules.ChatTitle),
		rules.WithInitialQuestion(cfg.Rules.InitialQuestion))
	if err != nil {
		logger.Fatal("failed to load dorm rules", zap.String("path", cfg.Rules.Path), zap.Error(err))
	}

	provider := newProvider(cfg.AI)
	logger.Info("completion provider ready", zap.String("provider", cfg.AI.Provider))

	caller := ai.NewCaller(provider, ai.RetryPolicy{
		MaxAttempts: cfg.AI.MaxAttempts,
		BaseDelay:   cfg.AI.RetryBaseDelay,
	}, logger.Named("completion"))

	chatService := chat.NewService(doc, caller, chat.Settings{
		Model:        cfg.AI.CompletionModel(),
		SystemPrompt: cfg.AI.SystemPrompt,
		Temperature:  cfg.AI.Temperature,
		MaxTokens:    cfg.AI.MaxTokens,
	})

	if cfg.LINE.ChannelToken == "" {
		logger.Warn("LINE_CHANNEL_ACCESS_TOKEN not set, LINE deliveries will fail")
	}
	messenger, err := messaging.NewLINEMessenger(cfg.LINE.ChannelToken)
	if err != nil {
		logger.Fatal("failed to initialize LINE client", zap.Error(err))
	}

	pool := delivery.NewPool(cfg.Dispatch.Workers, cfg.Dispatch.QueueSize, logger.Named("pool"))
	dispatcher := delivery.NewDispatcher(chatService, messenger, pool, delivery.Messages{
		Ack:   cfg.LINE.AckMessage,
		Error: cfg.LINE.ErrorMessage,
	}, logger.Named("dispatch"))

	router := handler.NewRouter(handler.Deps{
		Rules:         doc,
		Answerer:      chatService,
		Events:        dispatcher,
		ChannelSecret: cfg.LINE.ChannelSecret,
		Logger:        logger.Named("http"),
	})

	startServer(ctx, logger, cfg.Server, router)

	drainCtx, cancel := context.WithTimeout(context.Background(), cfg.Dispatch.DrainTimeout)
	defer cancel()
	if err := pool.Shutdown(drainCtx); err != nil {
		logger.Warn("background tasks abandoned at shutdown", zap.Error(err))
	}
}

// newProvider selects the completion backend named by AI_PROVIDER. Missing
// credentials surface on the first completion, not here.
func newProvider(cfg config.AIConfig) ai.Provider {
	if cfg.Provider == config.ProviderArk {
		return ai.NewDeferredArkProvider(cfg.NewArkChatModel)
	}
	return ai.NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIBaseURL)
}

func startServer(ctx context.Context, logger *zap.Logger, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("dorm chatbot listening", zap.String("addr", serverCfg.Addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
