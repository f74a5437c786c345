package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/captain-jack/backend/internal/config"
	"github.com/zhouzirui/captain-jack/backend/internal/handler"
	"github.com/zhouzirui/captain-jack/backend/internal/handler/relay"
	"github.com/zhouzirui/captain-jack/backend/internal/model/persona"
	"github.com/zhouzirui/captain-jack/backend/internal/model/scenario"
	"github.com/zhouzirui/captain-jack/backend/internal/service/ai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("failed to load .env file: %v", err)
		logrus.Info("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}
	cfg.Log.Apply()

	scenarios := scenario.NewMemoryStore(scenario.Seed())
	prompts := ai.NewPromptBuilder(persona.CaptainJack(), scenarios)

	// Messages fail with a provider error until credentials are supplied.
	var replier relay.Replier
	if aiService, err := newAIService(ctx, cfg.AI, prompts); err != nil {
		logrus.WithError(err).WithField("provider", cfg.AI.Provider).Warn("continuing without AI functionality")
	} else {
		replier = aiService
		logrus.WithField("provider", cfg.AI.Provider).Info("AI service initialized successfully")
	}

	router := handler.NewRouter(scenarios, replier, cfg.Server.StrictErrors())

	startServer(ctx, cfg.Server, router)
}

func newAIService(ctx context.Context, aiCfg config.AIConfig, prompts *ai.PromptBuilder) (*ai.Service, error) {
	chatModel, err := aiCfg.NewChatModel(ctx)
	if err != nil {
		return nil, err
	}
	return ai.NewService(chatModel, prompts, aiCfg.MaxTokens)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logrus.Infof("Captain Jack backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		logrus.Fatalf("server error: %v", err)
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
