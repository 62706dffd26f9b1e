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

	"github.com/carelane/carelane/backend/internal/config"
	"github.com/carelane/carelane/backend/internal/handler"
	"github.com/carelane/carelane/backend/internal/service/ai"
	chatservice "github.com/carelane/carelane/backend/internal/service/chat"
	facilityservice "github.com/carelane/carelane/backend/internal/service/facility"
	"github.com/carelane/carelane/backend/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Missing credentials degrade the affected endpoints at call time
	// instead of refusing to start.
	if !cfg.OpenAI.Enabled() {
		log.Println("warning: OPENAI_API_KEY is not set, chat will fail")
	}
	if !cfg.Places.Enabled() {
		log.Println("warning: GOOGLE_MAPS_API_KEY is not set, facilities lookup will fail")
	}

	store := session.NewStore(cfg.Session.TTL)
	aiSvc := ai.NewService(cfg.OpenAI)
	chatSvc := chatservice.NewService(store, aiSvc)
	facilitySvc := facilityservice.NewService(cfg.Places)

	router := handler.NewRouter(store, chatSvc, facilitySvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Carelane backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
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
