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

	"github.com/zhouzirui/codesoft-bot/backend/internal/config"
	"github.com/zhouzirui/codesoft-bot/backend/internal/handler"
	"github.com/zhouzirui/codesoft-bot/backend/internal/service/chat"
	"github.com/zhouzirui/codesoft-bot/backend/internal/service/contextual"
	"github.com/zhouzirui/codesoft-bot/backend/internal/service/events"
	"github.com/zhouzirui/codesoft-bot/backend/internal/service/reply"
	"github.com/zhouzirui/codesoft-bot/backend/internal/service/responder"
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

	store := chat.NewStore()

	generator, err := reply.NewGenerator(reply.Seed(), nil)
	if err != nil {
		log.Fatalf("failed to build reply generator: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.Events.Enabled() {
		natsPublisher, err := events.NewNATSPublisher(events.Config{
			URL:           cfg.Events.NATSURL,
			SubjectPrefix: cfg.Events.SubjectPrefix,
		})
		if err != nil {
			log.Printf("warning: failed to initialize turn publisher: %v", err)
			log.Println("continuing without NATS turn events")
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
		}
	} else {
		log.Println("NATS_URL not set, turn events disabled")
	}

	chatResponder, err := responder.New(ctx, responder.Deps{
		Store:     store,
		Resolver:  contextual.NewResolver(),
		Generator: generator,
		Publisher: publisher,
	})
	if err != nil {
		log.Fatalf("failed to initialize responder: %v", err)
	}

	router := handler.NewRouter(chatResponder, store, handler.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		WSEnabled:      cfg.Server.WSEnabled,
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("chatbot backend listening on %s", addr)
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
