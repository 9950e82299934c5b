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

	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"

	"github.com/mockview/mockview/backend/internal/config"
	"github.com/mockview/mockview/backend/internal/handler"
	"github.com/mockview/mockview/backend/internal/model/interview"
	"github.com/mockview/mockview/backend/internal/service/analysis"
	"github.com/mockview/mockview/backend/internal/service/feedback"
	"github.com/mockview/mockview/backend/internal/service/question"
	"github.com/mockview/mockview/backend/internal/service/session"
	"github.com/mockview/mockview/backend/internal/service/stt"
	"github.com/mockview/mockview/backend/internal/service/vision"
)

// pruneInterval is how often expired sessions are swept from the store.
const pruneInterval = 15 * time.Minute

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

	bank := interview.DefaultBank()
	store := interview.NewMemoryStore(cfg.Session.TTL)

	// Initialize the chat model backing question generation and feedback
	chatModel, err := loadChatModel(ctx, cfg)
	if err != nil {
		log.Printf("warning: failed to initialize chat model: %v", err)
		log.Println("continuing with bank questions and template feedback only")
		chatModel = nil
	}

	questionSvc, err := question.NewService(ctx, chatModel, bank, cfg.Collab.Timeout)
	if err != nil {
		log.Fatalf("failed to initialize question service: %v", err)
	}
	if questionSvc.Enabled() {
		log.Println("model-backed question generator enabled")
	} else {
		log.Println("question generator using the static bank")
	}

	sessionSvc := session.NewService(store, questionSvc, session.NewHub())

	sttClient := stt.NewClient(cfg.Collab.STTBaseURL)
	visionClient := vision.NewClient(cfg.Collab.VisionBaseURL)
	if !sttClient.Enabled() {
		log.Println("speech-to-text collaborator not configured, transcripts disabled")
	}
	if !visionClient.Enabled() {
		log.Println("vision collaborator not configured, video analysis disabled")
	}

	analysisSvc := analysis.NewService(sessionSvc, sttClient, visionClient, cfg.Collab.Timeout)

	feedbackSvc, err := feedback.NewService(ctx, chatModel, sessionSvc, cfg.Collab.Timeout)
	if err != nil {
		log.Fatalf("failed to initialize feedback service: %v", err)
	}
	if feedbackSvc.Enabled() {
		log.Println("model-backed feedback narrator enabled")
	} else {
		log.Println("feedback narrator using templates")
	}

	go pruneLoop(ctx, sessionSvc)

	router := handler.NewRouter(sessionSvc, analysisSvc, feedbackSvc, bank)

	startServer(ctx, cfg.Server, router)
}

// loadChatModel builds the Ark chat model when credentials are configured.
// A nil model is a valid result: every model-backed path has a fallback.
func loadChatModel(ctx context.Context, cfg *config.Config) (model.ChatModel, error) {
	if !cfg.AI.Enabled() {
		log.Println("Ark credentials not configured, skipping chat model")
		return nil, nil
	}
	chatModel, err := cfg.AI.NewChatModel(ctx)
	if err != nil {
		return nil, err
	}
	log.Println("Ark chat model initialized")
	return chatModel, nil
}

// pruneLoop sweeps expired sessions until shutdown.
func pruneLoop(ctx context.Context, sessions *session.Service) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.PruneExpired(); n > 0 {
				log.Printf("[session] pruned %d expired sessions", n)
			}
		}
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Mockview backend listening on %s", addr)
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
