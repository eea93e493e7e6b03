// Package server provides the HTTP API for the onboarding service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/hiremeplz/hiremeplz/internal/analysis"
	"github.com/hiremeplz/hiremeplz/internal/config"
	"github.com/hiremeplz/hiremeplz/internal/conversation"
	"github.com/hiremeplz/hiremeplz/internal/db"
	"github.com/hiremeplz/hiremeplz/internal/llm"
	"github.com/hiremeplz/hiremeplz/internal/metrics"
	"github.com/hiremeplz/hiremeplz/internal/scrape"
	"github.com/hiremeplz/hiremeplz/internal/server/middleware"
	"github.com/hiremeplz/hiremeplz/pkg/logger"
)

// Server wires the HTTP API together.
type Server struct {
	httpServer *http.Server
	db         *db.DB
	llm        llm.Client
	log        logger.Logger
	metrics    *metrics.Manager

	userService     *UserService
	jwtService      *JWTService
	authHandler     *AuthHandler
	chatHandler     *ChatHandler
	meHandler       *MeHandler
	analysisHandler *AnalysisHandler
}

// New builds a Server from configuration, connecting to the database and
// the model provider.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewClient(ctx, nil, cfg.GeminiAPIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	m := metrics.NewManager()

	s := &Server{
		db:      database,
		llm:     llmClient,
		log:     log,
		metrics: m,
	}

	passwordConfig, err := cfg.Password()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := cfg.JWT()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	scraper := scrape.NewHTTPClient(cfg.ScraperBaseURL, cfg.ScraperAPIKey)
	runner := analysis.NewRunner(llmClient, database, log.Named("analysis"))

	orchestrator := conversation.New(llmClient, scraper, runner,
		conversation.NewMemoryStore(), log.Named("conversation"), m)
	orchestrator.PollInterval = time.Duration(cfg.ScrapePollSeconds) * time.Second
	orchestrator.MaxPolls = cfg.ScrapeMaxPolls

	s.chatHandler = NewChatHandler(orchestrator, s.userService)
	s.meHandler = NewMeHandler(s.userService, database)
	s.analysisHandler = NewAnalysisHandler(database, runner)

	requireAuth := middleware.Auth(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", s.authHandler.Login)
	mux.Handle("POST /v1/onboarding/chat", requireAuth(http.HandlerFunc(s.chatHandler.Chat)))
	mux.Handle("GET /v1/me", requireAuth(http.HandlerFunc(s.meHandler.Me)))
	mux.Handle("POST /v1/profile/analysis/refresh", requireAuth(http.HandlerFunc(s.analysisHandler.Refresh)))
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", m.Handler())

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // streams stay open through imports and analysis
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start listens for requests until an interrupt or SIGTERM arrives, then
// shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(context.Background(), "server starting", logger.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info(context.Background(), "shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.llm.Close(); err != nil {
		s.log.Warn(context.Background(), "failed to close llm client", logger.Error(err))
	}
	s.db.Close()
	s.log.Info(context.Background(), "server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request and records it in the metrics registry.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.metrics.ObserveRequest(r.URL.Path, strconv.Itoa(sw.status))
		s.log.Info(r.Context(), "request",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", sw.status),
			logger.Duration("duration", time.Since(start)))
	})
}

// statusWriter captures the response status for logging. Flush is forwarded
// so SSE handlers keep working behind the middleware.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// handleHealth reports liveness, including a database ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := s.db.Ping(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
