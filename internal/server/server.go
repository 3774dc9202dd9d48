// Package server provides the HTTP REST API for the people matcher.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tyler/people-match/internal/config"
	"github.com/tyler/people-match/internal/db"
	"github.com/tyler/people-match/internal/llm"
	"github.com/tyler/people-match/internal/match"
	"github.com/tyler/people-match/internal/normalize"
	"github.com/tyler/people-match/internal/types"
	"github.com/tyler/people-match/internal/vocab"
)

// matcher runs a full matching request. Satisfied by *match.Engine.
type matcher interface {
	Match(ctx context.Context, req types.MatchRequest) (*types.MatchResponse, error)
}

// profileStore is the subset of the database the profile handlers need.
type profileStore interface {
	UpsertProfile(ctx context.Context, p types.Profile) error
	GetProfileByUserID(ctx context.Context, userID string) (*types.Profile, error)
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	database   *db.DB
	store      profileStore
	engine     matcher
	llmClient  llm.Client
	log        *zap.Logger
}

// New creates a new server instance. It connects to the database, ensures the
// schema exists, loads the company vocabulary and wires the matching engine.
func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.CreateSchema(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	vocabulary, err := vocab.Load(cfg.VocabularyPath)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load company vocabulary: %w", err)
	}
	normalizer := normalize.New(vocabulary, nil)

	var enhancer match.Enhancer
	var llmClient llm.Client
	if cfg.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.APIKey)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		llmClient = client
		enhancer = llm.NewEnhancer(client, log)
	} else {
		log.Info("no API key configured, match enhancement disabled")
	}

	engine := match.New(database, normalizer, enhancer, log)

	s := &Server{
		database:  database,
		store:     database,
		engine:    engine,
		llmClient: llmClient,
		log:       log,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // matching plus enhancement can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request multiplexer with middleware applied.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /match", s.handleMatch)
	mux.HandleFunc("POST /profiles", s.handleUpsertProfile)
	mux.HandleFunc("GET /profiles/{user_id}", s.handleGetProfile)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withLogging(s.withCORS(mux))
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			s.log.Warn("closing LLM client failed", zap.Error(err))
		}
	}
	if s.database != nil {
		s.database.Close()
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging. Each request gets a generated id, echoed
// back in X-Request-ID so callers can correlate with the server logs.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request completed",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status, including database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.log.Error("health check failed", zap.Error(err))
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "degraded",
			"database": "unreachable",
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("encoding JSON response failed", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
