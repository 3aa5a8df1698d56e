package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kapu/roast-card-go/internal/config"
	"github.com/kapu/roast-card-go/internal/constants"
	"github.com/kapu/roast-card-go/internal/domain"
	"github.com/kapu/roast-card-go/internal/ratelimit"
	"github.com/kapu/roast-card-go/internal/service/ai"
	"go.uber.org/zap"
)

// TextGenerator is the generative backend boundary.
type TextGenerator interface {
	Ready() bool
	Generate(ctx context.Context, prompt string) (string, *ai.Metadata, error)
}

// ProfileFetcher is the timeline scraper boundary. It never fails; degraded
// results carry an in-band warning.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, handle string) *domain.Profile
}

// GitHubCollector is the GitHub REST boundary.
type GitHubCollector interface {
	FetchProfile(ctx context.Context, login string) (*domain.Profile, error)
}

// Dependencies bundles everything the HTTP layer needs.
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	Limiter   *ratelimit.Limiter
	Generator TextGenerator
	Twitter   ProfileFetcher
	GitHub    GitHubCollector
}

type Server struct {
	httpServer *http.Server
	deps       *Dependencies
	logger     *zap.Logger
}

func New(deps *Dependencies) (*Server, error) {
	if deps == nil || deps.Config == nil || deps.Logger == nil {
		return nil, fmt.Errorf("server dependencies not initialized")
	}

	s := &Server{
		deps:   deps,
		logger: deps.Logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/roast", s.withRecovery(s.handleRoast))
	mux.HandleFunc("/api/twitter", s.withRecovery(s.handleTwitter))
	mux.HandleFunc("/api/github", s.withRecovery(s.handleGitHub))
	mux.HandleFunc("/healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", deps.Config.Server.Host, deps.Config.Server.Port),
		Handler:      mux,
		ReadTimeout:  constants.ServerConfig.ReadTimeout,
		WriteTimeout: constants.ServerConfig.WriteTimeout,
	}

	return s, nil
}

// Start blocks serving HTTP until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withRecovery catches any panic below the endpoint boundary and turns it
// into a generic 500 without leaking internal detail.
func (s *Server) withRecovery(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("Handler panicked",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec))
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			s.logger.Debug("Request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("took", time.Since(start)))
		}()
		next(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
