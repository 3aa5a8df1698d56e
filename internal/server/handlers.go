package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kapu/roast-card-go/internal/constants"
	"github.com/kapu/roast-card-go/internal/domain"
	"github.com/kapu/roast-card-go/internal/prompt"
	apperrors "github.com/kapu/roast-card-go/pkg/errors"
	"go.uber.org/zap"
)

type roastRequest struct {
	Profile   domain.Profile           `json:"profile"`
	Platform  string                   `json:"platform"`
	Intensity string                   `json:"intensity"`
	Extended  *domain.TimelineSnapshot `json:"extended,omitempty"`
}

// handleRoast runs the full request cycle: rate limit gate, prompt build,
// model call, reply parse. Everything below this boundary degrades
// silently; only quota, missing credentials and provider failures become
// user-visible errors.
func (s *Server) handleRoast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	identity := clientIdentity(r)
	if !s.deps.Limiter.Allow(identity) {
		s.logger.Warn("Rate limit exceeded", zap.String("identity", identity))
		writeError(w, http.StatusTooManyRequests, "too many requests, try again later")
		return
	}

	if !s.deps.Generator.Ready() {
		s.logger.Error("Roast requested but no model API key is configured")
		writeError(w, http.StatusInternalServerError, "generation backend not configured")
		return
	}

	var req roastRequest
	r.Body = http.MaxBytesReader(w, r.Body, constants.ServerConfig.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	platform := domain.ParsePlatform(req.Platform)
	intensity := domain.ParseIntensity(req.Intensity)

	promptText := prompt.BuildRoast(&req.Profile, platform, intensity, req.Extended)

	ctx, cancel := context.WithTimeout(r.Context(), constants.AIConfig.GenerateTimeout)
	defer cancel()

	raw, meta, err := s.deps.Generator.Generate(ctx, promptText)
	if err != nil {
		s.logger.Error("Roast generation failed",
			zap.String("identity", identity),
			zap.Error(err))
		writeError(w, providerStatus(err), "roast generation failed")
		return
	}

	card := prompt.ParseRoastCard(raw)

	s.logger.Info("Roast card generated",
		zap.String("handle", req.Profile.Handle),
		zap.String("platform", string(platform)),
		zap.String("intensity", string(intensity)),
		zap.String("provider", meta.Provider),
		zap.Bool("used_fallback", meta.UsedFallback))

	writeJSON(w, http.StatusOK, card)
}

// handleTwitter scrapes a public timeline profile. HTTP-level success is
// reported even when scraping degraded; failure is signaled in-band via the
// warning field.
func (s *Server) handleTwitter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	handle := strings.TrimSpace(r.URL.Query().Get("handle"))
	if handle == "" {
		writeError(w, http.StatusBadRequest, "missing handle")
		return
	}

	profile := s.deps.Twitter.FetchProfile(r.Context(), handle)
	writeJSON(w, http.StatusOK, profile)
}

// handleGitHub collects a GitHub profile, degrading like the scraper on
// upstream failure so the client can always render something.
func (s *Server) handleGitHub(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	handle := strings.TrimSpace(r.URL.Query().Get("handle"))
	if handle == "" {
		writeError(w, http.StatusBadRequest, "missing handle")
		return
	}

	profile, err := s.deps.GitHub.FetchProfile(r.Context(), handle)
	if err != nil {
		s.logger.Warn("GitHub fetch degraded to fallback values",
			zap.String("handle", handle),
			zap.Error(err))
		profile = &domain.Profile{
			Handle:      handle,
			DisplayName: handle,
			AvatarURL:   constants.ScrapeConfig.UnavatarBase + "/github/" + handle,
			Warning:     err.Error(),
		}
	}

	writeJSON(w, http.StatusOK, profile)
}

// clientIdentity extracts the caller identity from the forwarded-for header
// (first entry when the request crossed several proxies).
func clientIdentity(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return "unknown"
	}

	if idx := strings.Index(forwarded, ","); idx != -1 {
		forwarded = forwarded[:idx]
	}

	forwarded = strings.TrimSpace(forwarded)
	if forwarded == "" {
		return "unknown"
	}
	return forwarded
}

// providerStatus maps a generation error to the response status: upstream
// provider failures propagate the provider's status code, anything else is
// a generic 500.
func providerStatus(err error) int {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode > 0 {
		return apiErr.StatusCode
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.StatusCode > 0 {
		return appErr.StatusCode
	}

	return http.StatusInternalServerError
}
