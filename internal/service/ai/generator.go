package ai

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/kapu/roast-card-go/pkg/errors"
	"go.uber.org/zap"
)

// Metadata reports which backend actually produced a completion.
type Metadata struct {
	Provider     string
	UsedFallback bool
}

// Generator routes completions to the primary provider, falling back to the
// secondary when the primary fails. No retries: a failed attempt moves
// straight to the next backend or to the caller.
type Generator struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

func NewGenerator(primary, fallback Provider, logger *zap.Logger) *Generator {
	return &Generator{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Ready reports whether at least one backend is configured. The endpoint
// turns a false into a 500, since no fallback value exists for a missing
// credential.
func (g *Generator) Ready() bool {
	return g.primary != nil || g.fallback != nil
}

func (g *Generator) Generate(ctx context.Context, promptText string) (string, *Metadata, error) {
	if !g.Ready() {
		return "", nil, apperrors.NewAppError("no text provider configured", apperrors.CodeConfig, 500, nil)
	}

	if g.primary != nil {
		text, err := g.primary.Generate(ctx, promptText)
		if err == nil {
			return text, &Metadata{Provider: g.primary.Name()}, nil
		}

		g.logger.Warn("Primary provider failed",
			zap.String("provider", g.primary.Name()),
			zap.Error(err))

		if g.fallback == nil {
			return "", nil, apperrors.NewAPIError("text generation failed", statusFromError(err), err)
		}
	}

	text, err := g.fallback.Generate(ctx, promptText)
	if err != nil {
		return "", nil, apperrors.NewAPIError("text generation failed", statusFromError(err), err)
	}

	return text, &Metadata{Provider: g.fallback.Name(), UsedFallback: g.primary != nil}, nil
}

var (
	jsonCodePattern   = regexp.MustCompile(`"code":\s*(\d{3})`)
	prefixCodePattern = regexp.MustCompile(`^(\d{3})\s`)
	statusCodePattern = regexp.MustCompile(`\b([45]\d{2})\b`)
)

// statusFromError sniffs an HTTP status out of a provider error message so
// the endpoint can propagate the upstream status. Providers wrap their
// transport errors differently; string matching is the common denominator.
func statusFromError(err error) int {
	if err == nil {
		return 500
	}

	msg := err.Error()

	if strings.Contains(msg, "Rate limit") || strings.Contains(msg, "quota") {
		return 429
	}

	for _, pattern := range []*regexp.Regexp{jsonCodePattern, prefixCodePattern, statusCodePattern} {
		if m := pattern.FindStringSubmatch(msg); m != nil {
			if code, convErr := strconv.Atoi(m[1]); convErr == nil && code >= 400 && code < 600 {
				return code
			}
		}
	}

	return 500
}
