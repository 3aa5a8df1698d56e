package app

import (
	"context"
	"fmt"

	"github.com/kapu/roast-card-go/internal/config"
	"github.com/kapu/roast-card-go/internal/constants"
	"github.com/kapu/roast-card-go/internal/ratelimit"
	"github.com/kapu/roast-card-go/internal/scrape"
	"github.com/kapu/roast-card-go/internal/server"
	"github.com/kapu/roast-card-go/internal/service/ai"
	"github.com/kapu/roast-card-go/internal/service/cache"
	"github.com/kapu/roast-card-go/internal/service/github"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing the HTTP server.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	serverDeps *server.Dependencies
	closers    []func()
}

// NewServer instantiates the HTTP server using the pre-built dependency graph.
func (c *Container) NewServer() (*server.Server, error) {
	if c == nil || c.serverDeps == nil {
		return nil, fmt.Errorf("server dependencies not initialized")
	}
	return server.New(c.serverDeps)
}

// Close releases everything Build acquired, in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles all infrastructure services. Heavy initialization
// (cache connections, model clients) happens here so server.New stays
// focused on routing.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Cache is optional; the scraper works without it, just slower on the
	// banner chain.
	var cacheSvc *cache.Service
	if cfg.Redis.Enabled {
		cacheSvc, err = cache.NewService(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", err)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
	}

	var renderer *scrape.Renderer
	if cfg.Scraper.EnableHeadless {
		renderer = scrape.NewRenderer(logger)
		logger.Info("Headless banner rendering enabled")
	}

	twitterSvc := scrape.NewService(cacheSvc, renderer, cfg.Scraper.PostLimit, logger)
	githubSvc := github.NewClient(cfg.GitHub.Token, logger)

	// Model stack
	geminiProvider, err := ai.NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini provider: %w", err)
	}

	var primary, fallback ai.Provider
	if geminiProvider != nil {
		primary = geminiProvider
	}
	if cfg.OpenAI.EnableFallback {
		if openaiProvider := ai.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger); openaiProvider != nil {
			fallback = openaiProvider
		}
	}

	generator := ai.NewGenerator(primary, fallback, logger)
	if !generator.Ready() {
		logger.Warn("No model API key configured; roast requests will fail with 500")
	}

	limiter := ratelimit.NewLimiter(cfg.RateLimit.Window, cfg.RateLimit.Ceiling, logger)
	limiter.StartJanitor(constants.RateLimitDefaults.PruneInterval)
	closers = append(closers, limiter.Close)

	deps := &server.Dependencies{
		Config:    cfg,
		Logger:    logger,
		Limiter:   limiter,
		Generator: generator,
		Twitter:   twitterSvc,
		GitHub:    githubSvc,
	}

	return &Container{
		Config:     cfg,
		Logger:     logger,
		serverDeps: deps,
		closers:    closers,
	}, nil
}
