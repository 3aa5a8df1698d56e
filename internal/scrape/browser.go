package scrape

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
	"github.com/kapu/roast-card-go/internal/constants"
	"go.uber.org/zap"
)

// Renderer runs a headless Chrome for the banner chain's last resort. The
// browser is launched per visit and closed unconditionally; a semaphore
// keeps renders serialized independently of ordinary fetch concurrency.
type Renderer struct {
	liveBase string
	sem      chan struct{}
	logger   *zap.Logger
}

func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{
		liveBase: constants.ScrapeConfig.LiveBase,
		sem:      make(chan struct{}, 1),
		logger:   logger,
	}
}

// BannerURL renders the live profile page and queries the DOM for the
// banner image element.
func (r *Renderer) BannerURL(ctx context.Context, handle string) (string, error) {
	select {
	case r.sem <- struct{}{}:
		defer func() { <-r.sem }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	start := time.Now()

	l := launcher.New().Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := stealth.Page(browser)
	if err != nil {
		return "", fmt.Errorf("create stealth page: %w", err)
	}

	page = page.Context(ctx).Timeout(constants.ScrapeConfig.RenderTimeout)

	if err := page.Navigate(fmt.Sprintf("%s/%s", r.liveBase, url.PathEscape(handle))); err != nil {
		return "", fmt.Errorf("navigate to profile: %w", err)
	}
	if err := page.WaitStable(2 * time.Second); err != nil {
		return "", fmt.Errorf("wait for page stable: %w", err)
	}

	el, err := page.Element(`img[src*="profile_banners"]`)
	if err != nil {
		return "", fmt.Errorf("banner element not found: %w", err)
	}

	src, err := el.Attribute("src")
	if err != nil || src == nil || *src == "" {
		return "", fmt.Errorf("banner element has no src")
	}

	r.logger.Debug("Headless banner render finished",
		zap.String("handle", handle),
		zap.Duration("took", time.Since(start)))

	return *src, nil
}
