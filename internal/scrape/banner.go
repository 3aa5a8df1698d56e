package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/roast-card-go/internal/constants"
	"github.com/kapu/roast-card-go/internal/service/cache"
	"go.uber.org/zap"
)

// bannerStrategy is one stage of the banner fallback chain. Stages are
// ordered cheapest first and a stage runs only when every prior stage came
// up empty. Failures are swallowed: a stage either produces a URL or it
// does not.
type bannerStrategy interface {
	name() string
	attempt(ctx context.Context, handle string) (string, bool)
}

// BannerResolver walks the banner strategy chain for a handle. Results are
// cached when a cache is configured, since the later stages are the
// expensive part of the whole scrape.
type BannerResolver struct {
	strategies []bannerStrategy
	cache      *cache.Service
	logger     *zap.Logger
}

func NewBannerResolver(httpClient *http.Client, cacheSvc *cache.Service, renderer *Renderer, logger *zap.Logger) *BannerResolver {
	strategies := []bannerStrategy{
		&probeStrategy{client: httpClient, base: constants.ScrapeConfig.UnavatarBase},
		&mirrorStrategy{client: httpClient, base: constants.ScrapeConfig.MirrorBase},
	}
	if renderer != nil {
		strategies = append(strategies, &headlessStrategy{renderer: renderer})
	}

	return &BannerResolver{
		strategies: strategies,
		cache:      cacheSvc,
		logger:     logger,
	}
}

// Resolve returns the best-effort banner URL for a handle, or "" when every
// stage failed. pageText is the already-fetched readable profile dump; the
// inline pattern match over it is stage one and costs nothing extra.
func (r *BannerResolver) Resolve(ctx context.Context, handle, pageText string) string {
	if _, banner := ExtractImages(pageText); banner != "" {
		return banner
	}

	cacheKey := fmt.Sprintf("roast:banner:%s", strings.ToLower(handle))
	var cached string
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found && cached != "" {
		r.logger.Debug("Banner cache hit", zap.String("handle", handle))
		return cached
	}

	for _, strategy := range r.strategies {
		bannerURL, ok := strategy.attempt(ctx, handle)
		if !ok {
			continue
		}

		r.logger.Debug("Banner resolved",
			zap.String("handle", handle),
			zap.String("strategy", strategy.name()))
		_ = r.cache.Set(ctx, cacheKey, bannerURL, constants.CacheTTL.Banner)
		return bannerURL
	}

	return ""
}

// probeStrategy checks an avatar/banner proxy with a HEAD request. Present
// only when the response succeeds and reports an image content type.
type probeStrategy struct {
	client *http.Client
	base   string
}

func (p *probeStrategy) name() string { return "proxy-probe" }

func (p *probeStrategy) attempt(ctx context.Context, handle string) (string, bool) {
	candidate := fmt.Sprintf("%s/twitter/%s/banner", p.base, url.PathEscape(handle))

	ctx, cancel := context.WithTimeout(ctx, constants.ScrapeConfig.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, candidate, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", constants.UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		return "", false
	}

	return candidate, true
}

// mirrorStrategy scrapes a public mirror's profile page for its embedded
// banner image tag.
type mirrorStrategy struct {
	client *http.Client
	base   string
}

func (m *mirrorStrategy) name() string { return "mirror-scrape" }

func (m *mirrorStrategy) attempt(ctx context.Context, handle string) (string, bool) {
	pageURL := fmt.Sprintf("%s/%s", m.base, url.PathEscape(handle))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", constants.UserAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", false
	}

	src, exists := doc.Find(".profile-banner img").First().Attr("src")
	if !exists || src == "" {
		return "", false
	}

	return m.absoluteURL(src), true
}

func (m *mirrorStrategy) absoluteURL(src string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	base, err := url.Parse(m.base)
	if err != nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}

// headlessStrategy renders the live page in a browser and queries the DOM.
// Last resort: it is by far the heaviest stage.
type headlessStrategy struct {
	renderer *Renderer
}

func (h *headlessStrategy) name() string { return "headless-render" }

func (h *headlessStrategy) attempt(ctx context.Context, handle string) (string, bool) {
	bannerURL, err := h.renderer.BannerURL(ctx, handle)
	if err != nil || bannerURL == "" {
		return "", false
	}
	return bannerURL, true
}
