package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kapu/roast-card-go/internal/constants"
	"github.com/kapu/roast-card-go/internal/domain"
	"github.com/kapu/roast-card-go/internal/service/cache"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Service scrapes public X/Twitter profile pages without API access. Direct
// rendering needs script execution, so both timeline views are fetched
// through a readability relay that returns plain text.
type Service struct {
	httpClient      *http.Client
	banners         *BannerResolver
	logger          *zap.Logger
	readabilityBase string
	mobileBase      string
	unavatarBase    string
	postLimit       int
}

func NewService(cacheSvc *cache.Service, renderer *Renderer, postLimit int, logger *zap.Logger) *Service {
	httpClient := &http.Client{
		Timeout: constants.ScrapeConfig.FetchTimeout,
	}

	return &Service{
		httpClient:      httpClient,
		banners:         NewBannerResolver(httpClient, cacheSvc, renderer, logger),
		logger:          logger,
		readabilityBase: constants.ScrapeConfig.ReadabilityBase,
		mobileBase:      constants.ScrapeConfig.MobileBase,
		unavatarBase:    constants.ScrapeConfig.UnavatarBase,
		postLimit:       postLimit,
	}
}

// FetchProfile builds a normalized profile for a handle. It never fails:
// when the upstream fetches break, the result degrades to a zero-valued
// profile with a warning and a deterministic proxy avatar, so the caller
// can always proceed.
func (s *Service) FetchProfile(ctx context.Context, handle string) *domain.Profile {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")

	start := time.Now()

	var (
		primary, replies       string
		primaryErr, repliesErr error
	)

	// The two views are independent; fetch them together.
	p := pool.New().WithMaxGoroutines(2)
	p.Go(func() {
		primary, primaryErr = s.fetchReadable(ctx, fmt.Sprintf("%s/%s?lang=en", s.mobileBase, url.PathEscape(handle)))
	})
	p.Go(func() {
		replies, repliesErr = s.fetchReadable(ctx, fmt.Sprintf("%s/%s/with_replies?lang=en", s.mobileBase, url.PathEscape(handle)))
	})
	p.Wait()

	if primaryErr != nil || repliesErr != nil {
		err := primaryErr
		if err == nil {
			err = repliesErr
		}
		s.logger.Warn("Profile scrape degraded to fallback values",
			zap.String("handle", handle),
			zap.Error(err))
		return s.fallbackProfile(handle, err)
	}

	followers, following := ExtractCounts(primary)
	avatarURL, _ := ExtractImages(primary)
	bannerURL := s.banners.Resolve(ctx, handle, primary)

	if avatarURL == "" {
		avatarURL = s.proxyAvatarURL(handle)
	}

	profile := &domain.Profile{
		Handle:         handle,
		DisplayName:    handle,
		Followers:      followers,
		Following:      following,
		AvatarURL:      avatarURL,
		BannerURL:      bannerURL,
		RecentPosts:    SegmentTimeline(primary, handle, s.postLimit),
		RecentComments: SegmentTimeline(replies, handle, s.postLimit),
	}

	s.logger.Info("Profile scrape finished",
		zap.String("handle", handle),
		zap.Int("followers", followers),
		zap.Int("posts", len(profile.RecentPosts)),
		zap.Int("comments", len(profile.RecentComments)),
		zap.Duration("took", time.Since(start)))

	return profile
}

// fetchReadable requests a page through the readability relay, which
// mirrors the text content of script-dependent pages.
func (s *Service) fetchReadable(ctx context.Context, pageURL string) (string, error) {
	stripped := strings.TrimPrefix(strings.TrimPrefix(pageURL, "https://"), "http://")
	wrapped := fmt.Sprintf("%s/http://%s", s.readabilityBase, stripped)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wrapped, nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("User-Agent", constants.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("readable fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("readable fetch failed: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("readable fetch failed: %w", err)
	}

	return string(body), nil
}

func (s *Service) fallbackProfile(handle string, cause error) *domain.Profile {
	warning := "scrape failed"
	if cause != nil {
		warning = cause.Error()
	}

	return &domain.Profile{
		Handle:         handle,
		DisplayName:    handle,
		AvatarURL:      s.proxyAvatarURL(handle),
		RecentPosts:    []string{},
		RecentComments: []string{},
		Warning:        warning,
	}
}

func (s *Service) proxyAvatarURL(handle string) string {
	return fmt.Sprintf("%s/twitter/%s", s.unavatarBase, url.PathEscape(handle))
}
