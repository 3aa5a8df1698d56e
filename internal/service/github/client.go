package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/kapu/roast-card-go/internal/constants"
	"github.com/kapu/roast-card-go/internal/domain"
	apperrors "github.com/kapu/roast-card-go/pkg/errors"
	"go.uber.org/zap"
)

// Client collects public profile data from the GitHub REST API. Unlike the
// timeline scraper this is a real API, so failures surface as errors and the
// HTTP layer decides how to degrade.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *zap.Logger
}

func NewClient(token string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: constants.GitHubConfig.Timeout,
		},
		baseURL: constants.GitHubConfig.BaseURL,
		token:   token,
		logger:  logger,
	}
}

type userResponse struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	CreatedAt   string `json:"created_at"`
}

type repoResponse struct {
	Name            string `json:"name"`
	StargazersCount int    `json:"stargazers_count"`
	Language        string `json:"language"`
}

// FetchProfile builds a normalized profile for a GitHub login: the user
// record plus top repositories by stars and the most used language across
// public repos.
func (c *Client) FetchProfile(ctx context.Context, login string) (*domain.Profile, error) {
	var user userResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%s", url.PathEscape(login)), &user); err != nil {
		return nil, err
	}

	var repos []repoResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%s/repos?per_page=%d", url.PathEscape(login), constants.GitHubConfig.ReposPerPage), &repos); err != nil {
		return nil, err
	}

	sort.Slice(repos, func(i, j int) bool {
		return repos[i].StargazersCount > repos[j].StargazersCount
	})

	topRepos := make([]domain.Repo, 0, constants.GitHubConfig.TopRepoCount)
	for _, repo := range repos {
		if len(topRepos) >= constants.GitHubConfig.TopRepoCount {
			break
		}
		language := repo.Language
		if language == "" {
			language = "N/A"
		}
		topRepos = append(topRepos, domain.Repo{
			Name:     repo.Name,
			Stars:    repo.StargazersCount,
			Language: language,
		})
	}

	displayName := user.Name
	if displayName == "" {
		displayName = user.Login
	}

	avatarURL := user.AvatarURL
	if avatarURL == "" {
		avatarURL = fmt.Sprintf("%s/github/%s", constants.ScrapeConfig.UnavatarBase, url.PathEscape(login))
	}

	profile := &domain.Profile{
		Handle:      user.Login,
		DisplayName: displayName,
		Bio:         user.Bio,
		Followers:   user.Followers,
		Following:   user.Following,
		AvatarURL:   avatarURL,
		CreatedAt:   user.CreatedAt,
		PublicRepos: user.PublicRepos,
		TopRepos:    topRepos,
		TopLanguage: c.mostUsedLanguage(repos),
	}

	c.logger.Info("GitHub profile fetched",
		zap.String("login", user.Login),
		zap.Int("repos", len(repos)),
		zap.String("top_language", profile.TopLanguage))

	return profile, nil
}

func (c *Client) mostUsedLanguage(repos []repoResponse) string {
	counts := make(map[string]int)
	for _, repo := range repos {
		if repo.Language != "" {
			counts[repo.Language]++
		}
	}

	best := "N/A"
	bestCount := 0
	for language, count := range counts {
		if count > bestCount || (count == bestCount && language < best) {
			best = language
			bestCount = count
		}
	}
	return best
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", constants.UserAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewServiceError("GitHub request failed", "github", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewAPIError(fmt.Sprintf("GitHub returned status %d", resp.StatusCode), resp.StatusCode, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return apperrors.NewServiceError("GitHub response decode failed", "github", path, err)
	}

	return nil
}
