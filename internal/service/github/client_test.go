package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/kapu/roast-card-go/pkg/errors"
	"go.uber.org/zap"
)

const userJSON = `{
	"login": "octocat",
	"name": "The Octocat",
	"bio": "professional cat",
	"avatar_url": "https://avatars.githubusercontent.com/u/583231",
	"public_repos": 4,
	"followers": 9000,
	"following": 9,
	"created_at": "2011-01-25T18:44:36Z"
}`

const reposJSON = `[
	{"name": "tiny", "stargazers_count": 3, "language": "Go"},
	{"name": "huge", "stargazers_count": 2500, "language": "C"},
	{"name": "mid", "stargazers_count": 40, "language": "Go"},
	{"name": "mystery", "stargazers_count": 700, "language": ""}
]`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c := NewClient("", zap.NewNop())
	c.httpClient = ts.Client()
	c.baseURL = ts.URL
	return c
}

func TestFetchProfile(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/vnd.github+json" {
			t.Errorf("missing accept header")
		}
		switch r.URL.Path {
		case "/users/octocat":
			_, _ = w.Write([]byte(userJSON))
		case "/users/octocat/repos":
			if r.URL.Query().Get("per_page") != "100" {
				t.Errorf("per_page = %q", r.URL.Query().Get("per_page"))
			}
			_, _ = w.Write([]byte(reposJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	profile, err := client.FetchProfile(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}

	if profile.Handle != "octocat" || profile.DisplayName != "The Octocat" {
		t.Errorf("identity: %q / %q", profile.Handle, profile.DisplayName)
	}
	if profile.Followers != 9000 || profile.Following != 9 || profile.PublicRepos != 4 {
		t.Errorf("counts: %d/%d/%d", profile.Followers, profile.Following, profile.PublicRepos)
	}

	// Top repos sorted by stars, language hole filled with the placeholder.
	if len(profile.TopRepos) != 2 {
		t.Fatalf("top repos = %d", len(profile.TopRepos))
	}
	if profile.TopRepos[0].Name != "huge" || profile.TopRepos[0].Stars != 2500 {
		t.Errorf("first repo: %+v", profile.TopRepos[0])
	}
	if profile.TopRepos[1].Name != "mystery" || profile.TopRepos[1].Language != "N/A" {
		t.Errorf("second repo: %+v", profile.TopRepos[1])
	}

	if profile.TopLanguage != "Go" {
		t.Errorf("top language = %q", profile.TopLanguage)
	}
}

func TestFetchProfileNameFallsBackToLogin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/ghost":
			_, _ = w.Write([]byte(`{"login": "ghost"}`))
		case "/users/ghost/repos":
			_, _ = w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	profile, err := client.FetchProfile(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if profile.DisplayName != "ghost" {
		t.Errorf("display name = %q", profile.DisplayName)
	}
	if profile.AvatarURL != "https://unavatar.io/github/ghost" {
		t.Errorf("avatar fallback = %q", profile.AvatarURL)
	}
	if profile.TopLanguage != "N/A" {
		t.Errorf("top language = %q", profile.TopLanguage)
	}
	if len(profile.TopRepos) != 0 {
		t.Errorf("expected no top repos, got %d", len(profile.TopRepos))
	}
}

func TestFetchProfileSurfacesUpstreamStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.FetchProfile(context.Background(), "octocat")
	if err == nil {
		t.Fatalf("expected error on 403")
	}

	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}

func TestFetchProfileSendsToken(t *testing.T) {
	seen := ""
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/users/octocat":
			_, _ = w.Write([]byte(userJSON))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	client.token = "ghp_test"

	if _, err := client.FetchProfile(context.Background(), "octocat"); err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if seen != "Bearer ghp_test" {
		t.Errorf("authorization header = %q", seen)
	}
}
