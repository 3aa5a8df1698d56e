package domain

// Platform identifies which site a profile was collected from.
type Platform string

const (
	PlatformGitHub  Platform = "github"
	PlatformTwitter Platform = "twitter"
)

// ParsePlatform maps a request value to a known platform, defaulting to GitHub.
func ParsePlatform(value string) Platform {
	if value == string(PlatformTwitter) {
		return PlatformTwitter
	}
	return PlatformGitHub
}

// Repo is a public repository summary used for GitHub profiles.
type Repo struct {
	Name     string `json:"name"`
	Stars    int    `json:"stars"`
	Language string `json:"language"`
}

// Profile is the normalized profile record produced by the collectors.
// AvatarURL is always populated; when no real avatar could be found it holds
// a deterministic unavatar proxy URL derived from the handle. Counts are
// best-effort and default to zero. A non-empty Warning means extraction
// degraded to fallback values.
type Profile struct {
	Handle         string   `json:"handle"`
	DisplayName    string   `json:"displayName"`
	Bio            string   `json:"bio,omitempty"`
	Followers      int      `json:"followers"`
	Following      int      `json:"following"`
	AvatarURL      string   `json:"avatarUrl"`
	BannerURL      string   `json:"bannerUrl,omitempty"`
	CreatedAt      string   `json:"createdAt,omitempty"`
	PublicRepos    int      `json:"publicRepos,omitempty"`
	TopRepos       []Repo   `json:"topRepos,omitempty"`
	TopLanguage    string   `json:"mostUsedLanguage,omitempty"`
	RecentPosts    []string `json:"recentPosts,omitempty"`
	RecentComments []string `json:"recentComments,omitempty"`
	Warning        string   `json:"warning,omitempty"`
}

// TimelineSnapshot is the optional extended timeline payload a client can
// attach to a roast request for timeline-based platforms. Post and comment
// entries are short strings, 280 characters at most.
type TimelineSnapshot struct {
	Handle    string   `json:"handle"`
	Followers int      `json:"followers"`
	Following int      `json:"following"`
	AvatarURL string   `json:"avatarUrl,omitempty"`
	BannerURL string   `json:"bannerUrl,omitempty"`
	Posts     []string `json:"lastPosts"`
	Comments  []string `json:"lastComments"`
}
