package constants

import "time"

const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

var ScrapeConfig = struct {
	ReadabilityBase string
	MobileBase      string
	MirrorBase      string
	UnavatarBase    string
	LiveBase        string
	FetchTimeout    time.Duration
	ProbeTimeout    time.Duration
	RenderTimeout   time.Duration
	MaxPostLength   int
}{
	ReadabilityBase: "https://r.jina.ai",
	MobileBase:      "https://mobile.twitter.com",
	MirrorBase:      "https://nitter.net",
	UnavatarBase:    "https://unavatar.io",
	LiveBase:        "https://x.com",
	FetchTimeout:    15 * time.Second,
	ProbeTimeout:    5 * time.Second,
	RenderTimeout:   20 * time.Second,
	MaxPostLength:   280,
}

var GitHubConfig = struct {
	BaseURL      string
	Timeout      time.Duration
	ReposPerPage int
	TopRepoCount int
}{
	BaseURL:      "https://api.github.com",
	Timeout:      10 * time.Second,
	ReposPerPage: 100,
	TopRepoCount: 2,
}

var AIConfig = struct {
	GenerateTimeout time.Duration
	MaxOutputTokens int
	Temperature     float32
}{
	GenerateTimeout: 30 * time.Second,
	MaxOutputTokens: 1024,
	Temperature:     0.9,
}

var CacheTTL = struct {
	Banner time.Duration
}{
	Banner: 30 * time.Minute, // banner chain is the expensive scrape path
}

var RateLimitDefaults = struct {
	Window        time.Duration
	Ceiling       int
	PruneInterval time.Duration
}{
	Window:        60 * time.Second,
	Ceiling:       20,
	PruneInterval: 5 * time.Minute,
}

var ServerConfig = struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}{
	ReadTimeout:     15 * time.Second,
	WriteTimeout:    60 * time.Second,
	ShutdownTimeout: 10 * time.Second,
	MaxBodyBytes:    1 << 20,
}
