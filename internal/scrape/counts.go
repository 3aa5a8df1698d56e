package scrape

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Label synonym tables for the profile counters. The scraped page renders in
// the viewer's locale, so the extractor accepts every known variant. New
// locales only need a new entry here.
var (
	followerLabels = []string{
		"Followers", "Abonnés", "Seguidor(?:es)?", "Seguidores",
		"フォロワー", "팔로워", "粉丝", "Follower", "Anhänger", "Seguaci",
	}
	followingLabels = []string{
		"Following", "Abonnements", "Siguiendo", "Seguindo",
		"フォロー中", "팔로잉", "关注", "Gefolgt", "In Seguito",
	}
)

var (
	followersPattern = regexp.MustCompile(`(?i)([0-9][0-9\s,.kKmM]*)\s*(?:` + strings.Join(followerLabels, "|") + `)`)
	followingPattern = regexp.MustCompile(`(?i)([0-9][0-9\s,.kKmM]*)\s*(?:` + strings.Join(followingLabels, "|") + `)`)

	countPattern        = regexp.MustCompile(`^(\d+(?:\.\d+)?)([kKmM]?)$`)
	leadingDigitPattern = regexp.MustCompile(`^\d+`)

	avatarPattern = regexp.MustCompile(`(?i)https?://pbs\.twimg\.com/profile_images/[^\s)"']+`)
	bannerPattern = regexp.MustCompile(`(?i)https?://pbs\.twimg\.com/profile_banners/\d+/\d+/\d+x\d+`)
)

// NormalizeCount converts a scraped counter string like "1.2k", "3M" or
// "12,345" into an integer. Anything unparseable yields 0.
func NormalizeCount(raw string) int {
	s := strings.NewReplacer(",", "", " ", "", " ", "", "&nbsp;", "").Replace(strings.TrimSpace(raw))
	if s == "" {
		return 0
	}

	m := countPattern.FindStringSubmatch(s)
	if m == nil {
		if digits := leadingDigitPattern.FindString(s); digits != "" {
			n, _ := strconv.Atoi(digits)
			return n
		}
		return 0
	}

	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	switch strings.ToLower(m[2]) {
	case "k":
		val *= 1_000
	case "m":
		val *= 1_000_000
	}

	return int(math.Round(val))
}

// ExtractCounts pulls the follower and following counters out of a readable
// text dump of a profile page. A missing counter yields 0, never an error.
func ExtractCounts(text string) (followers, following int) {
	if m := followersPattern.FindStringSubmatch(text); m != nil {
		followers = NormalizeCount(m[1])
	}
	if m := followingPattern.FindStringSubmatch(text); m != nil {
		following = NormalizeCount(m[1])
	}
	return followers, following
}

// ExtractImages finds the first avatar and banner URLs matching the image
// host's path conventions. Either may be empty; the fetcher applies its own
// fallbacks.
func ExtractImages(text string) (avatarURL, bannerURL string) {
	return avatarPattern.FindString(text), bannerPattern.FindString(text)
}
