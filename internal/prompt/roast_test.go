package prompt

import (
	"strings"
	"testing"

	"github.com/kapu/roast-card-go/internal/domain"
)

func githubProfile() *domain.Profile {
	return &domain.Profile{
		Handle:      "octocat",
		DisplayName: "The Octocat",
		Followers:   9000,
		Following:   9,
		AvatarURL:   "https://avatars.githubusercontent.com/u/583231",
		PublicRepos: 8,
		TopRepos: []domain.Repo{
			{Name: "Hello-World", Stars: 2500, Language: "C"},
		},
		TopLanguage: "C",
	}
}

func TestBuildRoastContainsFieldContractAndProfile(t *testing.T) {
	out := BuildRoast(githubProfile(), domain.PlatformGitHub, domain.IntensityMild, nil)

	for _, label := range []string{"- Name", "- Title", "- Ability", "- Attack", "- Resistance", "- Weakness", "- Bonuses", "- Special Move", "- Description"} {
		if !strings.Contains(out, label) {
			t.Errorf("prompt missing required label %q", label)
		}
	}

	if !strings.Contains(out, `"handle": "octocat"`) {
		t.Errorf("prompt missing serialized profile")
	}
	if !strings.Contains(out, "GitHub") {
		t.Errorf("prompt missing platform name")
	}
}

func TestBuildRoastIntensitySelectsTone(t *testing.T) {
	profile := githubProfile()

	light := BuildRoast(profile, domain.PlatformGitHub, domain.IntensityLight, nil)
	mild := BuildRoast(profile, domain.PlatformGitHub, domain.IntensityMild, nil)
	spicy := BuildRoast(profile, domain.PlatformGitHub, domain.IntensitySpicy, nil)

	if light == mild || mild == spicy || light == spicy {
		t.Fatalf("intensity levels produced identical prompts")
	}
	if !strings.Contains(light, "friendly") {
		t.Errorf("light prompt missing gentle tone directive")
	}
	if !strings.Contains(spicy, "Unrestrained") {
		t.Errorf("spicy prompt missing unrestrained tone directive")
	}
}

func TestBuildRoastExtendedBlockOnlyForTimelinePlatform(t *testing.T) {
	extended := &domain.TimelineSnapshot{
		Handle: "octocat",
		Posts:  []string{"my kingdom for a green CI"},
	}

	withExtended := BuildRoast(githubProfile(), domain.PlatformTwitter, domain.IntensityMild, extended)
	if !strings.Contains(withExtended, "my kingdom for a green CI") {
		t.Errorf("extended snapshot not serialized into prompt")
	}
	if !strings.Contains(withExtended, "stylistic quirks") {
		t.Errorf("extended directive block missing")
	}

	githubSide := BuildRoast(githubProfile(), domain.PlatformGitHub, domain.IntensityMild, extended)
	if strings.Contains(githubSide, "stylistic quirks") {
		t.Errorf("extended block leaked into non-timeline platform")
	}

	noData := BuildRoast(githubProfile(), domain.PlatformTwitter, domain.IntensityMild, nil)
	if strings.Contains(noData, "stylistic quirks") {
		t.Errorf("extended block present without extended data")
	}
}

// Full pipeline sanity: a well-formed reply covering every requested label
// parses without sentinels.
func TestBuildAndParseRoundTrip(t *testing.T) {
	out := BuildRoast(githubProfile(), domain.PlatformGitHub, domain.IntensityMild, nil)
	if out == "" {
		t.Fatalf("empty prompt")
	}

	reply := strings.Join([]string{
		"Name: The Octocat",
		"Title: Chief Merge Conflict Officer",
		"Ability: Can star their own repos at inhuman speed",
		"Attack: Forks your project and never contributes back",
		"Resistance: Criticism",
		"Weakness: Documentation",
		"Bonuses: +10 clout per README badge",
		"Special Move: git blame --someone-else",
		"Description: Eight repos, one commit each.",
	}, "\n")

	card := ParseRoastCard(reply)
	for field, value := range map[string]string{
		"name":        card.Name,
		"title":       card.Title,
		"ability":     card.Ability,
		"attack":      card.Attack,
		"resistance":  card.Resistance,
		"weakness":    card.Weakness,
		"bonuses":     card.Bonuses,
		"specialMove": card.SpecialMove,
		"description": card.Description,
	} {
		if value == domain.NoData {
			t.Errorf("field %s defaulted to sentinel on a well-formed reply", field)
		}
	}
}
