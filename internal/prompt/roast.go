package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kapu/roast-card-go/internal/domain"
)

// Tone directives per intensity level. The field contract below stays the
// same at every level; only the voice changes.
var toneDirectives = map[domain.Intensity]string{
	domain.IntensityLight: "Keep the tone friendly and teasing, the kind of gentle ribbing you'd give a coworker you like. No real sting.",
	domain.IntensityMild:  "Be sharp and sarcastic. Land real jabs about their habits and numbers, but stay playful rather than cruel.",
	domain.IntensitySpicy: "Go all out. Unrestrained, ruthless roast humor - nothing is off the table except slurs and personal identity attacks.",
}

// FieldContract is the required-output block shared by every roast prompt.
// The parser's label patterns match these labels exactly.
const FieldContract = `Generate EXACTLY the following fields, each on its own line, using these exact labels:
- Name
- Title (a funny dev title, 1 line)
- Ability (a skill, 2 lines max)
- Attack (a funny roast attack, 2 lines max)
- Resistance (1 word)
- Weakness (1 word)
- Bonuses (1 line)
- Special Move (1 line)
- Description (a short roast description, 3 lines max)

Every field must have real content. Never answer with placeholders, "N/A", "..." or an empty value.`

// BuildRoast composes the instruction string sent to the text model. The
// profile record is serialized verbatim as supporting context; for timeline
// platforms with extended data the model is additionally told to ground the
// humor in the recent-post snapshot.
func BuildRoast(profile *domain.Profile, platform domain.Platform, intensity domain.Intensity, extended *domain.TimelineSnapshot) string {
	tone, ok := toneDirectives[intensity]
	if !ok {
		tone = toneDirectives[domain.IntensityMild]
	}

	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		profileJSON = []byte("{}")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Roast this %s user like it's a parody trading card. Keep the roast description short.\n\n", platformLabel(platform))
	b.WriteString(tone)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s Profile:\n%s\n\n", platformLabel(platform), profileJSON)

	if platform == domain.PlatformTwitter && extended != nil && (len(extended.Posts) > 0 || len(extended.Comments) > 0) {
		extendedJSON, err := json.MarshalIndent(extended, "", "  ")
		if err == nil {
			b.WriteString("Recent timeline snapshot (posts and replies):\n")
			b.Write(extendedJSON)
			b.WriteString("\n\nGround the humor in these actual posts: reference what they tweet about, and mimic the account's own stylistic quirks (phrasing, punctuation, recurring obsessions) in the roast.\n\n")
		}
	}

	b.WriteString(FieldContract)

	return b.String()
}

func platformLabel(platform domain.Platform) string {
	if platform == domain.PlatformTwitter {
		return "Twitter/X"
	}
	return "GitHub"
}
