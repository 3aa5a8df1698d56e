package scrape

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kapu/roast-card-go/internal/constants"
	"github.com/kapu/roast-card-go/internal/util"
)

// Section headers that terminate the current item without contributing text.
var dividerPattern = regexp.MustCompile(`(?i)^(tweets( & replies)?|media|likes)$`)

// UI chrome labels that are dropped outright, never emitted.
var chromePattern = regexp.MustCompile(`(?i)^(follow|message|more|translate post|view|see more|show more replies)$`)

// SegmentTimeline heuristically splits a readability-proxy text dump of a
// profile timeline into discrete post strings. A header line ("@handle ·")
// or a section divider flushes the accumulated buffer into one item; all
// other non-chrome lines accumulate. Pure function of its inputs.
func SegmentTimeline(text, handle string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	headerPattern := regexp.MustCompile(`@` + regexp.QuoteMeta(handle) + `\s*[·•]`)

	items := make([]string, 0, limit)
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		if item := finalizeItem(current); item != "" {
			items = append(items, item)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))

		if headerPattern.MatchString(line) || line == "" || dividerPattern.MatchString(line) {
			flush()
			if len(items) >= limit {
				return items[:limit]
			}
			continue
		}

		if chromePattern.MatchString(line) {
			continue
		}

		current = append(current, line)
	}

	if len(items) < limit {
		flush()
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// finalizeItem joins buffered lines, collapses whitespace and clips the
// result to the platform's post length.
func finalizeItem(parts []string) string {
	joined := util.CollapseWhitespace(strings.Join(parts, " "))
	if utf8.RuneCountInString(joined) > constants.ScrapeConfig.MaxPostLength {
		joined = util.TruncateString(joined, constants.ScrapeConfig.MaxPostLength-3)
	}
	return joined
}
