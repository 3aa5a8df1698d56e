package prompt

import (
	"regexp"
	"strings"

	"github.com/kapu/roast-card-go/internal/domain"
)

// Label patterns for the card fields. The model is not contractually bound
// to the requested format, so matching is tolerant: case-insensitive, label
// synonyms, optional emphasis markup around the label. Description captures
// to end of input since it spans multiple lines.
var (
	namePattern        = fieldPattern(`name`)
	titlePattern       = fieldPattern(`title`)
	abilityPattern     = fieldPattern(`ability`)
	attackPattern      = fieldPattern(`attack`)
	resistancePattern  = fieldPattern(`res{1,2}istance`)
	weaknessPattern    = fieldPattern(`weakness`)
	bonusesPattern     = fieldPattern(`bonus(?:es)?`)
	specialMovePattern = fieldPattern(`special\s*move`)
	descriptionPattern = regexp.MustCompile(`(?is)\bdesc(?:ription)?\s*\**\s*:\s*(.*)`)

	emphasisPattern = regexp.MustCompile(`\*+`)
)

// Values that only pretend to be content.
var placeholderValues = map[string]bool{
	"-":    true,
	"...":  true,
	"n/a":  true,
	"none": true,
}

func fieldPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + label + `\s*\**\s*:\s*([^\n]*)`)
}

// ParseRoastCard extracts the fixed card schema from the model's raw reply.
// No field is required: each is independently matched and independently
// defaulted to the sentinel, so a malformed reply can never fail the request.
func ParseRoastCard(raw string) domain.RoastCard {
	return domain.RoastCard{
		Name:        extractField(raw, namePattern),
		Title:       extractField(raw, titlePattern),
		Ability:     extractField(raw, abilityPattern),
		Attack:      extractField(raw, attackPattern),
		Resistance:  extractField(raw, resistancePattern),
		Weakness:    extractField(raw, weaknessPattern),
		Bonuses:     extractField(raw, bonusesPattern),
		SpecialMove: extractField(raw, specialMovePattern),
		Description: extractField(raw, descriptionPattern),
	}
}

func extractField(raw string, pattern *regexp.Regexp) string {
	m := pattern.FindStringSubmatch(raw)
	if m == nil {
		return domain.NoData
	}
	return cleanValue(m[1])
}

// cleanValue strips emphasis markup and whitespace; an empty or
// placeholder-only remainder becomes the sentinel.
func cleanValue(value string) string {
	value = emphasisPattern.ReplaceAllString(value, "")
	value = strings.TrimSpace(value)

	if value == "" || placeholderValues[strings.ToLower(value)] {
		return domain.NoData
	}
	return value
}
