package prompt

import (
	"strings"
	"testing"

	"github.com/kapu/roast-card-go/internal/domain"
)

func TestParseRoastCardPartialReply(t *testing.T) {
	card := ParseRoastCard("Name: Bob\nTitle: The Bug\nWeakness: Deadlines")

	if card.Name != "Bob" {
		t.Errorf("name = %q", card.Name)
	}
	if card.Title != "The Bug" {
		t.Errorf("title = %q", card.Title)
	}
	if card.Weakness != "Deadlines" {
		t.Errorf("weakness = %q", card.Weakness)
	}

	for field, value := range map[string]string{
		"ability":     card.Ability,
		"attack":      card.Attack,
		"resistance":  card.Resistance,
		"bonuses":     card.Bonuses,
		"specialMove": card.SpecialMove,
		"description": card.Description,
	} {
		if value != domain.NoData {
			t.Errorf("%s = %q, want sentinel", field, value)
		}
	}
}

func TestParseRoastCardStripsEmphasis(t *testing.T) {
	card := ParseRoastCard("Name: **Bob**\n**Title:** The Bug")
	if card.Name != "Bob" {
		t.Errorf("name = %q", card.Name)
	}
	if card.Title != "The Bug" {
		t.Errorf("title = %q", card.Title)
	}
}

func TestParseRoastCardLabelSynonyms(t *testing.T) {
	card := ParseRoastCard("Ressistance: Coffee\nDesc: lives in the terminal\nstill does")
	if card.Resistance != "Coffee" {
		t.Errorf("resistance = %q", card.Resistance)
	}
	if !strings.Contains(card.Description, "lives in the terminal") || !strings.Contains(card.Description, "still does") {
		t.Errorf("description did not capture remaining text: %q", card.Description)
	}
}

func TestParseRoastCardMultilineDescription(t *testing.T) {
	raw := "Name: Bob\nDescription: line one\nline two\nline three"
	card := ParseRoastCard(raw)
	if !strings.Contains(card.Description, "line three") {
		t.Errorf("description lost trailing lines: %q", card.Description)
	}
}

func TestParseRoastCardPlaceholderRejection(t *testing.T) {
	card := ParseRoastCard("Name: ***\nTitle: N/A\nAbility: -")
	if card.Name != domain.NoData {
		t.Errorf("emphasis-only name = %q, want sentinel", card.Name)
	}
	if card.Title != domain.NoData {
		t.Errorf("placeholder title = %q, want sentinel", card.Title)
	}
	if card.Ability != domain.NoData {
		t.Errorf("placeholder ability = %q, want sentinel", card.Ability)
	}
}

func TestParseRoastCardCaseInsensitive(t *testing.T) {
	card := ParseRoastCard("NAME: Bob\nspecial move: git push --force")
	if card.Name != "Bob" {
		t.Errorf("name = %q", card.Name)
	}
	if card.SpecialMove != "git push --force" {
		t.Errorf("specialMove = %q", card.SpecialMove)
	}
}

func TestParseRoastCardEmptyInput(t *testing.T) {
	card := ParseRoastCard("")
	if card.Name != domain.NoData || card.Description != domain.NoData {
		t.Errorf("expected all sentinels, got %+v", card)
	}
}
