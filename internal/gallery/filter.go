package gallery

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Visibility pairs a card with its filter outcome.
type Visibility struct {
	Card    Card `json:"card"`
	Visible bool `json:"visible"`
}

// Filter computes visibility for every card, preserving order. A card is visible when its
// filename or folder identifier contains term, ignoring case. An empty term shows everything.
func Filter(cards []Card, term string) []Visibility {
	caser := cases.Lower(language.Und)
	needle := caser.String(term)

	out := make([]Visibility, len(cards))
	for i, card := range cards {
		out[i] = Visibility{Card: card, Visible: matches(caser, card, needle)}
	}
	return out
}

// VisibleCount counts the visible entries.
func VisibleCount(vis []Visibility) int {
	n := 0
	for _, v := range vis {
		if v.Visible {
			n++
		}
	}
	return n
}

func matches(caser cases.Caser, card Card, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(caser.String(card.Filename), needle) ||
		strings.Contains(caser.String(card.FolderID), needle)
}
