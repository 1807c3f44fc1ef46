package testutil

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// Cards selects the gallery cards in document order.
func Cards(doc *goquery.Document) *goquery.Selection {
	return doc.Find("#texture-grid .texture-card")
}

// CardFilenames returns the filename label of each card.
func CardFilenames(cards *goquery.Selection) []string {
	names := make([]string, 0, cards.Length())
	cards.Each(func(_ int, s *goquery.Selection) {
		names = append(names, s.Find(".glb-filename-display").Text())
	})
	return names
}

// HiddenCards reports, per card, whether the filter hid it.
func HiddenCards(cards *goquery.Selection) []bool {
	hidden := make([]bool, 0, cards.Length())
	cards.Each(func(_ int, s *goquery.Selection) {
		_, ok := s.Attr("hidden")
		hidden = append(hidden, ok)
	})
	return hidden
}
