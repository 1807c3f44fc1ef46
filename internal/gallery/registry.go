package gallery

import (
	"strconv"

	"go.uber.org/zap"

	"finitefield.org/glb-gallery/internal/manifest"
)

// Registry holds the rendered cards in manifest order. It is populated by Initialize and is
// read-only afterwards, so concurrent readers need no locking.
type Registry struct {
	cards  []Card
	byID   map[string]int
	byPair map[manifest.Entry]int
	logger *zap.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		byID:   make(map[string]int),
		byPair: make(map[manifest.Entry]int),
		logger: logger,
	}
}

// Render creates a card for entry and appends it. Unsupported kinds are refused with a warning
// and nothing is appended.
func (r *Registry) Render(entry manifest.Entry, kind string) (Card, error) {
	id := "card-" + strconv.Itoa(len(r.cards)+1)
	card, err := NewCard(id, entry, kind)
	if err != nil {
		r.logger.Warn("card not rendered",
			zap.String("folder_id", entry.FolderID),
			zap.String("filename", entry.Filename),
			zap.String("kind", kind),
			zap.Error(err),
		)
		return Card{}, err
	}

	r.byID[card.ID] = len(r.cards)
	if _, exists := r.byPair[entry]; !exists {
		r.byPair[entry] = len(r.cards)
	}
	r.cards = append(r.cards, card)
	return card, nil
}

// Cards returns a copy of all cards in order.
func (r *Registry) Cards() []Card {
	out := make([]Card, len(r.cards))
	copy(out, r.cards)
	return out
}

// Len reports the number of cards.
func (r *Registry) Len() int {
	return len(r.cards)
}

// Get returns the card with the given id.
func (r *Registry) Get(id string) (Card, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Card{}, false
	}
	return r.cards[idx], true
}

// Lookup finds the first card for a folder/filename pair.
func (r *Registry) Lookup(folderID, filename string) (Card, bool) {
	idx, ok := r.byPair[manifest.Entry{FolderID: folderID, Filename: filename}]
	if !ok {
		return Card{}, false
	}
	return r.cards[idx], true
}

// HasFolder reports whether any card references folderID.
func (r *Registry) HasFolder(folderID string) bool {
	for _, card := range r.cards {
		if card.FolderID == folderID {
			return true
		}
	}
	return false
}
