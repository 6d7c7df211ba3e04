package deckio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/kyulli/flasHcARD/internal/domain"
)

// ExportFilename is the suggested name for an exported deck.
const ExportFilename = "deck.json"

var validate = validator.New()

// Export serializes the deck as a pretty-printed JSON array, the same
// schema Import accepts.
func Export(deck domain.Deck) ([]byte, error) {
	out, err := json.MarshalIndent(deck, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize deck: %w", err)
	}
	return out, nil
}

// Import parses a JSON deck. The payload must be an array of card records;
// anything else is an error and the caller's deck stays untouched. Each
// card must carry an id — beyond that, scheduling values are taken as-is,
// so an exported deck always round-trips.
func Import(r io.Reader) (domain.Deck, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck: %w", err)
	}

	var deck domain.Deck
	if err := json.Unmarshal(raw, &deck); err != nil {
		return nil, fmt.Errorf("invalid JSON: expected an array of cards: %w", err)
	}

	for i, card := range deck {
		if err := validate.Struct(card); err != nil {
			return nil, fmt.Errorf("invalid card at index %d: %w", i, err)
		}
	}
	return deck, nil
}
