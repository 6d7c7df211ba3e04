package domain

import "time"

// DefaultEaseFactor is the ease a card starts with before any review.
const DefaultEaseFactor = 2.5

// MinEaseFactor is the floor the ease factor never drops below.
const MinEaseFactor = 1.3

// Card is a single front/back flashcard together with its scheduling state.
// The json tags define the persisted and import/export schema; the validate
// tags are applied only at the import boundary.
type Card struct {
	ID       string    `json:"id"       validate:"required"`
	Front    string    `json:"front"`
	Back     string    `json:"back"`
	Tag      string    `json:"tag,omitempty"`
	EF       float64   `json:"ef"`
	Reps     int       `json:"reps"`
	Interval int       `json:"interval"`
	Due      time.Time `json:"due"`
}

// NewCard creates a card with fresh scheduling defaults: never reviewed,
// due immediately.
func NewCard(id, front, back, tag string, now time.Time) Card {
	return Card{
		ID:    id,
		Front: front,
		Back:  back,
		Tag:   tag,
		EF:    DefaultEaseFactor,
		Due:   now,
	}
}

// IsDue reports whether the card is eligible for review at the given time.
func (c Card) IsDue(now time.Time) bool {
	return !c.Due.After(now)
}

// Deck is an ordered collection of cards. Order is insertion order for
// display; review eligibility ignores it.
type Deck []Card

// Clone returns an independent copy of the deck. Callers always work on
// copies so no shared card value is ever mutated in place.
func (d Deck) Clone() Deck {
	if d == nil {
		return nil
	}
	out := make(Deck, len(d))
	copy(out, d)
	return out
}

// Find returns the card with the given id and whether it exists.
func (d Deck) Find(id string) (Card, bool) {
	for _, c := range d {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// DueCount returns how many cards are eligible for review at the given time.
func (d Deck) DueCount(now time.Time) int {
	n := 0
	for _, c := range d {
		if c.IsDue(now) {
			n++
		}
	}
	return n
}

// SeedDeck is the deck a fresh installation starts with.
func SeedDeck(now time.Time) Deck {
	return Deck{
		{
			ID:    "c1",
			Front: "SQL: Find rows where column IS NULL",
			Back:  "SELECT * FROM t WHERE col IS NULL;",
			Tag:   "SQL",
			EF:    DefaultEaseFactor,
			Due:   now,
		},
		{
			ID:    "c2",
			Front: "Logistic regression: sigmoid formula",
			Back:  "σ(z) = 1 / (1 + e^{−z})",
			Tag:   "ML",
			EF:    DefaultEaseFactor,
			Due:   now,
		},
		{
			ID:    "c3",
			Front: "Bias–variance trade-off",
			Back:  "Increasing model complexity ↓ bias, ↑ variance; seek minimal expected generalization error.",
			Tag:   "ML",
			EF:    DefaultEaseFactor,
			Due:   now,
		},
	}
}
