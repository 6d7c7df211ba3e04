package review

import (
	"sort"
	"time"

	"github.com/kyulli/flasHcARD/internal/domain"
)

// DueCards returns the cards eligible for review at the given time, earliest
// due first. The sort is stable so cards sharing a due instant keep their
// deck order. The result is derived fresh from the deck on every call,
// never cached.
func DueCards(deck domain.Deck, now time.Time) []domain.Card {
	var due []domain.Card
	for _, c := range deck {
		if c.IsDue(now) {
			due = append(due, c)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Due.Before(due[j].Due)
	})
	return due
}
