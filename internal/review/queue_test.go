package review

import (
	"testing"
	"time"

	"github.com/kyulli/flasHcARD/internal/domain"
)

func cardDue(id string, due time.Time) domain.Card {
	return domain.Card{ID: id, Front: id, Back: id, EF: domain.DefaultEaseFactor, Due: due}
}

func TestDueCardsFiltersAndOrders(t *testing.T) {
	now := time.Now()
	deck := domain.Deck{
		cardDue("future", now.AddDate(0, 0, 1)),
		cardDue("yesterday", now.AddDate(0, 0, -1)),
		cardDue("old", now.AddDate(0, 0, -3)),
	}

	due := DueCards(deck, now)

	if len(due) != 2 {
		t.Fatalf("expected 2 due cards, got %d", len(due))
	}
	if due[0].ID != "old" || due[1].ID != "yesterday" {
		t.Errorf("expected [old yesterday], got [%s %s]", due[0].ID, due[1].ID)
	}
}

func TestDueCardsTiesKeepDeckOrder(t *testing.T) {
	now := time.Now()
	sameDue := now.AddDate(0, 0, -2)
	deck := domain.Deck{
		cardDue("a", sameDue),
		cardDue("b", sameDue),
		cardDue("c", sameDue),
	}

	due := DueCards(deck, now)

	if len(due) != 3 {
		t.Fatalf("expected 3 due cards, got %d", len(due))
	}
	for i, want := range []string{"a", "b", "c"} {
		if due[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, due[i].ID, want)
		}
	}
}

func TestDueCardsIncludesCardsDueExactlyNow(t *testing.T) {
	now := time.Now()
	deck := domain.Deck{cardDue("now", now)}

	if due := DueCards(deck, now); len(due) != 1 {
		t.Errorf("card due exactly now should be eligible, got %d cards", len(due))
	}
}

func TestDueCardsEmptyDeck(t *testing.T) {
	if due := DueCards(nil, time.Now()); len(due) != 0 {
		t.Errorf("expected no due cards, got %d", len(due))
	}
}
