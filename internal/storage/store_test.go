package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kyulli/flasHcARD/internal/domain"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "deck.db")
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dsn
}

func TestOpenSeedsFreshDatabase(t *testing.T) {
	s, _ := openTestStore(t)

	deck := s.Deck()
	if len(deck) != 3 {
		t.Fatalf("expected the 3-card seed deck, got %d cards", len(deck))
	}
	for _, c := range deck {
		if c.EF != domain.DefaultEaseFactor || c.Reps != 0 || c.Interval != 0 {
			t.Errorf("seed card %s has non-fresh scheduling state: %+v", c.ID, c)
		}
		if c.Due.After(time.Now()) {
			t.Errorf("seed card %s is not immediately due", c.ID)
		}
	}
}

func TestDeckReturnsSnapshot(t *testing.T) {
	s, _ := openTestStore(t)

	snapshot := s.Deck()
	snapshot[0].Front = "mutated"

	if s.Deck()[0].Front == "mutated" {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestMutationsPersistAcrossReopen(t *testing.T) {
	s, dsn := openTestStore(t)

	card := domain.NewCard("x1", "front", "back", "t", time.Now())
	s.Add(card)
	s.Remove("c2")

	card.Back = "edited"
	s.Update(card)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() returned an unexpected error: %v", err)
	}

	reopened, err := Open(dsn)
	if err != nil {
		t.Fatalf("reopen returned an unexpected error: %v", err)
	}
	defer reopened.Close()

	deck := reopened.Deck()
	if len(deck) != 3 {
		t.Fatalf("expected 3 cards after add+remove, got %d", len(deck))
	}
	if deck[0].ID != "x1" {
		t.Errorf("added card should lead the deck, got %s", deck[0].ID)
	}
	if deck[0].Back != "edited" {
		t.Errorf("update was not persisted: %+v", deck[0])
	}
	if _, ok := deck.Find("c2"); ok {
		t.Error("removed card came back after reopen")
	}
}

func TestReplacePersists(t *testing.T) {
	s, dsn := openTestStore(t)

	imported := domain.Deck{
		domain.NewCard("i1", "q1", "a1", "", time.Now()),
		domain.NewCard("i2", "q2", "a2", "", time.Now()),
	}
	s.Replace(imported)
	s.Close()

	reopened, err := Open(dsn)
	if err != nil {
		t.Fatalf("reopen returned an unexpected error: %v", err)
	}
	defer reopened.Close()

	deck := reopened.Deck()
	if len(deck) != 2 || deck[0].ID != "i1" || deck[1].ID != "i2" {
		t.Errorf("replaced deck not persisted, got %+v", deck)
	}
}

func TestCorruptPayloadFallsBackToSeed(t *testing.T) {
	s, dsn := openTestStore(t)
	s.Replace(s.Deck()) // force a persisted row into the slot
	_, err := s.conn.Exec(`UPDATE decks SET payload = 'not json' WHERE slot = ?`, DeckSlot)
	if err != nil {
		t.Fatalf("failed to corrupt payload: %v", err)
	}
	s.Close()

	reopened, err := Open(dsn)
	if err != nil {
		t.Fatalf("reopen returned an unexpected error: %v", err)
	}
	defer reopened.Close()

	if deck := reopened.Deck(); len(deck) != 3 {
		t.Errorf("expected seed deck after corruption, got %d cards", len(deck))
	}
}
