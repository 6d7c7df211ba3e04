package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kyulli/flasHcARD/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DeckSlot is the fixed storage slot the deck is persisted under.
const DeckSlot = "srsDeckV1"

// Store holds the deck in memory and mirrors every mutation into SQLite.
// The in-memory deck is authoritative for the running session: persistence
// failures are logged and swallowed, never surfaced to callers.
type Store struct {
	mu   sync.RWMutex
	conn *sql.DB
	deck domain.Deck
}

// Open opens the database at the given DSN, ensures the schema, and loads
// the persisted deck. A missing or unreadable deck falls back to the seed
// deck; only the database open itself can fail.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &Store{conn: db}
	s.deck = s.load()
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Deck returns a snapshot copy of the current deck.
func (s *Store) Deck() domain.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deck.Clone()
}

// Add prepends a card to the deck and persists the result.
func (s *Store) Add(card domain.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make(domain.Deck, 0, len(s.deck)+1)
	next = append(next, card)
	next = append(next, s.deck...)
	s.deck = next
	s.save()
}

// Update replaces the card with the same id, if present, and persists the
// result. Unknown ids are ignored.
func (s *Store) Update(card domain.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.deck.Clone()
	for i := range next {
		if next[i].ID == card.ID {
			next[i] = card
		}
	}
	s.deck = next
	s.save()
}

// Remove deletes the card with the given id, if present, and persists the
// result.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make(domain.Deck, 0, len(s.deck))
	for _, c := range s.deck {
		if c.ID != id {
			next = append(next, c)
		}
	}
	s.deck = next
	s.save()
}

// Replace swaps in a whole new deck (bulk import) and persists it.
func (s *Store) Replace(deck domain.Deck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck = deck.Clone()
	s.save()
}

// load reads the deck from the storage slot. Absent or corrupt state yields
// the seed deck; corruption is swallowed.
func (s *Store) load() domain.Deck {
	var payload string
	row := s.conn.QueryRow(`SELECT payload FROM decks WHERE slot = ?`, DeckSlot)
	if err := row.Scan(&payload); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("failed to read persisted deck, starting from seed", "slot", DeckSlot, "error", err)
		}
		return domain.SeedDeck(time.Now())
	}

	var deck domain.Deck
	if err := json.Unmarshal([]byte(payload), &deck); err != nil {
		slog.Warn("persisted deck is corrupt, starting from seed", "slot", DeckSlot, "error", err)
		return domain.SeedDeck(time.Now())
	}
	return deck
}

// save writes the current deck into the storage slot. Best effort: a failed
// write leaves the in-memory deck authoritative.
func (s *Store) save() {
	payload, err := json.Marshal(s.deck)
	if err != nil {
		slog.Warn("failed to serialize deck", "error", err)
		return
	}

	_, err = s.conn.Exec(`
		INSERT INTO decks (slot, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, DeckSlot, string(payload), time.Now())
	if err != nil {
		slog.Warn("failed to persist deck", "slot", DeckSlot, "error", err)
	}
}
