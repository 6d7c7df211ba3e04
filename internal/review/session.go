package review

import (
	"sync"
	"time"

	"github.com/kyulli/flasHcARD/internal/domain"
	"github.com/kyulli/flasHcARD/internal/sm2"
)

// State is the session's position in the review flow for the current card.
type State int

const (
	// NoCardDue means the queue is empty; grading is a no-op here.
	NoCardDue State = iota
	// FrontShown means the current card's question is visible.
	FrontShown
	// BackShown means the answer has been revealed and the card can be graded.
	BackShown
)

// DeckStore is the slice of the card store the session needs: a deck
// snapshot to derive its queue from, and write-back for scheduled cards.
type DeckStore interface {
	Deck() domain.Deck
	Update(card domain.Card)
}

// Session drives one card at a time through front → back → graded. The head
// of the due queue is always the current card; grading writes the scheduled
// card back into the store and re-derives the queue.
type Session struct {
	mu    sync.Mutex
	store DeckStore
	now   func() time.Time

	state     State
	currentID string
}

// NewSession creates a session over the given store and derives the initial
// queue.
func NewSession(store DeckStore) *Session {
	s := &Session{store: store, now: time.Now}
	s.Refresh()
	return s
}

// Refresh re-derives the due queue from the store. If the head card's
// identity changed (the current card was graded, edited away, or newly
// overtaken), the session resets to the new head, front first. A card
// mid-review keeps its revealed state.
func (s *Session) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked()
}

func (s *Session) refreshLocked() {
	due := DueCards(s.store.Deck(), s.now())
	if len(due) == 0 {
		s.state = NoCardDue
		s.currentID = ""
		return
	}
	head := due[0]
	if head.ID != s.currentID {
		s.currentID = head.ID
		s.state = FrontShown
	}
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the card under review, if any.
func (s *Session) Current() (domain.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == "" {
		return domain.Card{}, false
	}
	return s.store.Deck().Find(s.currentID)
}

// Reveal flips the current card to its back. Flipping is one-way; revealing
// an already revealed card, or revealing with no card due, does nothing.
func (s *Session) Reveal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == FrontShown {
		s.state = BackShown
	}
}

// Grade applies the given grade to the current card: the scheduler output
// is written back into the store and the queue is re-derived, moving on to
// the next due card or to NoCardDue. Grades arriving with no revealed card
// are ignored.
func (s *Session) Grade(g sm2.Grade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != BackShown {
		return
	}
	card, ok := s.store.Deck().Find(s.currentID)
	if !ok {
		// The card was deleted out from under the session.
		s.currentID = ""
		s.refreshLocked()
		return
	}

	now := s.now()
	s.store.Update(sm2.Schedule(card, g.Quality(), now))
	s.currentID = ""
	s.refreshLocked()
}
