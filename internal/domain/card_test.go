package domain

import (
	"testing"
	"time"
)

func TestNewCardDefaults(t *testing.T) {
	now := time.Now()
	c := NewCard("id-1", "f", "b", "t", now)

	if c.EF != DefaultEaseFactor {
		t.Errorf("ef = %v, want %v", c.EF, DefaultEaseFactor)
	}
	if c.Reps != 0 || c.Interval != 0 {
		t.Errorf("fresh card should have zero reps and interval: %+v", c)
	}
	if !c.IsDue(now) {
		t.Error("fresh card should be immediately due")
	}
}

func TestIsDue(t *testing.T) {
	now := time.Now()
	testCases := []struct {
		name string
		due  time.Time
		want bool
	}{
		{"past", now.AddDate(0, 0, -1), true},
		{"exactly now", now, true},
		{"future", now.AddDate(0, 0, 1), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Card{Due: tc.due}
			if got := c.IsDue(now); got != tc.want {
				t.Errorf("IsDue() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDeckCloneIsIndependent(t *testing.T) {
	deck := SeedDeck(time.Now())
	clone := deck.Clone()
	clone[0].Front = "changed"

	if deck[0].Front == "changed" {
		t.Error("mutating the clone changed the original deck")
	}
}

func TestDeckFind(t *testing.T) {
	deck := SeedDeck(time.Now())

	if c, ok := deck.Find("c2"); !ok || c.ID != "c2" {
		t.Errorf("Find(c2) = %+v, %v", c, ok)
	}
	if _, ok := deck.Find("missing"); ok {
		t.Error("Find() reported a card that does not exist")
	}
}

func TestDeckDueCount(t *testing.T) {
	now := time.Now()
	deck := Deck{
		{ID: "a", Due: now.AddDate(0, 0, -1)},
		{ID: "b", Due: now.AddDate(0, 0, 1)},
		{ID: "c", Due: now},
	}
	if got := deck.DueCount(now); got != 2 {
		t.Errorf("DueCount() = %d, want 2", got)
	}
}
