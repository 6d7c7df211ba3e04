package sm2

import (
	"math"
	"time"

	"github.com/kyulli/flasHcARD/internal/domain"
)

// Grade is the user's response to a card review, on the 4-button UI scale.
type Grade int

const (
	Again Grade = 1
	Hard  Grade = 2
	Good  Grade = 3
	Easy  Grade = 4
)

// Quality maps a UI grade onto the internal SM-2 quality scale (0..5).
// The mapping deliberately skips qualities 0 and 2: four buttons cover the
// useful range.
func (g Grade) Quality() int {
	switch g {
	case Again:
		return 1
	case Hard:
		return 3
	case Good:
		return 4
	case Easy:
		return 5
	default:
		return int(g)
	}
}

// Schedule applies one SM-2 review step to a card and returns the updated
// card value. It is pure: the input card is not modified, and the review
// instant is passed in rather than read from the clock.
//
// Quality is clamped to [0, 5]. A quality below 3 is a lapse: the streak
// resets and the card comes back the next day. On success the interval
// progresses 1 day, 6 days, then interval × the freshly updated ease
// factor. The due date is re-anchored to the review instant, so overdue
// cards do not accumulate drift.
func Schedule(card domain.Card, quality int, now time.Time) domain.Card {
	q := clamp(quality, 0, 5)

	ef := card.EF + (0.1 - float64(5-q)*(0.08+float64(5-q)*0.02))
	if ef < domain.MinEaseFactor {
		ef = domain.MinEaseFactor
	}

	reps := card.Reps
	interval := card.Interval

	if q < 3 {
		reps = 0
		interval = 1 // next-day retry
	} else {
		reps++
		switch reps {
		case 1:
			interval = 1
		case 2:
			interval = 6
		default:
			// The new ease factor applies immediately, it does not lag
			// one review behind.
			interval = int(math.Round(float64(interval) * ef))
		}
	}

	card.EF = ef
	card.Reps = reps
	card.Interval = interval
	card.Due = now.AddDate(0, 0, interval)
	return card
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
