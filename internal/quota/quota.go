package quota

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// tier level at or above which the daily limit no longer applies
const PremiumThreshold = 100

// the requester already generated an entry today
var ErrDailyLimit = errors.New("daily limit reached (1 diary per day)")

// counts a user's persisted entries for the UTC day containing at
type Counter interface {
	CountForUTCDay(ctx context.Context, userID string, at time.Time) (int, error)
}

// decides whether a new generation is permitted today; a pure read, it must
// run before any provider call so a denial costs nothing
type Gate struct {
	counter Counter
}

// creates a quota gate over the given counter
func NewGate(counter Counter) *Gate {
	return &Gate{counter: counter}
}

// returns nil when generation is allowed, ErrDailyLimit when denied.
//
// The read is not transactionally guarded against a concurrent submission
// from the same user; that race is an accepted business risk, not a lock to
// be added here.
func (g *Gate) Check(ctx context.Context, userID string, level int, now time.Time) error {
	count, err := g.counter.CountForUTCDay(ctx, userID, now)
	if err != nil {
		return fmt.Errorf("failed to count today's entries: %w", err)
	}

	if count > 0 && level < PremiumThreshold {
		return ErrDailyLimit
	}

	return nil
}
