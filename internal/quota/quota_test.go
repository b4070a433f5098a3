package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"codeberg.org/harudiary/server/internal/diary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counts in-memory entry timestamps with the same inclusive window the
// repository query uses
type fakeCounter struct {
	entries map[string][]time.Time
	err     error
}

func (f *fakeCounter) CountForUTCDay(ctx context.Context, userID string, at time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}

	start, end := diary.UTCDayRange(at)

	count := 0
	for _, created := range f.entries[userID] {
		if !created.Before(start) && !created.After(end) {
			count++
		}
	}

	return count, nil
}

func TestCheck_FirstEntryOfTheDayAllowed(t *testing.T) {
	gate := NewGate(&fakeCounter{entries: map[string][]time.Time{}})

	err := gate.Check(context.Background(), "user-1", 0, time.Now())

	assert.NoError(t, err)
}

func TestCheck_DayBoundary(t *testing.T) {
	lastInstant := time.Date(2025, 6, 1, 23, 59, 59, 999000000, time.UTC)
	counter := &fakeCounter{entries: map[string][]time.Time{
		"user-1": {lastInstant},
	}}
	gate := NewGate(counter)

	// the entry sits on the last inclusive millisecond of June 1st
	err := gate.Check(context.Background(), "user-1", 0, lastInstant)
	assert.ErrorIs(t, err, ErrDailyLimit)

	// the first instant of June 2nd opens a fresh window
	err = gate.Check(context.Background(), "user-1", 0, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
}

func TestCheck_PremiumBypassesLimit(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	counter := &fakeCounter{entries: map[string][]time.Time{
		"user-1": {now.Add(-time.Hour)},
	}}
	gate := NewGate(counter)

	err := gate.Check(context.Background(), "user-1", PremiumThreshold, now)
	assert.NoError(t, err)

	// one level short of premium is still limited
	err = gate.Check(context.Background(), "user-1", PremiumThreshold-1, now)
	assert.ErrorIs(t, err, ErrDailyLimit)
}

func TestCheck_OtherUsersEntriesDoNotCount(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	counter := &fakeCounter{entries: map[string][]time.Time{
		"user-2": {now.Add(-time.Hour)},
	}}
	gate := NewGate(counter)

	err := gate.Check(context.Background(), "user-1", 0, now)

	assert.NoError(t, err)
}

func TestCheck_CounterErrorPropagates(t *testing.T) {
	dbErr := errors.New("connection refused")
	gate := NewGate(&fakeCounter{err: dbErr})

	err := gate.Check(context.Background(), "user-1", 0, time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrDailyLimit)
}
