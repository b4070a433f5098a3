package diary

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new diary repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// persists a generated entry as one atomic insert; storage errors surface to
// the caller verbatim, classification happens at the HTTP layer
func (r *Repository) Insert(ctx context.Context, userID, content, imageURL, prompt string) (*Entry, error) {
	var entry Entry

	err := r.db.QueryRow(
		ctx,
		queryInsertEntry,
		userID,
		content,
		imageURL,
		prompt,
		time.Now().UTC(),
	).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Content,
		&entry.ImageURL,
		&entry.Prompt,
		&entry.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// counts the user's entries within the UTC day containing at
func (r *Repository) CountForUTCDay(ctx context.Context, userID string, at time.Time) (int, error) {
	start, end := UTCDayRange(at)

	var count int
	if err := r.db.QueryRow(ctx, queryCountForWindow, userID, start, end).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// returns the user's tier level from their profile; users without a profile
// row are level 0
func (r *Repository) UserLevel(ctx context.Context, userID string) (int, error) {
	var level int

	err := r.db.QueryRow(ctx, queryUserLevel, userID).Scan(&level)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	return level, nil
}
