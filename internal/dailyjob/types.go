package dailyjob

import (
	"context"
	"time"

	"codeberg.org/harudiary/server/internal/diary"
	"codeberg.org/harudiary/server/internal/refine"
)

// generates free-form text on the paid provider
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, params refine.GenerationParams) (string, error)
}

// synthesizes one image for a refined prompt
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// commits a generated entry
type EntryWriter interface {
	Insert(ctx context.Context, userID, content, imageURL, prompt string) (*diary.Entry, error)
}

// reported after a successful run
type Summary struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// writes one autonomous diary entry per run under the platform's own
// identity; deliberately exempt from the quota gate
type Job struct {
	text      TextGenerator
	image     ImageGenerator
	repo      EntryWriter
	botUserID string

	now  func() time.Time
	pick func(n int) int
}
