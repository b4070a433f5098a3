package diary

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles diary database operations
type Repository struct {
	db *pgxpool.Pool
}

// a persisted diary entry; created exactly once by the generation commit and
// never mutated by the pipeline afterwards
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"` // title + "\n" + body, see content.go
	ImageURL  string    `json:"image_url"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
}
