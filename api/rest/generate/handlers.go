package generate

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"codeberg.org/harudiary/server/internal/auth"
	"codeberg.org/harudiary/server/internal/diary"
	"codeberg.org/harudiary/server/internal/httperr"
	"codeberg.org/harudiary/server/internal/logger"
	"codeberg.org/harudiary/server/internal/quota"
	"codeberg.org/harudiary/server/internal/refine"
	"github.com/gin-gonic/gin"
)

// refines diary text into an image prompt
type Refiner interface {
	Refine(ctx context.Context, req refine.Request) (*refine.Result, error)
}

// synthesizes one image for a refined prompt
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// the slice of the diary store this handler needs
type EntryStore interface {
	Insert(ctx context.Context, userID, content, imageURL, prompt string) (*diary.Entry, error)
	CountForUTCDay(ctx context.Context, userID string, at time.Time) (int, error)
	UserLevel(ctx context.Context, userID string) (int, error)
}

// creates the handler for the interactive generation pipeline: quota gate,
// then refinement cascade, then image synthesis, then commit
func Handler(refiner Refiner, images ImageGenerator, store EntryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			httperr.Unauthorized(c, "")
			return
		}

		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid request body", err)
			return
		}

		if req.Prompt == "" && req.PreRefinedPrompt == "" {
			httperr.BadRequest(c, "prompt is required", nil)
			return
		}

		ctx := c.Request.Context()

		// the gate must deny before any provider call is made; a denial here
		// costs nothing
		level, err := store.UserLevel(ctx, userID)
		if err != nil {
			httperr.InternalError(c, "failed to load user profile", err)
			return
		}

		gate := quota.NewGate(store)
		if err := gate.Check(ctx, userID, level, time.Now()); err != nil {
			if errors.Is(err, quota.ErrDailyLimit) {
				httperr.QuotaExceeded(c, err.Error())
				return
			}

			httperr.InternalError(c, "failed to check daily quota", err)

			return
		}

		result, err := refiner.Refine(ctx, refine.Request{
			DiaryText:  req.Prompt,
			PreRefined: req.PreRefinedPrompt,
		})
		if err != nil {
			httperr.InternalError(c, "failed to refine prompt", err)
			return
		}

		imageURL, err := images.Generate(ctx, result.Prompt)
		if err != nil {
			httperr.InternalError(c, "failed to generate image", err)
			return
		}

		title := strings.TrimSpace(req.Title)
		if title == "" {
			title = defaultTitle
		}

		entry, err := store.Insert(ctx, userID, diary.JoinContent(title, req.Prompt), imageURL, result.Prompt)
		if err != nil {
			// the generated asset is lost here by design; it was never committed
			if httperr.IsUniqueViolation(err) {
				httperr.Conflict(c, "an entry already exists")
				return
			}

			httperr.InternalError(c, "failed to save diary entry", err)

			return
		}

		logger.Info("diary generated",
			"user_id", userID,
			"entry_id", entry.ID,
			"tier", result.Tier.String(),
			"model", result.Model,
		)

		c.JSON(http.StatusOK, Response{
			ImageURL:      imageURL,
			RefinedPrompt: result.Prompt,
		})
	}
}
