package cron

import (
	"context"
	"net/http"

	"codeberg.org/harudiary/server/internal/dailyjob"
	"codeberg.org/harudiary/server/internal/httperr"
	"github.com/gin-gonic/gin"
)

// runs one daily diary generation
type Runner interface {
	Run(ctx context.Context) (*dailyjob.Summary, error)
}

// creates the handler for the scheduled job trigger; the caller authenticates
// with a shared secret, not a user token, and the quota gate does not apply
func Handler(job Runner, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// enforced only when a secret is configured, mirroring hosted cron
		// setups where the platform injects the header
		if secret != "" && c.GetHeader("Authorization") != "Bearer "+secret {
			httperr.Unauthorized(c, "invalid cron secret")
			return
		}

		summary, err := job.Run(c.Request.Context())
		if err != nil {
			httperr.InternalError(c, "daily diary job failed", err)
			return
		}

		c.JSON(http.StatusOK, Response{
			Success: true,
			Title:   summary.Title,
			Date:    summary.Date,
		})
	}
}
