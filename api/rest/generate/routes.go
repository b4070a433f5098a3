package generate

import (
	"codeberg.org/harudiary/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers the generation route; rateLimit guards the paid surface per IP
func RegisterRoutes(router *gin.RouterGroup, rateLimit gin.HandlerFunc, refiner Refiner, images ImageGenerator, store EntryStore) {
	router.POST("/generate-image", rateLimit, auth.AuthMiddleware(), Handler(refiner, images, store))
}
