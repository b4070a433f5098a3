package main

import (
	"codeberg.org/harudiary/server/api/rest/cron"
	"codeberg.org/harudiary/server/api/rest/generate"
	"codeberg.org/harudiary/server/api/rest/health"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		generate.RegisterRoutes(v1, GenerateRateLimitMiddleware(), server.services.Refiner, server.services.Images, server.diaryRepo)
		cron.RegisterRoutes(v1, server.services.DailyJob, server.config.CronSecret)
	}
}
