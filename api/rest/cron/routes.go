package cron

import "github.com/gin-gonic/gin"

// registers the scheduled job trigger route
func RegisterRoutes(router *gin.RouterGroup, job Runner, secret string) {
	router.GET("/cron/daily-diary", Handler(job, secret))
}
