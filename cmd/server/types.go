package main

import (
	"codeberg.org/harudiary/server/internal/config"
	"codeberg.org/harudiary/server/internal/dailyjob"
	"codeberg.org/harudiary/server/internal/diary"
	"codeberg.org/harudiary/server/internal/imagegen"
	"codeberg.org/harudiary/server/internal/refine"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db        *pgxpool.Pool
	config    *config.Config
	diaryRepo *diary.Repository
	services  *Services
	router    *gin.Engine
}

// holds all external service clients (refinement, image synthesis, daily job)
type Services struct {
	Refiner  *refine.Orchestrator
	TextGen  *refine.PaidGenerator
	Images   *imagegen.Client
	DailyJob *dailyjob.Job
}
