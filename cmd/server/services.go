package main

import (
	"codeberg.org/harudiary/server/internal/config"
	"codeberg.org/harudiary/server/internal/dailyjob"
	"codeberg.org/harudiary/server/internal/diary"
	"codeberg.org/harudiary/server/internal/gcreds"
	"codeberg.org/harudiary/server/internal/imagegen"
	"codeberg.org/harudiary/server/internal/logger"
	"codeberg.org/harudiary/server/internal/refine"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config, diaryRepo *diary.Repository) *Services {
	creds := gcreds.NewResolver(gcreds.Config{
		CredentialsJSON: cfg.GoogleCredentialsJSON,
		ProjectID:       cfg.GoogleProjectID,
	})

	vertex := refine.NewVertexClient()

	// the free tier is optional; without a key the orchestrator goes straight
	// from the local tier to the paid cascade
	var freeTier *refine.AIStudioClient
	if cfg.GeminiAPIKey != "" {
		freeTier = refine.NewAIStudioClient(cfg.GeminiAPIKey)
	} else {
		logger.Info("GEMINI_API_KEY not set, free refinement tier disabled")
	}

	refiner := refine.NewOrchestrator(freeTier, vertex, creds)
	textGen := refine.NewPaidGenerator(vertex, creds)
	images := imagegen.NewClient(cfg.StabilityAPIKey)

	job := dailyjob.New(textGen, images, diaryRepo, cfg.BotUserID)

	return &Services{
		Refiner:  refiner,
		TextGen:  textGen,
		Images:   images,
		DailyJob: job,
	}
}
