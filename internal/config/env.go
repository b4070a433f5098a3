package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("SUPABASE_CONNECTION_STRING")
	stabilityKey := os.Getenv("STABILITY_API_KEY")
	jwtSecret := os.Getenv("JWT_SECRET")
	cronSecret := os.Getenv("CRON_SECRET")
	botUserID := os.Getenv("BOT_USER_ID")
	environment := os.Getenv("ENVIRONMENT")
	port := os.Getenv("PORT")

	if databaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_CONNECTION_STRING environment variable is required")
	}

	if stabilityKey == "" {
		return nil, fmt.Errorf("STABILITY_API_KEY environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	if port == "" {
		port = "8080"
	}

	// GEMINI_API_KEY, GOOGLE_PROJECT_ID and GOOGLE_CREDENTIALS_JSON are
	// deliberately optional: the refinement cascade is defined to degrade
	// across missing providers, and the paid tier can resolve its project id
	// from the credential document or ambient identity
	return &Config{
		DatabaseURL:           databaseURL,
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GoogleProjectID:       os.Getenv("GOOGLE_PROJECT_ID"),
		GoogleCredentialsJSON: os.Getenv("GOOGLE_CREDENTIALS_JSON"),
		StabilityAPIKey:       stabilityKey,
		CronSecret:            cronSecret,
		BotUserID:             botUserID,
		CronSchedule:          os.Getenv("CRON_SCHEDULE"),
		JWTSecret:             jwtSecret,
		Environment:           environment,
		Port:                  port,
	}, nil
}
