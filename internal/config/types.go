package config

// holds all environment-derived settings, resolved once in main and passed
// by parameter into each component
type Config struct {
	// Supabase Postgres connection string (pooler URL)
	DatabaseURL string

	// Google AI Studio key for the free refinement tier; empty disables the tier
	GeminiAPIKey string

	// Vertex AI project; the service account document's project id wins over this
	GoogleProjectID string

	// inline service account JSON; empty means application default credentials
	GoogleCredentialsJSON string

	// Stability AI key for image synthesis
	StabilityAPIKey string

	// shared secret for the daily diary trigger endpoint
	CronSecret string

	// owner identity for autonomously generated entries
	BotUserID string

	// optional in-process schedule for the daily diary job, cron syntax;
	// empty means the job only runs via its HTTP trigger
	CronSchedule string

	JWTSecret   string
	Environment string
	Port        string
}
