package config

import "os"

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	DatabaseURL         string
	JWTSecret           string
	GeminiAPIKey        string
	GeminiModel         string
	StripeWebhookSecret string
	Port                string
}

// AppConfig holds the application-wide configuration
var AppConfig Config

// Load reads configuration from environment variables into AppConfig.
// GEMINI_API_KEY is optional: without it the insight endpoint falls back to
// local aggregation and the analyze endpoints report a configuration error.
func Load() {
	AppConfig = Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:         os.Getenv("GEMINI_MODEL"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Port:                os.Getenv("PORT"),
	}

	if AppConfig.GeminiModel == "" {
		AppConfig.GeminiModel = "gemini-1.5-flash"
	}
	if AppConfig.Port == "" {
		AppConfig.Port = "3000"
	}
}
