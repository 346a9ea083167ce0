package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/impulseguard_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("PORT", "")

	Load()

	if AppConfig.DatabaseURL != "postgres://localhost/impulseguard_test" {
		t.Fatalf("unexpected database url: %s", AppConfig.DatabaseURL)
	}
	if AppConfig.GeminiModel != "gemini-1.5-flash" {
		t.Fatalf("expected default model, got %s", AppConfig.GeminiModel)
	}
	if AppConfig.Port != "3000" {
		t.Fatalf("expected default port 3000, got %s", AppConfig.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro-latest")
	t.Setenv("PORT", "8080")

	Load()

	if AppConfig.GeminiModel != "gemini-1.5-pro-latest" {
		t.Fatalf("expected overridden model, got %s", AppConfig.GeminiModel)
	}
	if AppConfig.Port != "8080" {
		t.Fatalf("expected overridden port, got %s", AppConfig.Port)
	}
}
