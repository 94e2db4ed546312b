package config_test

import (
	"testing"
	"time"

	"unleashed-proxy/internal/config"
	"unleashed-proxy/internal/exceptions"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("UNLEASHED_API_ID", "id")
	t.Setenv("UNLEASHED_API_KEY", "key")
	t.Setenv("CACHE_BUCKET", "responses")
	t.Setenv("CACHE_TTL_SECONDS", "300")
	cfg := config.FromEnv()
	if cfg.APIID != "id" || cfg.APIKey != "key" {
		t.Fatalf("Unexpected credentials: %+v", cfg)
	}
	if cfg.CacheBucket != "responses" || cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("Unexpected cache settings: %+v", cfg)
	}
	if err := cfg.ValidateCredentials(); err != nil {
		t.Fatalf("Expected valid credentials: %s", err)
	}
}

func TestFromEnvIgnoresBadTTL(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "never")
	cfg := config.FromEnv()
	if cfg.CacheTTL != 10*time.Minute {
		t.Fatalf("Expected the default TTL, got %s", cfg.CacheTTL)
	}
}

func TestValidateCredentialsMissing(t *testing.T) {
	err := config.Config{APIID: "id"}.ValidateCredentials()
	if err == nil {
		t.Fatalf("Expected an error for a missing key")
	}
	re, ok := err.(exceptions.RequestError)
	if !ok {
		t.Fatalf("Expected a RequestError, got %T", err)
	}
	if re.ToServiceError().StatusCode != 400 {
		t.Fatalf("Expected a 400, got %d", re.ToServiceError().StatusCode)
	}
}
