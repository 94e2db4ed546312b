package config

import (
	"os"
	"strconv"
	"time"

	"unleashed-proxy/internal/exceptions"
)

const (
	defaultCacheTTL = 10 * time.Minute
)

// Config is everything the proxy reads from the environment. Loaded once at
// cold start; credentials are validated per request so a misconfigured
// deployment answers 400 immediately instead of failing mid-pagination.
type Config struct {
	APIID       string
	APIKey      string
	APIURL      string
	CacheBucket string
	CacheTTL    time.Duration
	AuditTable  string
	AlertTopic  string
}

func FromEnv() Config {
	ttl := defaultCacheTTL
	if raw := os.Getenv("CACHE_TTL_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			ttl = time.Duration(seconds) * time.Second
		}
	}
	return Config{
		APIID:       os.Getenv("UNLEASHED_API_ID"),
		APIKey:      os.Getenv("UNLEASHED_API_KEY"),
		APIURL:      os.Getenv("UNLEASHED_API_URL"),
		CacheBucket: os.Getenv("CACHE_BUCKET"),
		CacheTTL:    ttl,
		AuditTable:  os.Getenv("AUDIT_TABLE_NAME"),
		AlertTopic:  os.Getenv("ALERT_TOPIC_ARN"),
	}
}

// ValidateCredentials fails when either API secret is absent.
func (c Config) ValidateCredentials() error {
	if c.APIID == "" || c.APIKey == "" {
		return exceptions.Configuration("API credentials not configured. Please set UNLEASHED_API_ID and UNLEASHED_API_KEY environment variables.")
	}
	return nil
}
