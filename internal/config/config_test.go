package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	clearTestEnvVars(t)

	config := Load()

	if config.Port != "8080" {
		t.Errorf("Load() Port = %v, want %v", config.Port, "8080")
	}
	if config.LogLevel != "info" {
		t.Errorf("Load() LogLevel = %v, want %v", config.LogLevel, "info")
	}
	if config.Platform != "synthetic" {
		t.Errorf("Load() Platform = %v, want %v", config.Platform, "synthetic")
	}
	if config.FetchTimeout != "10s" {
		t.Errorf("Load() FetchTimeout = %v, want %v", config.FetchTimeout, "10s")
	}
	if config.MaxResults != "120" {
		t.Errorf("Load() MaxResults = %v, want %v", config.MaxResults, "120")
	}
	if config.QueueCapacity != "64" {
		t.Errorf("Load() QueueCapacity = %v, want %v", config.QueueCapacity, "64")
	}
	if config.WorkerCount != "4" {
		t.Errorf("Load() WorkerCount = %v, want %v", config.WorkerCount, "4")
	}
	if config.BatchSize != "25" {
		t.Errorf("Load() BatchSize = %v, want %v", config.BatchSize, "25")
	}
	if config.CacheBackend != "memory" {
		t.Errorf("Load() CacheBackend = %v, want %v", config.CacheBackend, "memory")
	}
	if config.CacheTTL != "5m" {
		t.Errorf("Load() CacheTTL = %v, want %v", config.CacheTTL, "5m")
	}
	if config.RedisAddress != "localhost:6379" {
		t.Errorf("Load() RedisAddress = %v, want %v", config.RedisAddress, "localhost:6379")
	}
	if config.FailedMaxAttempts != "3" {
		t.Errorf("Load() FailedMaxAttempts = %v, want %v", config.FailedMaxAttempts, "3")
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Validate() on defaults returned error: %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("PORT", "9090")
	t.Setenv("PLATFORM", "twitter")
	t.Setenv("TWITTER_BEARER_TOKEN", "test-token")
	t.Setenv("QUEUE_CAPACITY", "128")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_TTL", "10m")

	config := Load()

	if config.Port != "9090" {
		t.Errorf("Load() Port = %v, want %v", config.Port, "9090")
	}
	if config.Platform != "twitter" {
		t.Errorf("Load() Platform = %v, want %v", config.Platform, "twitter")
	}
	if config.TwitterBearerToken != "test-token" {
		t.Errorf("Load() TwitterBearerToken = %v, want %v", config.TwitterBearerToken, "test-token")
	}
	if config.QueueCapacity != "128" {
		t.Errorf("Load() QueueCapacity = %v, want %v", config.QueueCapacity, "128")
	}
	if config.CacheBackend != "redis" {
		t.Errorf("Load() CacheBackend = %v, want %v", config.CacheBackend, "redis")
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Validate() returned error: %v", err)
	}
}

func TestPlatformAutoSelect(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("SOCIALDATA_API_KEY", "sd-key")

	config := Load()

	if config.Platform != "socialdata" {
		t.Errorf("Load() Platform = %v, want %v when SOCIALDATA_API_KEY is set", config.Platform, "socialdata")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"invalid port", func(c *Config) { c.Port = "not-a-port" }},
		{"port out of range", func(c *Config) { c.Port = "70000" }},
		{"unknown platform", func(c *Config) { c.Platform = "mastodon" }},
		{"twitter without token", func(c *Config) { c.Platform = "twitter"; c.TwitterBearerToken = "" }},
		{"socialdata without key", func(c *Config) { c.Platform = "socialdata"; c.SocialDataAPIKey = "" }},
		{"bad fetch timeout", func(c *Config) { c.FetchTimeout = "soon" }},
		{"zero max results", func(c *Config) { c.MaxResults = "0" }},
		{"zero queue capacity", func(c *Config) { c.QueueCapacity = "0" }},
		{"negative worker count", func(c *Config) { c.WorkerCount = "-1" }},
		{"zero batch size", func(c *Config) { c.BatchSize = "0" }},
		{"unknown cache backend", func(c *Config) { c.CacheBackend = "memcached" }},
		{"bad cache ttl", func(c *Config) { c.CacheTTL = "forever" }},
		{"redis db out of range", func(c *Config) { c.CacheBackend = "redis"; c.RedisDB = "16" }},
		{"redis without address", func(c *Config) { c.CacheBackend = "redis"; c.RedisAddress = "" }},
		{"zero failed attempts", func(c *Config) { c.FailedMaxAttempts = "0" }},
		{"bad poll interval", func(c *Config) { c.PollInterval = "often" }},
		{"zero poll attempts", func(c *Config) { c.PollMaxAttempts = "0" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTestEnvVars(t)
			config := Load()
			tt.mutate(config)
			if err := config.Validate(); err == nil {
				t.Errorf("Validate() expected error for %s, got nil", tt.name)
			}
		})
	}
}

func TestTypedAccessors(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("WORKER_COUNT", "8")

	config := Load()

	if got := config.FetchTimeoutDuration(); got != 3*time.Second {
		t.Errorf("FetchTimeoutDuration() = %v, want %v", got, 3*time.Second)
	}
	if got := config.CacheTTLDuration(); got != 90*time.Second {
		t.Errorf("CacheTTLDuration() = %v, want %v", got, 90*time.Second)
	}
	if got := config.WorkerCountInt(); got != 8 {
		t.Errorf("WorkerCountInt() = %v, want %v", got, 8)
	}
	if got := config.PollIntervalDuration(); got != 500*time.Millisecond {
		t.Errorf("PollIntervalDuration() = %v, want %v", got, 500*time.Millisecond)
	}
}

// clearTestEnvVars unsets every variable the loader reads so tests see a
// clean environment.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	vars := []string{
		"PORT", "LOG_LEVEL",
		"PLATFORM", "TWITTER_BEARER_TOKEN", "SOCIALDATA_API_KEY", "SOCIALDATA_BASE_URL",
		"FETCH_TIMEOUT", "MAX_RESULTS",
		"BREAKER_MAX_FAILURES", "BREAKER_TIMEOUT",
		"QUEUE_CAPACITY", "WORKER_COUNT", "BATCH_SIZE",
		"CACHE_BACKEND", "CACHE_TTL", "PENDING_TTL",
		"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
		"FAILED_MAX_ATTEMPTS", "POLL_INTERVAL", "POLL_MAX_ATTEMPTS",
	}
	for _, v := range vars {
		t.Setenv(v, "")
	}
}
