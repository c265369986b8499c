// Package config provides configuration management for the social analytics
// service. It handles loading configuration from environment variables with
// sensible defaults and validates the configuration to ensure the
// application starts safely.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//
// Source Adapter Configuration:
//   - PLATFORM: Source platform - "twitter", "socialdata" or "synthetic"
//     (default: synthetic; "socialdata" is selected automatically when
//     SOCIALDATA_API_KEY is set and PLATFORM is not)
//   - TWITTER_BEARER_TOKEN: Twitter API v2 app-only bearer token
//   - SOCIALDATA_API_KEY: SocialData.tools API key
//   - SOCIALDATA_BASE_URL: SocialData.tools base URL override
//   - FETCH_TIMEOUT: HTTP timeout for source fetches (default: 10s)
//   - MAX_RESULTS: Default posts fetched per analysis (default: 120)
//
// Circuit Breaker:
//   - BREAKER_MAX_FAILURES: Consecutive failures before the circuit opens (default: 3)
//   - BREAKER_TIMEOUT: How long an open circuit stays open (default: 30s)
//
// Queue and Workers:
//   - QUEUE_CAPACITY: Job buffer size before backpressure (default: 64)
//   - WORKER_COUNT: Number of analysis workers (default: 4)
//   - BATCH_SIZE: Posts analyzed per batch (default: 25)
//
// Cache Configuration:
//   - CACHE_BACKEND: Result store backend - "memory" or "redis" (default: memory)
//   - CACHE_TTL: How long a computed result stays servable (default: 5m)
//   - PENDING_TTL: Stale-job guard for Redis pending entries (default: 2m)
//   - REDIS_ADDRESS: Redis server address (default: localhost:6379)
//   - REDIS_PASSWORD: Redis password
//   - REDIS_DB: Redis database number 0-15 (default: 0)
//
// Retry and Polling:
//   - FAILED_MAX_ATTEMPTS: Analysis attempts before a topic's failure sticks (default: 3)
//   - POLL_INTERVAL: Await poll interval (default: 500ms)
//   - POLL_MAX_ATTEMPTS: Await poll budget (default: 20)
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values for the service. All string fields
// correspond to environment variables that can be set to override the
// default values.
//
// The configuration is loaded using the Load() function and should be
// validated using the Validate() method before use.
type Config struct {
	// Application settings
	Port     string // Server port number
	LogLevel string // Logging level (debug, info, warn, error)

	// Source adapter configuration
	Platform           string // Source platform: "twitter", "socialdata" or "synthetic"
	TwitterBearerToken string // Twitter API v2 bearer token
	SocialDataAPIKey   string // SocialData.tools API key
	SocialDataBaseURL  string // SocialData.tools base URL override
	FetchTimeout       string // HTTP timeout for source fetches (e.g. "10s")
	MaxResults         string // Default posts fetched per analysis

	// Circuit breaker configuration
	BreakerMaxFailures string // Consecutive failures before the circuit opens
	BreakerTimeout     string // How long an open circuit stays open

	// Queue and worker configuration
	QueueCapacity string // Job buffer size before backpressure
	WorkerCount   string // Number of analysis workers
	BatchSize     string // Posts analyzed per batch

	// Cache configuration
	CacheBackend  string // Result store backend: "memory" or "redis"
	CacheTTL      string // Ready entry lifetime (e.g. "5m")
	PendingTTL    string // Redis pending entry stale-job guard
	RedisAddress  string // Redis server address (host:port)
	RedisPassword string // Redis authentication password
	RedisDB       string // Redis database number (0-15)

	// Retry and polling configuration
	FailedMaxAttempts string // Analysis attempts before a failure sticks
	PollInterval      string // Await poll interval
	PollMaxAttempts   string // Await poll budget
}

// Load creates a new Config instance with values loaded from environment
// variables. If an environment variable is not set, the corresponding
// default value is used.
//
// This function does not validate the configuration - call Validate() on
// the returned Config to ensure all required values are properly set.
func Load() *Config {
	platform := getEnv("PLATFORM", "")
	if platform == "" {
		if os.Getenv("SOCIALDATA_API_KEY") != "" {
			platform = "socialdata"
		} else {
			platform = "synthetic"
		}
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		Platform:           platform,
		TwitterBearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
		SocialDataAPIKey:   getEnv("SOCIALDATA_API_KEY", ""),
		SocialDataBaseURL:  getEnv("SOCIALDATA_BASE_URL", ""),
		FetchTimeout:       getEnv("FETCH_TIMEOUT", "10s"),
		MaxResults:         getEnv("MAX_RESULTS", "120"),

		BreakerMaxFailures: getEnv("BREAKER_MAX_FAILURES", "3"),
		BreakerTimeout:     getEnv("BREAKER_TIMEOUT", "30s"),

		QueueCapacity: getEnv("QUEUE_CAPACITY", "64"),
		WorkerCount:   getEnv("WORKER_COUNT", "4"),
		BatchSize:     getEnv("BATCH_SIZE", "25"),

		CacheBackend:  getEnv("CACHE_BACKEND", "memory"),
		CacheTTL:      getEnv("CACHE_TTL", "5m"),
		PendingTTL:    getEnv("PENDING_TTL", "2m"),
		RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnv("REDIS_DB", "0"),

		FailedMaxAttempts: getEnv("FAILED_MAX_ATTEMPTS", "3"),
		PollInterval:      getEnv("POLL_INTERVAL", "500ms"),
		PollMaxAttempts:   getEnv("POLL_MAX_ATTEMPTS", "20"),
	}
}

// getEnv retrieves an environment variable value or returns a default
// value if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate performs validation on the configuration to ensure all values
// are well-formed and cross-field requirements hold. The application
// should call this after Load() and before starting.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a valid port number between 1 and 65535")
	}

	switch c.Platform {
	case "twitter", "socialdata", "synthetic":
		// Valid platforms
	default:
		return fmt.Errorf("PLATFORM must be 'twitter', 'socialdata' or 'synthetic'")
	}

	if c.Platform == "twitter" && c.TwitterBearerToken == "" {
		return fmt.Errorf("TWITTER_BEARER_TOKEN is required when PLATFORM is 'twitter'")
	}
	if c.Platform == "socialdata" && c.SocialDataAPIKey == "" {
		return fmt.Errorf("SOCIALDATA_API_KEY is required when PLATFORM is 'socialdata'")
	}

	if _, err := time.ParseDuration(c.FetchTimeout); err != nil {
		return fmt.Errorf("FETCH_TIMEOUT must be a valid duration (e.g., '10s')")
	}
	if n, err := strconv.Atoi(c.MaxResults); err != nil || n < 1 {
		return fmt.Errorf("MAX_RESULTS must be a positive number")
	}

	if n, err := strconv.Atoi(c.BreakerMaxFailures); err != nil || n < 1 {
		return fmt.Errorf("BREAKER_MAX_FAILURES must be a positive number")
	}
	if _, err := time.ParseDuration(c.BreakerTimeout); err != nil {
		return fmt.Errorf("BREAKER_TIMEOUT must be a valid duration (e.g., '30s')")
	}

	if n, err := strconv.Atoi(c.QueueCapacity); err != nil || n < 1 {
		return fmt.Errorf("QUEUE_CAPACITY must be a positive number")
	}
	if n, err := strconv.Atoi(c.WorkerCount); err != nil || n < 1 {
		return fmt.Errorf("WORKER_COUNT must be a positive number")
	}
	if n, err := strconv.Atoi(c.BatchSize); err != nil || n < 1 {
		return fmt.Errorf("BATCH_SIZE must be a positive number")
	}

	switch c.CacheBackend {
	case "memory", "redis":
		// Valid backends
	default:
		return fmt.Errorf("CACHE_BACKEND must be 'memory' or 'redis'")
	}
	if _, err := time.ParseDuration(c.CacheTTL); err != nil {
		return fmt.Errorf("CACHE_TTL must be a valid duration (e.g., '5m')")
	}
	if _, err := time.ParseDuration(c.PendingTTL); err != nil {
		return fmt.Errorf("PENDING_TTL must be a valid duration (e.g., '2m')")
	}
	if c.CacheBackend == "redis" {
		if c.RedisAddress == "" {
			return fmt.Errorf("REDIS_ADDRESS is required when CACHE_BACKEND is 'redis'")
		}
		if db, err := strconv.Atoi(c.RedisDB); err != nil || db < 0 || db > 15 {
			return fmt.Errorf("REDIS_DB must be a number between 0 and 15")
		}
	}

	if n, err := strconv.Atoi(c.FailedMaxAttempts); err != nil || n < 1 {
		return fmt.Errorf("FAILED_MAX_ATTEMPTS must be a positive number")
	}
	if _, err := time.ParseDuration(c.PollInterval); err != nil {
		return fmt.Errorf("POLL_INTERVAL must be a valid duration (e.g., '500ms')")
	}
	if n, err := strconv.Atoi(c.PollMaxAttempts); err != nil || n < 1 {
		return fmt.Errorf("POLL_MAX_ATTEMPTS must be a positive number")
	}

	return nil
}

// The typed accessors below assume Validate() passed; on a malformed
// value they return the documented default rather than panicking.

// FetchTimeoutDuration returns FETCH_TIMEOUT as a duration.
func (c *Config) FetchTimeoutDuration() time.Duration {
	return durationOr(c.FetchTimeout, 10*time.Second)
}

// MaxResultsInt returns MAX_RESULTS as an int.
func (c *Config) MaxResultsInt() int {
	return intOr(c.MaxResults, 120)
}

// BreakerMaxFailuresInt returns BREAKER_MAX_FAILURES as an int.
func (c *Config) BreakerMaxFailuresInt() int {
	return intOr(c.BreakerMaxFailures, 3)
}

// BreakerTimeoutDuration returns BREAKER_TIMEOUT as a duration.
func (c *Config) BreakerTimeoutDuration() time.Duration {
	return durationOr(c.BreakerTimeout, 30*time.Second)
}

// QueueCapacityInt returns QUEUE_CAPACITY as an int.
func (c *Config) QueueCapacityInt() int {
	return intOr(c.QueueCapacity, 64)
}

// WorkerCountInt returns WORKER_COUNT as an int.
func (c *Config) WorkerCountInt() int {
	return intOr(c.WorkerCount, 4)
}

// BatchSizeInt returns BATCH_SIZE as an int.
func (c *Config) BatchSizeInt() int {
	return intOr(c.BatchSize, 25)
}

// CacheTTLDuration returns CACHE_TTL as a duration.
func (c *Config) CacheTTLDuration() time.Duration {
	return durationOr(c.CacheTTL, 5*time.Minute)
}

// PendingTTLDuration returns PENDING_TTL as a duration.
func (c *Config) PendingTTLDuration() time.Duration {
	return durationOr(c.PendingTTL, 2*time.Minute)
}

// RedisDBInt returns REDIS_DB as an int.
func (c *Config) RedisDBInt() int {
	return intOr(c.RedisDB, 0)
}

// FailedMaxAttemptsInt returns FAILED_MAX_ATTEMPTS as an int.
func (c *Config) FailedMaxAttemptsInt() int {
	return intOr(c.FailedMaxAttempts, 3)
}

// PollIntervalDuration returns POLL_INTERVAL as a duration.
func (c *Config) PollIntervalDuration() time.Duration {
	return durationOr(c.PollInterval, 500*time.Millisecond)
}

// PollMaxAttemptsInt returns POLL_MAX_ATTEMPTS as an int.
func (c *Config) PollMaxAttemptsInt() int {
	return intOr(c.PollMaxAttempts, 20)
}

func intOr(value string, fallback int) int {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return fallback
}

func durationOr(value string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return fallback
}
