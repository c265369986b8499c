// Package circuitbreaker wraps Sony's gobreaker for guarding live source
// adapters. A tripped breaker fails fetches fast so the resilient adapter
// can fall back to the synthetic generator without waiting on a dead
// provider.
package circuitbreaker

import (
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"social-analytics/internal/common/logging"
)

// Config holds the configuration for a circuit breaker
type Config struct {
	// MaxFailures is the number of consecutive failures that opens the circuit
	MaxFailures int
	// Timeout is how long the circuit stays open before transitioning to half-open
	Timeout time.Duration
	// MaxConcurrentRequests is the number of probe requests allowed in half-open state
	MaxConcurrentRequests int
}

// DefaultConfig returns a sensible default configuration for provider APIs
func DefaultConfig() Config {
	return Config{
		MaxFailures:           3,
		Timeout:               30 * time.Second,
		MaxConcurrentRequests: 1,
	}
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.MaxFailures <= 0 {
		return fmt.Errorf("MaxFailures must be positive, got %d", c.MaxFailures)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("Timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxConcurrentRequests <= 0 {
		return fmt.Errorf("MaxConcurrentRequests must be positive, got %d", c.MaxConcurrentRequests)
	}
	return nil
}

// Breaker guards calls to one named upstream.
type Breaker struct {
	cb     *gobreaker.CircuitBreaker
	logger logging.Logger
}

// New creates a breaker for the named upstream using cfg.
func New(name string, cfg Config, logger logging.Logger) *Breaker {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	b := &Breaker{logger: logger}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(cfg.MaxConcurrentRequests),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				logging.String("circuit_breaker", name),
				logging.String("from", from.String()),
				logging.String("to", to.String()),
			)
		},
	}

	b.cb = gobreaker.NewCircuitBreaker(settings)
	return b
}

// Execute runs fn behind the breaker. When the circuit is open the call
// fails immediately with gobreaker.ErrOpenState.
func (b *Breaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return b.cb.Execute(fn)
}

// IsOpen reports whether the circuit is currently rejecting calls.
func (b *Breaker) IsOpen() bool {
	return b.cb.State() == gobreaker.StateOpen
}

// State returns the current breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
