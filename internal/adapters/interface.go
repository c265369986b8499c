// Package adapters defines the source adapter capability set and the
// registry through which platform implementations are selected.
package adapters

import (
	"context"
	"time"

	"social-analytics/internal/common/registry"
	"social-analytics/internal/models"
)

// FetchOptions narrows a fetch. Zero time values mean no bound.
type FetchOptions struct {
	MaxResults int
	StartTime  time.Time
	EndTime    time.Time
}

// SourceAdapter is the capability set every platform variant implements.
// FetchPosts returns normalized posts; failures are typed AppErrors
// (authentication, rate_limit, transport).
type SourceAdapter interface {
	FetchPosts(ctx context.Context, query string, opts FetchOptions) ([]models.SocialPost, error)
	ValidateCredentials(ctx context.Context) bool
	PlatformName() string
}

// Config carries the credentials and tuning an adapter factory needs.
type Config struct {
	BearerToken string
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
}

// Factory creates a configured adapter for one platform.
type Factory interface {
	Create(config Config) (SourceAdapter, error)
	GetType() string
}

// Registry maps platform names to adapter factories. It is populated once
// at startup and read-only afterwards.
type Registry = registry.Registry[Factory]

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return registry.New[Factory]()
}

// Create resolves the factory for platform and builds an adapter from it.
// Unknown platforms yield an unknown_adapter error.
func Create(reg *Registry, platform string, config Config) (SourceAdapter, error) {
	factory, err := reg.Get(platform)
	if err != nil {
		return nil, err
	}
	return factory.Create(config)
}
