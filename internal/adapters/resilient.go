package adapters

import (
	"context"

	"social-analytics/internal/circuitbreaker"
	"social-analytics/internal/common/logging"
	"social-analytics/internal/models"
)

// Resilient decorates a primary source adapter with a circuit breaker and
// a fallback variant. A failed or empty live fetch is answered from the
// fallback instead, so a job always completes with a result; the returned
// provenance tells callers which variant produced it.
type Resilient struct {
	primary  SourceAdapter
	fallback SourceAdapter
	breaker  *circuitbreaker.Breaker
	logger   logging.Logger
}

// NewResilient wraps primary with breakerCfg and the given fallback.
// The fallback is usually the synthetic generator but any variant
// satisfying the capability set works.
func NewResilient(primary, fallback SourceAdapter, breakerCfg circuitbreaker.Config, logger logging.Logger) *Resilient {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Resilient{
		primary:  primary,
		fallback: fallback,
		breaker:  circuitbreaker.New(primary.PlatformName(), breakerCfg, logger),
		logger:   logger,
	}
}

// Fetch returns posts for the query together with their provenance,
// models.SourceLive or models.SourceSynthetic.
func (r *Resilient) Fetch(ctx context.Context, query string, opts FetchOptions) ([]models.SocialPost, string, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.primary.FetchPosts(ctx, query, opts)
	})

	if err == nil {
		posts := result.([]models.SocialPost)
		if len(posts) > 0 {
			return posts, models.SourceLive, nil
		}
		r.logger.Warn("Live fetch returned no posts, using synthetic fallback",
			logging.String("platform", r.primary.PlatformName()),
			logging.String("query", query),
		)
	} else {
		r.logger.Warn("Live fetch failed, using synthetic fallback",
			logging.String("platform", r.primary.PlatformName()),
			logging.String("query", query),
			logging.Err(err),
		)
	}

	posts, err := r.fallback.FetchPosts(ctx, query, opts)
	if err != nil {
		return nil, "", err
	}

	return posts, models.SourceSynthetic, nil
}

// PlatformName returns the primary variant's platform identifier.
func (r *Resilient) PlatformName() string {
	return r.primary.PlatformName()
}

// BreakerOpen reports whether the primary's circuit is currently open.
func (r *Resilient) BreakerOpen() bool {
	return r.breaker.IsOpen()
}
