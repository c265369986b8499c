// Package coordinator implements single-flight admission over the cache
// store: for any topic at most one analysis job is in flight, and every
// concurrent request for that topic shares its outcome.
package coordinator

import (
	"context"
	"time"

	"social-analytics/internal/cache"
	"social-analytics/internal/common/errors"
	"social-analytics/internal/common/logging"
	"social-analytics/internal/metrics"
	"social-analytics/internal/models"
	"social-analytics/internal/queue"
)

// Status tells a caller what happened to their request.
type Status string

const (
	// StatusCached means a fresh result was served from the cache
	StatusCached Status = "cached"
	// StatusQueued means a job is in flight and the result is not ready yet
	StatusQueued Status = "queued"
	// StatusFailed means the topic's last job failed
	StatusFailed Status = "failed"
)

// Outcome is the coordinator's answer to one request.
type Outcome struct {
	Status   Status
	Result   *models.AnalysisResult
	Err      error
	Attempts int
}

// Enqueuer is the slice of the job queue the coordinator needs.
type Enqueuer interface {
	Enqueue(topic string, maxResults int) (queue.Job, error)
}

// Config tunes the coordinator's caching and retry behavior.
type Config struct {
	// ResultTTL is how long a Ready entry stays servable
	ResultTTL time.Duration
	// FailedMaxAttempts bounds retries for a failing topic; once a
	// Failed entry carries this many attempts no new job is admitted
	FailedMaxAttempts int
	// PollInterval and PollMaxAttempts drive Await
	PollInterval    time.Duration
	PollMaxAttempts int
}

// DefaultConfig returns the coordinator defaults.
func DefaultConfig() Config {
	return Config{
		ResultTTL:         5 * time.Minute,
		FailedMaxAttempts: 3,
		PollInterval:      500 * time.Millisecond,
		PollMaxAttempts:   20,
	}
}

// Coordinator owns every cache entry transition. Workers report results
// through Complete and Fail rather than writing to the store themselves.
type Coordinator struct {
	store     cache.Store
	jobs      Enqueuer
	config    Config
	logger    logging.Logger
	collector *metrics.Collector
}

// New builds a coordinator over the given store and queue.
func New(store cache.Store, jobs Enqueuer, config Config, logger logging.Logger, collector *metrics.Collector) *Coordinator {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Coordinator{
		store:     store,
		jobs:      jobs,
		config:    config,
		logger:    logger,
		collector: collector,
	}
}

// Request admits one analysis request for topic. A fresh Ready entry is
// served directly; a Pending entry is joined without a new job; a Failed
// entry is retried until FailedMaxAttempts is exhausted; an absent entry
// admits a new job.
func (c *Coordinator) Request(ctx context.Context, topic string, maxResults int) (Outcome, error) {
	key := models.NormalizeTopic(topic)
	if key == "" {
		return Outcome{}, errors.AnalysisError("topic must not be empty", nil)
	}

	entry, found, err := c.store.Get(ctx, key)
	if err != nil {
		return Outcome{}, err
	}
	if !found {
		c.collector.CacheMiss()
		return c.admit(ctx, key, 0, maxResults)
	}

	switch entry.State {
	case cache.StateReady:
		return c.outcomeFor(entry), nil

	case cache.StatePending:
		// joined an in-flight job, no servable value yet
		c.collector.CacheMiss()
		return Outcome{Status: StatusQueued, Attempts: entry.Attempts}, nil

	case cache.StateFailed:
		if entry.Attempts >= c.config.FailedMaxAttempts {
			return Outcome{
				Status:   StatusFailed,
				Err:      errors.AnalysisError(entry.Error, nil).WithContext("attempts", entry.Attempts),
				Attempts: entry.Attempts,
			}, nil
		}
		c.collector.CacheMiss()
		fresh, swapped, err := c.store.Retry(ctx, key)
		if err != nil {
			return Outcome{}, err
		}
		if !swapped {
			if fresh == nil {
				// the failed entry aged out under us, admit from scratch
				return c.admit(ctx, key, entry.Attempts, maxResults)
			}
			return c.outcomeFor(fresh), nil
		}
		return c.launch(ctx, key, fresh.Attempts, maxResults)

	default:
		return Outcome{}, errors.InternalError("unexpected cache entry state", nil).
			WithContext("key", key).
			WithContext("state", string(entry.State))
	}
}

// Lookup reports the current state of a topic without admitting work.
func (c *Coordinator) Lookup(ctx context.Context, topic string) (Outcome, bool, error) {
	key := models.NormalizeTopic(topic)
	if key == "" {
		return Outcome{}, false, errors.AnalysisError("topic must not be empty", nil)
	}

	entry, found, err := c.store.Get(ctx, key)
	if err != nil || !found {
		return Outcome{}, false, err
	}

	switch entry.State {
	case cache.StateReady:
		return Outcome{Status: StatusCached, Result: entry.Value, Attempts: entry.Attempts}, true, nil
	case cache.StateFailed:
		return Outcome{
			Status:   StatusFailed,
			Err:      errors.AnalysisError(entry.Error, nil).WithContext("attempts", entry.Attempts),
			Attempts: entry.Attempts,
		}, true, nil
	default:
		return Outcome{Status: StatusQueued, Attempts: entry.Attempts}, true, nil
	}
}

// Complete records a finished job's result. Called by workers only.
func (c *Coordinator) Complete(ctx context.Context, topic string, result *models.AnalysisResult) error {
	key := models.NormalizeTopic(topic)
	if err := c.store.MarkReady(ctx, key, result, c.config.ResultTTL); err != nil {
		c.logger.Error("failed to store analysis result", err, logging.String("topic", key))
		return err
	}
	return nil
}

// Fail records a job failure. Called by workers only.
func (c *Coordinator) Fail(ctx context.Context, topic string, cause error) error {
	key := models.NormalizeTopic(topic)
	if err := c.store.MarkFailed(ctx, key, cause); err != nil {
		c.logger.Error("failed to record job failure", err, logging.String("topic", key))
		return err
	}
	return nil
}

// Await polls until the topic's entry leaves Pending or the poll budget
// runs out.
func (c *Coordinator) Await(ctx context.Context, topic string) (*models.AnalysisResult, error) {
	key := models.NormalizeTopic(topic)

	ticker := time.NewTicker(c.config.PollInterval)
	defer ticker.Stop()

	for attempt := 0; attempt < c.config.PollMaxAttempts; attempt++ {
		entry, found, err := c.store.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if found {
			switch entry.State {
			case cache.StateReady:
				return entry.Value, nil
			case cache.StateFailed:
				return nil, errors.AnalysisError(entry.Error, nil).
					WithContext("attempts", entry.Attempts)
			}
		}

		select {
		case <-ctx.Done():
			return nil, errors.InternalError("wait for analysis result cancelled", ctx.Err())
		case <-ticker.C:
		}
	}

	return nil, errors.InternalError("timed out waiting for analysis result", nil).
		WithContext("topic", key).
		WithContext("attempts", c.config.PollMaxAttempts)
}

// admit installs a Pending entry for key and enqueues its job. When two
// requests race here, the loser of the store's create joins the winner's
// entry.
func (c *Coordinator) admit(ctx context.Context, key string, attempts, maxResults int) (Outcome, error) {
	entry, created, err := c.store.GetOrCreate(ctx, key, attempts)
	if err != nil {
		return Outcome{}, err
	}
	if !created {
		return c.outcomeFor(entry), nil
	}
	return c.launch(ctx, key, attempts, maxResults)
}

// launch enqueues the job for a freshly installed Pending entry. When the
// queue rejects it the entry transitions straight to Failed so the
// saturation is observable to later requests.
func (c *Coordinator) launch(ctx context.Context, key string, attempts, maxResults int) (Outcome, error) {
	job, err := c.jobs.Enqueue(key, maxResults)
	if err != nil {
		if markErr := c.store.MarkFailed(ctx, key, err); markErr != nil {
			c.logger.Error("failed to record rejected job", markErr, logging.String("topic", key))
		}
		return Outcome{Status: StatusFailed, Err: err, Attempts: attempts + 1}, nil
	}

	c.logger.Info("analysis job admitted",
		logging.String("topic", key),
		logging.String("job_id", job.ID),
		logging.Int("attempts", attempts))

	return Outcome{Status: StatusQueued, Attempts: attempts}, nil
}

// outcomeFor maps an existing entry onto the outcome a joining caller
// sees. A Ready entry counts as a cache hit regardless of which path the
// caller raced in through.
func (c *Coordinator) outcomeFor(entry *cache.Entry) Outcome {
	switch entry.State {
	case cache.StateReady:
		c.collector.CacheHit()
		return Outcome{Status: StatusCached, Result: entry.Value, Attempts: entry.Attempts}
	case cache.StateFailed:
		return Outcome{
			Status:   StatusFailed,
			Err:      errors.AnalysisError(entry.Error, nil).WithContext("attempts", entry.Attempts),
			Attempts: entry.Attempts,
		}
	default:
		return Outcome{Status: StatusQueued, Attempts: entry.Attempts}
	}
}
