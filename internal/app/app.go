// Package app wires the service together: cache store, source adapters,
// analysis pipeline, worker pool, coordinator and HTTP surface.
package app

import (
	"context"
	"fmt"

	"social-analytics/internal/adapters"
	"social-analytics/internal/adapters/socialdata"
	"social-analytics/internal/adapters/synthetic"
	"social-analytics/internal/adapters/twitter"
	"social-analytics/internal/analytics"
	"social-analytics/internal/cache"
	"social-analytics/internal/circuitbreaker"
	"social-analytics/internal/common/errors"
	"social-analytics/internal/common/logging"
	"social-analytics/internal/config"
	"social-analytics/internal/coordinator"
	"social-analytics/internal/metrics"
	"social-analytics/internal/pipeline"
	"social-analytics/internal/queue"
)

// App holds all the application dependencies
type App struct {
	Config      *config.Config
	Store       cache.Store
	Registry    *adapters.Registry
	Source      *adapters.Resilient
	Processor   *pipeline.Processor
	Queue       *queue.Queue
	Coordinator *coordinator.Coordinator
	Collector   *metrics.Collector
	Logger      logging.Logger

	redisStore *cache.RedisStore
	cancel     context.CancelFunc
}

// New creates a new application instance with all dependencies
func New(cfg *config.Config) (*App, error) {
	app := &App{
		Config:    cfg,
		Collector: metrics.NewCollector(),
		Logger:    logging.GetGlobalLogger().WithFields(logging.Field{Key: "component", Value: "app"}),
	}

	if err := app.initializeStore(); err != nil {
		return nil, err
	}
	if err := app.initializeSource(); err != nil {
		return nil, err
	}
	app.initializePipeline()
	app.initializeCoordinator()

	return app, nil
}

// initializeStore selects the cache backend from configuration.
func (app *App) initializeStore() error {
	switch app.Config.CacheBackend {
	case "redis":
		store, err := cache.NewRedisStore(context.Background(), cache.RedisConfig{
			Addr:     app.Config.RedisAddress,
			Password: app.Config.RedisPassword,
			DB:       app.Config.RedisDBInt(),
		}, app.Config.CacheTTLDuration(), app.Config.PendingTTLDuration())
		if err != nil {
			return err
		}
		app.redisStore = store
		app.Store = store
		app.Logger.Info("Using Redis cache store",
			logging.Field{Key: "address", Value: app.Config.RedisAddress})
	default:
		app.Store = cache.NewMemoryStore(app.Config.CacheTTLDuration(), app.Config.CacheTTLDuration())
		app.Logger.Info("Using in-memory cache store")
	}
	return nil
}

// initializeSource registers every platform factory, builds the configured
// primary adapter, and wraps it with the breaker and synthetic fallback.
func (app *App) initializeSource() error {
	app.Registry = adapters.NewRegistry()
	app.Registry.Register(twitter.Platform, &twitter.Factory{})
	app.Registry.Register(socialdata.Platform, &socialdata.Factory{})
	app.Registry.Register(synthetic.Platform, &synthetic.Factory{})

	primary, err := adapters.Create(app.Registry, app.Config.Platform, adapters.Config{
		BearerToken: app.Config.TwitterBearerToken,
		APIKey:      app.Config.SocialDataAPIKey,
		BaseURL:     app.Config.SocialDataBaseURL,
		Timeout:     app.Config.FetchTimeoutDuration(),
	})
	if err != nil {
		return err
	}

	breakerCfg := circuitbreaker.DefaultConfig()
	breakerCfg.MaxFailures = app.Config.BreakerMaxFailuresInt()
	breakerCfg.Timeout = app.Config.BreakerTimeoutDuration()

	app.Source = adapters.NewResilient(primary, synthetic.New(), breakerCfg, app.Logger)
	app.Logger.Info("Source adapter initialized",
		logging.Field{Key: "platform", Value: app.Config.Platform})
	return nil
}

func (app *App) initializePipeline() {
	app.Processor = pipeline.NewProcessor(
		app.Source,
		analytics.NewEngine(),
		app.Config.BatchSizeInt(),
		app.Logger,
		app.Collector,
	)
	app.Queue = queue.New(
		app.Config.QueueCapacityInt(),
		app.Config.WorkerCountInt(),
		app.processJob,
		app.Logger,
		app.Collector,
	)
}

func (app *App) initializeCoordinator() {
	app.Coordinator = coordinator.New(app.Store, app.Queue, coordinator.Config{
		ResultTTL:         app.Config.CacheTTLDuration(),
		FailedMaxAttempts: app.Config.FailedMaxAttemptsInt(),
		PollInterval:      app.Config.PollIntervalDuration(),
		PollMaxAttempts:   app.Config.PollMaxAttemptsInt(),
	}, app.Logger, app.Collector)
}

// processJob is the worker entry point: run the pipeline for the job's
// topic and report the outcome back through the coordinator. A panic in
// the pipeline is reported as a job failure so the topic's Pending entry
// transitions instead of wedging every later request.
func (app *App) processJob(ctx context.Context, job queue.Job) {
	log := app.Logger.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			cause := errors.InternalError("analysis job panicked", nil).
				WithContext("panic", fmt.Sprint(r))
			log.Error("analysis job panicked", cause, logging.Field{Key: "topic", Value: job.Topic})
			if failErr := app.Coordinator.Fail(ctx, job.Topic, cause); failErr != nil {
				log.Error("failed to record job failure", failErr)
			}
		}
	}()

	result, err := app.Processor.Process(ctx, job.Topic, job.MaxResults)
	if err != nil {
		log.Error("analysis job failed", err, logging.Field{Key: "topic", Value: job.Topic})
		if failErr := app.Coordinator.Fail(ctx, job.Topic, err); failErr != nil {
			log.Error("failed to record job failure", failErr)
		}
		return
	}

	if err := app.Coordinator.Complete(ctx, job.Topic, result); err != nil {
		log.Error("failed to store job result", err)
	}
}

// Start launches the worker pool.
func (app *App) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel
	app.Queue.Start(ctx)
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown(ctx context.Context) error {
	if err := app.Queue.Shutdown(ctx); err != nil {
		app.Logger.Warn("Error during queue shutdown", logging.Field{Key: "error", Value: err})
	} else {
		app.Logger.Info("Worker pool stopped")
	}
	if app.cancel != nil {
		app.cancel()
	}

	if app.redisStore != nil {
		if err := app.redisStore.Close(); err != nil {
			app.Logger.Warn("Error closing Redis store", logging.Field{Key: "error", Value: err})
		}
	}
	return nil
}
