package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-analytics/internal/adapters"
	"social-analytics/internal/analytics"
	"social-analytics/internal/cache"
	"social-analytics/internal/common/logging"
	"social-analytics/internal/coordinator"
	"social-analytics/internal/metrics"
	"social-analytics/internal/models"
	"social-analytics/internal/pipeline"
	"social-analytics/internal/queue"
)

type panicSource struct{}

func (panicSource) Fetch(context.Context, string, adapters.FetchOptions) ([]models.SocialPost, string, error) {
	panic("source adapter crashed")
}

func (panicSource) PlatformName() string { return "synthetic" }

type noopEnqueuer struct{}

func (noopEnqueuer) Enqueue(topic string, _ int) (queue.Job, error) {
	return queue.Job{ID: "job-1", Topic: topic}, nil
}

func TestProcessJob_PanicMarksTopicFailed(t *testing.T) {
	collector := metrics.NewCollector()
	store := cache.NewMemoryStore(time.Minute, time.Minute)
	coord := coordinator.New(store, noopEnqueuer{}, coordinator.DefaultConfig(), nil, collector)

	application := &App{
		Store:       store,
		Processor:   pipeline.NewProcessor(panicSource{}, analytics.NewEngine(), 10, nil, collector),
		Coordinator: coord,
		Collector:   collector,
		Logger:      logging.GetGlobalLogger(),
	}

	ctx := context.Background()
	outcome, err := coord.Request(ctx, "golang", 10)
	require.NoError(t, err)
	require.Equal(t, coordinator.StatusQueued, outcome.Status)

	assert.NotPanics(t, func() {
		application.processJob(ctx, queue.Job{ID: "job-1", Topic: "golang", MaxResults: 10})
	})

	lookup, found, err := coord.Lookup(ctx, "golang")
	require.NoError(t, err)
	require.True(t, found, "the pending entry must transition instead of lingering")
	assert.Equal(t, coordinator.StatusFailed, lookup.Status)
	require.Error(t, lookup.Err)
	assert.Contains(t, lookup.Err.Error(), "panicked")
}
