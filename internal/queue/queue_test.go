package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-analytics/internal/common/errors"
	"social-analytics/internal/metrics"
)

func TestEnqueueAndProcess(t *testing.T) {
	var mu sync.Mutex
	processed := make(map[string]int)

	q := New(8, 2, func(_ context.Context, job Job) {
		mu.Lock()
		processed[job.Topic] = job.MaxResults
		mu.Unlock()
	}, nil, metrics.NewCollector())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	job, err := q.Enqueue("golang", 50)
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "golang", job.Topic)

	require.NoError(t, q.Shutdown(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 50, processed["golang"])
}

func TestEnqueueBackpressure(t *testing.T) {
	// no workers started, so the buffer fills up
	q := New(2, 1, func(context.Context, Job) {}, nil, metrics.NewCollector())

	_, err := q.Enqueue("a", 10)
	require.NoError(t, err)
	_, err = q.Enqueue("b", 10)
	require.NoError(t, err)

	_, err = q.Enqueue("c", 10)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeBackpressure))
	assert.Equal(t, 2, q.Depth())
}

func TestShutdownDrainsBuffer(t *testing.T) {
	var mu sync.Mutex
	var order []string

	q := New(16, 1, func(_ context.Context, job Job) {
		mu.Lock()
		order = append(order, job.Topic)
		mu.Unlock()
	}, nil, metrics.NewCollector())

	topics := []string{"one", "two", "three", "four"}
	for _, topic := range topics {
		_, err := q.Enqueue(topic, 10)
		require.NoError(t, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	require.NoError(t, q.Shutdown(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, topics, order, "a single worker drains jobs in FIFO order")
}

func TestPanickingJobDoesNotKillWorker(t *testing.T) {
	var mu sync.Mutex
	var survived bool

	q := New(8, 1, func(_ context.Context, job Job) {
		if job.Topic == "poison" {
			panic("boom")
		}
		mu.Lock()
		survived = true
		mu.Unlock()
	}, nil, metrics.NewCollector())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	_, err := q.Enqueue("poison", 10)
	require.NoError(t, err)
	_, err = q.Enqueue("healthy", 10)
	require.NoError(t, err)

	require.NoError(t, q.Shutdown(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, survived, "worker should process jobs after a panic")
}

func TestShutdownTimeout(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	q := New(1, 1, func(context.Context, Job) {
		close(started)
		<-release
	}, nil, metrics.NewCollector())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	_, err := q.Enqueue("slow", 10)
	require.NoError(t, err)
	<-started

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer shutdownCancel()
	err = q.Shutdown(shutdownCtx)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeInternal))

	close(release)
}
