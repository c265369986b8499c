// Package queue provides the bounded job queue and fixed worker pool that
// drive analysis jobs. Enqueue never blocks: when the buffer is full the
// caller gets a backpressure error instead of a stalled request.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"social-analytics/internal/common/errors"
	"social-analytics/internal/common/logging"
	"social-analytics/internal/metrics"
)

// Job is one unit of analysis work.
type Job struct {
	ID         string
	Topic      string
	MaxResults int
	EnqueuedAt time.Time
}

// Handler processes a single job. Handlers own their error reporting;
// the pool only guards against panics.
type Handler func(ctx context.Context, job Job)

// Queue is a bounded FIFO of jobs drained by a fixed pool of workers.
type Queue struct {
	jobs      chan Job
	capacity  int
	workers   int
	handler   Handler
	logger    logging.Logger
	collector *metrics.Collector

	group     *errgroup.Group
	closeOnce sync.Once
}

// New builds a queue with the given buffer capacity and worker count.
func New(capacity, workers int, handler Handler, logger logging.Logger, collector *metrics.Collector) *Queue {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Queue{
		jobs:      make(chan Job, capacity),
		capacity:  capacity,
		workers:   workers,
		handler:   handler,
		logger:    logger,
		collector: collector,
	}
}

// Enqueue offers a job to the pool without blocking. A full buffer
// returns a backpressure error and the job is not accepted.
func (q *Queue) Enqueue(topic string, maxResults int) (Job, error) {
	job := Job{
		ID:         uuid.New().String(),
		Topic:      topic,
		MaxResults: maxResults,
		EnqueuedAt: time.Now().UTC(),
	}

	select {
	case q.jobs <- job:
		q.collector.JobEnqueued()
		q.logger.Debug("job enqueued",
			logging.String("job_id", job.ID),
			logging.String("topic", job.Topic),
			logging.Int("depth", len(q.jobs)))
		return job, nil
	default:
		return Job{}, errors.BackpressureError(q.capacity).
			WithContext("topic", topic)
	}
}

// Depth reports the number of jobs waiting in the buffer.
func (q *Queue) Depth() int {
	return len(q.jobs)
}

// Start launches the worker pool. Workers run until Shutdown closes the
// queue or ctx is cancelled.
func (q *Queue) Start(ctx context.Context) {
	q.group = &errgroup.Group{}
	for i := 0; i < q.workers; i++ {
		worker := i
		q.group.Go(func() error {
			return q.run(ctx, worker)
		})
	}
	q.logger.Info("worker pool started",
		logging.Int("workers", q.workers),
		logging.Int("capacity", q.capacity))
}

// Shutdown stops accepting jobs, drains the buffer, and waits for the
// workers to finish or for ctx to expire.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.closeOnce.Do(func() { close(q.jobs) })
	if q.group == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- q.group.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return errors.InternalError("queue shutdown timed out", ctx.Err())
	}
}

func (q *Queue) run(ctx context.Context, worker int) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case job, ok := <-q.jobs:
			if !ok {
				return nil
			}
			q.process(ctx, worker, job)
		}
	}
}

// process isolates handler panics so one poisoned job cannot take down
// the pool.
func (q *Queue) process(ctx context.Context, worker int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("job handler panicked", nil,
				logging.Int("worker", worker),
				logging.String("job_id", job.ID),
				logging.String("topic", job.Topic),
				logging.Any("panic", r))
		}
	}()

	jobCtx := context.WithValue(ctx, logging.ContextKeyJobID, job.ID)
	jobCtx = context.WithValue(jobCtx, logging.ContextKeyTopic, job.Topic)
	q.handler(jobCtx, job)
}
