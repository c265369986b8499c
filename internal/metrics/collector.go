// Package metrics provides the pipeline's counters: cache hits and misses,
// jobs enqueued, batches processed, and the running mean batch size.
// Counters are safe under concurrent increment from workers and the
// coordinator; Snapshot returns a point-in-time read with no cross-counter
// consistency guarantee.
package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector tracks pipeline counters. Values are kept in atomics for cheap
// snapshots and mirrored into a private Prometheus registry for scraping.
type Collector struct {
	cacheHits        atomic.Int64
	cacheMisses      atomic.Int64
	jobsEnqueued     atomic.Int64
	batchesProcessed atomic.Int64
	batchSizeTotal   atomic.Int64

	registry *prometheus.Registry

	promCacheHits        prometheus.Counter
	promCacheMisses      prometheus.Counter
	promJobsEnqueued     prometheus.Counter
	promBatchesProcessed prometheus.Counter
	promBatchSize        prometheus.Histogram
}

// Snapshot is a point-in-time view of all counters.
type Snapshot struct {
	CacheHits        int64   `json:"cache_hits"`
	CacheMisses      int64   `json:"cache_misses"`
	JobsEnqueued     int64   `json:"jobs_enqueued"`
	BatchesProcessed int64   `json:"batches_processed"`
	AvgBatchSize     float64 `json:"avg_batch_size"`
}

// NewCollector creates a collector with its own Prometheus registry so
// multiple instances can coexist in tests.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
	}

	c.promCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "social_analytics_cache_hits_total",
		Help: "Number of requests served from the result cache",
	})
	c.promCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "social_analytics_cache_misses_total",
		Help: "Number of requests that found no ready cache entry",
	})
	c.promJobsEnqueued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "social_analytics_jobs_enqueued_total",
		Help: "Number of analysis jobs submitted to the queue",
	})
	c.promBatchesProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "social_analytics_batches_processed_total",
		Help: "Number of analysis batches processed by workers",
	})
	c.promBatchSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "social_analytics_batch_size",
		Help:    "Posts per analysis batch",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	c.registry.MustRegister(
		c.promCacheHits,
		c.promCacheMisses,
		c.promJobsEnqueued,
		c.promBatchesProcessed,
		c.promBatchSize,
	)

	return c
}

// CacheHit records a request served from cache.
func (c *Collector) CacheHit() {
	c.cacheHits.Add(1)
	c.promCacheHits.Inc()
}

// CacheMiss records a request that found no ready entry.
func (c *Collector) CacheMiss() {
	c.cacheMisses.Add(1)
	c.promCacheMisses.Inc()
}

// JobEnqueued records an analysis job submitted to the queue.
func (c *Collector) JobEnqueued() {
	c.jobsEnqueued.Add(1)
	c.promJobsEnqueued.Inc()
}

// BatchProcessed records one analyzed batch of the given size.
func (c *Collector) BatchProcessed(size int) {
	c.batchesProcessed.Add(1)
	c.batchSizeTotal.Add(int64(size))
	c.promBatchesProcessed.Inc()
	c.promBatchSize.Observe(float64(size))
}

// Snapshot returns a point-in-time view of the counters.
func (c *Collector) Snapshot() Snapshot {
	snap := Snapshot{
		CacheHits:        c.cacheHits.Load(),
		CacheMisses:      c.cacheMisses.Load(),
		JobsEnqueued:     c.jobsEnqueued.Load(),
		BatchesProcessed: c.batchesProcessed.Load(),
	}

	if snap.BatchesProcessed > 0 {
		snap.AvgBatchSize = float64(c.batchSizeTotal.Load()) / float64(snap.BatchesProcessed)
	}

	return snap
}

// Handler serves the Prometheus exposition format for this collector.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
