// Package pipeline turns a job into an analysis result: fetch posts,
// validate them, analyze in batches, and merge the per-batch outputs.
package pipeline

import (
	"context"
	"time"

	"social-analytics/internal/adapters"
	"social-analytics/internal/analytics"
	"social-analytics/internal/common/logging"
	"social-analytics/internal/metrics"
	"social-analytics/internal/models"
)

// Fetcher is the source the processor pulls posts from. It is satisfied
// by adapters.Resilient.
type Fetcher interface {
	Fetch(ctx context.Context, query string, opts adapters.FetchOptions) ([]models.SocialPost, string, error)
	PlatformName() string
}

// Processor runs the fetch-analyze-merge sequence for one topic.
type Processor struct {
	source    Fetcher
	engine    analytics.Engine
	batchSize int
	topWords  int
	logger    logging.Logger
	collector *metrics.Collector
}

// NewProcessor builds a processor that analyzes posts in batches of
// batchSize and reports the analytics.DefaultTopWords highest-frequency
// words.
func NewProcessor(source Fetcher, engine analytics.Engine, batchSize int, logger logging.Logger, collector *metrics.Collector) *Processor {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Processor{
		source:    source,
		engine:    engine,
		batchSize: batchSize,
		topWords:  analytics.DefaultTopWords,
		logger:    logger,
		collector: collector,
	}
}

// Process fetches posts for topic and produces the merged analysis
// result. Posts failing validation are skipped and counted, never
// analyzed. An empty fetch still yields a result with zero counts.
func (p *Processor) Process(ctx context.Context, topic string, maxResults int) (*models.AnalysisResult, error) {
	log := p.logger.WithContext(ctx)

	posts, provenance, err := p.source.Fetch(ctx, topic, adapters.FetchOptions{MaxResults: maxResults})
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(posts))
	skipped := 0
	for _, post := range posts {
		if !post.Valid() {
			skipped++
			continue
		}
		texts = append(texts, post.Text)
	}
	if skipped > 0 {
		log.Warn("skipped invalid posts",
			logging.Int("skipped", skipped),
			logging.Int("fetched", len(posts)))
	}

	var sentiment models.SentimentDistribution
	batchWords := make([][]models.WordCount, 0, (len(texts)+p.batchSize-1)/p.batchSize)
	for _, batch := range p.partition(texts) {
		dist, words := p.engine.Analyze(batch)
		sentiment.Add(dist)
		batchWords = append(batchWords, words)
		p.collector.BatchProcessed(len(batch))
	}

	result := &models.AnalysisResult{
		Topic:        topic,
		TotalPosts:   len(texts),
		SkippedPosts: skipped,
		Sentiment:    sentiment,
		TopWords:     analytics.MergeWordCounts(batchWords, p.topWords),
		Source:       provenance,
		AnalyzedAt:   time.Now().UTC(),
	}

	log.Info("analysis completed",
		logging.String("platform", p.source.PlatformName()),
		logging.String("source", provenance),
		logging.Int("total_posts", result.TotalPosts),
		logging.Int("skipped_posts", result.SkippedPosts),
		logging.Int("batches", len(batchWords)))

	return result, nil
}

// partition splits texts into consecutive slices of at most batchSize,
// preserving order so merged tie-breaks stay deterministic.
func (p *Processor) partition(texts []string) [][]string {
	if len(texts) == 0 {
		return nil
	}
	size := p.batchSize
	if size <= 0 {
		size = len(texts)
	}

	batches := make([][]string, 0, (len(texts)+size-1)/size)
	for start := 0; start < len(texts); start += size {
		end := start + size
		if end > len(texts) {
			end = len(texts)
		}
		batches = append(batches, texts[start:end])
	}
	return batches
}
