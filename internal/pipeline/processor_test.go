package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-analytics/internal/adapters"
	"social-analytics/internal/analytics"
	"social-analytics/internal/common/errors"
	"social-analytics/internal/metrics"
	"social-analytics/internal/models"
)

type stubFetcher struct {
	posts      []models.SocialPost
	provenance string
	err        error
	lastOpts   adapters.FetchOptions
}

func (s *stubFetcher) Fetch(_ context.Context, _ string, opts adapters.FetchOptions) ([]models.SocialPost, string, error) {
	s.lastOpts = opts
	return s.posts, s.provenance, s.err
}

func (s *stubFetcher) PlatformName() string { return "stub" }

func TestProcess(t *testing.T) {
	source := &stubFetcher{
		posts: []models.SocialPost{
			{ID: "1", Text: "golang is amazing for backend development"},
			{ID: "2", Text: "golang tooling feels overhyped and risky"},
			{ID: "3", Text: "thinking about golang generics today"},
		},
		provenance: models.SourceLive,
	}
	collector := metrics.NewCollector()
	p := NewProcessor(source, analytics.NewEngine(), 2, nil, collector)

	result, err := p.Process(context.Background(), "golang", 80)
	require.NoError(t, err)

	assert.Equal(t, "golang", result.Topic)
	assert.Equal(t, 3, result.TotalPosts)
	assert.Equal(t, 0, result.SkippedPosts)
	assert.Equal(t, models.SourceLive, result.Source)
	assert.Equal(t, 3, result.Sentiment.Total())
	assert.Equal(t, 80, source.lastOpts.MaxResults)
	assert.False(t, result.AnalyzedAt.IsZero())

	// "golang" appears in every post and must rank first
	require.NotEmpty(t, result.TopWords)
	assert.Equal(t, "golang", result.TopWords[0].Word)
	assert.Equal(t, 3, result.TopWords[0].Count)

	// 3 texts at batch size 2 means batches of 2 and 1
	snap := collector.Snapshot()
	assert.Equal(t, int64(2), snap.BatchesProcessed)
}

func TestProcess_SkipsInvalidPosts(t *testing.T) {
	source := &stubFetcher{
		posts: []models.SocialPost{
			{ID: "1", Text: "valid post about testing"},
			{ID: "", Text: "missing id"},
			{ID: "3", Text: ""},
		},
		provenance: models.SourceLive,
	}
	p := NewProcessor(source, analytics.NewEngine(), 10, nil, metrics.NewCollector())

	result, err := p.Process(context.Background(), "testing", 50)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalPosts)
	assert.Equal(t, 2, result.SkippedPosts)
	assert.Equal(t, 1, result.Sentiment.Total())
}

func TestProcess_EmptyFetch(t *testing.T) {
	source := &stubFetcher{provenance: models.SourceSynthetic}
	p := NewProcessor(source, analytics.NewEngine(), 10, nil, metrics.NewCollector())

	result, err := p.Process(context.Background(), "quiet", 50)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalPosts)
	assert.Equal(t, 0, result.Sentiment.Total())
	assert.Empty(t, result.TopWords)
	assert.Equal(t, models.SourceSynthetic, result.Source)
}

func TestProcess_FetchError(t *testing.T) {
	source := &stubFetcher{err: errors.TransportError("upstream unavailable", nil)}
	p := NewProcessor(source, analytics.NewEngine(), 10, nil, metrics.NewCollector())

	result, err := p.Process(context.Background(), "golang", 50)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsType(err, errors.ErrTypeTransport))
}

func TestProcess_BatchingMatchesUnbatched(t *testing.T) {
	posts := []models.SocialPost{
		{ID: "1", Text: "alpha beta gamma"},
		{ID: "2", Text: "beta gamma delta"},
		{ID: "3", Text: "gamma delta epsilon"},
		{ID: "4", Text: "delta epsilon alpha"},
		{ID: "5", Text: "epsilon alpha beta"},
	}

	run := func(batchSize int) *models.AnalysisResult {
		source := &stubFetcher{posts: posts, provenance: models.SourceLive}
		p := NewProcessor(source, analytics.NewEngine(), batchSize, nil, metrics.NewCollector())
		result, err := p.Process(context.Background(), "letters", 50)
		require.NoError(t, err)
		return result
	}

	batched := run(2)
	unbatched := run(100)
	assert.Equal(t, unbatched.Sentiment, batched.Sentiment)
	assert.Equal(t, unbatched.TopWords, batched.TopWords)
}
