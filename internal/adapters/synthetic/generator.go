// Package synthetic provides the deterministic fallback post generator.
// It satisfies the same capability set as the live adapters and is selected
// by the resilient decorator when every live fetch attempt fails, so the
// pipeline always produces a result. Results sourced from it are flagged
// synthetic, never passed off as live data.
package synthetic

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"social-analytics/internal/adapters"
	"social-analytics/internal/models"
)

// Platform is the registry name of the generator variant.
const Platform = "synthetic"

const defaultCount = 120

// Generator deterministically synthesizes plausible posts from a topic
// string. The same topic and count always produce the same posts.
type Generator struct{}

// New creates a synthetic post generator.
func New() *Generator {
	return &Generator{}
}

// FetchPosts synthesizes opts.MaxResults posts for the query. It never fails.
func (g *Generator) FetchPosts(_ context.Context, query string, opts adapters.FetchOptions) ([]models.SocialPost, error) {
	count := opts.MaxResults
	if count <= 0 {
		count = defaultCount
	}

	rng := rand.New(rand.NewSource(seed(query, count)))
	createdAt := time.Now().UTC().Truncate(time.Minute)

	posts := make([]models.SocialPost, 0, count)
	for i := 0; i < count; i++ {
		var text string
		switch i % 3 {
		case 0:
			text = fmt.Sprintf("%s is amazing for developers #%d", query, i)
		case 1:
			text = fmt.Sprintf("I am unsure about %s future #%d", query, i)
		default:
			text = fmt.Sprintf("%s is overhyped and risky #%d", query, i)
		}

		posts = append(posts, models.SocialPost{
			ID:             fmt.Sprintf("synthetic_%d", i),
			Text:           text,
			AuthorID:       fmt.Sprintf("user_%d", i%10),
			AuthorUsername: fmt.Sprintf("user%d", i%10),
			CreatedAt:      createdAt.Add(-time.Duration(i) * time.Minute),
			Likes:          rng.Intn(100),
			Retweets:       rng.Intn(50),
			Replies:        rng.Intn(20),
			Language:       "en",
			Hashtags:       adapters.ExtractHashtags(text),
			Mentions:       adapters.ExtractMentions(text),
			URLs:           adapters.ExtractURLs(text),
		})
	}

	return posts, nil
}

// ValidateCredentials always succeeds; the generator needs none.
func (g *Generator) ValidateCredentials(_ context.Context) bool {
	return true
}

// PlatformName returns the platform identifier.
func (g *Generator) PlatformName() string {
	return Platform
}

// seed derives a stable seed from topic and count so generated engagement
// numbers are reproducible in tests.
func seed(query string, count int) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(query))
	return int64(h.Sum64()) + int64(count)
}

// Factory creates synthetic generators for the adapter registry.
type Factory struct{}

// Create builds a generator; the config is ignored.
func (f *Factory) Create(_ adapters.Config) (adapters.SourceAdapter, error) {
	return New(), nil
}

// GetType returns the platform identifier.
func (f *Factory) GetType() string {
	return Platform
}
