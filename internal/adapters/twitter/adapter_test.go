package twitter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-analytics/internal/adapters"
	"social-analytics/internal/common/errors"
)

func TestFetchPosts_MissingToken(t *testing.T) {
	a := New(adapters.Config{})

	_, err := a.FetchPosts(context.Background(), "golang", adapters.FetchOptions{MaxResults: 10})

	assert.True(t, errors.IsType(err, errors.ErrTypeAuth))
	assert.False(t, a.ValidateCredentials(context.Background()))
}

func TestFetchPosts_NormalizesSearchResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [
				{
					"id": "100",
					"text": "Big release for #GoLang today, thanks @rob https://go.dev",
					"author_id": "9",
					"created_at": "2024-05-01T12:00:00.000Z",
					"lang": "en",
					"public_metrics": {"like_count": 12, "retweet_count": 3, "reply_count": 1},
					"entities": {
						"hashtags": [{"tag": "GoLang"}],
						"mentions": [{"username": "Rob"}],
						"urls": [{"url": "https://t.co/x", "expanded_url": "https://go.dev"}]
					}
				}
			],
			"includes": {"users": [{"id": "9", "name": "Rob", "username": "rob"}]},
			"meta": {"result_count": 1}
		}`))
	}))
	defer srv.Close()

	a := New(adapters.Config{BearerToken: "test-token", BaseURL: srv.URL})

	posts, err := a.FetchPosts(context.Background(), "golang", adapters.FetchOptions{MaxResults: 10})

	require.NoError(t, err)
	require.Len(t, posts, 1)

	post := posts[0]
	assert.Equal(t, "100", post.ID)
	assert.Equal(t, "9", post.AuthorID)
	assert.Equal(t, "rob", post.AuthorUsername)
	assert.Equal(t, 12, post.Likes)
	assert.Equal(t, 3, post.Retweets)
	assert.Equal(t, 1, post.Replies)
	assert.Equal(t, "en", post.Language)
	assert.Equal(t, []string{"golang"}, post.Hashtags)
	assert.Equal(t, []string{"rob"}, post.Mentions)
	assert.Equal(t, []string{"https://go.dev"}, post.URLs)
	assert.Equal(t, 2024, post.CreatedAt.Year())
}

func TestFetchPosts_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantType errors.ErrorType
	}{
		{"unauthorized", http.StatusUnauthorized, errors.ErrTypeAuth},
		{"forbidden", http.StatusForbidden, errors.ErrTypeAuth},
		{"throttled", http.StatusTooManyRequests, errors.ErrTypeRateLimit},
		{"server error", http.StatusInternalServerError, errors.ErrTypeTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"title": "error", "detail": "upstream error"}`))
			}))
			defer srv.Close()

			a := New(adapters.Config{BearerToken: "test-token", BaseURL: srv.URL})

			_, err := a.FetchPosts(context.Background(), "golang", adapters.FetchOptions{MaxResults: 10})

			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.wantType), "got %v", err)
		})
	}
}

func TestNormalizeTweet_WithoutEntities(t *testing.T) {
	tweet := &twitter.TweetObj{
		ID:        "7",
		Text:      "shipping #rust crates, ping @ferris",
		AuthorID:  "3",
		CreatedAt: "2024-05-01T12:00:00Z",
	}

	post := normalizeTweet(tweet, "")

	assert.Equal(t, "unknown", post.AuthorUsername)
	assert.Equal(t, []string{"rust"}, post.Hashtags)
	assert.Equal(t, []string{"ferris"}, post.Mentions)
	assert.Empty(t, post.URLs)
	assert.Zero(t, post.Likes)
}

func TestNormalizeTweet_BadTimestamp(t *testing.T) {
	tweet := &twitter.TweetObj{ID: "7", Text: "hi", CreatedAt: "not-a-time"}

	post := normalizeTweet(tweet, "someone")

	assert.True(t, post.CreatedAt.IsZero())
}

func TestClampPageSize(t *testing.T) {
	tests := []struct {
		input int
		want  int
	}{
		{0, 100},
		{-1, 100},
		{5, 10},
		{50, 50},
		{100, 100},
		{500, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, clampPageSize(tt.input))
	}
}

func TestFactory(t *testing.T) {
	f := &Factory{}

	assert.Equal(t, "twitter", f.GetType())

	adapter, err := f.Create(adapters.Config{BearerToken: "tok", Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "twitter", adapter.PlatformName())
	assert.True(t, adapter.ValidateCredentials(context.Background()))
}
