// Package twitter implements the source adapter for the official
// Twitter/X API v2 recent search endpoint.
package twitter

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"

	"social-analytics/internal/adapters"
	"social-analytics/internal/common/errors"
	"social-analytics/internal/models"
)

// Platform is the registry name of this adapter.
const Platform = "twitter"

const (
	defaultHost    = "https://api.twitter.com"
	defaultTimeout = 10 * time.Second

	// Recent search page bounds imposed by the API
	minPageSize = 10
	maxPageSize = 100
)

// authorizer attaches the app-only bearer token to API requests.
type authorizer struct {
	token string
}

func (a authorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// Adapter fetches tweets through the API v2 recent search endpoint and
// normalizes them into SocialPost records.
type Adapter struct {
	client *twitter.Client
	token  string
}

// New creates a Twitter adapter from config. An empty bearer token is
// allowed at construction time; fetches will fail with an authentication
// error until one is configured.
func New(config adapters.Config) *Adapter {
	host := config.BaseURL
	if host == "" {
		host = defaultHost
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Adapter{
		token: config.BearerToken,
		client: &twitter.Client{
			Authorizer: authorizer{token: config.BearerToken},
			Client:     &http.Client{Timeout: timeout},
			Host:       host,
		},
	}
}

// FetchPosts searches recent tweets matching the query.
func (a *Adapter) FetchPosts(ctx context.Context, query string, opts adapters.FetchOptions) ([]models.SocialPost, error) {
	if a.token == "" {
		return nil, errors.AuthError("twitter bearer token is not configured")
	}

	searchOpts := twitter.TweetRecentSearchOpts{
		MaxResults: clampPageSize(opts.MaxResults),
		TweetFields: []twitter.TweetField{
			twitter.TweetFieldCreatedAt,
			twitter.TweetFieldPublicMetrics,
			twitter.TweetFieldLanguage,
			twitter.TweetFieldEntities,
			twitter.TweetFieldAuthorID,
		},
		Expansions: []twitter.Expansion{twitter.ExpansionAuthorID},
		UserFields: []twitter.UserField{twitter.UserFieldUserName},
	}
	if !opts.StartTime.IsZero() {
		searchOpts.StartTime = opts.StartTime
	}
	if !opts.EndTime.IsZero() {
		searchOpts.EndTime = opts.EndTime
	}

	resp, err := a.client.TweetRecentSearch(ctx, query, searchOpts)
	if err != nil {
		return nil, mapAPIError(err)
	}

	usernames := make(map[string]string)
	if resp.Raw.Includes != nil {
		for _, user := range resp.Raw.Includes.Users {
			usernames[user.ID] = user.UserName
		}
	}

	posts := make([]models.SocialPost, 0, len(resp.Raw.Tweets))
	for _, tweet := range resp.Raw.Tweets {
		if tweet == nil {
			continue
		}
		posts = append(posts, normalizeTweet(tweet, usernames[tweet.AuthorID]))
	}

	return posts, nil
}

// ValidateCredentials reports whether a bearer token is configured.
func (a *Adapter) ValidateCredentials(_ context.Context) bool {
	return a.token != ""
}

// PlatformName returns the platform identifier.
func (a *Adapter) PlatformName() string {
	return Platform
}

// normalizeTweet converts an API v2 tweet into the canonical post record.
// Structured entities are preferred; a text scan fills in when they are
// absent.
func normalizeTweet(tweet *twitter.TweetObj, username string) models.SocialPost {
	if username == "" {
		username = "unknown"
	}

	createdAt, err := time.Parse(time.RFC3339, tweet.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	post := models.SocialPost{
		ID:             tweet.ID,
		Text:           tweet.Text,
		AuthorID:       tweet.AuthorID,
		AuthorUsername: username,
		CreatedAt:      createdAt,
		Language:       tweet.Language,
		RawData: map[string]interface{}{
			"id":         tweet.ID,
			"author_id":  tweet.AuthorID,
			"created_at": tweet.CreatedAt,
			"lang":       tweet.Language,
		},
	}

	if tweet.PublicMetrics != nil {
		post.Likes = tweet.PublicMetrics.Likes
		post.Retweets = tweet.PublicMetrics.Retweets
		post.Replies = tweet.PublicMetrics.Replies
	}

	if tweet.Entities != nil {
		post.Hashtags = make([]string, 0, len(tweet.Entities.HashTags))
		for _, tag := range tweet.Entities.HashTags {
			post.Hashtags = append(post.Hashtags, strings.ToLower(tag.Tag))
		}
		post.Mentions = make([]string, 0, len(tweet.Entities.Mentions))
		for _, mention := range tweet.Entities.Mentions {
			post.Mentions = append(post.Mentions, strings.ToLower(mention.UserName))
		}
		post.URLs = make([]string, 0, len(tweet.Entities.URLs))
		for _, u := range tweet.Entities.URLs {
			if u.ExpandedURL != "" {
				post.URLs = append(post.URLs, u.ExpandedURL)
			} else {
				post.URLs = append(post.URLs, u.URL)
			}
		}
	} else {
		post.Hashtags = adapters.ExtractHashtags(tweet.Text)
		post.Mentions = adapters.ExtractMentions(tweet.Text)
		post.URLs = adapters.ExtractURLs(tweet.Text)
	}

	return post
}

// mapAPIError translates library errors into the adapter error taxonomy.
func mapAPIError(err error) error {
	var apiErr *twitter.ErrorResponse
	if stderrors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.AuthError("twitter rejected the bearer token").
				WithContext("status", apiErr.StatusCode)
		case http.StatusTooManyRequests:
			return errors.RateLimitError(Platform)
		default:
			return errors.TransportError("twitter search request failed", err).
				WithContext("status", apiErr.StatusCode)
		}
	}
	return errors.TransportError("twitter search request failed", err)
}

func clampPageSize(max int) int {
	if max <= 0 {
		return maxPageSize
	}
	if max < minPageSize {
		return minPageSize
	}
	if max > maxPageSize {
		return maxPageSize
	}
	return max
}

// Factory creates Twitter adapters for the adapter registry.
type Factory struct{}

// Create builds a Twitter adapter from config.
func (f *Factory) Create(config adapters.Config) (adapters.SourceAdapter, error) {
	return New(config), nil
}

// GetType returns the platform identifier.
func (f *Factory) GetType() string {
	return Platform
}
