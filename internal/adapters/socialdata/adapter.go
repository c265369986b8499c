// Package socialdata implements the source adapter for the
// SocialData.tools API, an aggregator exposing X/Twitter data in the
// legacy v1.1 tweet shape.
package socialdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"social-analytics/internal/adapters"
	"social-analytics/internal/common/errors"
	"social-analytics/internal/models"
)

// Platform is the registry name of this adapter.
const Platform = "socialdata"

const (
	defaultBaseURL = "https://api.socialdata.tools/twitter"
	defaultTimeout = 10 * time.Second

	// Tweet timestamps arrive in the legacy v1.1 format
	createdAtLayout = "Mon Jan 02 15:04:05 -0700 2006"
)

// Adapter fetches tweets through the SocialData search endpoint.
type Adapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates a SocialData adapter from config.
func New(config adapters.Config) *Adapter {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Adapter{
		apiKey:  config.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// searchResponse mirrors the SocialData search payload.
type searchResponse struct {
	Tweets []rawTweet `json:"tweets"`
}

type rawTweet struct {
	IDStr        string `json:"id_str"`
	FullText     string `json:"full_text"`
	Text         string `json:"text"`
	CreatedAt    string `json:"created_at"`
	Lang         string `json:"lang"`
	LikeCount    int    `json:"favorite_count"`
	RetweetCount int    `json:"retweet_count"`
	ReplyCount   int    `json:"reply_count"`
	User         struct {
		IDStr      string `json:"id_str"`
		ScreenName string `json:"screen_name"`
	} `json:"user"`
	Entities struct {
		Hashtags []struct {
			Text string `json:"text"`
		} `json:"hashtags"`
		UserMentions []struct {
			ScreenName string `json:"screen_name"`
		} `json:"user_mentions"`
		URLs []struct {
			ExpandedURL string `json:"expanded_url"`
			URL         string `json:"url"`
		} `json:"urls"`
	} `json:"entities"`
}

// FetchPosts searches recent tweets matching the query.
func (a *Adapter) FetchPosts(ctx context.Context, query string, opts adapters.FetchOptions) ([]models.SocialPost, error) {
	if a.apiKey == "" {
		return nil, errors.AuthError("socialdata api key is not configured")
	}

	endpoint := fmt.Sprintf("%s/search?%s", a.baseURL, url.Values{
		"query": {query},
		"type":  {"Latest"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.TransportError("building socialdata request", err)
	}
	req.Header.Add("Authorization", "Bearer "+a.apiKey)
	req.Header.Add("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, errors.TransportError("socialdata search request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, statusError(resp.StatusCode, string(body))
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, errors.TransportError("decoding socialdata response", err)
	}

	max := opts.MaxResults
	if max <= 0 || max > len(search.Tweets) {
		max = len(search.Tweets)
	}

	posts := make([]models.SocialPost, 0, max)
	for _, tweet := range search.Tweets[:max] {
		posts = append(posts, normalizeTweet(tweet))
	}

	return posts, nil
}

// ValidateCredentials reports whether an API key is configured.
func (a *Adapter) ValidateCredentials(_ context.Context) bool {
	return a.apiKey != ""
}

// PlatformName returns the platform identifier.
func (a *Adapter) PlatformName() string {
	return Platform
}

func normalizeTweet(tweet rawTweet) models.SocialPost {
	text := tweet.FullText
	if text == "" {
		text = tweet.Text
	}

	createdAt, err := time.Parse(createdAtLayout, tweet.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	username := tweet.User.ScreenName
	if username == "" {
		username = "unknown"
	}

	post := models.SocialPost{
		ID:             tweet.IDStr,
		Text:           text,
		AuthorID:       tweet.User.IDStr,
		AuthorUsername: username,
		CreatedAt:      createdAt,
		Likes:          tweet.LikeCount,
		Retweets:       tweet.RetweetCount,
		Replies:        tweet.ReplyCount,
		Language:       tweet.Lang,
		RawData: map[string]interface{}{
			"id_str":     tweet.IDStr,
			"created_at": tweet.CreatedAt,
			"lang":       tweet.Lang,
		},
	}

	if len(tweet.Entities.Hashtags) > 0 || len(tweet.Entities.UserMentions) > 0 || len(tweet.Entities.URLs) > 0 {
		post.Hashtags = make([]string, 0, len(tweet.Entities.Hashtags))
		for _, tag := range tweet.Entities.Hashtags {
			post.Hashtags = append(post.Hashtags, strings.ToLower(tag.Text))
		}
		post.Mentions = make([]string, 0, len(tweet.Entities.UserMentions))
		for _, mention := range tweet.Entities.UserMentions {
			post.Mentions = append(post.Mentions, strings.ToLower(mention.ScreenName))
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
		post.Hashtags = adapters.ExtractHashtags(text)
		post.Mentions = adapters.ExtractMentions(text)
		post.URLs = adapters.ExtractURLs(text)
	}

	return post
}

func statusError(status int, body string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusPaymentRequired:
		return errors.AuthError("socialdata rejected the api key").
			WithContext("status", status)
	case http.StatusTooManyRequests:
		return errors.RateLimitError(Platform)
	default:
		return errors.TransportError(
			fmt.Sprintf("socialdata returned status %d", status), nil).
			WithContext("body", body)
	}
}

// Factory creates SocialData adapters for the adapter registry.
type Factory struct{}

// Create builds a SocialData adapter from config.
func (f *Factory) Create(config adapters.Config) (adapters.SourceAdapter, error) {
	return New(config), nil
}

// GetType returns the platform identifier.
func (f *Factory) GetType() string {
	return Platform
}
