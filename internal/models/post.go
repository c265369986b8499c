package models

import "time"

// SocialPost is the canonical post record every source adapter normalizes
// into. Instances are immutable once constructed; the pipeline and cache
// share them without copying.
type SocialPost struct {
	ID             string                 `json:"id"`
	Text           string                 `json:"text"`
	AuthorID       string                 `json:"author_id"`
	AuthorUsername string                 `json:"author_username"`
	CreatedAt      time.Time              `json:"created_at"`
	Likes          int                    `json:"likes"`
	Retweets       int                    `json:"retweets"`
	Replies        int                    `json:"replies"`
	Language       string                 `json:"language,omitempty"`
	Hashtags       []string               `json:"hashtags"`
	Mentions       []string               `json:"mentions"`
	URLs           []string               `json:"urls"`
	RawData        map[string]interface{} `json:"raw_data,omitempty"`
}

// Valid reports whether the post carries the minimum fields the pipeline
// needs. Invalid posts are skipped and counted, never analyzed.
func (p SocialPost) Valid() bool {
	return p.ID != "" && p.Text != ""
}
