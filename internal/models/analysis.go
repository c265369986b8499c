package models

import (
	"strings"
	"time"
)

// Result provenance values. Synthetic results come from the deterministic
// fallback generator when every live fetch attempt failed.
const (
	SourceLive      = "live"
	SourceSynthetic = "synthetic"
)

// NormalizeTopic produces the canonical cache key for a topic:
// trimmed and lowercased.
func NormalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}

// AnalysisRequest describes one caller request. Transient; it lives only as
// long as the job it may spawn.
type AnalysisRequest struct {
	Topic       string    `json:"topic"`
	MaxResults  int       `json:"max_results"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewAnalysisRequest builds a request with a normalized topic.
func NewAnalysisRequest(topic string, maxResults int) AnalysisRequest {
	return AnalysisRequest{
		Topic:       NormalizeTopic(topic),
		MaxResults:  maxResults,
		RequestedAt: time.Now().UTC(),
	}
}

// SentimentDistribution holds per-class post counts.
// Invariant: Positive+Neutral+Negative equals the number of analyzed texts.
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Total returns the number of classified texts.
func (s SentimentDistribution) Total() int {
	return s.Positive + s.Neutral + s.Negative
}

// Add merges another distribution into this one.
func (s *SentimentDistribution) Add(other SentimentDistribution) {
	s.Positive += other.Positive
	s.Neutral += other.Neutral
	s.Negative += other.Negative
}

// WordCount is one ranked keyword with its frequency.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// AnalysisResult is the aggregate produced exactly once per job, then
// immutable. TopWords is ordered by frequency descending with ties broken
// by first-seen order during aggregation.
type AnalysisResult struct {
	Topic        string                `json:"topic"`
	TotalPosts   int                   `json:"total_posts"`
	SkippedPosts int                   `json:"skipped_posts,omitempty"`
	Sentiment    SentimentDistribution `json:"sentiment"`
	TopWords     []WordCount           `json:"top_words"`
	Source       string                `json:"source"`
	AnalyzedAt   time.Time             `json:"analyzed_at"`
}
