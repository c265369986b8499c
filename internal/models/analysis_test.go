package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTopic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "GoLang", "golang"},
		{"trims whitespace", "  #AI  ", "#ai"},
		{"keeps hashtag prefix", "#AI", "#ai"},
		{"already normalized", "rust", "rust"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTopic(tt.input))
		})
	}
}

func TestNewAnalysisRequest(t *testing.T) {
	req := NewAnalysisRequest("  #AI ", 50)

	assert.Equal(t, "#ai", req.Topic)
	assert.Equal(t, 50, req.MaxResults)
	assert.False(t, req.RequestedAt.IsZero())
}

func TestSentimentDistribution(t *testing.T) {
	dist := SentimentDistribution{Positive: 3, Neutral: 2, Negative: 1}
	assert.Equal(t, 6, dist.Total())

	dist.Add(SentimentDistribution{Positive: 1, Negative: 2})
	assert.Equal(t, SentimentDistribution{Positive: 4, Neutral: 2, Negative: 3}, dist)
	assert.Equal(t, 9, dist.Total())
}

func TestSocialPost_Valid(t *testing.T) {
	assert.True(t, SocialPost{ID: "1", Text: "hello"}.Valid())
	assert.False(t, SocialPost{Text: "missing id"}.Valid())
	assert.False(t, SocialPost{ID: "1"}.Valid())
	assert.False(t, SocialPost{}.Valid())
}
