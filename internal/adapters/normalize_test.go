package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single tag", "loving #GoLang today", []string{"golang"}},
		{"multiple tags", "#AI and #ml are everywhere", []string{"ai", "ml"}},
		{"no tags", "nothing to see here", []string{}},
		{"tag with digits", "release #go124 is out", []string{"go124"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHashtags(tt.text))
		})
	}
}

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single mention", "thanks @GopherCon", []string{"gophercon"}},
		{"multiple mentions", "cc @alice and @Bob", []string{"alice", "bob"}},
		{"no mentions", "plain text", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMentions(tt.text))
		})
	}
}

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"https url", "read https://example.com/post today", []string{"https://example.com/post"}},
		{"http url", "see http://example.org", []string{"http://example.org"}},
		{"no urls", "nothing linked", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractURLs(tt.text))
		})
	}
}
