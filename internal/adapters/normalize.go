package adapters

import (
	"regexp"
	"strings"
)

// Text-scan extraction used when a platform response carries no structured
// entities. Tags and handles are lowercased; URLs are kept verbatim.
var (
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
	mentionPattern = regexp.MustCompile(`@(\w+)`)
	urlPattern     = regexp.MustCompile(`https?://[^\s]+`)
)

// ExtractHashtags returns the lowercased hashtag tokens in text, without
// the leading #.
func ExtractHashtags(text string) []string {
	return extractLower(hashtagPattern, text)
}

// ExtractMentions returns the lowercased mentioned handles in text, without
// the leading @.
func ExtractMentions(text string) []string {
	return extractLower(mentionPattern, text)
}

// ExtractURLs returns the URLs found in text.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

func extractLower(pattern *regexp.Regexp, text string) []string {
	matches := pattern.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.ToLower(m[1]))
	}
	return out
}
