// Package analytics provides the pure analysis engine: sentiment
// classification and keyword ranking over batches of post texts. It holds
// no shared state and is safe for concurrent use from multiple workers.
package analytics

import (
	"math"
	"regexp"
	"strings"

	"social-analytics/internal/models"
)

// Compound score thresholds for the three-way classification.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// normalization constant for the compound score, sum/sqrt(sum^2+alpha)
const compoundAlpha = 15.0

var wordPattern = regexp.MustCompile(`[a-zA-Z']+`)

// valence maps sentiment-bearing words to their intensity. Scores follow
// the usual valence-lexicon convention: roughly -4 (most negative) to
// +4 (most positive).
var valence = map[string]float64{
	"amazing":       2.9,
	"awesome":       3.1,
	"brilliant":     2.8,
	"excellent":     2.7,
	"fantastic":     2.6,
	"great":         3.1,
	"good":          1.9,
	"love":          3.2,
	"loved":         2.9,
	"happy":         2.7,
	"excited":       2.3,
	"impressive":    2.3,
	"useful":        1.9,
	"helpful":       1.8,
	"win":           2.8,
	"wins":          2.7,
	"best":          3.2,
	"better":        1.9,
	"promising":     1.6,
	"solid":         1.5,
	"fast":          1.3,
	"beautiful":     2.9,
	"perfect":       2.7,
	"nice":          1.8,
	"like":          1.5,
	"recommend":     1.7,
	"thanks":        1.9,
	"bad":           -2.5,
	"worst":         -3.1,
	"worse":         -2.1,
	"terrible":      -2.1,
	"horrible":      -2.5,
	"awful":         -2.0,
	"hate":          -2.7,
	"hated":         -2.4,
	"broken":        -1.9,
	"bug":           -1.4,
	"bugs":          -1.6,
	"crash":         -1.9,
	"slow":          -1.2,
	"overhyped":     -1.8,
	"hype":          -0.9,
	"risky":         -1.5,
	"risk":          -1.1,
	"scam":          -2.6,
	"useless":       -2.2,
	"disappointed":  -2.0,
	"disappointing": -2.1,
	"fail":          -2.3,
	"failed":        -2.0,
	"failure":       -2.2,
	"wrong":         -1.6,
	"problem":       -1.4,
	"problems":      -1.6,
	"annoying":      -1.8,
	"angry":         -2.3,
	"sad":           -2.1,
	"fear":          -1.8,
	"avoid":         -1.2,
	"never":         -1.3,
	"doubt":         -1.3,
}

// negations flip the valence of the word that follows them.
var negations = map[string]struct{}{
	"not":    {},
	"no":     {},
	"never":  {},
	"isn't":  {},
	"wasn't": {},
	"don't":  {},
	"won't":  {},
	"can't":  {},
	"cannot": {},
}

// Compound scores a single text into [-1, 1].
func Compound(text string) float64 {
	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)

	var sum float64
	for i, token := range tokens {
		score, ok := valence[token]
		if !ok {
			continue
		}
		if i > 0 {
			if _, negated := negations[tokens[i-1]]; negated {
				score = -score
			}
		}
		sum += score
	}

	if sum == 0 {
		return 0
	}
	return sum / math.Sqrt(sum*sum+compoundAlpha)
}

// Classify buckets a single text as positive, neutral or negative.
func Classify(text string) models.SentimentDistribution {
	var dist models.SentimentDistribution
	switch score := Compound(text); {
	case score >= positiveThreshold:
		dist.Positive = 1
	case score <= negativeThreshold:
		dist.Negative = 1
	default:
		dist.Neutral = 1
	}
	return dist
}

// AnalyzeSentiments classifies every text and returns the distribution.
// The invariant Positive+Neutral+Negative == len(texts) always holds.
func AnalyzeSentiments(texts []string) models.SentimentDistribution {
	var dist models.SentimentDistribution
	for _, text := range texts {
		dist.Add(Classify(text))
	}
	return dist
}
