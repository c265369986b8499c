package analytics

import (
	"regexp"
	"sort"
	"strings"

	"social-analytics/internal/models"
)

// DefaultTopWords bounds the ranked keyword list on a final result.
const DefaultTopWords = 50

var tokenPattern = regexp.MustCompile(`[a-zA-Z]{3,}`)

var stopwords = map[string]struct{}{
	"the": {}, "is": {}, "and": {}, "to": {}, "of": {}, "in": {},
	"for": {}, "on": {}, "with": {}, "a": {}, "an": {}, "this": {},
	"that": {}, "it": {}, "as": {}, "are": {},
}

// wordTally counts word occurrences while remembering first-seen order,
// which breaks frequency ties when ranking.
type wordTally struct {
	counts map[string]int
	order  []string
}

func newWordTally() *wordTally {
	return &wordTally{counts: make(map[string]int)}
}

func (t *wordTally) add(word string, count int) {
	if _, seen := t.counts[word]; !seen {
		t.order = append(t.order, word)
	}
	t.counts[word] += count
}

// ranked returns words by frequency descending; equal frequencies keep
// first-seen order. topN <= 0 returns everything.
func (t *wordTally) ranked(topN int) []models.WordCount {
	out := make([]models.WordCount, 0, len(t.order))
	for _, word := range t.order {
		out = append(out, models.WordCount{Word: word, Count: t.counts[word]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// ExtractWordFrequencies tokenizes the texts and returns word frequencies
// ranked descending, stopwords removed. topN <= 0 means unbounded.
func ExtractWordFrequencies(texts []string, topN int) []models.WordCount {
	tally := newWordTally()

	for _, text := range texts {
		for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
			if _, skip := stopwords[token]; skip {
				continue
			}
			tally.add(token, 1)
		}
	}

	return tally.ranked(topN)
}

// MergeWordCounts sums per-batch frequency lists into one ranking.
// Counts are summed first and ranked only after the final merge, so ties
// resolve by first appearance across the batch sequence.
func MergeWordCounts(batches [][]models.WordCount, topN int) []models.WordCount {
	tally := newWordTally()

	for _, batch := range batches {
		for _, wc := range batch {
			tally.add(wc.Word, wc.Count)
		}
	}

	return tally.ranked(topN)
}
