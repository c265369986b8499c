package analytics

import "social-analytics/internal/models"

// Engine is the pure analysis contract the pipeline consumes. Analyze
// classifies every text and returns the full (untruncated) word frequency
// list so per-batch outputs can be merged before ranking.
type Engine interface {
	Analyze(texts []string) (models.SentimentDistribution, []models.WordCount)
}

// TextEngine is the lexicon-based Engine implementation.
type TextEngine struct{}

// NewEngine creates the default analysis engine.
func NewEngine() *TextEngine {
	return &TextEngine{}
}

// Analyze scores sentiment and extracts word frequencies for one batch.
func (e *TextEngine) Analyze(texts []string) (models.SentimentDistribution, []models.WordCount) {
	return AnalyzeSentiments(texts), ExtractWordFrequencies(texts, 0)
}
