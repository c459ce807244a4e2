package mood

import "context"

// LabelScore is one entry of the probability distribution a scorer returns
// over its native label vocabulary.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Scorer is the abstract classification capability the pipeline depends on.
// Implementations return a distribution over their native emotion labels;
// the detector maps those onto the fixed Emotion set. The concrete scoring
// engine is swappable without touching the pipeline.
type Scorer interface {
	Score(ctx context.Context, text string) ([]LabelScore, error)
}

// SentimentScorer is the secondary intensity query: a coarse
// positive/negative/neutral judgement with a score. It is exposed separately
// from emotion classification and not combined into the main decision.
type SentimentScorer interface {
	Sentiment(ctx context.Context, text string) (SentimentResult, error)
}

// SentimentResult is the outcome of the intensity query.
type SentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NeutralSentiment is the degraded result when the sentiment backend is
// unavailable or errors.
func NeutralSentiment() SentimentResult {
	return SentimentResult{Label: "neutral", Score: 0.5}
}
