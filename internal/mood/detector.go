package mood

import (
	"context"
	"strings"

	logx "github.com/mindmate-ai/server/pkg/logger"
)

// Classification is the result of running a message through the detector.
type Classification struct {
	Emotion    Emotion      `json:"emotion"`
	Confidence float64      `json:"confidence"`
	RawScores  []LabelScore `json:"raw_scores"`
}

// neutralClassification is the degraded result for empty input or a failing
// scorer. Confidence zero signals "no evidence", not "certainly normal".
func neutralClassification() Classification {
	return Classification{Emotion: Normal, Confidence: 0, RawScores: []LabelScore{}}
}

// Detector classifies message text into the fixed emotion set by delegating
// to a black-box Scorer. It never returns an error to the caller: any scorer
// failure degrades to the neutral classification so a broken model cannot
// break a conversation.
type Detector struct {
	scorer    Scorer
	sentiment SentimentScorer
}

// NewDetector builds a detector. Either dependency may be nil, in which case
// the corresponding query always returns its degraded result.
func NewDetector(scorer Scorer, sentiment SentimentScorer) *Detector {
	return &Detector{scorer: scorer, sentiment: sentiment}
}

// Classify maps text to an emotion with a confidence score. Empty or
// whitespace-only text short-circuits to the neutral classification.
func (d *Detector) Classify(ctx context.Context, text string) Classification {
	if strings.TrimSpace(text) == "" || d.scorer == nil {
		return neutralClassification()
	}

	scores, err := d.scorer.Score(ctx, text)
	if err != nil {
		logx.Warn().Err(err).Msg("emotion scorer failed, degrading to neutral")
		return neutralClassification()
	}
	if len(scores) == 0 {
		return neutralClassification()
	}

	top := scores[0]
	for _, s := range scores[1:] {
		if s.Score > top.Score {
			top = s
		}
	}

	confidence := top.Score
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return Classification{
		Emotion:    MapNative(top.Label),
		Confidence: confidence,
		RawScores:  scores,
	}
}

// SentimentIntensity runs the secondary positive/negative/neutral query.
// Kept decoupled from Classify so a future version can blend the two
// signals without changing either contract.
func (d *Detector) SentimentIntensity(ctx context.Context, text string) SentimentResult {
	if strings.TrimSpace(text) == "" || d.sentiment == nil {
		return NeutralSentiment()
	}

	result, err := d.sentiment.Sentiment(ctx, text)
	if err != nil {
		logx.Warn().Err(err).Msg("sentiment scorer failed, degrading to neutral")
		return NeutralSentiment()
	}
	return result
}
