package mood

import (
	"errors"
	"time"
)

// Observation is one recorded mood data point. Immutable once created.
type Observation struct {
	Timestamp  time.Time `json:"timestamp"`
	Emotion    Emotion   `json:"emotion"`
	Confidence float64   `json:"confidence"`
}

// TrendDirection is the three-way signal derived from recent observations.
type TrendDirection string

const (
	TrendImproving  TrendDirection = "improving"
	TrendConcerning TrendDirection = "concerning"
	TrendStable     TrendDirection = "stable"
)

// trendWindow is how many of the most recent observations feed the analysis.
const trendWindow = 10

// minTrendObservations is the floor below which no analysis is attempted.
const minTrendObservations = 3

// minDirectionObservations is the floor below which the direction defaults
// to stable rather than comparing window halves.
const minDirectionObservations = 5

// ErrInsufficientData signals that fewer than three observations exist.
var ErrInsufficientData = errors.New("not enough mood data")

// negativeEmotions is the set used for trend-direction scoring.
var negativeEmotions = map[Emotion]bool{
	Sad:     true,
	Angry:   true,
	Upset:   true,
	Anxious: true,
}

// TrendResult summarises the recent mood window.
type TrendResult struct {
	DominantMood Emotion         `json:"dominant_mood"`
	Direction    TrendDirection  `json:"trend"`
	Distribution map[Emotion]int `json:"mood_distribution"`
	EntryCount   int             `json:"entry_count"`
}

// Trend analyses the last ten observations (or all, if fewer). The dominant
// mood is the most frequent emotion in the window, ties broken by insertion
// order. The direction compares negative-emotion counts between the first
// and second half of the window; with an odd window the second half gets the
// extra element. Fewer than five observations in the window default to
// stable.
func Trend(observations []Observation) (TrendResult, error) {
	if len(observations) < minTrendObservations {
		return TrendResult{}, ErrInsufficientData
	}

	window := observations
	if len(window) > trendWindow {
		window = window[len(window)-trendWindow:]
	}

	distribution := make(map[Emotion]int, len(window))
	var order []Emotion
	for _, obs := range window {
		if _, seen := distribution[obs.Emotion]; !seen {
			order = append(order, obs.Emotion)
		}
		distribution[obs.Emotion]++
	}

	dominant := order[0]
	for _, e := range order[1:] {
		if distribution[e] > distribution[dominant] {
			dominant = e
		}
	}

	direction := TrendStable
	if len(window) >= minDirectionObservations {
		mid := len(window) / 2
		firstNegative := countNegative(window[:mid])
		secondNegative := countNegative(window[mid:])

		switch {
		case secondNegative < firstNegative:
			direction = TrendImproving
		case secondNegative > firstNegative:
			direction = TrendConcerning
		}
	}

	return TrendResult{
		DominantMood: dominant,
		Direction:    direction,
		Distribution: distribution,
		EntryCount:   len(window),
	}, nil
}

func countNegative(window []Observation) int {
	n := 0
	for _, obs := range window {
		if negativeEmotions[obs.Emotion] {
			n++
		}
	}
	return n
}
