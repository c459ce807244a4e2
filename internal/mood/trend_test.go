package mood

import (
	"errors"
	"testing"
	"time"
)

func observations(emotions ...Emotion) []Observation {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	obs := make([]Observation, len(emotions))
	for i, e := range emotions {
		obs[i] = Observation{Timestamp: base.Add(time.Duration(i) * time.Minute), Emotion: e, Confidence: 0.8}
	}
	return obs
}

func TestTrendInsufficientData(t *testing.T) {
	for n := 0; n < 3; n++ {
		emotions := make([]Emotion, n)
		for i := range emotions {
			emotions[i] = Normal
		}
		_, err := Trend(observations(emotions...))
		if !errors.Is(err, ErrInsufficientData) {
			t.Errorf("with %d observations, expected ErrInsufficientData, got %v", n, err)
		}
	}
}

func TestTrendImproving(t *testing.T) {
	result, err := Trend(observations(Sad, Angry, Upset, Happy, Normal, Calm))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Direction != TrendImproving {
		t.Errorf("expected improving, got %q", result.Direction)
	}
}

func TestTrendConcerning(t *testing.T) {
	result, err := Trend(observations(Happy, Normal, Calm, Sad, Angry, Anxious))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Direction != TrendConcerning {
		t.Errorf("expected concerning, got %q", result.Direction)
	}
}

func TestTrendStableBelowFiveObservations(t *testing.T) {
	result, err := Trend(observations(Sad, Sad, Happy))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Direction != TrendStable {
		t.Errorf("expected stable with a short window, got %q", result.Direction)
	}
}

func TestTrendStableEqualHalves(t *testing.T) {
	result, err := Trend(observations(Sad, Happy, Normal, Angry, Calm, Normal))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Direction != TrendStable {
		t.Errorf("expected stable with equal negative counts, got %q", result.Direction)
	}
}

func TestTrendUsesLastTenOnly(t *testing.T) {
	// Twelve observations: the two oldest are negative and must be ignored.
	emotions := []Emotion{Sad, Sad}
	for i := 0; i < 10; i++ {
		emotions = append(emotions, Happy)
	}
	result, err := Trend(observations(emotions...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.EntryCount != 10 {
		t.Errorf("expected window of 10, got %d", result.EntryCount)
	}
	if result.DominantMood != Happy {
		t.Errorf("expected happy dominant, got %q", result.DominantMood)
	}
	if result.Distribution[Sad] != 0 {
		t.Errorf("old entries leaked into the window: %v", result.Distribution)
	}
}

func TestTrendDominantMoodTieBreak(t *testing.T) {
	// sad and happy both occur twice; sad was encountered first.
	result, err := Trend(observations(Sad, Happy, Sad, Happy))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DominantMood != Sad {
		t.Errorf("tie should break to first encountered, got %q", result.DominantMood)
	}
}

func TestTrendOddWindowSplit(t *testing.T) {
	// Five observations: first half is two entries, second half three.
	// Negatives: first half 2, second half 1 -> improving.
	result, err := Trend(observations(Sad, Angry, Happy, Normal, Upset))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Direction != TrendImproving {
		t.Errorf("expected improving with floor split, got %q", result.Direction)
	}
}

func TestTrendDistribution(t *testing.T) {
	result, err := Trend(observations(Happy, Happy, Sad))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Distribution[Happy] != 2 || result.Distribution[Sad] != 1 {
		t.Errorf("unexpected distribution: %v", result.Distribution)
	}
	if result.EntryCount != 3 {
		t.Errorf("expected entry count 3, got %d", result.EntryCount)
	}
}
