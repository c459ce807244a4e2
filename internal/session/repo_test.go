package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/mindmate-ai/server/internal/mood"
	"github.com/mindmate-ai/server/internal/quotes"
	"github.com/mindmate-ai/server/internal/respond"
	"github.com/redis/go-redis/v9"
)

// repoUnderTest runs the shared repository contract tests against an
// implementation.
func repoUnderTest(t *testing.T, name string, repo Repository) {
	ctx := context.Background()

	t.Run(name+"/mood history cap", func(t *testing.T) {
		id := "cap-session"
		base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 60; i++ {
			obs := mood.Observation{
				Timestamp:  base.Add(time.Duration(i) * time.Minute),
				Emotion:    mood.Happy,
				Confidence: float64(i) / 100,
			}
			if err := repo.RecordMood(ctx, id, obs); err != nil {
				t.Fatalf("RecordMood: %v", err)
			}
		}

		moods, err := repo.Moods(ctx, id)
		if err != nil {
			t.Fatalf("Moods: %v", err)
		}
		if len(moods) != MoodHistoryCap {
			t.Fatalf("expected %d observations, got %d", MoodHistoryCap, len(moods))
		}
		// The retained entries are exactly the last 50 inserted.
		if moods[0].Confidence != 0.10 {
			t.Errorf("expected oldest retained confidence 0.10, got %v", moods[0].Confidence)
		}
		if moods[len(moods)-1].Confidence != 0.59 {
			t.Errorf("expected newest confidence 0.59, got %v", moods[len(moods)-1].Confidence)
		}
	})

	t.Run(name+"/turns append only", func(t *testing.T) {
		id := "turns-session"
		for i := 0; i < 3; i++ {
			turn := ChatTurn{
				Timestamp:       time.Now().UTC(),
				UserMessage:     fmt.Sprintf("message %d", i),
				BotResponse:     "reply",
				DetectedEmotion: mood.Normal,
				Personality:     respond.Friendly,
			}
			if err := repo.AppendTurn(ctx, id, turn); err != nil {
				t.Fatalf("AppendTurn: %v", err)
			}
		}

		turns, err := repo.Turns(ctx, id)
		if err != nil {
			t.Fatalf("Turns: %v", err)
		}
		if len(turns) != 3 {
			t.Fatalf("expected 3 turns, got %d", len(turns))
		}
		if turns[0].UserMessage != "message 0" || turns[2].UserMessage != "message 2" {
			t.Errorf("turns out of order: %+v", turns)
		}
	})

	t.Run(name+"/personality", func(t *testing.T) {
		id := "personality-session"
		p, err := repo.Personality(ctx, id)
		if err != nil {
			t.Fatalf("Personality: %v", err)
		}
		if p != respond.DefaultPersonality {
			t.Errorf("fresh session should default to %s, got %s", respond.DefaultPersonality, p)
		}

		if err := repo.SetPersonality(ctx, id, respond.Calm); err != nil {
			t.Fatalf("SetPersonality: %v", err)
		}
		p, err = repo.Personality(ctx, id)
		if err != nil {
			t.Fatalf("Personality: %v", err)
		}
		if p != respond.Calm {
			t.Errorf("expected Calm, got %s", p)
		}
	})

	t.Run(name+"/crisis state", func(t *testing.T) {
		id := "crisis-session"
		state, err := repo.CrisisState(ctx, id)
		if err != nil {
			t.Fatalf("CrisisState: %v", err)
		}
		if state.Pending() {
			t.Error("fresh session must not be crisis-pending")
		}

		if err := repo.SetCrisisState(ctx, id, CrisisState{Detected: true}); err != nil {
			t.Fatalf("SetCrisisState: %v", err)
		}
		state, err = repo.CrisisState(ctx, id)
		if err != nil {
			t.Fatalf("CrisisState: %v", err)
		}
		if !state.Pending() {
			t.Error("expected pending after detection without acknowledgement")
		}

		if err := repo.SetCrisisState(ctx, id, CrisisState{Detected: true, Acknowledged: true}); err != nil {
			t.Fatalf("SetCrisisState: %v", err)
		}
		state, _ = repo.CrisisState(ctx, id)
		if state.Pending() {
			t.Error("acknowledged crisis must not be pending")
		}
	})

	t.Run(name+"/favorites", func(t *testing.T) {
		id := "favorites-session"
		q := quotes.Quote{Text: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt"}

		added, err := repo.AddFavoriteQuote(ctx, id, q)
		if err != nil {
			t.Fatalf("AddFavoriteQuote: %v", err)
		}
		if !added {
			t.Error("first add should report true")
		}

		added, err = repo.AddFavoriteQuote(ctx, id, q)
		if err != nil {
			t.Fatalf("AddFavoriteQuote: %v", err)
		}
		if added {
			t.Error("duplicate add should report false")
		}

		favorites, err := repo.FavoriteQuotes(ctx, id)
		if err != nil {
			t.Fatalf("FavoriteQuotes: %v", err)
		}
		if len(favorites) != 1 {
			t.Errorf("expected 1 favorite, got %d", len(favorites))
		}
	})

	t.Run(name+"/session isolation", func(t *testing.T) {
		a, b := "isolation-a", "isolation-b"
		if err := repo.RecordMood(ctx, a, mood.Observation{Timestamp: time.Now(), Emotion: mood.Sad, Confidence: 0.9}); err != nil {
			t.Fatal(err)
		}
		moods, err := repo.Moods(ctx, b)
		if err != nil {
			t.Fatal(err)
		}
		if len(moods) != 0 {
			t.Errorf("session b must not see session a's moods, got %d", len(moods))
		}
	})

	t.Run(name+"/clear", func(t *testing.T) {
		id := "clear-session"
		if err := repo.AppendTurn(ctx, id, ChatTurn{BotResponse: "hi", DetectedEmotion: mood.Normal}); err != nil {
			t.Fatal(err)
		}
		if err := repo.Clear(ctx, id); err != nil {
			t.Fatal(err)
		}
		turns, err := repo.Turns(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if len(turns) != 0 {
			t.Errorf("expected no turns after clear, got %d", len(turns))
		}
	})
}

func TestMemoryRepository(t *testing.T) {
	repoUnderTest(t, "memory", NewMemoryRepository())
}

func TestRedisRepository(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	repoUnderTest(t, "redis", NewRedisRepository(client, 15*time.Minute))
}

func TestRedisRepositoryTTL(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := NewRedisRepository(client, time.Minute)
	ctx := context.Background()
	if err := repo.AppendTurn(ctx, "ttl-session", ChatTurn{BotResponse: "hi", DetectedEmotion: mood.Normal}); err != nil {
		t.Fatal(err)
	}

	if ttl := srv.TTL("session:ttl-session:turns"); ttl != time.Minute {
		t.Errorf("expected TTL of 1m on the turns key, got %v", ttl)
	}

	srv.FastForward(2 * time.Minute)
	turns, err := repo.Turns(ctx, "ttl-session")
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 0 {
		t.Errorf("expected expired session to be empty, got %d turns", len(turns))
	}
}
