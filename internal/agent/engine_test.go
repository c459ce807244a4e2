package agent

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/mindmate-ai/server/internal/mood"
	"github.com/mindmate-ai/server/internal/respond"
	"github.com/mindmate-ai/server/internal/session"
)

// stubScorer returns a fixed distribution keyed on substrings so tests can
// steer the detected emotion without a live model.
type stubScorer struct{}

func (stubScorer) Score(_ context.Context, text string) ([]mood.LabelScore, error) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "hopeless"), strings.Contains(lower, "miserable"):
		return []mood.LabelScore{{Label: "sadness", Score: 0.9}}, nil
	case strings.Contains(lower, "great"), strings.Contains(lower, "wonderful"):
		return []mood.LabelScore{{Label: "joy", Score: 0.8}}, nil
	case strings.Contains(lower, "furious"):
		return []mood.LabelScore{{Label: "anger", Score: 0.85}}, nil
	default:
		return []mood.LabelScore{{Label: "neutral", Score: 0.6}}, nil
	}
}

func newTestEngine(t *testing.T) (*Engine, *session.Manager) {
	t.Helper()
	sessions := session.NewManager(session.NewMemoryRepository())
	engine, err := NewEngine(context.Background(), EngineConfig{
		Detector: mood.NewDetector(stubScorer{}, nil),
		Selector: respond.NewSelector(rand.New(rand.NewSource(7))),
		Sessions: sessions,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine, sessions
}

func TestStartSession(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	sessionID, welcome, err := engine.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if sessionID == "" {
		t.Fatal("expected a non-empty session ID")
	}
	if !welcome.IsWelcome {
		t.Error("welcome turn not flagged")
	}
	if welcome.BotResponse == "" {
		t.Error("welcome turn has empty response")
	}

	turns, err := engine.History(ctx, sessionID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(turns) != 1 || !turns[0].IsWelcome {
		t.Errorf("expected history to hold only the welcome turn, got %d turns", len(turns))
	}
	if _, ok, err := engine.CurrentMood(ctx, sessionID); err != nil || ok {
		t.Errorf("welcome must not record a mood observation (ok=%v, err=%v)", ok, err)
	}
}

func TestProcessTurnNormalFlow(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	sessionID, _, err := engine.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	result, err := engine.ProcessTurn(ctx, sessionID, "Today was a great day!")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if result.DetectedEmotion != mood.Happy {
		t.Errorf("emotion = %s, want happy", result.DetectedEmotion)
	}
	if result.Crisis {
		t.Error("normal turn flagged as crisis")
	}
	if result.BotResponse == "" {
		t.Error("empty bot response")
	}

	obs, ok, err := engine.CurrentMood(ctx, sessionID)
	if err != nil || !ok {
		t.Fatalf("CurrentMood: ok=%v err=%v", ok, err)
	}
	if obs.Emotion != mood.Happy || obs.Confidence != 0.8 {
		t.Errorf("observation = %+v", obs)
	}

	turns, err := engine.History(ctx, sessionID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	last := turns[len(turns)-1]
	if last.UserMessage != "Today was a great day!" || last.BotResponse != result.BotResponse {
		t.Errorf("recorded turn = %+v", last)
	}
}

func TestProcessTurnSanitizesInput(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	sessionID, _, _ := engine.StartSession(ctx)

	result, err := engine.ProcessTurn(ctx, sessionID, "  <b>Today was a great day!</b>  ")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if result.UserMessage != "Today was a great day!" {
		t.Errorf("user message = %q, markup not stripped", result.UserMessage)
	}
}

func TestProcessTurnRejectsEmptyMessage(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	sessionID, _, _ := engine.StartSession(ctx)

	for _, raw := range []string{"", "   ", "<p></p>"} {
		if _, err := engine.ProcessTurn(ctx, sessionID, raw); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("ProcessTurn(%q) err = %v, want ErrEmptyMessage", raw, err)
		}
	}
}

func TestCrisisStateMachine(t *testing.T) {
	engine, sessions := newTestEngine(t)
	ctx := context.Background()
	sessionID, _, _ := engine.StartSession(ctx)

	// Crisis keywords route to the crisis branch and flip the state.
	result, err := engine.ProcessTurn(ctx, sessionID, "I feel hopeless and want to die")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if !result.Crisis {
		t.Fatal("crisis turn not flagged")
	}
	if result.BotResponse != respond.CrisisResponse(respond.Friendly) {
		t.Error("crisis reply is not the fixed Friendly crisis string verbatim")
	}
	if len(result.Resources) == 0 {
		t.Fatal("crisis reply carries no resource contacts")
	}
	if result.Resources[0].Number != "911" {
		t.Errorf("first quick contact = %+v, want emergency services", result.Resources[0])
	}

	state, err := sessions.Repo().CrisisState(ctx, sessionID)
	if err != nil {
		t.Fatalf("CrisisState: %v", err)
	}
	if !state.Pending() {
		t.Fatalf("state = %+v, want pending", state)
	}

	// The underlying emotion is still recorded even on the crisis turn.
	obs, ok, err := engine.CurrentMood(ctx, sessionID)
	if err != nil || !ok {
		t.Fatalf("CurrentMood: ok=%v err=%v", ok, err)
	}
	if obs.Emotion != mood.Sad {
		t.Errorf("crisis turn mood = %s, want sad", obs.Emotion)
	}

	// While pending, every turn re-presents the crisis branch.
	moodsBefore, _ := sessions.Repo().Moods(ctx, sessionID)
	reminder, err := engine.ProcessTurn(ctx, sessionID, "Today was a great day!")
	if err != nil {
		t.Fatalf("ProcessTurn while pending: %v", err)
	}
	if !reminder.Crisis {
		t.Error("pending turn did not re-present the crisis branch")
	}
	if reminder.BotResponse != respond.CrisisResponse(respond.Friendly) {
		t.Error("pending reply is not the crisis string")
	}
	if len(reminder.Resources) == 0 {
		t.Error("pending reply carries no resource contacts")
	}
	moodsAfter, _ := sessions.Repo().Moods(ctx, sessionID)
	if len(moodsAfter) != len(moodsBefore) {
		t.Error("pending turn must not record a mood observation")
	}

	// Acknowledgement returns the session to the normal flow.
	if err := engine.AcknowledgeCrisis(ctx, sessionID); err != nil {
		t.Fatalf("AcknowledgeCrisis: %v", err)
	}
	resumed, err := engine.ProcessTurn(ctx, sessionID, "Today was a great day!")
	if err != nil {
		t.Fatalf("ProcessTurn after acknowledge: %v", err)
	}
	if resumed.Crisis {
		t.Error("acknowledged session still on the crisis branch")
	}
	if resumed.DetectedEmotion != mood.Happy {
		t.Errorf("resumed emotion = %s, want happy", resumed.DetectedEmotion)
	}
}

func TestAcknowledgeCrisisWithoutPendingIsNoop(t *testing.T) {
	engine, sessions := newTestEngine(t)
	ctx := context.Background()
	sessionID, _, _ := engine.StartSession(ctx)

	if err := engine.AcknowledgeCrisis(ctx, sessionID); err != nil {
		t.Fatalf("AcknowledgeCrisis: %v", err)
	}
	state, _ := sessions.Repo().CrisisState(ctx, sessionID)
	if state.Detected || state.Acknowledged {
		t.Errorf("state mutated by no-op acknowledge: %+v", state)
	}
}

func TestSetPersonalityTakesEffectNextTurn(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	sessionID, _, _ := engine.StartSession(ctx)

	if err := engine.SetPersonality(ctx, sessionID, respond.Calm); err != nil {
		t.Fatalf("SetPersonality: %v", err)
	}
	result, err := engine.ProcessTurn(ctx, sessionID, "I feel hopeless")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if !result.Crisis {
		t.Fatal("expected crisis branch, hopeless is a crisis keyword")
	}
	if result.BotResponse != respond.CrisisResponse(respond.Calm) {
		t.Error("crisis reply did not use the Calm personality string")
	}

	turns, _ := engine.History(ctx, sessionID)
	if got := turns[len(turns)-1].Personality; got != respond.Calm {
		t.Errorf("recorded personality = %s, want calm", got)
	}
}

func TestMoodSummaryOverTurns(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	sessionID, _, _ := engine.StartSession(ctx)

	if _, err := engine.MoodSummary(ctx, sessionID); !errors.Is(err, mood.ErrInsufficientData) {
		t.Errorf("empty session summary err = %v, want ErrInsufficientData", err)
	}

	for _, msg := range []string{
		"so miserable today", "everything is miserable", "still miserable",
		"actually a great afternoon", "a wonderful evening", "what a great walk",
	} {
		if _, err := engine.ProcessTurn(ctx, sessionID, msg); err != nil {
			t.Fatalf("ProcessTurn(%q): %v", msg, err)
		}
	}

	summary, err := engine.MoodSummary(ctx, sessionID)
	if err != nil {
		t.Fatalf("MoodSummary: %v", err)
	}
	if summary.Direction != mood.TrendImproving {
		t.Errorf("direction = %s, want improving", summary.Direction)
	}
	if summary.EntryCount != 6 {
		t.Errorf("entry count = %d, want 6", summary.EntryCount)
	}
}

func TestSessionIsolation(t *testing.T) {
	engine, sessions := newTestEngine(t)
	ctx := context.Background()
	first, _, _ := engine.StartSession(ctx)
	second, _, _ := engine.StartSession(ctx)

	if _, err := engine.ProcessTurn(ctx, first, "I feel hopeless"); err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}

	state, err := sessions.Repo().CrisisState(ctx, second)
	if err != nil {
		t.Fatalf("CrisisState: %v", err)
	}
	if state.Detected {
		t.Error("crisis in one session leaked into another")
	}
	result, err := engine.ProcessTurn(ctx, second, "Today was a great day!")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if result.Crisis {
		t.Error("second session routed to the crisis branch")
	}
}

func TestQuoteOperations(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	sessionID, _, _ := engine.StartSession(ctx)

	quote := engine.DailyQuote()
	if quote.Text == "" {
		t.Fatal("daily quote is empty")
	}
	if quote != engine.DailyQuote() {
		t.Error("daily quote changed within the same day")
	}

	saved, err := engine.SaveFavoriteQuote(ctx, sessionID, quote)
	if err != nil || !saved {
		t.Fatalf("SaveFavoriteQuote: saved=%v err=%v", saved, err)
	}
	again, err := engine.SaveFavoriteQuote(ctx, sessionID, quote)
	if err != nil || again {
		t.Fatalf("duplicate SaveFavoriteQuote: saved=%v err=%v", again, err)
	}
	favorites, err := engine.FavoriteQuotes(ctx, sessionID)
	if err != nil || len(favorites) != 1 {
		t.Fatalf("FavoriteQuotes: %v (%d)", err, len(favorites))
	}
}
