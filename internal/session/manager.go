package session

import (
	"context"
	"time"

	"github.com/mindmate-ai/server/internal/mood"
	"github.com/mindmate-ai/server/internal/respond"
	logx "github.com/mindmate-ai/server/pkg/logger"
)

// Manager coordinates session reads and writes for the conversation
// pipeline on top of a Repository.
type Manager struct {
	repo Repository
}

// NewManager wraps a repository.
func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo}
}

// Repo exposes the underlying repository for callers that need direct
// access (favorites, clearing).
func (m *Manager) Repo() Repository {
	return m.repo
}

// RecordExchange persists a completed turn: the chat turn first, then the
// mood observation derived from it. The ordering is part of the contract so
// a partial failure can never leave a mood without its turn.
func (m *Manager) RecordExchange(ctx context.Context, sessionID string, turn ChatTurn, obs mood.Observation) error {
	if err := m.repo.AppendTurn(ctx, sessionID, turn); err != nil {
		return err
	}
	if err := m.repo.RecordMood(ctx, sessionID, obs); err != nil {
		return err
	}
	logx.Debug().
		Str("session_id", sessionID).
		Str("emotion", obs.Emotion.String()).
		Float64("confidence", obs.Confidence).
		Msg("exchange recorded")
	return nil
}

// RecordWelcome appends the synthetic welcome turn for a fresh session and
// returns it. No mood observation is recorded for the welcome.
func (m *Manager) RecordWelcome(ctx context.Context, sessionID string, p respond.Personality) (ChatTurn, error) {
	turn := ChatTurn{
		Timestamp:       time.Now().UTC(),
		BotResponse:     respond.WelcomeMessage(p),
		DetectedEmotion: mood.Normal,
		Personality:     p,
		IsWelcome:       true,
	}
	if err := m.repo.AppendTurn(ctx, sessionID, turn); err != nil {
		return ChatTurn{}, err
	}
	return turn, nil
}

// CurrentMood returns the most recent observation, or false when the
// session has none yet.
func (m *Manager) CurrentMood(ctx context.Context, sessionID string) (mood.Observation, bool, error) {
	observations, err := m.repo.Moods(ctx, sessionID)
	if err != nil {
		return mood.Observation{}, false, err
	}
	if len(observations) == 0 {
		return mood.Observation{}, false, nil
	}
	return observations[len(observations)-1], true, nil
}

// Summary computes the trend analysis over the session's mood history.
// Propagates mood.ErrInsufficientData when fewer than three observations
// exist.
func (m *Manager) Summary(ctx context.Context, sessionID string) (mood.TrendResult, error) {
	observations, err := m.repo.Moods(ctx, sessionID)
	if err != nil {
		return mood.TrendResult{}, err
	}
	return mood.Trend(observations)
}
