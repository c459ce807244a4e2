package session

import (
	"context"

	"github.com/mindmate-ai/server/internal/mood"
	"github.com/mindmate-ai/server/internal/quotes"
	"github.com/mindmate-ai/server/internal/respond"
)

// Repository stores per-session state. Implementations must keep the mood
// history capped at MoodHistoryCap, evicting oldest-first, and must isolate
// sessions from each other.
type Repository interface {
	// AppendTurn appends a chat turn to the session's conversation log.
	AppendTurn(ctx context.Context, sessionID string, turn ChatTurn) error

	// Turns returns the session's conversation log, oldest first.
	Turns(ctx context.Context, sessionID string) ([]ChatTurn, error)

	// RecordMood appends a mood observation, trimming to MoodHistoryCap.
	RecordMood(ctx context.Context, sessionID string, obs mood.Observation) error

	// Moods returns the retained mood observations, oldest first.
	Moods(ctx context.Context, sessionID string) ([]mood.Observation, error)

	// Personality returns the session's current personality mode.
	Personality(ctx context.Context, sessionID string) (respond.Personality, error)

	// SetPersonality switches the session's personality mode. The change
	// takes effect on the next turn only; earlier turns keep the mode
	// recorded on them.
	SetPersonality(ctx context.Context, sessionID string, p respond.Personality) error

	// CrisisState returns the session's crisis flags.
	CrisisState(ctx context.Context, sessionID string) (CrisisState, error)

	// SetCrisisState replaces the session's crisis flags.
	SetCrisisState(ctx context.Context, sessionID string, state CrisisState) error

	// AddFavoriteQuote stores a favorite. Returns false when the quote is
	// already present.
	AddFavoriteQuote(ctx context.Context, sessionID string, q quotes.Quote) (bool, error)

	// FavoriteQuotes returns the session's favorites, oldest first.
	FavoriteQuotes(ctx context.Context, sessionID string) ([]quotes.Quote, error)

	// Clear removes all state for the session.
	Clear(ctx context.Context, sessionID string) error
}
