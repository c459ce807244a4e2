// Package agent wires the conversation pipeline together: sanitization,
// emotion classification, crisis handling, response selection and session
// bookkeeping, orchestrated as a compiled graph behind a small Engine API.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindmate-ai/server/internal/agent/graph"
	"github.com/mindmate-ai/server/internal/agent/model"
	"github.com/mindmate-ai/server/internal/crisis"
	"github.com/mindmate-ai/server/internal/mood"
	"github.com/mindmate-ai/server/internal/quotes"
	"github.com/mindmate-ai/server/internal/respond"
	"github.com/mindmate-ai/server/internal/sanitize"
	"github.com/mindmate-ai/server/internal/session"
	logx "github.com/mindmate-ai/server/pkg/logger"
)

// ErrEmptyMessage is returned when a message is empty after sanitization.
// Empty turns are never submitted to the pipeline.
var ErrEmptyMessage = errors.New("empty message after sanitization")

// EngineConfig holds the pipeline dependencies.
type EngineConfig struct {
	Detector  *mood.Detector
	Selector  *respond.Selector
	Sessions  *session.Manager
	Directory crisis.Directory
	Quotes    *quotes.Bank
}

// Engine is the public entry point for conversations. One Engine serves all
// sessions; per-session state lives in the session repository.
type Engine struct {
	sessions  *session.Manager
	runner    graph.Runner
	directory crisis.Directory
	quoteBank *quotes.Bank
}

// NewEngine builds and compiles the conversation graph. Construction
// failure is a startup error; it is never deferred to the first turn.
func NewEngine(ctx context.Context, cfg EngineConfig) (*Engine, error) {
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session manager is nil")
	}
	if len(cfg.Directory) == 0 {
		cfg.Directory = crisis.DefaultDirectory()
	}
	if cfg.Quotes == nil {
		cfg.Quotes = quotes.Load("")
	}

	runner, err := graph.BuildConversationGraph(ctx, graph.Config{
		Detector:  cfg.Detector,
		Selector:  cfg.Selector,
		Sessions:  cfg.Sessions,
		Directory: cfg.Directory,
	})
	if err != nil {
		return nil, fmt.Errorf("build conversation graph: %w", err)
	}

	return &Engine{
		sessions:  cfg.Sessions,
		runner:    runner,
		directory: cfg.Directory,
		quoteBank: cfg.Quotes,
	}, nil
}

// StartSession creates a fresh session and returns its ID along with the
// synthetic welcome turn.
func (e *Engine) StartSession(ctx context.Context) (string, session.ChatTurn, error) {
	sessionID := uuid.NewString()
	p, err := e.sessions.Repo().Personality(ctx, sessionID)
	if err != nil {
		return "", session.ChatTurn{}, fmt.Errorf("load session personality: %w", err)
	}
	turn, err := e.sessions.RecordWelcome(ctx, sessionID, p)
	if err != nil {
		return "", session.ChatTurn{}, fmt.Errorf("record welcome: %w", err)
	}
	logx.Info().Str("session_id", sessionID).Msg("session started")
	return sessionID, turn, nil
}

// ProcessTurn handles one user message. While the session has an
// unacknowledged crisis, every turn re-presents the crisis resources and
// skips normal processing entirely; only AcknowledgeCrisis returns the
// session to the normal flow.
func (e *Engine) ProcessTurn(ctx context.Context, sessionID, message string) (*model.TurnResult, error) {
	// Sanitization happens here, once, ahead of the empty-message check and
	// the crisis gate. Everything downstream, graph nodes included, sees the
	// cleaned message.
	message = sanitize.Clean(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	state, err := e.sessions.Repo().CrisisState(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load crisis state: %w", err)
	}
	if state.Pending() {
		return e.crisisReminder(ctx, sessionID, message)
	}

	return e.runner.Invoke(ctx, model.TurnInput{SessionID: sessionID, Message: message})
}

// crisisReminder re-presents the crisis branch for a pending session. The
// message is not classified and no mood observation is recorded; the turn is
// still appended to the conversation log.
func (e *Engine) crisisReminder(ctx context.Context, sessionID, message string) (*model.TurnResult, error) {
	p, err := e.sessions.Repo().Personality(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session personality: %w", err)
	}

	result := &model.TurnResult{
		Timestamp:       time.Now().UTC(),
		UserMessage:     message,
		BotResponse:     respond.CrisisResponse(p),
		DetectedEmotion: mood.Normal,
		Crisis:          true,
		Resources:       e.directory.QuickContacts(),
	}

	crisis.LogInteraction(sessionID)
	turn := session.ChatTurn{
		Timestamp:       result.Timestamp,
		UserMessage:     result.UserMessage,
		BotResponse:     result.BotResponse,
		DetectedEmotion: result.DetectedEmotion,
		Personality:     p,
	}
	if err := e.sessions.Repo().AppendTurn(ctx, sessionID, turn); err != nil {
		return nil, fmt.Errorf("append crisis reminder turn: %w", err)
	}
	return result, nil
}

// AcknowledgeCrisis records the explicit user acknowledgement and returns
// the session to the normal flow. Acknowledging a session with no pending
// crisis is a no-op.
func (e *Engine) AcknowledgeCrisis(ctx context.Context, sessionID string) error {
	state, err := e.sessions.Repo().CrisisState(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load crisis state: %w", err)
	}
	if !state.Pending() {
		return nil
	}
	state.Acknowledged = true
	if err := e.sessions.Repo().SetCrisisState(ctx, sessionID, state); err != nil {
		return fmt.Errorf("set crisis state: %w", err)
	}
	logx.Info().Str("session_id", sessionID).Msg("crisis acknowledged, resuming normal flow")
	return nil
}

// SetPersonality switches the session's personality mode. The change takes
// effect on the next turn.
func (e *Engine) SetPersonality(ctx context.Context, sessionID string, p respond.Personality) error {
	return e.sessions.Repo().SetPersonality(ctx, sessionID, p)
}

// Personality returns the session's current personality mode.
func (e *Engine) Personality(ctx context.Context, sessionID string) (respond.Personality, error) {
	return e.sessions.Repo().Personality(ctx, sessionID)
}

// CurrentMood returns the most recent mood observation for display, or
// false when the session has no observations yet.
func (e *Engine) CurrentMood(ctx context.Context, sessionID string) (mood.Observation, bool, error) {
	return e.sessions.CurrentMood(ctx, sessionID)
}

// MoodSummary computes the trend analysis over the session's mood history.
func (e *Engine) MoodSummary(ctx context.Context, sessionID string) (mood.TrendResult, error) {
	return e.sessions.Summary(ctx, sessionID)
}

// History returns the session's conversation log, oldest first.
func (e *Engine) History(ctx context.Context, sessionID string) ([]session.ChatTurn, error) {
	return e.sessions.Repo().Turns(ctx, sessionID)
}

// CrisisResources exposes the full resource directory for display.
func (e *Engine) CrisisResources() crisis.Directory {
	return e.directory
}

// DailyQuote returns today's quote. The pick is stable within a calendar
// day.
func (e *Engine) DailyQuote() quotes.Quote {
	return e.quoteBank.Daily(time.Now().UTC())
}

// SaveFavoriteQuote stores a quote in the session's favorites. Returns
// false when it was already saved.
func (e *Engine) SaveFavoriteQuote(ctx context.Context, sessionID string, q quotes.Quote) (bool, error) {
	return e.sessions.Repo().AddFavoriteQuote(ctx, sessionID, q)
}

// FavoriteQuotes returns the session's saved quotes, oldest first.
func (e *Engine) FavoriteQuotes(ctx context.Context, sessionID string) ([]quotes.Quote, error) {
	return e.sessions.Repo().FavoriteQuotes(ctx, sessionID)
}
