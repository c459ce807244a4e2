package session

import (
	"context"
	"sync"

	"github.com/mindmate-ai/server/internal/mood"
	"github.com/mindmate-ai/server/internal/quotes"
	"github.com/mindmate-ai/server/internal/respond"
)

// MemoryRepository keeps session state in process memory. This is the
// default deployment shape: nothing survives a restart. Safe for concurrent
// use; sessions sharing the repository never see each other's data.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
}

type memorySession struct {
	turns       []ChatTurn
	moods       []mood.Observation
	personality respond.Personality
	crisis      CrisisState
	favorites   []quotes.Quote
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]*memorySession)}
}

func (r *MemoryRepository) session(sessionID string) *memorySession {
	s, ok := r.sessions[sessionID]
	if !ok {
		s = &memorySession{personality: respond.DefaultPersonality}
		r.sessions[sessionID] = s
	}
	return s
}

func (r *MemoryRepository) AppendTurn(ctx context.Context, sessionID string, turn ChatTurn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.session(sessionID)
	s.turns = append(s.turns, turn)
	return nil
}

func (r *MemoryRepository) Turns(ctx context.Context, sessionID string) ([]ChatTurn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	out := make([]ChatTurn, len(s.turns))
	copy(out, s.turns)
	return out, nil
}

func (r *MemoryRepository) RecordMood(ctx context.Context, sessionID string, obs mood.Observation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.session(sessionID)
	s.moods = append(s.moods, obs)
	if len(s.moods) > MoodHistoryCap {
		s.moods = s.moods[len(s.moods)-MoodHistoryCap:]
	}
	return nil
}

func (r *MemoryRepository) Moods(ctx context.Context, sessionID string) ([]mood.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	out := make([]mood.Observation, len(s.moods))
	copy(out, s.moods)
	return out, nil
}

func (r *MemoryRepository) Personality(ctx context.Context, sessionID string) (respond.Personality, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return respond.DefaultPersonality, nil
	}
	return s.personality, nil
}

func (r *MemoryRepository) SetPersonality(ctx context.Context, sessionID string, p respond.Personality) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session(sessionID).personality = p
	return nil
}

func (r *MemoryRepository) CrisisState(ctx context.Context, sessionID string) (CrisisState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return CrisisState{}, nil
	}
	return s.crisis, nil
}

func (r *MemoryRepository) SetCrisisState(ctx context.Context, sessionID string, state CrisisState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session(sessionID).crisis = state
	return nil
}

func (r *MemoryRepository) AddFavoriteQuote(ctx context.Context, sessionID string, q quotes.Quote) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.session(sessionID)
	for _, existing := range s.favorites {
		if existing.Text == q.Text && existing.Author == q.Author {
			return false, nil
		}
	}
	s.favorites = append(s.favorites, q)
	return true, nil
}

func (r *MemoryRepository) FavoriteQuotes(ctx context.Context, sessionID string) ([]quotes.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	out := make([]quotes.Quote, len(s.favorites))
	copy(out, s.favorites)
	return out, nil
}

func (r *MemoryRepository) Clear(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
