package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	errx "github.com/mindmate-ai/server/internal/core/error"
	"github.com/mindmate-ai/server/internal/mood"
	"github.com/mindmate-ai/server/internal/quotes"
	"github.com/mindmate-ai/server/internal/respond"
	logx "github.com/mindmate-ai/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisRepository stores session state in Redis with a per-session TTL that
// is extended on every write, so idle sessions expire together with all
// their keys. Data layout per session: a list for chat turns, a list for
// mood observations (LTRIM-capped), a hash for personality and crisis
// flags, and a list for favorite quotes.
type RedisRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisRepository builds a repository around an existing client.
func NewRedisRepository(rdb redis.Cmdable, ttl time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisRepository) turnsKey(sessionID string) string {
	return fmt.Sprintf("session:%s:turns", sessionID)
}

func (r *RedisRepository) moodsKey(sessionID string) string {
	return fmt.Sprintf("session:%s:moods", sessionID)
}

func (r *RedisRepository) metaKey(sessionID string) string {
	return fmt.Sprintf("session:%s:meta", sessionID)
}

func (r *RedisRepository) favoritesKey(sessionID string) string {
	return fmt.Sprintf("session:%s:favorites", sessionID)
}

func (r *RedisRepository) touch(ctx context.Context, key string) {
	if r.ttl <= 0 {
		return
	}
	if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
	} else if !ok {
		logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on session key")
	}
}

func (r *RedisRepository) AppendTurn(ctx context.Context, sessionID string, turn ChatTurn) error {
	b, err := json.Marshal(turn)
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to marshal chat turn")
		return fmt.Errorf("marshal chat turn: %w", err)
	}
	key := r.turnsKey(sessionID)
	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push chat turn to redis")
		return errx.WrapRedis(err)
	}
	r.touch(ctx, key)
	return nil
}

func (r *RedisRepository) Turns(ctx context.Context, sessionID string) ([]ChatTurn, error) {
	key := r.turnsKey(sessionID)
	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load chat turns from redis")
		return nil, errx.WrapRedis(err)
	}

	turns := make([]ChatTurn, 0, len(rows))
	for i, row := range rows {
		var turn ChatTurn
		if err := json.Unmarshal([]byte(row), &turn); err != nil {
			logx.Error().Err(err).Str("session_id", sessionID).Int("index", i).Msg("failed to unmarshal chat turn")
			return nil, fmt.Errorf("unmarshal chat turn at index %d: %w", i, err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (r *RedisRepository) RecordMood(ctx context.Context, sessionID string, obs mood.Observation) error {
	b, err := json.Marshal(obs)
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to marshal mood observation")
		return fmt.Errorf("marshal mood observation: %w", err)
	}
	key := r.moodsKey(sessionID)
	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push mood observation to redis")
		return errx.WrapRedis(err)
	}
	// Oldest-first eviction down to the cap.
	if err := r.rdb.LTrim(ctx, key, -int64(MoodHistoryCap), -1).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to trim mood history")
		return errx.WrapRedis(err)
	}
	r.touch(ctx, key)
	return nil
}

func (r *RedisRepository) Moods(ctx context.Context, sessionID string) ([]mood.Observation, error) {
	key := r.moodsKey(sessionID)
	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load mood history from redis")
		return nil, errx.WrapRedis(err)
	}

	observations := make([]mood.Observation, 0, len(rows))
	for i, row := range rows {
		var obs mood.Observation
		if err := json.Unmarshal([]byte(row), &obs); err != nil {
			logx.Error().Err(err).Str("session_id", sessionID).Int("index", i).Msg("failed to unmarshal mood observation")
			return nil, fmt.Errorf("unmarshal mood observation at index %d: %w", i, err)
		}
		observations = append(observations, obs)
	}
	return observations, nil
}

func (r *RedisRepository) Personality(ctx context.Context, sessionID string) (respond.Personality, error) {
	v, err := r.rdb.HGet(ctx, r.metaKey(sessionID), "personality").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return respond.DefaultPersonality, nil
		}
		return respond.DefaultPersonality, errx.WrapRedis(err)
	}
	return respond.ParsePersonality(v), nil
}

func (r *RedisRepository) SetPersonality(ctx context.Context, sessionID string, p respond.Personality) error {
	key := r.metaKey(sessionID)
	if err := r.rdb.HSet(ctx, key, "personality", p.String()).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store personality")
		return errx.WrapRedis(err)
	}
	r.touch(ctx, key)
	return nil
}

func (r *RedisRepository) CrisisState(ctx context.Context, sessionID string) (CrisisState, error) {
	fields, err := r.rdb.HMGet(ctx, r.metaKey(sessionID), "crisis_detected", "crisis_acknowledged").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return CrisisState{}, nil
		}
		return CrisisState{}, errx.WrapRedis(err)
	}
	return CrisisState{
		Detected:     fields[0] == "1",
		Acknowledged: fields[1] == "1",
	}, nil
}

func (r *RedisRepository) SetCrisisState(ctx context.Context, sessionID string, state CrisisState) error {
	key := r.metaKey(sessionID)
	err := r.rdb.HSet(ctx, key,
		"crisis_detected", boolField(state.Detected),
		"crisis_acknowledged", boolField(state.Acknowledged),
	).Err()
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store crisis state")
		return errx.WrapRedis(err)
	}
	r.touch(ctx, key)
	return nil
}

func (r *RedisRepository) AddFavoriteQuote(ctx context.Context, sessionID string, q quotes.Quote) (bool, error) {
	existing, err := r.FavoriteQuotes(ctx, sessionID)
	if err != nil {
		return false, err
	}
	for _, fav := range existing {
		if fav.Text == q.Text && fav.Author == q.Author {
			return false, nil
		}
	}

	b, err := json.Marshal(q)
	if err != nil {
		return false, fmt.Errorf("marshal quote: %w", err)
	}
	key := r.favoritesKey(sessionID)
	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push favorite quote to redis")
		return false, errx.WrapRedis(err)
	}
	r.touch(ctx, key)
	return true, nil
}

func (r *RedisRepository) FavoriteQuotes(ctx context.Context, sessionID string) ([]quotes.Quote, error) {
	key := r.favoritesKey(sessionID)
	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errx.WrapRedis(err)
	}

	favorites := make([]quotes.Quote, 0, len(rows))
	for i, row := range rows {
		var q quotes.Quote
		if err := json.Unmarshal([]byte(row), &q); err != nil {
			return nil, fmt.Errorf("unmarshal favorite quote at index %d: %w", i, err)
		}
		favorites = append(favorites, q)
	}
	return favorites, nil
}

func (r *RedisRepository) Clear(ctx context.Context, sessionID string) error {
	keys := []string{
		r.turnsKey(sessionID),
		r.moodsKey(sessionID),
		r.metaKey(sessionID),
		r.favoritesKey(sessionID),
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to clear session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func boolField(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

var _ Repository = (*RedisRepository)(nil)
