package errx

import (
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// WrapRedis maps Redis errors to the unified AppError type with appropriate status codes.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, redis.Nil) {
		return New(err, http.StatusNotFound, RedisNotFoundMessage)
	}

	return New(err, http.StatusBadGateway, RedisErrorMessage)
}

// WrapScorer marks failures of the backing classification model. Callers are
// expected to recover locally and degrade to the neutral fallback.
func WrapScorer(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusServiceUnavailable, ScorerErrorMessage)
}
