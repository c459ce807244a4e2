package respond

import (
	"math/rand"
	"time"

	"github.com/mindmate-ai/server/internal/mood"
)

// Reply is a selected response. Body and FollowUp are always non-empty.
type Reply struct {
	Body     string
	FollowUp string
}

// Text renders the reply the way the renderer displays it: body, blank line,
// follow-up.
func (r Reply) Text() string {
	return r.Body + "\n\n" + r.FollowUp
}

// Selector picks replies from the template bank. The randomness source is
// injectable so tests can fix the seed and assert exact output.
type Selector struct {
	rng *rand.Rand
}

// NewSelector builds a selector around the given source. A nil rng gets a
// time-seeded one.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: rng}
}

// Select resolves a reply for the (personality, emotion) pair. The fallback
// chain is explicit: the pair's own cell, then the personality's normal
// cell, then the generic default. Selection among a cell's variants is
// uniform. The result is total: every pair produces a non-empty reply.
func (s *Selector) Select(p Personality, e mood.Emotion) Reply {
	return Reply{
		Body:     s.pickBody(p, e),
		FollowUp: pickFollowUp(p, e),
	}
}

func (s *Selector) pickBody(p Personality, e mood.Emotion) string {
	cells := templates[p]

	if variants := cells[e]; len(variants) > 0 {
		return variants[s.rng.Intn(len(variants))]
	}
	if variants := cells[mood.Normal]; len(variants) > 0 {
		return variants[s.rng.Intn(len(variants))]
	}
	return GenericBody
}

func pickFollowUp(p Personality, e mood.Emotion) string {
	cells := followUps[p]

	if line, ok := cells[e]; ok && line != "" {
		return line
	}
	if line, ok := cells[mood.Normal]; ok && line != "" {
		return line
	}
	return GenericFollowUp
}
