// Package session owns per-session conversation state: the chat log, the
// capped mood history, the selected personality and the crisis flags. Each
// session is fully isolated; nothing is shared across session IDs.
package session

import (
	"time"

	"github.com/mindmate-ai/server/internal/mood"
	"github.com/mindmate-ai/server/internal/respond"
)

// MoodHistoryCap bounds the retained mood observations per session. Older
// entries are evicted first.
const MoodHistoryCap = 50

// ChatTurn is one exchange in the conversation log. Turns are append-only
// and never mutated. The synthetic welcome turn carries no user message.
type ChatTurn struct {
	Timestamp       time.Time           `json:"timestamp"`
	UserMessage     string              `json:"user_message,omitempty"`
	BotResponse     string              `json:"bot_response"`
	DetectedEmotion mood.Emotion        `json:"detected_emotion"`
	Personality     respond.Personality `json:"personality"`
	IsWelcome       bool                `json:"is_welcome,omitempty"`
}

// CrisisState tracks the crisis branch of the conversation state machine.
type CrisisState struct {
	Detected     bool `json:"detected"`
	Acknowledged bool `json:"acknowledged"`
}

// Pending reports whether the session is stuck on the crisis branch: a
// detection has fired and the user has not acknowledged it yet.
func (s CrisisState) Pending() bool {
	return s.Detected && !s.Acknowledged
}
