package model

import (
	"time"

	"github.com/mindmate-ai/server/internal/crisis"
	"github.com/mindmate-ai/server/internal/mood"
	"github.com/mindmate-ai/server/internal/respond"
)

// TurnInput is the public input for processing one user message.
type TurnInput struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// TurnResult is what the renderer receives for one completed turn. On a
// crisis turn BotResponse carries the personality's fixed crisis string
// unchanged and Resources carries the quick-access contacts; the renderer
// must display both, nothing else for that turn.
type TurnResult struct {
	Timestamp       time.Time        `json:"timestamp"`
	UserMessage     string           `json:"user_message,omitempty"`
	BotResponse     string           `json:"bot_response"`
	DetectedEmotion mood.Emotion     `json:"detected_emotion"`
	Confidence      float64          `json:"confidence"`
	Crisis          bool             `json:"crisis"`
	Resources       []crisis.Contact `json:"resources,omitempty"`
}

// AppState stores per-invocation state for the conversation graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside state handlers
//     (WithStatePreHandler, WithStatePostHandler, or compose.ProcessState),
//     which the graph runtime serializes, so no extra locking is needed.
//   - Persistent session state lives in the session repository, not here.
type AppState struct {
	SessionID      string
	Personality    respond.Personality
	Classification mood.Classification
	Crisis         bool
}

// Analysis is the intermediate product flowing from the classifier node to
// the branch condition and the responder nodes.
type Analysis struct {
	Input          TurnInput
	Classification mood.Classification
	Crisis         bool
	Personality    respond.Personality
}
