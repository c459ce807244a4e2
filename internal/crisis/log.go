package crisis

import (
	"time"

	logx "github.com/mindmate-ai/server/pkg/logger"
)

// Event is one anonymised crisis-interaction record. The message content is
// never included: only the fact that keywords matched and resources were
// shown is retained.
type Event struct {
	Timestamp        time.Time `json:"timestamp"`
	SessionID        string    `json:"session_id"`
	KeywordsDetected bool      `json:"crisis_keywords_detected"`
	ResourcesShown   bool      `json:"resources_shown"`
}

// LogInteraction records that the crisis branch fired for a session. In a
// production deployment this would forward to an external monitoring sink;
// here it emits a structured operator-facing log entry.
func LogInteraction(sessionID string) Event {
	event := Event{
		Timestamp:        time.Now().UTC(),
		SessionID:        sessionID,
		KeywordsDetected: true,
		ResourcesShown:   true,
	}

	logx.Warn().
		Str("session_id", event.SessionID).
		Time("timestamp", event.Timestamp).
		Bool("crisis_keywords_detected", event.KeywordsDetected).
		Bool("resources_shown", event.ResourcesShown).
		Msg("crisis interaction logged")

	return event
}
