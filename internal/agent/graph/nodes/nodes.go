package nodes

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/mindmate-ai/server/internal/agent/model"
	"github.com/mindmate-ai/server/internal/crisis"
	"github.com/mindmate-ai/server/internal/mood"
	"github.com/mindmate-ai/server/internal/respond"
	"github.com/mindmate-ai/server/internal/session"
	logx "github.com/mindmate-ai/server/pkg/logger"
)

// NewClassifierPreHandler seeds the graph state for the turn: the session ID
// and the personality the session is currently set to.
func NewClassifierPreHandler(sessions *session.Manager) func(context.Context, model.TurnInput, *model.AppState) (model.TurnInput, error) {
	return func(ctx context.Context, in model.TurnInput, s *model.AppState) (model.TurnInput, error) {
		s.SessionID = in.SessionID
		p, err := sessions.Repo().Personality(ctx, in.SessionID)
		if err != nil {
			return model.TurnInput{}, fmt.Errorf("load session personality: %w", err)
		}
		s.Personality = p
		return in, nil
	}
}

// NewClassifierNode runs emotion classification and crisis keyword scanning.
// The engine owns input sanitization; messages arrive here already cleaned.
// Classification never fails the turn; the detector degrades to a neutral
// result on scorer errors.
func NewClassifierNode(detector *mood.Detector) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.TurnInput) (model.Analysis, error) {
		classification := detector.Classify(ctx, input.Message)
		inCrisis := crisis.IsCrisis(input.Message)

		analysis := model.Analysis{
			Input:          input,
			Classification: classification,
			Crisis:         inCrisis,
		}
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
			analysis.Personality = state.Personality
			return nil
		})
		if err != nil {
			return model.Analysis{}, fmt.Errorf("failed to access state: %w", err)
		}
		return analysis, nil
	})
}

// NewClassifierPostHandler saves the classification outcome to state.
func NewClassifierPostHandler() func(context.Context, model.Analysis, *model.AppState) (model.Analysis, error) {
	return func(ctx context.Context, out model.Analysis, state *model.AppState) (model.Analysis, error) {
		state.Classification = out.Classification
		state.Crisis = out.Crisis
		logx.Debug().
			Str("session_id", state.SessionID).
			Str("emotion", out.Classification.Emotion.String()).
			Float64("confidence", out.Classification.Confidence).
			Bool("crisis", out.Crisis).
			Msg("message classified")
		return out, nil
	}
}

// NewCrisisCondition routes crisis turns to the crisis responder and
// everything else to the normal responder.
func NewCrisisCondition() func(context.Context, model.Analysis) (string, error) {
	return func(ctx context.Context, input model.Analysis) (string, error) {
		if input.Crisis {
			logx.Debug().Str("session_id", input.Input.SessionID).
				Msg("Routing to crisis responder - crisis keywords detected")
			return NodeCrisisResponder, nil
		}
		return NodeResponder, nil
	}
}

// NewResponderNode selects the reply for the detected emotion under the
// session's personality mode.
func NewResponderNode(selector *respond.Selector) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, analysis model.Analysis) (*model.TurnResult, error) {
		reply := selector.Select(analysis.Personality, analysis.Classification.Emotion)
		return &model.TurnResult{
			Timestamp:       time.Now().UTC(),
			UserMessage:     analysis.Input.Message,
			BotResponse:     reply.Text(),
			DetectedEmotion: analysis.Classification.Emotion,
			Confidence:      analysis.Classification.Confidence,
		}, nil
	})
}

// NewCrisisResponderNode builds the crisis reply: the personality's fixed
// supportive message, unchanged, with the quick-access contacts carried
// alongside for the renderer. The reply never varies randomly and never
// depends on the detected emotion.
func NewCrisisResponderNode(directory crisis.Directory) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, analysis model.Analysis) (*model.TurnResult, error) {
		return &model.TurnResult{
			Timestamp:       time.Now().UTC(),
			UserMessage:     analysis.Input.Message,
			BotResponse:     respond.CrisisResponse(analysis.Personality),
			DetectedEmotion: analysis.Classification.Emotion,
			Confidence:      analysis.Classification.Confidence,
			Crisis:          true,
			Resources:       directory.QuickContacts(),
		}, nil
	})
}

// NewCrisisResponderPostHandler flips the session onto the crisis branch,
// emits the content-free audit event, and persists the turn.
func NewCrisisResponderPostHandler(sessions *session.Manager) func(context.Context, *model.TurnResult, *model.AppState) (*model.TurnResult, error) {
	return func(ctx context.Context, out *model.TurnResult, state *model.AppState) (*model.TurnResult, error) {
		err := sessions.Repo().SetCrisisState(ctx, state.SessionID, session.CrisisState{Detected: true})
		if err != nil {
			return nil, fmt.Errorf("set crisis state: %w", err)
		}
		crisis.LogInteraction(state.SessionID)
		if err := recordExchange(ctx, sessions, state, out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// NewResponderPostHandler persists the completed turn.
func NewResponderPostHandler(sessions *session.Manager) func(context.Context, *model.TurnResult, *model.AppState) (*model.TurnResult, error) {
	return func(ctx context.Context, out *model.TurnResult, state *model.AppState) (*model.TurnResult, error) {
		if err := recordExchange(ctx, sessions, state, out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// recordExchange writes the chat turn and its mood observation. Crisis turns
// record a mood too; a crisis message still carries an emotional state.
func recordExchange(ctx context.Context, sessions *session.Manager, state *model.AppState, out *model.TurnResult) error {
	turn := session.ChatTurn{
		Timestamp:       out.Timestamp,
		UserMessage:     out.UserMessage,
		BotResponse:     out.BotResponse,
		DetectedEmotion: out.DetectedEmotion,
		Personality:     state.Personality,
	}
	obs := mood.Observation{
		Timestamp:  out.Timestamp,
		Emotion:    out.DetectedEmotion,
		Confidence: out.Confidence,
	}
	if err := sessions.RecordExchange(ctx, state.SessionID, turn, obs); err != nil {
		return fmt.Errorf("record exchange: %w", err)
	}
	return nil
}
