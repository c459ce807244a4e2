package gemini

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/mindmate-ai/server/internal/mood"
)

//go:embed template/emotion_prompt.txt
var emotionSystemPrompt string

//go:embed template/sentiment_prompt.txt
var sentimentSystemPrompt string

// RenderEmotionSystem renders the emotion scoring system prompt via the Eino
// prompt component. This triggers Prompt callbacks and returns the final
// system prompt string.
func RenderEmotionSystem(ctx context.Context) (string, error) {
	content := strings.NewReplacer(
		"{TD}", tupDelim,
		"{RD}", recDelim,
		"{CD}", endDelim,
		"{labels}", strings.Join(mood.NativeLabels(), ", "),
	).Replace(emotionSystemPrompt)
	return renderSystem(ctx, content)
}

// RenderSentimentSystem renders the sentiment scoring system prompt.
func RenderSentimentSystem(ctx context.Context) (string, error) {
	content := strings.NewReplacer(
		"{TD}", tupDelim,
		"{RD}", recDelim,
		"{CD}", endDelim,
	).Replace(sentimentSystemPrompt)
	return renderSystem(ctx, content)
}

// renderSystem wraps the content via the Eino prompt component using a
// messages placeholder so prompt callbacks fire.
func renderSystem(ctx context.Context, content string) (string, error) {
	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("scorer prompt callbacks: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("scorer prompt callbacks: empty result")
	}
	return msgs[0].Content, nil
}
