package gemini

import (
	"context"
	"fmt"

	geminimodel "github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	errx "github.com/mindmate-ai/server/internal/core/error"
	"github.com/mindmate-ai/server/internal/mood"
	logx "github.com/mindmate-ai/server/pkg/logger"
)

// Config holds the configuration for scorer model creation.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
}

// Scorer scores emotion and sentiment with a Gemini chat model. It satisfies
// both mood.Scorer and mood.SentimentScorer.
type Scorer struct {
	chatModel *geminimodel.ChatModel
	modelName string
}

// New creates the scorer chat model with the given configuration.
func New(ctx context.Context, cfg Config) (*Scorer, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := geminimodel.NewChatModel(ctx, &geminimodel.Config{
		Client:      client,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
		MaxTokens:   &cfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating scorer model")
		return nil, fmt.Errorf("error creating scorer model: %w", err)
	}

	return &Scorer{chatModel: chatModel, modelName: cfg.Model}, nil
}

// Score asks the model for emotion label scores over the native vocabulary.
func (s *Scorer) Score(ctx context.Context, text string) ([]mood.LabelScore, error) {
	systemPrompt, err := RenderEmotionSystem(ctx)
	if err != nil {
		return nil, fmt.Errorf("render emotion system prompt: %w", err)
	}

	out, err := s.generate(ctx, systemPrompt, text)
	if err != nil {
		return nil, err
	}
	return ParseLabelScores(out.Content)
}

// Sentiment asks the model for a single polarity judgement.
func (s *Scorer) Sentiment(ctx context.Context, text string) (mood.SentimentResult, error) {
	systemPrompt, err := RenderSentimentSystem(ctx)
	if err != nil {
		return mood.SentimentResult{}, fmt.Errorf("render sentiment system prompt: %w", err)
	}

	out, err := s.generate(ctx, systemPrompt, text)
	if err != nil {
		return mood.SentimentResult{}, err
	}
	return ParseSentiment(out.Content)
}

func (s *Scorer) generate(ctx context.Context, systemPrompt, text string) (*schema.Message, error) {
	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(text),
	}

	out, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		logx.Error().Err(err).Str("model", s.modelName).Msg("Scorer model call failed")
		return nil, errx.WrapScorer(err)
	}
	if out == nil {
		return nil, errx.WrapScorer(fmt.Errorf("scorer model returned nil message"))
	}

	s.logUsage(out)
	return out, nil
}

// logUsage computes and logs usage cost for the scorer model call.
func (s *Scorer) logUsage(out *schema.Message) {
	if !CostEnabled() || out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	pricing := ResolvePricing(s.modelName)
	inC, outC, totalC := ComputeCost(usage, pricing)
	logx.Debug().
		Str("model", s.modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}
