package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/mindmate-ai/server/internal/agent"
	"github.com/mindmate-ai/server/internal/agent/model"
	"github.com/mindmate-ai/server/internal/core"
	"github.com/mindmate-ai/server/internal/crisis"
	"github.com/mindmate-ai/server/internal/mood"
	geminiscore "github.com/mindmate-ai/server/internal/mood/gemini"
	"github.com/mindmate-ai/server/internal/quotes"
	"github.com/mindmate-ai/server/internal/respond"
	"github.com/mindmate-ai/server/internal/sanitize"
	"github.com/mindmate-ai/server/internal/session"
	logx "github.com/mindmate-ai/server/pkg/logger"
	pkgredis "github.com/mindmate-ai/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the companion,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider. When no key is configured the classifier degrades to
	// neutral results instead of failing.
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Pipeline configs
	Scorer  model.ScorerModelConfig
	Session model.SessionConfig
	Data    model.DataConfig
}

func main() {
	fmt.Println("🧠 MindMate - Your Mental Health Companion")
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	repo, cleanup, err := newSessionRepository(envCfg)
	if err != nil {
		log.Fatalf("Failed to initialise session store: %v", err)
	}
	defer cleanup()

	detector, err := newDetector(ctx, envCfg)
	if err != nil {
		log.Fatalf("Failed to initialise classifier: %v", err)
	}

	engine, err := agent.NewEngine(ctx, agent.EngineConfig{
		Detector:  detector,
		Selector:  respond.NewSelector(nil),
		Sessions:  session.NewManager(repo),
		Directory: crisis.LoadDirectory(envCfg.Data.CrisisContactsFile),
		Quotes:    quotes.Load(envCfg.Data.QuotesFile),
	})
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	sessionID, welcome, err := engine.StartSession(ctx)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	fmt.Printf("\n%s\n", welcome.BotResponse)

	quote := engine.DailyQuote()
	fmt.Printf("\n💭 Quote of the day: \"%s\" - %s\n", quote.Text, quote.Author)

	testMessages := []struct {
		description string
		message     string
	}{
		{
			description: "Positive check-in",
			message:     "I had such a great day today, everything went well!",
		},
		{
			description: "Low mood",
			message:     "Honestly I've been feeling pretty down and lonely lately.",
		},
		{
			description: "Crisis language",
			message:     "I feel hopeless, like there's no point anymore.",
		},
		{
			description: "Message while crisis is pending",
			message:     "I don't know what to say.",
		},
	}

	for i, test := range testMessages {
		fmt.Printf("\n🚀 Turn %d: %s\n", i+1, test.description)
		fmt.Printf("You: %s\n", test.message)

		result, err := engine.ProcessTurn(ctx, sessionID, test.message)
		if err != nil {
			if errors.Is(err, agent.ErrEmptyMessage) {
				fmt.Println("(empty message skipped)")
				continue
			}
			log.Fatalf("Failed to process turn %d: %v", i+1, err)
		}

		printResult(result)
		fmt.Println("─────────────────────────────────────────────")

		time.Sleep(200 * time.Millisecond)
	}

	// Resolve the crisis branch and resume the normal flow.
	if err := engine.AcknowledgeCrisis(ctx, sessionID); err != nil {
		log.Fatalf("Failed to acknowledge crisis: %v", err)
	}
	fmt.Println("\n✅ Crisis resources acknowledged, resuming conversation")

	if err := engine.SetPersonality(ctx, sessionID, respond.Motivational); err != nil {
		log.Fatalf("Failed to switch personality: %v", err)
	}
	result, err := engine.ProcessTurn(ctx, sessionID, "Thanks. I think I'm feeling a bit better now.")
	if err != nil {
		log.Fatalf("Failed to process turn: %v", err)
	}
	printResult(result)

	if obs, ok, err := engine.CurrentMood(ctx, sessionID); err == nil && ok {
		fmt.Printf("\nCurrent mood: %s %s (%.0f%%)\n", obs.Emotion.Emoji(), obs.Emotion, obs.Confidence*100)
	}

	summary, err := engine.MoodSummary(ctx, sessionID)
	switch {
	case errors.Is(err, mood.ErrInsufficientData):
		fmt.Println("Not enough mood data for a trend yet.")
	case err != nil:
		log.Fatalf("Failed to compute mood summary: %v", err)
	default:
		fmt.Printf("\n📊 Mood summary: dominant=%s trend=%s entries=%d\n",
			summary.DominantMood, summary.Direction, summary.EntryCount)
		for emotion, count := range summary.Distribution {
			fmt.Printf("  %s %s: %d\n", emotion.Emoji(), emotion, count)
		}
	}

	turns, err := engine.History(ctx, sessionID)
	if err != nil {
		log.Fatalf("Failed to load history: %v", err)
	}
	fmt.Printf("\n🗒  Conversation log (%d turns):\n", len(turns))
	now := time.Now().UTC()
	for _, turn := range turns {
		who := "MindMate"
		if turn.UserMessage != "" {
			who = "exchange"
		}
		fmt.Printf("  [%s] %s %s (%s)\n",
			sanitize.FormatRelative(now, turn.Timestamp), turn.DetectedEmotion.Emoji(), who, turn.Personality)
	}

	fmt.Println("\n🎉 Conversation demo completed!")
}

// printResult renders one turn. Crisis resources always print when present;
// their display pre-empts everything else for that turn.
func printResult(result *model.TurnResult) {
	fmt.Printf("MindMate %s: %s\n", result.DetectedEmotion.Emoji(), result.BotResponse)
	if len(result.Resources) > 0 {
		fmt.Println("\n📞 Immediate help:")
		for _, c := range result.Resources {
			fmt.Printf("• %s: %s - %s\n", c.Name, c.Number, c.Description)
		}
	}
}

// newSessionRepository selects the session store backend from config. The
// cleanup func closes the Redis client when one was opened.
func newSessionRepository(cfg AppConfig) (session.Repository, func(), error) {
	if cfg.Session.Store != "redis" {
		return session.NewMemoryRepository(), func() {}, nil
	}

	ttl, err := time.ParseDuration(cfg.Session.TTL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid SESSION_TTL '%s': %w", cfg.Session.TTL, err)
	}
	rdb, err := cfg.Redis.New()
	if err != nil {
		return nil, nil, err
	}
	fmt.Println("Connected to Redis successfully")
	return session.NewRedisRepository(rdb, ttl), func() { rdb.Close() }, nil
}

// newDetector builds the emotion detector. Without an API key the detector
// runs with no scorer and classifies everything as neutral.
func newDetector(ctx context.Context, cfg AppConfig) (*mood.Detector, error) {
	if cfg.APIKey == "" {
		logx.Warn().Msg("GEMINI_API_KEY not set, classifier degrades to neutral results")
		return mood.NewDetector(nil, nil), nil
	}

	scorer, err := geminiscore.New(ctx, geminiscore.Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Scorer.Model,
		MaxTokens:   cfg.Scorer.MaxTokens,
		Temperature: cfg.Scorer.Temperature,
	})
	if err != nil {
		return nil, err
	}
	return mood.NewDetector(scorer, scorer), nil
}
