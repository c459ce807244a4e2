package model

// ScorerModelConfig selects the Gemini model used for emotion and
// sentiment scoring.
type ScorerModelConfig struct {
	Model       string  `envconfig:"SCORER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"SCORER_MAX_TOKENS" default:"512"`
	Temperature float32 `envconfig:"SCORER_TEMPERATURE" default:"0.0"`
}

// SessionConfig controls where session state lives and for how long.
type SessionConfig struct {
	Store string `envconfig:"SESSION_STORE" default:"memory"`
	TTL   string `envconfig:"SESSION_TTL" default:"24h"`
}

// DataConfig points to optional on-disk data files. Missing files fall
// back to the built-in defaults.
type DataConfig struct {
	CrisisContactsFile string `envconfig:"CRISIS_CONTACTS_FILE" default:"data/crisis_contacts.json"`
	QuotesFile         string `envconfig:"QUOTES_FILE" default:"data/quotes.json"`
}
