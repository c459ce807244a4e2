// Package quotes is the inspiration-content module: a small categorised bank
// with a deterministic quote of the day, random picks and substring search.
// It is independent of the mood pipeline; the two only meet in the renderer.
package quotes

import (
	"encoding/json"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	logx "github.com/mindmate-ai/server/pkg/logger"
)

// Quote is one bank entry.
type Quote struct {
	Text     string `json:"text"`
	Author   string `json:"author"`
	Category string `json:"category,omitempty"`
}

// Bank holds quotes grouped by category.
type Bank struct {
	categories map[string][]Quote
}

// Load reads a quote bank from a JSON file (category -> list of quotes).
// A missing or unparseable file falls back to the built-in default bank.
func Load(path string) *Bank {
	data, err := os.ReadFile(path)
	if err != nil {
		logx.Warn().Err(err).Str("path", path).Msg("quotes file unavailable, using built-in defaults")
		return defaultBank()
	}

	var categories map[string][]Quote
	if err := json.Unmarshal(data, &categories); err != nil {
		logx.Error().Err(err).Str("path", path).Msg("quotes file unparseable, using built-in defaults")
		return defaultBank()
	}
	if len(categories) == 0 {
		return defaultBank()
	}
	return &Bank{categories: categories}
}

// Categories returns the available category names.
func (b *Bank) Categories() []string {
	names := make([]string, 0, len(b.categories))
	for name := range b.categories {
		names = append(names, name)
	}
	return names
}

// Daily returns the quote of the day: the pick is seeded by the ordinal
// date, so it is stable within a day and changes across days.
func (b *Bank) Daily(today time.Time) Quote {
	all := b.all()
	if len(all) == 0 {
		return Quote{Text: "Every day is a new opportunity to grow and heal.", Author: "MindMate"}
	}

	seed := today.Truncate(24 * time.Hour).Unix()
	rng := rand.New(rand.NewSource(seed))
	return all[rng.Intn(len(all))]
}

// Random returns a random quote, optionally restricted to a category. An
// unknown category or empty bank yields the zero fallback quote.
func (b *Bank) Random(rng *rand.Rand, category string) Quote {
	pool := b.all()
	if category != "" {
		pool = nil
		for _, q := range b.categories[category] {
			pool = append(pool, withCategory(q, category))
		}
	}
	if len(pool) == 0 {
		return Quote{Text: "Every day is a new opportunity to grow and heal.", Author: "MindMate"}
	}
	return pool[rng.Intn(len(pool))]
}

// Search returns all quotes whose text or author contains the term,
// case-insensitively, annotated with their category.
func (b *Bank) Search(term string) []Quote {
	term = strings.ToLower(term)
	var results []Quote
	for category, list := range b.categories {
		for _, q := range list {
			if strings.Contains(strings.ToLower(q.Text), term) ||
				strings.Contains(strings.ToLower(q.Author), term) {
				results = append(results, withCategory(q, category))
			}
		}
	}
	return results
}

// all flattens the bank in sorted-category order. The ordering is part of
// the Daily contract: a seeded pick must land on the same quote every time.
func (b *Bank) all() []Quote {
	names := b.Categories()
	sort.Strings(names)

	var all []Quote
	for _, category := range names {
		for _, q := range b.categories[category] {
			all = append(all, withCategory(q, category))
		}
	}
	return all
}

func withCategory(q Quote, category string) Quote {
	q.Category = category
	return q
}

func defaultBank() *Bank {
	return &Bank{categories: map[string][]Quote{
		"mental_health": {
			{Text: "You are not alone in this. Even when it feels like the world is against you, there are people who care.", Author: "Unknown"},
			{Text: "Healing isn't about erasing your past; it's about making peace with it.", Author: "Unknown"},
			{Text: "Your mental health is just as important as your physical health. Take care of both.", Author: "Unknown"},
			{Text: "It's okay to not be okay. What matters is that you're trying.", Author: "Unknown"},
			{Text: "You have survived 100% of your worst days. You're doing better than you think.", Author: "Unknown"},
		},
		"motivation": {
			{Text: "The greatest revolution of our generation is the discovery that human beings can alter their lives by altering their attitudes.", Author: "William James"},
			{Text: "You don't have to be positive all the time. It's perfectly okay to feel sad, angry, annoyed, frustrated, scared, or anxious. Having feelings doesn't make you a negative person.", Author: "Lori Deschene"},
			{Text: "What lies behind us and what lies before us are tiny matters compared to what lies within us.", Author: "Ralph Waldo Emerson"},
			{Text: "The only person you are destined to become is the person you decide to be.", Author: "Ralph Waldo Emerson"},
			{Text: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt"},
		},
		"self_care": {
			{Text: "Self-care is not selfish. You cannot serve from an empty vessel.", Author: "Eleanor Brown"},
			{Text: "Rest when you're weary. Refresh and renew yourself, your body, your mind, your spirit.", Author: "Ralph Marston"},
			{Text: "Taking care of yourself doesn't mean me first, it means me too.", Author: "L.R. Knost"},
			{Text: "You can't pour from an empty cup. Take care of yourself first.", Author: "Unknown"},
			{Text: "Be patient with yourself. Self-growth is tender; it's holy ground.", Author: "Unknown"},
		},
	}}
}
