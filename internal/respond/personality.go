// Package respond holds the personality definitions, the response template
// bank and the selection logic over it.
package respond

import "strings"

// Personality is the response style the companion adopts. The set is closed.
type Personality string

const (
	Friendly     Personality = "Friendly"
	Professional Personality = "Professional"
	Motivational Personality = "Motivational"
	Calm         Personality = "Calm"
)

// DefaultPersonality is the mode a new session starts in.
const DefaultPersonality = Friendly

// Personalities lists all members of the closed set.
func Personalities() []Personality {
	return []Personality{Friendly, Professional, Motivational, Calm}
}

// String returns the string representation of the personality.
func (p Personality) String() string {
	return string(p)
}

// Profile carries the descriptive attributes of a personality.
type Profile struct {
	Tone     string
	Style    string
	Greeting string
}

var profiles = map[Personality]Profile{
	Friendly: {
		Tone:     "warm and approachable",
		Style:    "casual and supportive",
		Greeting: "Hey there! I'm here to listen and support you. How are you feeling today?",
	},
	Professional: {
		Tone:     "respectful and clinical",
		Style:    "structured and evidence-based",
		Greeting: "Good day. I'm MindMate, your mental health companion. How may I assist you today?",
	},
	Motivational: {
		Tone:     "encouraging and energetic",
		Style:    "inspiring and goal-oriented",
		Greeting: "Hello champion! Ready to tackle whatever's on your mind? You've got this!",
	},
	Calm: {
		Tone:     "gentle and soothing",
		Style:    "mindful and peaceful",
		Greeting: "Welcome to a peaceful space. Take a deep breath. I'm here to help you find your center.",
	},
}

// ProfileOf returns the descriptive attributes of a personality. Unknown
// values resolve to the default personality's profile.
func ProfileOf(p Personality) Profile {
	if profile, ok := profiles[p]; ok {
		return profile
	}
	return profiles[DefaultPersonality]
}

// WelcomeMessage builds the greeting shown on a fresh session, in the
// voice of the given personality.
func WelcomeMessage(p Personality) string {
	return "Welcome to MindMate 🧠✨\n\n" +
		ProfileOf(p).Greeting + "\n\n" +
		"I'm here to support your mental wellness journey with:\n" +
		"- 🎭 Mood detection and tracking\n" +
		"- 💬 Personalized conversations\n" +
		"- 🌟 Daily inspiration and quotes\n" +
		"- 🆘 Crisis support resources\n\n" +
		"Feel free to share what's on your mind, and I'll adapt my responses to help you feel heard and supported."
}

// ParsePersonality normalises a stored string into a member of the closed
// set, falling back to the default for anything unrecognised.
func ParsePersonality(v string) Personality {
	switch strings.TrimSpace(strings.ToLower(v)) {
	case "friendly":
		return Friendly
	case "professional":
		return Professional
	case "motivational":
		return Motivational
	case "calm":
		return Calm
	default:
		return DefaultPersonality
	}
}
